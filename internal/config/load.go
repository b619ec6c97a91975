package config

import (
	"encoding/json"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Bot     BotConfig     `json:"bot"`
	Logging LoggingConfig `json:"logging"`
	Storage StorageConfig `json:"storage"`
	Network NetworkConfig `json:"network"`
}

type BotConfig struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

type LoggingConfig struct {
	Path  string `json:"path"`
	Level string `json:"level"`
}

type StorageConfig struct {
	DatabasePath string `json:"database_path"`
}

type NetworkConfig struct {
	HTTPPoolSize int    `json:"http_pool_size"`
	APIBaseURL   string `json:"api_base_url"`
}

var GlobalConfig *Config

func Load(path string) (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(&cfg)

	GlobalConfig = &cfg
	return &cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		_ = godotenv.Load()
		applyEnvOverrides(cfg)
		GlobalConfig = cfg
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if clientID := os.Getenv("CLIENT_ID"); clientID != "" {
		cfg.Bot.ClientID = clientID
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		cfg.Storage.DatabasePath = dbPath
	}
}

func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{},
		Logging: LoggingConfig{
			Path:  "logs/defender.log",
			Level: "info",
		},
		Storage: StorageConfig{
			DatabasePath: "defender.db",
		},
		Network: NetworkConfig{
			HTTPPoolSize: 8,
			APIBaseURL:   "https://discord.com/api/v10",
		},
	}
}

func Get() *Config {
	if GlobalConfig == nil {
		GlobalConfig = DefaultConfig()
	}
	return GlobalConfig
}
