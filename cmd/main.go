package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go-defender/internal/bot"
	"go-defender/internal/config"
	"go-defender/internal/decision"
	"go-defender/internal/detectors"
	"go-defender/internal/dispatcher"
	"go-defender/internal/logging"
	"go-defender/internal/modlog"
	"go-defender/internal/notifier"
	"go-defender/internal/platform"
	"go-defender/internal/ranks"
	"go-defender/internal/state"
	"go-defender/internal/warden"
	"go-defender/internal/watchdog"
)

func main() {
	fmt.Println("Starting Defender automod engine")

	cfg := config.LoadOrDefault("config.json")
	if cfg.Bot.Token == "" {
		fmt.Println("No bot token configured (set DISCORD_TOKEN)")
		os.Exit(1)
	}

	if err := initLogging(cfg); err != nil {
		fmt.Printf("Logging init failed: %v\n", err)
		os.Exit(1)
	}

	cases, err := modlog.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		logging.Critical("modlog store init failed: %v", err)
		os.Exit(1)
	}

	session, err := bot.NewSession(cfg.Bot.Token)
	if err != nil {
		logging.Critical("session init failed: %v", err)
		os.Exit(1)
	}

	settings := config.NewSettingsStore()
	members := config.NewMemberStore()
	messages := state.NewMessageWindow()
	joins := state.NewJoinWindow()
	counter := state.NewMessageCounter()
	staffActivity := state.NewStaffActivity()
	debouncer := decision.NewAlertDebouncer()

	notify := notifier.NewDiscordNotifier(session.Discord(), settings)

	pool := platform.NewHTTPPool(cfg.Network.HTTPPoolSize)
	moderator := platform.NewRESTModerator(pool, platform.NewRateLimitMonitor(),
		cfg.Bot.Token, cfg.Network.APIBaseURL)

	executor := decision.NewExecutor(moderator, cases, notify)
	resolver := ranks.NewHeuristicResolver(session, counter)

	disp := dispatcher.New(dispatcher.Deps{
		Settings:      settings,
		Messages:      messages,
		StaffActivity: staffActivity,
		Counter:       counter,
		Staff:         session,
		Resolver:      resolver,
		Rules:         warden.NewRegistry(),
		Monitor:       notify,
		Moderator:     moderator,
		InviteFilter:  detectors.NewInviteFilter(executor, notify),
		Raider:        detectors.NewRaiderDetector(messages, debouncer, executor, notify),
		JoinFlood:     detectors.NewJoinFloodDetector(joins, debouncer, notify),
		JoinSuspicion: detectors.NewJoinSuspicionDetector(members, notify),
	})

	wd := watchdog.NewWatchdog(time.Minute)
	wd.RegisterComponent(bot.GatewayComponent, 10*time.Minute)

	session.SetupEventHandlers(disp, wd)

	if err := session.Connect(); err != nil {
		logging.Critical("connect failed: %v", err)
		os.Exit(1)
	}

	wd.Start()
	logging.Info("All components started")

	waitForShutdown()

	wd.Stop()
	if err := session.Close(); err != nil {
		logging.Warn("session close: %v", err)
	}
	if err := cases.Close(); err != nil {
		logging.Warn("modlog close: %v", err)
	}
	logging.Info("Shutdown complete")
	if logging.GlobalLogger != nil {
		logging.GlobalLogger.Close()
	}
}

func initLogging(cfg *config.Config) error {
	if dir := filepath.Dir(cfg.Logging.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	level := logging.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = logging.LevelDebug
	case "warn":
		level = logging.LevelWarn
	case "error":
		level = logging.LevelError
	}

	return logging.InitGlobalLogger(level, cfg.Logging.Path)
}

func waitForShutdown() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
