package modlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"go-defender/internal/models"
)

// Case is one append-only moderation record. Moderator is always the
// engine itself and cases carry no expiry.
type Case struct {
	ID        string
	GuildID   uint64
	UserID    uint64
	Action    models.Action
	Reason    string
	Moderator string
	CreatedAt time.Time
}

// Store persists moderation cases in SQLite.
type Store struct {
	db *sql.DB
}

func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS cases (
		id TEXT PRIMARY KEY,
		guild_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		action TEXT NOT NULL,
		reason TEXT NOT NULL,
		moderator TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_cases_guild ON cases(guild_id);
	CREATE INDEX IF NOT EXISTS idx_cases_user ON cases(user_id);
	CREATE INDEX IF NOT EXISTS idx_cases_created ON cases(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateCase appends a case record. The generated case ID is returned.
func (s *Store) CreateCase(c Case) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO cases (id, guild_id, user_id, action, reason, moderator, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		fmt.Sprintf("%d", c.GuildID),
		fmt.Sprintf("%d", c.UserID),
		c.Action.String(),
		c.Reason,
		c.Moderator,
		c.CreatedAt.Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert case: %w", err)
	}
	return c.ID, nil
}

// CasesForUser returns the user's cases in the guild, newest first.
func (s *Store) CasesForUser(guildID, userID uint64, limit int) ([]Case, error) {
	rows, err := s.db.Query(
		`SELECT id, action, reason, moderator, created_at FROM cases
		 WHERE guild_id = ? AND user_id = ?
		 ORDER BY created_at DESC LIMIT ?`,
		fmt.Sprintf("%d", guildID),
		fmt.Sprintf("%d", userID),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cases: %w", err)
	}
	defer rows.Close()

	var cases []Case
	for rows.Next() {
		c := Case{GuildID: guildID, UserID: userID}
		var action string
		var createdAt int64
		if err := rows.Scan(&c.ID, &action, &c.Reason, &c.Moderator, &createdAt); err != nil {
			return nil, err
		}
		c.Action = parseAction(action)
		c.CreatedAt = time.Unix(createdAt, 0)
		cases = append(cases, c)
	}
	return cases, rows.Err()
}

func parseAction(s string) models.Action {
	switch s {
	case "delete":
		return models.ActionDelete
	case "kick":
		return models.ActionKick
	case "softban":
		return models.ActionSoftban
	case "ban":
		return models.ActionBan
	default:
		return models.ActionNoAction
	}
}

func (s *Store) Close() error {
	return s.db.Close()
}
