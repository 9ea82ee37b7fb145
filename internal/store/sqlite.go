package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/mood-companion/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db          *sql.DB
	entropy     *rand.Rand
	historyDays int
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:          db,
		entropy:     rand.New(rand.NewSource(time.Now().UnixNano())),
		historyDays: DefaultHistoryDays,
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// SetDefaultHistoryDays overrides the window used for non-positive day counts.
func (s *SQLiteStore) SetDefaultHistoryDays(days int) {
	if days > 0 {
		s.historyDays = days
	}
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		user_id     TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		timezone    TEXT NOT NULL DEFAULT 'UTC',
		created_at  TEXT NOT NULL,
		preferences TEXT
	);

	CREATE TABLE IF NOT EXISTS mood_entries (
		entry_id             TEXT PRIMARY KEY,
		user_id              TEXT NOT NULL REFERENCES users(user_id),
		timestamp            TEXT NOT NULL,
		mood_score           INTEGER NOT NULL CHECK(mood_score >= 1 AND mood_score <= 10),
		emotions             TEXT,
		triggers             TEXT,
		notes                TEXT,
		conversation_summary TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_mood_entries_user_timestamp
		ON mood_entries(user_id, timestamp DESC);

	CREATE TABLE IF NOT EXISTS coping_strategies (
		strategy_id   TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		category      TEXT NOT NULL,
		description   TEXT NOT NULL,
		steps         TEXT NOT NULL,
		evidence_link TEXT,
		usage_count   INTEGER NOT NULL DEFAULT 0,
		created_at    TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS strategy_usage (
		usage_id    TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users(user_id),
		strategy_id TEXT NOT NULL REFERENCES coping_strategies(strategy_id),
		used_at     TEXT NOT NULL,
		helpful     INTEGER,
		feedback    TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_strategy_usage_user
		ON strategy_usage(user_id, used_at DESC);

	CREATE TABLE IF NOT EXISTS conversations (
		conversation_id TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL REFERENCES users(user_id),
		started_at      TEXT NOT NULL,
		ended_at        TEXT,
		message_count   INTEGER NOT NULL DEFAULT 0,
		summary         TEXT
	);

	CREATE TABLE IF NOT EXISTS messages (
		message_id      TEXT PRIMARY KEY,
		conversation_id TEXT NOT NULL REFERENCES conversations(conversation_id),
		user_id         TEXT NOT NULL REFERENCES users(user_id),
		role            TEXT NOT NULL CHECK(role IN ('user', 'assistant')),
		content         TEXT NOT NULL,
		timestamp       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_messages_conversation
		ON messages(conversation_id, timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) CreateUser(ctx context.Context, p CreateUserParams) (*model.User, error) {
	now := time.Now().UTC()

	tz := p.Timezone
	if tz == "" {
		tz = "UTC"
	}

	var prefsJSON *string
	if len(p.Preferences) > 0 {
		b, err := json.Marshal(p.Preferences)
		if err != nil {
			return nil, fmt.Errorf("marshal preferences: %w", err)
		}
		str := string(b)
		prefsJSON = &str
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx,
		`SELECT 1 FROM users WHERE user_id = ?`, p.UserID).Scan(&exists)
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO users (user_id, name, timezone, created_at, preferences)
		 VALUES (?, ?, ?, ?, ?)`,
		p.UserID, p.Name, tz, now.Format(time.RFC3339), prefsJSON)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.User{
		UserID:      p.UserID,
		Name:        p.Name,
		Timezone:    tz,
		CreatedAt:   now,
		Preferences: p.Preferences,
	}, nil
}

func (s *SQLiteStore) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var u model.User
	var createdAt string
	var prefs sql.NullString

	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, timezone, created_at, preferences
		 FROM users WHERE user_id = ?`, userID).
		Scan(&u.UserID, &u.Name, &u.Timezone, &createdAt, &prefs)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	if prefs.Valid {
		json.Unmarshal([]byte(prefs.String), &u.Preferences)
	}

	return &u, nil
}

func (s *SQLiteStore) AddMoodEntry(ctx context.Context, p AddMoodEntryParams) (*model.MoodEntry, error) {
	if !model.ValidMoodScore(p.MoodScore) {
		return nil, ErrInvalidMoodScore
	}

	now := time.Now().UTC()
	id := s.newID()

	emotionsJSON, _ := json.Marshal(p.Emotions)
	triggersJSON, _ := json.Marshal(p.Triggers)
	if p.Emotions == nil {
		emotionsJSON = []byte("[]")
	}
	if p.Triggers == nil {
		triggersJSON = []byte("[]")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO mood_entries
		 (entry_id, user_id, timestamp, mood_score, emotions, triggers, notes, conversation_summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.UserID, now.Format(time.RFC3339), p.MoodScore,
		string(emotionsJSON), string(triggersJSON), p.Notes, p.ConversationSummary)
	if err != nil {
		return nil, fmt.Errorf("insert mood entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.MoodEntry{
		EntryID:             id,
		UserID:              p.UserID,
		Timestamp:           now,
		MoodScore:           p.MoodScore,
		Emotions:            p.Emotions,
		Triggers:            p.Triggers,
		Notes:               p.Notes,
		ConversationSummary: p.ConversationSummary,
	}, nil
}

func (s *SQLiteStore) GetMoodHistory(ctx context.Context, userID string, days int) ([]model.MoodEntry, error) {
	if days <= 0 {
		days = s.historyDays
	}

	since := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)

	// entry_id is a ULID, so ordering by it breaks wall-clock ties in
	// insertion order.
	rows, err := s.db.QueryContext(ctx,
		`SELECT entry_id, user_id, timestamp, mood_score, emotions, triggers, notes, conversation_summary
		 FROM mood_entries
		 WHERE user_id = ? AND timestamp >= ?
		 ORDER BY timestamp DESC, entry_id DESC`, userID, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.MoodEntry{}
	for rows.Next() {
		e, err := scanMoodEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (s *SQLiteStore) AddStrategy(ctx context.Context, p AddStrategyParams) (*model.CopingStrategy, error) {
	now := time.Now().UTC()
	id := s.newID()

	stepsJSON, _ := json.Marshal(p.Steps)
	if p.Steps == nil {
		stepsJSON = []byte("[]")
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO coping_strategies
		 (strategy_id, name, category, description, steps, evidence_link, usage_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?)`,
		id, p.Name, p.Category, p.Description, string(stepsJSON),
		p.EvidenceLink, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert strategy: %w", err)
	}

	return &model.CopingStrategy{
		StrategyID:   id,
		Name:         p.Name,
		Category:     p.Category,
		Description:  p.Description,
		Steps:        p.Steps,
		EvidenceLink: p.EvidenceLink,
		CreatedAt:    now,
	}, nil
}

func (s *SQLiteStore) GetAllStrategies(ctx context.Context) ([]model.CopingStrategy, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT strategy_id, name, category, description, steps, evidence_link, usage_count, created_at
		 FROM coping_strategies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var strategies []model.CopingStrategy
	for rows.Next() {
		var cs model.CopingStrategy
		var stepsJSON string
		var evidence sql.NullString
		var createdAt string

		err := rows.Scan(&cs.StrategyID, &cs.Name, &cs.Category, &cs.Description,
			&stepsJSON, &evidence, &cs.UsageCount, &createdAt)
		if err != nil {
			return nil, err
		}

		json.Unmarshal([]byte(stepsJSON), &cs.Steps)
		if evidence.Valid {
			cs.EvidenceLink = evidence.String
		}
		cs.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)

		strategies = append(strategies, cs)
	}

	return strategies, rows.Err()
}

func (s *SQLiteStore) RecordStrategyUsage(ctx context.Context, p StrategyUsageParams) error {
	now := time.Now().UTC().Format(time.RFC3339)
	id := s.newID()

	var helpful *int
	if p.Helpful != nil {
		v := 0
		if *p.Helpful {
			v = 1
		}
		helpful = &v
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO strategy_usage (usage_id, user_id, strategy_id, used_at, helpful, feedback)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.UserID, p.StrategyID, now, helpful, p.Feedback)
	if err != nil {
		return fmt.Errorf("insert strategy usage: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE coping_strategies SET usage_count = usage_count + 1 WHERE strategy_id = ?`,
		p.StrategyID)
	if err != nil {
		return fmt.Errorf("increment usage count: %w", err)
	}

	return tx.Commit()
}

func (s *SQLiteStore) StartConversation(ctx context.Context, userID string) (*model.Conversation, error) {
	now := time.Now().UTC()
	id := s.newID()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, user_id, started_at, message_count)
		 VALUES (?, ?, ?, 0)`,
		id, userID, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert conversation: %w", err)
	}

	return &model.Conversation{
		ConversationID: id,
		UserID:         userID,
		StartedAt:      now,
	}, nil
}

func (s *SQLiteStore) AppendMessage(ctx context.Context, conversationID, userID, role, content string) (*model.Message, error) {
	now := time.Now().UTC()
	id := s.newID()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO messages (message_id, conversation_id, user_id, role, content, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, conversationID, userID, role, content, now.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE conversations SET message_count = message_count + 1 WHERE conversation_id = ?`,
		conversationID)
	if err != nil {
		return nil, fmt.Errorf("bump message count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Message{
		MessageID:      id,
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
		Timestamp:      now,
	}, nil
}

func (s *SQLiteStore) EndConversation(ctx context.Context, conversationID, summary string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.ExecContext(ctx,
		`UPDATE conversations SET ended_at = ?, summary = ? WHERE conversation_id = ?`,
		now, summary, conversationID)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMoodEntry(row scanner) (model.MoodEntry, error) {
	var e model.MoodEntry
	var timestamp string
	var emotions, triggers, notes, summary sql.NullString

	err := row.Scan(&e.EntryID, &e.UserID, &timestamp, &e.MoodScore,
		&emotions, &triggers, &notes, &summary)
	if err != nil {
		return e, err
	}

	e.Timestamp, _ = time.Parse(time.RFC3339, timestamp)
	if emotions.Valid {
		json.Unmarshal([]byte(emotions.String), &e.Emotions)
	}
	if triggers.Valid {
		json.Unmarshal([]byte(triggers.String), &e.Triggers)
	}
	if notes.Valid {
		e.Notes = notes.String
	}
	if summary.Valid {
		e.ConversationSummary = summary.String
	}

	return e, nil
}
