package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rcliao/mood-companion/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreateUser(t *testing.T, s *SQLiteStore, id string) {
	t.Helper()
	if _, err := s.CreateUser(context.Background(), CreateUserParams{UserID: id, Name: "Test User"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
}

func TestCreateAndGetUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	u, err := s.CreateUser(ctx, CreateUserParams{
		UserID:      "u1",
		Name:        "Ada",
		Preferences: map[string]any{"show_tips": true},
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.Timezone != "UTC" {
		t.Errorf("expected default timezone UTC, got %q", u.Timezone)
	}

	got, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "Ada" {
		t.Errorf("expected name Ada, got %q", got.Name)
	}
	if got.Preferences["show_tips"] != true {
		t.Errorf("preferences not persisted: %v", got.Preferences)
	}
}

func TestDuplicateUserRejected(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	mustCreateUser(t, s, "u1")

	_, err := s.CreateUser(ctx, CreateUserParams{UserID: "u1", Name: "Impostor"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	// Original row unchanged.
	got, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if got.Name != "Test User" {
		t.Errorf("original row was modified: %q", got.Name)
	}
}

func TestGetUserAbsent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "nobody")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAddMoodEntryValidRange(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	for score := 1; score <= 10; score++ {
		e, err := s.AddMoodEntry(ctx, AddMoodEntryParams{
			UserID:    "u1",
			MoodScore: score,
			Emotions:  []string{"calm"},
		})
		if err != nil {
			t.Fatalf("score %d: %v", score, err)
		}
		if e.EntryID == "" {
			t.Errorf("score %d: expected non-empty entry id", score)
		}
		if e.Timestamp.IsZero() {
			t.Errorf("score %d: expected store-assigned timestamp", score)
		}
	}

	history, err := s.GetMoodHistory(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 10 {
		t.Errorf("expected 10 entries, got %d", len(history))
	}
}

func TestAddMoodEntryInvalidScore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	for _, score := range []int{0, 11, -5, 100} {
		_, err := s.AddMoodEntry(ctx, AddMoodEntryParams{UserID: "u1", MoodScore: score})
		if !errors.Is(err, ErrInvalidMoodScore) {
			t.Errorf("score %d: expected ErrInvalidMoodScore, got %v", score, err)
		}
	}

	// Nothing persisted.
	history, err := s.GetMoodHistory(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 0 {
		t.Errorf("expected no rows after rejected writes, got %d", len(history))
	}
}

func TestMoodHistoryNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	for _, score := range []int{3, 5, 8} {
		if _, err := s.AddMoodEntry(ctx, AddMoodEntryParams{UserID: "u1", MoodScore: score}); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	history, err := s.GetMoodHistory(ctx, "u1", 7)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(history))
	}
	// Same wall-clock second is likely here; ULID ordering breaks ties by
	// insertion order, so the last insert comes first.
	if history[0].MoodScore != 8 || history[2].MoodScore != 3 {
		t.Errorf("expected newest first [8 5 3], got [%d %d %d]",
			history[0].MoodScore, history[1].MoodScore, history[2].MoodScore)
	}
}

func TestMoodHistoryEmptyIsNotError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	history, err := s.GetMoodHistory(ctx, "u1", 30)
	if err != nil {
		t.Fatalf("expected no error for empty history, got %v", err)
	}
	if history == nil || len(history) != 0 {
		t.Errorf("expected empty slice, got %#v", history)
	}
}

func TestMoodHistoryDefaultWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	if _, err := s.AddMoodEntry(ctx, AddMoodEntryParams{UserID: "u1", MoodScore: 6}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	// days <= 0 falls back to the configured default.
	history, err := s.GetMoodHistory(ctx, "u1", 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 entry in default window, got %d", len(history))
	}
}

func TestMoodEntryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	_, err := s.AddMoodEntry(ctx, AddMoodEntryParams{
		UserID:              "u1",
		MoodScore:           7,
		Emotions:            []string{"happy", "calm"},
		Triggers:            []string{"good_weather"},
		Notes:               "Had a great day",
		ConversationSummary: "checked in after work",
	})
	if err != nil {
		t.Fatalf("add entry: %v", err)
	}

	history, _ := s.GetMoodHistory(ctx, "u1", 7)
	if len(history) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(history))
	}
	e := history[0]
	if e.MoodScore != 7 || e.Notes != "Had a great day" {
		t.Errorf("entry fields not persisted: %+v", e)
	}
	if len(e.Emotions) != 2 || e.Emotions[0] != "happy" {
		t.Errorf("emotions order lost: %v", e.Emotions)
	}
	if len(e.Triggers) != 1 || e.Triggers[0] != "good_weather" {
		t.Errorf("triggers lost: %v", e.Triggers)
	}
}

func TestStrategies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	cs, err := s.AddStrategy(ctx, AddStrategyParams{
		Name:        "Box Breathing",
		Category:    "anxious",
		Description: "Slow breathing",
		Steps:       []string{"in", "hold", "out"},
	})
	if err != nil {
		t.Fatalf("add strategy: %v", err)
	}

	all, err := s.GetAllStrategies(ctx)
	if err != nil {
		t.Fatalf("get strategies: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 strategy, got %d", len(all))
	}
	if all[0].UsageCount != 0 {
		t.Errorf("expected usage_count 0, got %d", all[0].UsageCount)
	}

	helpful := true
	err = s.RecordStrategyUsage(ctx, StrategyUsageParams{
		UserID: "u1", StrategyID: cs.StrategyID, Helpful: &helpful, Feedback: "it worked",
	})
	if err != nil {
		t.Fatalf("record usage: %v", err)
	}

	all, _ = s.GetAllStrategies(ctx)
	if all[0].UsageCount != 1 {
		t.Errorf("expected usage_count 1 after usage event, got %d", all[0].UsageCount)
	}
}

func TestSeedDefaultStrategies(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.SeedDefaultStrategies(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if n == 0 {
		t.Fatal("expected seed to insert strategies")
	}

	// Second seed is a no-op.
	n, err = s.SeedDefaultStrategies(ctx)
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected no-op on second seed, inserted %d", n)
	}
}

func TestConversations(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	conv, err := s.StartConversation(ctx, "u1")
	if err != nil {
		t.Fatalf("start conversation: %v", err)
	}

	if _, err := s.AppendMessage(ctx, conv.ConversationID, "u1", "user", "hello"); err != nil {
		t.Fatalf("append user message: %v", err)
	}
	if _, err := s.AppendMessage(ctx, conv.ConversationID, "u1", "assistant", "hi there"); err != nil {
		t.Fatalf("append assistant message: %v", err)
	}

	if err := s.EndConversation(ctx, conv.ConversationID, "greeting exchange"); err != nil {
		t.Fatalf("end conversation: %v", err)
	}
}

func TestMoodScoreCheckAtSQLLayer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	// A writer bypassing the Go validation still hits the CHECK constraint.
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO mood_entries (entry_id, user_id, timestamp, mood_score, emotions, triggers, notes, conversation_summary)
		 VALUES ('raw1', 'u1', '2026-01-01T00:00:00Z', 42, '[]', '[]', '', '')`)
	if err == nil {
		t.Fatal("expected CHECK constraint violation for mood_score 42")
	}
}

func TestScoreLabels(t *testing.T) {
	if model.ScoreLabel(1) != "Very Bad" || model.ScoreLabel(10) != "Excellent" {
		t.Error("score label table wrong at scale edges")
	}
	if model.ScoreLabel(0) != "" {
		t.Error("off-scale score should have empty label")
	}
}
