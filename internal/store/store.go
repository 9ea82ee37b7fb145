// Package store provides mood-journal persistence and its SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/mood-companion/internal/model"
)

// Sentinel errors surfaced at the storage boundary.
var (
	// ErrDuplicateUser is returned when creating a user whose id already
	// exists. The original row is left unchanged.
	ErrDuplicateUser = errors.New("user already exists")

	// ErrUserNotFound is returned when looking up an absent user.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidMoodScore rejects mood scores outside [1,10]. Enforced here,
	// not just in client code: callers bypassing upstream validation are
	// still rejected and nothing is persisted.
	ErrInvalidMoodScore = errors.New("mood score must be between 1 and 10")
)

// DefaultHistoryDays is the history window used when a caller passes a
// non-positive day count.
const DefaultHistoryDays = 30

// CreateUserParams holds parameters for registering a user.
type CreateUserParams struct {
	UserID      string
	Name        string
	Timezone    string // defaults to UTC
	Preferences map[string]any
}

// AddMoodEntryParams holds parameters for logging one mood entry.
// The entry id and timestamp are assigned by the store.
type AddMoodEntryParams struct {
	UserID              string
	MoodScore           int
	Emotions            []string
	Triggers            []string
	Notes               string
	ConversationSummary string
}

// AddStrategyParams holds parameters for adding a coping strategy.
type AddStrategyParams struct {
	Name         string
	Category     string
	Description  string
	Steps        []string
	EvidenceLink string
}

// StrategyUsageParams records one use of a coping strategy by a user.
type StrategyUsageParams struct {
	UserID     string
	StrategyID string
	Helpful    *bool
	Feedback   string
}

// Store defines the mood-journal storage interface.
type Store interface {
	// CreateUser registers a new user. Returns ErrDuplicateUser if the id
	// is already taken; no partial write occurs.
	CreateUser(ctx context.Context, p CreateUserParams) (*model.User, error)

	// GetUser retrieves a user by id, or ErrUserNotFound.
	GetUser(ctx context.Context, userID string) (*model.User, error)

	// AddMoodEntry appends a mood entry. The UTC timestamp is assigned at
	// write time. Returns ErrInvalidMoodScore for scores outside [1,10].
	AddMoodEntry(ctx context.Context, p AddMoodEntryParams) (*model.MoodEntry, error)

	// GetMoodHistory returns entries in [now-days, now], newest first.
	// A non-positive days uses the store default. An empty window returns
	// an empty slice, not an error.
	GetMoodHistory(ctx context.Context, userID string, days int) ([]model.MoodEntry, error)

	// AddStrategy stores a coping strategy.
	AddStrategy(ctx context.Context, p AddStrategyParams) (*model.CopingStrategy, error)

	// GetAllStrategies returns every coping strategy.
	GetAllStrategies(ctx context.Context) ([]model.CopingStrategy, error)

	// RecordStrategyUsage logs a usage event and increments the strategy's
	// usage count in the same transaction.
	RecordStrategyUsage(ctx context.Context, p StrategyUsageParams) error

	// StartConversation opens a chat session for a user.
	StartConversation(ctx context.Context, userID string) (*model.Conversation, error)

	// AppendMessage records one user or assistant message in a conversation.
	AppendMessage(ctx context.Context, conversationID, userID, role, content string) (*model.Message, error)

	// EndConversation closes a session and stores its summary.
	EndConversation(ctx context.Context, conversationID, summary string) error

	// Close closes the store.
	Close() error
}
