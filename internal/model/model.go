// Package model defines the core mood-journal data types.
package model

import "time"

// User represents a registered journal user.
type User struct {
	UserID      string         `json:"user_id"`
	Name        string         `json:"name"`
	Timezone    string         `json:"timezone"`
	CreatedAt   time.Time      `json:"created_at"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

// MoodEntry is one logged mood check-in. Entries are append-only: the
// timestamp is assigned by the store at write time and never changes.
type MoodEntry struct {
	EntryID             string    `json:"entry_id"`
	UserID              string    `json:"user_id"`
	Timestamp           time.Time `json:"timestamp"`
	MoodScore           int       `json:"mood_score"`
	Emotions            []string  `json:"emotions"`
	Triggers            []string  `json:"triggers"`
	Notes               string    `json:"notes"`
	ConversationSummary string    `json:"conversation_summary,omitempty"`
}

// CopingStrategy is read-mostly reference data surfaced by the support agent.
type CopingStrategy struct {
	StrategyID   string    `json:"strategy_id"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Description  string    `json:"description"`
	Steps        []string  `json:"steps"`
	EvidenceLink string    `json:"evidence_link,omitempty"`
	UsageCount   int       `json:"usage_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// Conversation groups the messages of one chat session.
type Conversation struct {
	ConversationID string     `json:"conversation_id"`
	UserID         string     `json:"user_id"`
	StartedAt      time.Time  `json:"started_at"`
	EndedAt        *time.Time `json:"ended_at,omitempty"`
	MessageCount   int        `json:"message_count"`
	Summary        string     `json:"summary,omitempty"`
}

// Message is a single user or assistant utterance within a conversation.
type Message struct {
	MessageID      string    `json:"message_id"`
	ConversationID string    `json:"conversation_id"`
	UserID         string    `json:"user_id"`
	Role           string    `json:"role"` // user or assistant
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
}

// MinMoodScore and MaxMoodScore bound the valid mood scale.
const (
	MinMoodScore = 1
	MaxMoodScore = 10
)

// ValidMoodScore reports whether score is on the 1..10 scale.
func ValidMoodScore(score int) bool {
	return score >= MinMoodScore && score <= MaxMoodScore
}

var scoreLabels = map[int]string{
	1:  "Very Bad",
	2:  "Bad",
	3:  "Poor",
	4:  "Below Average",
	5:  "Neutral",
	6:  "Slightly Good",
	7:  "Good",
	8:  "Very Good",
	9:  "Great",
	10: "Excellent",
}

// ScoreLabel returns the display label for a mood score, or "" when the
// score is off the scale.
func ScoreLabel(score int) string {
	return scoreLabels[score]
}
