// Package agent implements the specialist agents and the router that
// dispatches each user turn to exactly one of them.
package agent

import (
	"context"

	"github.com/rcliao/mood-companion/internal/crisis"
	"github.com/rcliao/mood-companion/internal/model"
)

// Specialist labels. The router matches these as substrings of the
// classifier's raw output, in this priority order.
const (
	NameMoodTracker     = "MoodTracker"
	NameSupport         = "Support"
	NamePatternAnalyzer = "PatternAnalyzer"
	NameCrisisMonitor   = "CrisisMonitor"

	// NameOrchestrator is the fallback identity when no label matches and
	// the classifier's raw text becomes the response.
	NameOrchestrator = "Orchestrator"
)

// Response is the normalized result of one specialist handling a turn.
type Response struct {
	Agent  string
	Text   string
	Crisis *crisis.Assessment // set when a crisis evaluation ran
	Entry  *model.MoodEntry   // set when a mood entry was persisted
}

// Specialist is one of the fixed agent roles. Implementations own their
// prompt templates and call the store or the pure evaluators as needed.
type Specialist interface {
	Name() string
	Handle(ctx context.Context, utterance string, conv *ConversationContext) (*Response, error)
}
