package agent

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/crisis"
	"github.com/rcliao/mood-companion/internal/llm"
	"github.com/rcliao/mood-companion/internal/model"
)

// CrisisMonitor assesses an utterance for crisis indicators and returns the
// matching response tier directly. In crisis situations clarity matters, so
// the tier messages are fixed text rather than generated prose.
type CrisisMonitor struct {
	gen llm.Generator
	log *zap.Logger
}

// NewCrisisMonitor creates the crisis-monitoring specialist.
func NewCrisisMonitor(gen llm.Generator, log *zap.Logger) *CrisisMonitor {
	return &CrisisMonitor{gen: gen, log: log}
}

func (c *CrisisMonitor) Name() string { return NameCrisisMonitor }

func (c *CrisisMonitor) Handle(ctx context.Context, utterance string, conv *ConversationContext) (*Response, error) {
	// Neutral score unless the user actually rated themselves; the keyword
	// and emotion checks carry the signal either way.
	score := 5
	var emotions []string
	notes := utterance

	facts, err := extractMoodFacts(ctx, c.gen, utterance)
	if err == nil {
		if model.ValidMoodScore(facts.MoodScore) {
			score = facts.MoodScore
		}
		emotions = facts.Emotions
	} else if errors.Is(err, llm.ErrTimeout) {
		// Do not fail a crisis turn on a slow collaborator; evaluate with
		// the raw utterance instead.
		c.log.Warn("fact extraction timed out during crisis check")
	}

	a := crisis.Evaluate(score, emotions, notes)
	c.log.Info("crisis check",
		zap.String("user", conv.UserID),
		zap.String("level", a.Level.String()),
		zap.String("triggered_by", string(a.TriggeredBy)))

	return &Response{
		Agent:  c.Name(),
		Text:   crisis.Response(a.Level),
		Crisis: &a,
	}, nil
}
