package agent

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/model"
	"github.com/rcliao/mood-companion/internal/pattern"
	"github.com/rcliao/mood-companion/internal/store"
)

// DefaultPatternDays is the analysis window when the user doesn't name one.
const DefaultPatternDays = 7

// PatternAnalyzer renders trend and statistics reports over mood history.
// It is read-only: it owns no persisted state.
type PatternAnalyzer struct {
	store store.Store
	days  int
	log   *zap.Logger
}

// NewPatternAnalyzer creates the pattern-analysis specialist.
func NewPatternAnalyzer(s store.Store, days int, log *zap.Logger) *PatternAnalyzer {
	if days <= 0 {
		days = DefaultPatternDays
	}
	return &PatternAnalyzer{store: s, days: days, log: log}
}

func (p *PatternAnalyzer) Name() string { return NamePatternAnalyzer }

func (p *PatternAnalyzer) Handle(ctx context.Context, utterance string, conv *ConversationContext) (*Response, error) {
	entries, err := p.store.GetMoodHistory(ctx, conv.UserID, p.days)
	if err != nil {
		return nil, fmt.Errorf("pattern history: %w", err)
	}

	// History arrives newest first; trend math wants chronological order.
	chronological := make([]model.MoodEntry, len(entries))
	for i, e := range entries {
		chronological[len(entries)-1-i] = e
	}

	summary, err := pattern.Analyze(chronological, p.days)
	if errors.Is(err, pattern.ErrNoData) {
		return &Response{Agent: p.Name(), Text: pattern.NoDataMessage(p.days)}, nil
	}
	if err != nil {
		return nil, err
	}

	p.log.Debug("pattern analysis",
		zap.String("user", conv.UserID),
		zap.Int("entries", summary.EntryCount),
		zap.String("trend", string(summary.Trend)))

	return &Response{Agent: p.Name(), Text: pattern.Render(summary)}, nil
}
