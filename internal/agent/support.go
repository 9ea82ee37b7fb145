package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/llm"
	"github.com/rcliao/mood-companion/internal/model"
	"github.com/rcliao/mood-companion/internal/store"
)

// Support retrieves coping strategies matched to the user's primary emotion.
type Support struct {
	store store.Store
	gen   llm.Generator
	log   *zap.Logger
}

// NewSupport creates the coping-support specialist.
func NewSupport(s store.Store, gen llm.Generator, log *zap.Logger) *Support {
	return &Support{store: s, gen: gen, log: log}
}

func (s *Support) Name() string { return NameSupport }

const emotionPrompt = `Name the single primary emotion in the user's message with one lowercase word (for example: anxious, sad, angry, overwhelmed). Reply with only that word.

User message: %s`

const noStrategyFallback = "I couldn't find a specific strategy for that, but deep breathing is always a good start: breathe in for 4 counts, hold for 4, and out for 4, a few times over."

func (s *Support) Handle(ctx context.Context, utterance string, conv *ConversationContext) (*Response, error) {
	emotion, err := s.gen.Generate(ctx, fmt.Sprintf(emotionPrompt, utterance))
	if err != nil {
		if errors.Is(err, llm.ErrTimeout) {
			return nil, err
		}
		emotion = ""
	}
	emotion = strings.ToLower(strings.TrimSpace(emotion))
	if emotion == "" {
		emotion = "general"
	}

	strategies, err := s.store.GetAllStrategies(ctx)
	if err != nil {
		return nil, fmt.Errorf("load strategies: %w", err)
	}

	selected := matchStrategy(strategies, emotion)
	if selected == nil {
		return &Response{Agent: s.Name(), Text: noStrategyFallback}, nil
	}

	if err := s.store.RecordStrategyUsage(ctx, store.StrategyUsageParams{
		UserID:     conv.UserID,
		StrategyID: selected.StrategyID,
	}); err != nil {
		// Usage tracking must not cost the user their strategy.
		s.log.Warn("record strategy usage failed", zap.Error(err))
	}

	return &Response{Agent: s.Name(), Text: formatStrategy(emotion, selected)}, nil
}

// matchStrategy picks the first strategy whose category or description
// mentions the emotion, falling back to the general category.
func matchStrategy(strategies []model.CopingStrategy, emotion string) *model.CopingStrategy {
	for i := range strategies {
		cs := &strategies[i]
		if strings.Contains(strings.ToLower(cs.Category), emotion) ||
			strings.Contains(strings.ToLower(cs.Description), emotion) {
			return cs
		}
	}
	for i := range strategies {
		if strings.ToLower(strategies[i].Category) == "general" {
			return &strategies[i]
		}
	}
	return nil
}

func formatStrategy(emotion string, cs *model.CopingStrategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "It makes sense that you're feeling %s. Here's something worth trying:\n\n", emotion)
	fmt.Fprintf(&b, "Strategy: %s\n\n%s\n\nSteps:\n", cs.Name, cs.Description)
	for i, step := range cs.Steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}
	if cs.EvidenceLink != "" {
		fmt.Fprintf(&b, "\nMore: %s\n", cs.EvidenceLink)
	}
	return b.String()
}
