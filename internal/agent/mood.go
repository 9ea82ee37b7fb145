package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/crisis"
	"github.com/rcliao/mood-companion/internal/llm"
	"github.com/rcliao/mood-companion/internal/model"
	"github.com/rcliao/mood-companion/internal/store"
)

// MoodTracker logs mood check-ins. It extracts structured facts from the
// utterance, persists the entry, and runs a crisis evaluation when the
// submission is at or below the moderate threshold.
type MoodTracker struct {
	store store.Store
	gen   llm.Generator
	log   *zap.Logger
}

// NewMoodTracker creates the mood-logging specialist.
func NewMoodTracker(s store.Store, gen llm.Generator, log *zap.Logger) *MoodTracker {
	return &MoodTracker{store: s, gen: gen, log: log}
}

func (m *MoodTracker) Name() string { return NameMoodTracker }

const askForScore = "I'd love to log that for you. Could you rate how you're feeling on a scale of 1 to 10, and name the emotions that fit?"

func (m *MoodTracker) Handle(ctx context.Context, utterance string, conv *ConversationContext) (*Response, error) {
	facts, err := extractMoodFacts(ctx, m.gen, utterance)
	if err != nil {
		if errors.Is(err, llm.ErrTimeout) {
			return nil, err
		}
		// Extraction produced no usable facts; ask instead of guessing.
		m.log.Debug("mood fact extraction failed", zap.Error(err))
		return &Response{Agent: m.Name(), Text: askForScore}, nil
	}

	if facts.MoodScore == 0 {
		return &Response{Agent: m.Name(), Text: askForScore}, nil
	}
	if !model.ValidMoodScore(facts.MoodScore) {
		return &Response{Agent: m.Name(), Text: "Mood scores go from 1 (worst) to 10 (best). Where would you put today?"}, nil
	}

	notes := facts.Notes
	if notes == "" {
		notes = utterance
	}

	entry, err := m.store.AddMoodEntry(ctx, store.AddMoodEntryParams{
		UserID:    conv.UserID,
		MoodScore: facts.MoodScore,
		Emotions:  facts.Emotions,
		Triggers:  facts.Triggers,
		Notes:     notes,
	})
	if err != nil {
		return nil, fmt.Errorf("log mood: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Logged your mood at %d/10 (%s).", entry.MoodScore, model.ScoreLabel(entry.MoodScore))
	if len(entry.Emotions) > 0 {
		fmt.Fprintf(&b, " Emotions noted: %s.", strings.Join(entry.Emotions, ", "))
	}
	b.WriteString(" Thanks for checking in.")

	resp := &Response{Agent: m.Name(), Entry: entry}

	// Cross-component contract: a submission at or below the moderate
	// threshold, or one carrying a crisis emotion, gets a crisis evaluation
	// as part of the same turn.
	if entry.MoodScore <= 4 || crisis.HasCrisisEmotion(entry.Emotions) {
		a := crisis.Evaluate(entry.MoodScore, entry.Emotions, notes)
		resp.Crisis = &a
		if a.Level > crisis.LevelNone {
			b.WriteString("\n\n")
			b.WriteString(crisis.Response(a.Level))
		}
		m.log.Info("crisis evaluation on mood submission",
			zap.String("user", conv.UserID),
			zap.Int("score", entry.MoodScore),
			zap.String("level", a.Level.String()))
	}

	resp.Text = b.String()
	return resp, nil
}
