// Package llm provides the external language-model collaborators: an intent
// classifier and a text generator. Both are treated as black boxes that take
// structured facts and return free text.
package llm

import (
	"context"
	"errors"
)

// ErrTimeout marks an unresponsive collaborator call. The turn that hit it
// fails gracefully; no state is corrupted.
var ErrTimeout = errors.New("language model call timed out")

// Classifier maps a free-text utterance to a specialist label. The output is
// untrusted generative text; callers match against it rather than parsing it
// as an enum.
type Classifier interface {
	Classify(ctx context.Context, utterance string, recentTurns []string) (string, error)
}

// Generator produces user-facing prose from a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// wrapTimeout converts context deadline errors into ErrTimeout so callers
// can treat them as a recoverable failure of the turn.
func wrapTimeout(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}
