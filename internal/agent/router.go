package agent

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/llm"
	"github.com/rcliao/mood-companion/internal/store"
)

// State tracks a turn through the router. One decision per user turn; no
// state persists across turns beyond the ConversationContext.
type State int

const (
	StateAwaitingClassification State = iota
	StateDispatched
	StateCompleted
)

// recentTurnWindow is how many prior turns the classifier sees.
const recentTurnWindow = 6

// Router maps each user turn to exactly one specialist via the external
// intent classifier, invokes it, and normalizes the result.
type Router struct {
	classifier  llm.Classifier
	specialists []Specialist
	log         *zap.Logger
}

// NewRouter creates a router. Specialist order is the label-matching
// priority order.
func NewRouter(classifier llm.Classifier, log *zap.Logger, specialists ...Specialist) *Router {
	return &Router{classifier: classifier, specialists: specialists, log: log}
}

// NewDefaultRouter wires the four specialists in their fixed priority order.
func NewDefaultRouter(classifier llm.Classifier, gen llm.Generator, s store.Store, log *zap.Logger) *Router {
	return NewRouter(classifier, log,
		NewMoodTracker(s, gen, log),
		NewSupport(s, gen, log),
		NewPatternAnalyzer(s, DefaultPatternDays, log),
		NewCrisisMonitor(gen, log),
	)
}

// HandleTurn processes one utterance end to end: classify, dispatch to the
// first specialist whose label appears in the classifier's raw output, and
// record both turns on the conversation. When no label matches, the raw
// classifier text becomes the response under the orchestrator identity;
// ambiguity resolves to this fallback rather than a retry.
func (r *Router) HandleTurn(ctx context.Context, utterance string, conv *ConversationContext) (*Response, error) {
	state := StateAwaitingClassification

	label, err := r.classifier.Classify(ctx, utterance, conv.Recent(recentTurnWindow))
	if err != nil {
		// A classification timeout fails this turn recoverably; nothing was
		// dispatched or persisted.
		return nil, fmt.Errorf("classify turn: %w", err)
	}

	var resp *Response
	for _, sp := range r.specialists {
		if strings.Contains(label, sp.Name()) {
			state = StateDispatched
			r.log.Info("dispatch",
				zap.String("user", conv.UserID),
				zap.String("agent", sp.Name()))

			resp, err = sp.Handle(ctx, utterance, conv)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sp.Name(), err)
			}
			break
		}
	}

	if state != StateDispatched {
		// Unrecognized route: logged, not fatal.
		r.log.Info("unrecognized route, responding directly",
			zap.String("user", conv.UserID),
			zap.String("classifier_output", label))
		resp = &Response{Agent: NameOrchestrator, Text: label}
	}

	conv.Append("user", utterance)
	conv.Append("assistant", resp.Text)

	return resp, nil
}
