package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rcliao/mood-companion/internal/llm"
)

// moodFacts are the structured facts extracted from a free-text utterance.
type moodFacts struct {
	MoodScore int      `json:"mood_score"`
	Emotions  []string `json:"emotions"`
	Triggers  []string `json:"triggers"`
	Notes     string   `json:"notes"`
}

const extractPrompt = `Extract mood facts from the user's message. Reply with only a JSON object:
{"mood_score": <1-10 integer, or 0 if the user gave no rating>,
 "emotions": [<emotion words the user expressed>],
 "triggers": [<things the user says caused the feeling>],
 "notes": "<one-sentence restatement of what the user said>"}

User message: %s`

// extractMoodFacts asks the generator to turn an utterance into structured
// facts. The reply is untrusted text; parse failures surface as errors so
// the specialist can fall back to asking the user directly.
func extractMoodFacts(ctx context.Context, gen llm.Generator, utterance string) (*moodFacts, error) {
	raw, err := gen.Generate(ctx, fmt.Sprintf(extractPrompt, utterance))
	if err != nil {
		return nil, err
	}
	return parseMoodFacts(raw)
}

// parseMoodFacts pulls the JSON object out of a model reply, tolerating
// code fences and prose around it.
func parseMoodFacts(raw string) (*moodFacts, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var f moodFacts
	if err := json.Unmarshal([]byte(raw[start:end+1]), &f); err != nil {
		return nil, fmt.Errorf("parse mood facts: %w", err)
	}
	return &f, nil
}
