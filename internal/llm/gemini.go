package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// DefaultCallTimeout bounds a single classify or generate call.
const DefaultCallTimeout = 30 * time.Second

const classifyInstruction = `You are the main router for a mental health support companion.
Analyze the user's input and decide which specialized agent should handle it.

- If the user wants to log their mood, talk about their day, or check in, answer "MoodTracker".
- If the user is asking for help, advice, or coping strategies, answer "Support".
- If the user asks about their mood history, trends, or patterns, answer "PatternAnalyzer".
- If the user expresses severe distress or mentions self-harm, answer "CrisisMonitor".
- If the input is a greeting or unclear, reply directly with a short, warm guiding message instead of a label.

Answer with exactly one of: MoodTracker, Support, PatternAnalyzer, CrisisMonitor - or the guiding message.`

// Gemini implements Classifier and Generator against the Gemini API.
type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGemini creates a Gemini-backed collaborator client.
func NewGemini(ctx context.Context, apiKey, model string, timeout time.Duration) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}
	if timeout <= 0 {
		timeout = DefaultCallTimeout
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, timeout: timeout}, nil
}

// Classify asks the model which specialist should handle the utterance.
func (g *Gemini) Classify(ctx context.Context, utterance string, recentTurns []string) (string, error) {
	var b strings.Builder
	b.WriteString(classifyInstruction)
	if len(recentTurns) > 0 {
		b.WriteString("\n\nRecent conversation:\n")
		for _, turn := range recentTurns {
			b.WriteString(turn)
			b.WriteByte('\n')
		}
	}
	b.WriteString("\n\nUser: ")
	b.WriteString(utterance)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(b.String()), nil)
	if err != nil {
		return "", fmt.Errorf("classify: %w", wrapTimeout(err))
	}

	return strings.TrimSpace(resp.Text()), nil
}

// Generate streams a completion for the prompt and concatenates the
// fragments in arrival order. The sequence is finite and non-restartable;
// the call completes when it is exhausted or the timeout elapses.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var b strings.Builder
	for chunk, err := range g.client.Models.GenerateContentStream(ctx, g.model, genai.Text(prompt), nil) {
		if err != nil {
			return "", fmt.Errorf("generate: %w", wrapTimeout(err))
		}
		b.WriteString(chunk.Text())
	}

	return strings.TrimSpace(b.String()), nil
}
