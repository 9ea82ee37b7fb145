package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoodFacts(t *testing.T) {
	f, err := parseMoodFacts(`{"mood_score": 6, "emotions": ["tired", "hopeful"], "triggers": ["work"], "notes": "long day"}`)
	require.NoError(t, err)
	assert.Equal(t, 6, f.MoodScore)
	assert.Equal(t, []string{"tired", "hopeful"}, f.Emotions)
	assert.Equal(t, []string{"work"}, f.Triggers)
	assert.Equal(t, "long day", f.Notes)
}

func TestParseMoodFactsWithCodeFence(t *testing.T) {
	raw := "```json\n{\"mood_score\": 3, \"emotions\": [\"sad\"], \"triggers\": [], \"notes\": \"\"}\n```"
	f, err := parseMoodFacts(raw)
	require.NoError(t, err)
	assert.Equal(t, 3, f.MoodScore)
}

func TestParseMoodFactsWithSurroundingProse(t *testing.T) {
	raw := `Here are the extracted facts: {"mood_score": 9, "emotions": [], "triggers": [], "notes": "great"} Hope that helps!`
	f, err := parseMoodFacts(raw)
	require.NoError(t, err)
	assert.Equal(t, 9, f.MoodScore)
}

func TestParseMoodFactsNoJSON(t *testing.T) {
	_, err := parseMoodFacts("I cannot extract facts from that.")
	assert.Error(t, err)
}

func TestConversationContextRecent(t *testing.T) {
	conv := NewConversationContext("u1")
	conv.Append("user", "hi")
	conv.Append("assistant", "hello")
	conv.Append("user", "log my mood")

	recent := conv.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "assistant: hello", recent[0])
	assert.Equal(t, "user: log my mood", recent[1])

	assert.Len(t, conv.Recent(10), 3)
}
