package crisis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateLevels(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		emotions  []string
		notes     string
		wantLevel Level
		wantBy    Trigger
	}{
		{"lowest score is high", 1, nil, "", LevelHigh, TriggerMoodScore},
		{"score two is high", 2, nil, "", LevelHigh, TriggerMoodScore},
		{"score three is moderate", 3, nil, "", LevelModerate, TriggerMoodScore},
		{"score four is moderate", 4, nil, "", LevelModerate, TriggerMoodScore},
		{"good day is none", 7, []string{"happy"}, "good day", LevelNone, TriggerNone},
		{"crisis emotion raises to moderate", 6, []string{"hopeless"}, "", LevelModerate, TriggerEmotionKeyword},
		{"crisis emotion is case-insensitive", 8, []string{"Worthless"}, "", LevelModerate, TriggerEmotionKeyword},
		{"emotion never downgrades a high score", 2, []string{"desperate"}, "", LevelHigh, TriggerMoodScore},
		{"keyword overrides a high score", 9, nil, "I've been thinking about suicide", LevelHigh, TriggerNoteKeyword},
		{"keyword phrase match", 5, nil, "some days I want to end it all honestly", LevelHigh, TriggerNoteKeyword},
		{"keyword overrides moderate", 3, nil, "feels like there is no point anymore", LevelHigh, TriggerNoteKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.score, tt.emotions, tt.notes)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, tt.wantBy, got.TriggeredBy)
		})
	}
}

func TestKeywordWholeWordOnly(t *testing.T) {
	// Substring hits inside larger words must not trigger.
	got := Evaluate(7, nil, "the suicidegame documentary was interesting")
	assert.Equal(t, LevelNone, got.Level)

	// Word-boundary hit does.
	got = Evaluate(7, nil, "she mentioned suicide prevention week")
	assert.Equal(t, LevelHigh, got.Level)
}

func TestNonCrisisEmotionIgnored(t *testing.T) {
	got := Evaluate(6, []string{"sad", "worried"}, "having a really tough time")
	assert.Equal(t, LevelNone, got.Level)
}

func TestResponseTiers(t *testing.T) {
	assert.Contains(t, Response(LevelHigh), "IMMEDIATE SUPPORT NEEDED")
	assert.Contains(t, Response(LevelHigh), "988")
	assert.Contains(t, Response(LevelHigh), "Text HOME to 741741")
	assert.Contains(t, Response(LevelModerate), "Support Resources Available")
	assert.Contains(t, Response(LevelModerate), "988")
	assert.Contains(t, Response(LevelNone), "Continue monitoring")
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "none", LevelNone.String())
	assert.Equal(t, "moderate", LevelModerate.String())
	assert.Equal(t, "high", LevelHigh.String())
}
