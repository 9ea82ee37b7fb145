// Package crisis scores a mood submission for risk level and selects a
// response tier. Evaluation is a pure function over its inputs; nothing is
// cached or persisted.
package crisis

import (
	"regexp"
	"strings"
)

// Level is the ordinal risk tier computed per submission.
type Level int

const (
	LevelNone Level = iota
	LevelModerate
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelModerate:
		return "moderate"
	case LevelHigh:
		return "high"
	default:
		return "none"
	}
}

// Trigger identifies which signal set the final level.
type Trigger string

const (
	TriggerNone           Trigger = ""
	TriggerMoodScore      Trigger = "mood_score"
	TriggerEmotionKeyword Trigger = "emotion_keyword"
	TriggerNoteKeyword    Trigger = "note_keyword"
)

// Assessment is the result of evaluating one mood submission.
type Assessment struct {
	Level       Level
	TriggeredBy Trigger
}

// crisisEmotions raise the level to at least moderate when present.
var crisisEmotions = map[string]bool{
	"hopeless":  true,
	"desperate": true,
	"trapped":   true,
	"worthless": true,
}

// crisisKeywords force a high level on any whole-word match in the notes.
var crisisKeywords = []string{
	"suicide", "suicidal", "kill myself", "end it all",
	"hopeless", "no point", "better off dead", "harm myself",
}

var keywordPatterns = func() []*regexp.Regexp {
	ps := make([]*regexp.Regexp, len(crisisKeywords))
	for i, kw := range crisisKeywords {
		ps[i] = regexp.MustCompile(`\b` + regexp.QuoteMeta(kw) + `\b`)
	}
	return ps
}()

// HasCrisisEmotion reports whether any of the emotions is in the fixed
// crisis-emotion set (case-insensitive).
func HasCrisisEmotion(emotions []string) bool {
	for _, e := range emotions {
		if crisisEmotions[strings.ToLower(e)] {
			return true
		}
	}
	return false
}

// Evaluate computes the crisis level for a mood submission.
//
// Ordering matters: the mood score and emotion checks can only raise the
// level to moderate (a score of 2 or less reaches high); a keyword match in
// the free-text notes forces high regardless of what ran before it, and
// scanning stops at the first match. Keyword evidence is treated as the
// strongest signal and is never softened by the numeric checks.
func Evaluate(moodScore int, emotions []string, notes string) Assessment {
	a := Assessment{Level: LevelNone}

	if moodScore <= 2 {
		a.Level = LevelHigh
		a.TriggeredBy = TriggerMoodScore
	} else if moodScore <= 4 {
		a.Level = LevelModerate
		a.TriggeredBy = TriggerMoodScore
	}

	for _, e := range emotions {
		if crisisEmotions[strings.ToLower(e)] && a.Level < LevelModerate {
			a.Level = LevelModerate
			a.TriggeredBy = TriggerEmotionKeyword
		}
	}

	lower := strings.ToLower(notes)
	for _, p := range keywordPatterns {
		if p.MatchString(lower) {
			a.Level = LevelHigh
			a.TriggeredBy = TriggerNoteKeyword
			break
		}
	}

	return a
}

const highResponse = `IMMEDIATE SUPPORT NEEDED

I'm concerned about what you're experiencing. Your safety is the top priority.

Crisis Resources (24/7):
- National Suicide Prevention Lifeline: 988 (US)
- Crisis Text Line: Text HOME to 741741
- International Association for Suicide Prevention: https://www.iasp.info/resources/Crisis_Centres/

Please reach out immediately to:
- Call 988 or your local emergency number
- Go to your nearest emergency room
- Contact a trusted friend or family member
- Reach out to a mental health professional

Remember: you don't have to face this alone. Help is available, and things can get better.`

const moderateResponse = `Support Resources Available

I notice you're going through a difficult time. It's important to reach out for support.

Recommended actions:
- Talk to a trusted friend or family member
- Contact your therapist or healthcare provider
- Use a crisis support line if you need immediate help

Support lines:
- National Suicide Prevention Lifeline: 988
- Crisis Text Line: Text HOME to 741741

You're taking a brave step by expressing how you feel. Difficult emotions are
temporary, and professional support can make a real difference.

Would you like to talk about what's troubling you?`

const noneResponse = "No immediate crisis indicators detected. Continue monitoring."

// Response maps a crisis level to its user-facing message. The high tier
// embeds the hotline and text-line contact info verbatim.
func Response(level Level) string {
	switch level {
	case LevelHigh:
		return highResponse
	case LevelModerate:
		return moderateResponse
	default:
		return noneResponse
	}
}
