// Package pattern aggregates mood history into trend and statistics
// summaries. Analysis is a pure function over the entries handed to it.
package pattern

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rcliao/mood-companion/internal/model"
)

// ErrNoData signals a pattern query over empty history. Callers render a
// "start logging" prompt rather than an error.
var ErrNoData = errors.New("no mood data in window")

// Trend is the qualitative direction of mood change over the window.
type Trend string

const (
	TrendImproving        Trend = "improving"
	TrendDeclining        Trend = "declining"
	TrendStable           Trend = "stable"
	TrendInsufficientData Trend = "insufficient data"
)

// EmotionCount pairs an emotion label with its occurrence count.
type EmotionCount struct {
	Label string
	Count int
}

// Summary is the derived pattern report for one analysis window.
type Summary struct {
	WindowDays   int
	EntryCount   int
	AverageScore float64
	Trend        Trend
	TopEmotions  []EmotionCount
}

// trendWindow is how many entries the recent/older trend means cover.
// With exactly four entries the two windows overlap; that matches the
// behavior this analysis was specified against.
const trendWindow = 3

// Analyze summarizes entries ordered chronologically (oldest first).
func Analyze(entries []model.MoodEntry, windowDays int) (*Summary, error) {
	if len(entries) == 0 {
		return nil, ErrNoData
	}

	s := &Summary{
		WindowDays: windowDays,
		EntryCount: len(entries),
	}

	scores := make([]int, len(entries))
	total := 0
	for i, e := range entries {
		scores[i] = e.MoodScore
		total += e.MoodScore
	}
	s.AverageScore = float64(total) / float64(len(scores))

	s.TopEmotions = topEmotions(entries, 3)
	s.Trend = trend(scores)

	return s, nil
}

// topEmotions counts emotion labels across all entries and returns the n
// most frequent. Ties keep first-encountered order: the sort is stable and
// compares counts only.
func topEmotions(entries []model.MoodEntry, n int) []EmotionCount {
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		for _, emotion := range e.Emotions {
			if _, seen := counts[emotion]; !seen {
				order = append(order, emotion)
			}
			counts[emotion]++
		}
	}

	ranked := make([]EmotionCount, len(order))
	for i, label := range order {
		ranked[i] = EmotionCount{Label: label, Count: counts[label]}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func trend(scores []int) Trend {
	if len(scores) < 4 {
		return TrendInsufficientData
	}

	recent := mean(scores[len(scores)-trendWindow:])
	older := mean(scores[:trendWindow])

	switch {
	case recent > older+1:
		return TrendImproving
	case recent < older-1:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func mean(scores []int) float64 {
	total := 0
	for _, s := range scores {
		total += s
	}
	return float64(total) / float64(len(scores))
}

// Insight buckets the average score into a qualitative sentence.
func Insight(averageScore float64) string {
	switch {
	case averageScore >= 7:
		return "You've been doing great overall! Keep up the positive momentum."
	case averageScore >= 5:
		return "Your mood has been moderate. Consider what activities bring you joy."
	default:
		return "Your mood has been lower than usual. It might help to reach out for support."
	}
}

// Render formats a summary as the user-facing pattern report.
func Render(s *Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Mood Pattern Analysis (Last %d days):\n\n", s.WindowDays)
	b.WriteString("Statistics:\n")
	fmt.Fprintf(&b, "- Total check-ins: %d\n", s.EntryCount)
	fmt.Fprintf(&b, "- Average mood score: %.1f/10\n", s.AverageScore)
	fmt.Fprintf(&b, "- Trend: %s\n", s.Trend)

	if len(s.TopEmotions) > 0 {
		b.WriteString("\nMost common emotions:\n")
		for _, ec := range s.TopEmotions {
			fmt.Fprintf(&b, "- %s: %d times\n", ec.Label, ec.Count)
		}
	}

	fmt.Fprintf(&b, "\nInsight: %s\n", Insight(s.AverageScore))
	return b.String()
}

// NoDataMessage is the friendly empty state for a window with no entries.
func NoDataMessage(windowDays int) string {
	return fmt.Sprintf("No mood data found for the last %d days. Start logging your mood to see patterns!", windowDays)
}
