package store

import (
	"context"
	"sort"
	"time"
)

// SummaryReport is a comprehensive statistics report over a user's history.
type SummaryReport struct {
	UserID          string          `json:"user_id"`
	ReportGenerated string          `json:"report_generated"`
	Statistics      ReportStats     `json:"statistics"`
	TopEmotions     []EmotionTally  `json:"top_emotions"`
	DateRange       ReportDateRange `json:"date_range"`
}

// ReportStats holds the aggregate numbers of a summary report.
type ReportStats struct {
	TotalEntries        int     `json:"total_entries"`
	AverageMood         float64 `json:"average_mood"`
	HighestMood         int     `json:"highest_mood"`
	LowestMood          int     `json:"lowest_mood"`
	UniqueEmotions      int     `json:"unique_emotions"`
	TotalEmotionsLogged int     `json:"total_emotions_logged"`
}

// EmotionTally pairs an emotion with its occurrence count.
type EmotionTally struct {
	Emotion string `json:"emotion"`
	Count   int    `json:"count"`
}

// ReportDateRange spans the first and last entry in the window.
type ReportDateRange struct {
	FirstEntry string `json:"first_entry"`
	LastEntry  string `json:"last_entry"`
}

// SummaryReportFor builds a summary report over the user's default history
// window. Returns nil (no error) when the user has no entries; callers
// render an empty state.
func (s *SQLiteStore) SummaryReportFor(ctx context.Context, userID string) (*SummaryReport, error) {
	entries, err := s.GetMoodHistory(ctx, userID, 0)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	stats := ReportStats{
		TotalEntries: len(entries),
		HighestMood:  entries[0].MoodScore,
		LowestMood:   entries[0].MoodScore,
	}

	total := 0
	counts := map[string]int{}
	var order []string
	for _, e := range entries {
		total += e.MoodScore
		if e.MoodScore > stats.HighestMood {
			stats.HighestMood = e.MoodScore
		}
		if e.MoodScore < stats.LowestMood {
			stats.LowestMood = e.MoodScore
		}
		for _, emotion := range e.Emotions {
			if _, seen := counts[emotion]; !seen {
				order = append(order, emotion)
			}
			counts[emotion]++
			stats.TotalEmotionsLogged++
		}
	}
	stats.AverageMood = float64(total) / float64(len(entries))
	stats.UniqueEmotions = len(counts)

	top := make([]EmotionTally, len(order))
	for i, emotion := range order {
		top[i] = EmotionTally{Emotion: emotion, Count: counts[emotion]}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > 10 {
		top = top[:10]
	}

	// History is newest first.
	return &SummaryReport{
		UserID:          userID,
		ReportGenerated: time.Now().UTC().Format(time.RFC3339),
		Statistics:      stats,
		TopEmotions:     top,
		DateRange: ReportDateRange{
			FirstEntry: entries[len(entries)-1].Timestamp.Format(time.RFC3339),
			LastEntry:  entries[0].Timestamp.Format(time.RFC3339),
		},
	}, nil
}
