package store

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rcliao/mood-companion/internal/model"
)

// MoodExport is the JSON export envelope. The field set and order are part
// of the compatibility contract with downstream consumers.
type MoodExport struct {
	UserID       string            `json:"user_id"`
	ExportDate   string            `json:"export_date"`
	TotalEntries int               `json:"total_entries"`
	MoodEntries  []model.MoodEntry `json:"mood_entries"`
}

// csvHeader is the fixed CSV column order.
var csvHeader = []string{"entry_id", "timestamp", "mood_score", "emotions", "triggers", "notes"}

// ExportMoodJSON collects a user's mood history into the JSON export envelope.
// A non-positive days uses the store default window.
func (s *SQLiteStore) ExportMoodJSON(ctx context.Context, userID string, days int) (*MoodExport, error) {
	entries, err := s.GetMoodHistory(ctx, userID, days)
	if err != nil {
		return nil, fmt.Errorf("export mood history: %w", err)
	}

	return &MoodExport{
		UserID:       userID,
		ExportDate:   time.Now().UTC().Format(time.RFC3339),
		TotalEntries: len(entries),
		MoodEntries:  entries,
	}, nil
}

// WriteJSON writes the export as indented JSON.
func (e *MoodExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteMoodCSV writes a user's mood history as CSV with the fixed column
// order entry_id, timestamp, mood_score, emotions, triggers, notes. List
// columns are comma-joined.
func (s *SQLiteStore) WriteMoodCSV(ctx context.Context, w io.Writer, userID string, days int) error {
	entries, err := s.GetMoodHistory(ctx, userID, days)
	if err != nil {
		return fmt.Errorf("export mood history: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range entries {
		record := []string{
			e.EntryID,
			e.Timestamp.Format(time.RFC3339),
			strconv.Itoa(e.MoodScore),
			strings.Join(e.Emotions, ", "),
			strings.Join(e.Triggers, ", "),
			e.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
