package store

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
)

func TestExportJSONRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	for _, score := range []int{4, 7, 9} {
		if _, err := s.AddMoodEntry(ctx, AddMoodEntryParams{
			UserID: "u1", MoodScore: score, Emotions: []string{"calm"},
		}); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	export, err := s.ExportMoodJSON(ctx, "u1", 30)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.TotalEntries != 3 {
		t.Errorf("expected total_entries 3, got %d", export.TotalEntries)
	}

	var buf bytes.Buffer
	if err := export.WriteJSON(&buf); err != nil {
		t.Fatalf("write json: %v", err)
	}

	// Re-parsing reproduces identical entry count and per-entry scores.
	var parsed MoodExport
	if err := json.Unmarshal(buf.Bytes(), &parsed); err != nil {
		t.Fatalf("re-parse export: %v", err)
	}
	if parsed.TotalEntries != export.TotalEntries {
		t.Errorf("total_entries changed across round-trip: %d != %d",
			parsed.TotalEntries, export.TotalEntries)
	}
	if parsed.UserID != "u1" {
		t.Errorf("expected user_id u1, got %q", parsed.UserID)
	}
	for i := range export.MoodEntries {
		if parsed.MoodEntries[i].MoodScore != export.MoodEntries[i].MoodScore {
			t.Errorf("entry %d: score changed across round-trip", i)
		}
	}
}

func TestExportJSONEmptyHistory(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	export, err := s.ExportMoodJSON(ctx, "u1", 30)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if export.TotalEntries != 0 {
		t.Errorf("expected 0 entries, got %d", export.TotalEntries)
	}
}

func TestExportCSVColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	if _, err := s.AddMoodEntry(ctx, AddMoodEntryParams{
		UserID:    "u1",
		MoodScore: 6,
		Emotions:  []string{"happy", "tired"},
		Triggers:  []string{"work", "coffee"},
		Notes:     "long day, decent mood",
	}); err != nil {
		t.Fatalf("add entry: %v", err)
	}

	var buf bytes.Buffer
	if err := s.WriteMoodCSV(ctx, &buf, "u1", 30); err != nil {
		t.Fatalf("write csv: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 row, got %d records", len(records))
	}

	wantHeader := "entry_id,timestamp,mood_score,emotions,triggers,notes"
	if strings.Join(records[0], ",") != wantHeader {
		t.Errorf("header order wrong: %v", records[0])
	}

	row := records[1]
	if row[2] != "6" {
		t.Errorf("expected mood_score 6, got %q", row[2])
	}
	if row[3] != "happy, tired" {
		t.Errorf("emotions not comma-joined: %q", row[3])
	}
	if row[4] != "work, coffee" {
		t.Errorf("triggers not comma-joined: %q", row[4])
	}
}

func TestSummaryReport(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	scores := []int{3, 8, 5}
	for _, score := range scores {
		if _, err := s.AddMoodEntry(ctx, AddMoodEntryParams{
			UserID: "u1", MoodScore: score, Emotions: []string{"tired"},
		}); err != nil {
			t.Fatalf("add entry: %v", err)
		}
	}

	report, err := s.SummaryReportFor(ctx, "u1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report == nil {
		t.Fatal("expected report, got nil")
	}
	if report.Statistics.TotalEntries != 3 {
		t.Errorf("expected 3 entries, got %d", report.Statistics.TotalEntries)
	}
	if report.Statistics.HighestMood != 8 || report.Statistics.LowestMood != 3 {
		t.Errorf("min/max wrong: %+v", report.Statistics)
	}
	if report.Statistics.UniqueEmotions != 1 || report.Statistics.TotalEmotionsLogged != 3 {
		t.Errorf("emotion counts wrong: %+v", report.Statistics)
	}
}

func TestSummaryReportNoData(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	mustCreateUser(t, s, "u1")

	report, err := s.SummaryReportFor(ctx, "u1")
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report != nil {
		t.Errorf("expected nil report for empty history, got %+v", report)
	}
}
