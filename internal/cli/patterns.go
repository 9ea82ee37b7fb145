package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/mood-companion/internal/model"
	"github.com/rcliao/mood-companion/internal/pattern"
)

func init() {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Analyze mood patterns and trends",
		Run:   runPatterns,
	}

	cmd.Flags().Int("days", 7, "Window in days")

	RootCmd.AddCommand(cmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	days, _ := cmd.Flags().GetInt("days")

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	entries, err := s.GetMoodHistory(cmd.Context(), userFlag, days)
	if err != nil {
		exitErr("load history", err)
	}

	// Trend math wants chronological order; history is newest first.
	chronological := make([]model.MoodEntry, len(entries))
	for i, e := range entries {
		chronological[len(entries)-1-i] = e
	}

	summary, err := pattern.Analyze(chronological, days)
	if errors.Is(err, pattern.ErrNoData) {
		fmt.Println(pattern.NoDataMessage(days))
		return
	}
	if err != nil {
		exitErr("analyze patterns", err)
	}

	fmt.Print(pattern.Render(summary))
}
