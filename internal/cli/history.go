package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/mood-companion/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent mood entries, newest first",
		Run:   runHistory,
	}

	cmd.Flags().Int("days", 0, "Window in days (default: configured history window)")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
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

	if len(entries) == 0 {
		fmt.Println("No mood entries yet. Try: mood-companion log --score 7")
		return
	}

	for _, e := range entries {
		line := fmt.Sprintf("%s  %2d/10 (%s)",
			e.Timestamp.Format("2006-01-02 15:04"), e.MoodScore, model.ScoreLabel(e.MoodScore))
		if len(e.Emotions) > 0 {
			line += "  [" + strings.Join(e.Emotions, ", ") + "]"
		}
		if e.Notes != "" {
			line += "  " + e.Notes
		}
		fmt.Println(line)
	}
}
