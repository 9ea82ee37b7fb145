package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/mood-companion/internal/crisis"
	"github.com/rcliao/mood-companion/internal/model"
	"github.com/rcliao/mood-companion/internal/profile"
	"github.com/rcliao/mood-companion/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a mood entry directly",
		Long:  "Log a mood entry without the chat loop. Scores run 1 (worst) to 10 (best).",
		Run:   runLog,
	}

	cmd.Flags().IntP("score", "s", 0, "Mood score 1-10 (required)")
	cmd.Flags().StringSliceP("emotions", "e", nil, "Emotions felt (comma-separated)")
	cmd.Flags().StringSliceP("triggers", "t", nil, "What triggered the feeling (comma-separated)")
	cmd.Flags().StringP("notes", "n", "", "Notes or context")
	cmd.MarkFlagRequired("score")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	score, _ := cmd.Flags().GetInt("score")
	emotions, _ := cmd.Flags().GetStringSlice("emotions")
	triggers, _ := cmd.Flags().GetStringSlice("triggers")
	notes, _ := cmd.Flags().GetString("notes")

	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	ensureUser(ctx, s, userFlag)

	entry, err := s.AddMoodEntry(ctx, store.AddMoodEntryParams{
		UserID:    userFlag,
		MoodScore: score,
		Emotions:  emotions,
		Triggers:  triggers,
		Notes:     notes,
	})
	if errors.Is(err, store.ErrInvalidMoodScore) {
		exitErr("log mood", err)
	}
	if err != nil {
		exitErr("log mood", err)
	}

	fmt.Printf("Logged mood %d/10 (%s) for %s.\n",
		entry.MoodScore, model.ScoreLabel(entry.MoodScore), userFlag)

	if pm, err := profile.NewManager(cfg.Storage.ProfileDir); err == nil {
		if p, _ := pm.Get(userFlag); p != nil {
			if streak, err := pm.IncrementStreak(userFlag); err == nil {
				fmt.Printf("Check-in streak: %d\n", streak)
			}
		}
	}

	if score <= 4 || crisis.HasCrisisEmotion(emotions) {
		a := crisis.Evaluate(score, emotions, notes)
		if a.Level > crisis.LevelNone {
			fmt.Println()
			fmt.Println(crisis.Response(a.Level))
		}
	}
}

// ensureUser auto-registers the user on first use, like the chat loop does.
func ensureUser(ctx context.Context, s *store.SQLiteStore, id string) {
	_, err := s.GetUser(ctx, id)
	if errors.Is(err, store.ErrUserNotFound) {
		s.CreateUser(ctx, store.CreateUserParams{UserID: id, Name: id})
	}
}
