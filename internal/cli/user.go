package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/mood-companion/internal/profile"
	"github.com/rcliao/mood-companion/internal/store"
)

func init() {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	createCmd := &cobra.Command{
		Use:   "create <id> <name>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(2),
		Run:   runUserCreate,
	}
	createCmd.Flags().String("timezone", "UTC", "User timezone")

	userCmd.AddCommand(createCmd)
	RootCmd.AddCommand(userCmd)
}

func runUserCreate(cmd *cobra.Command, args []string) {
	id, name := args[0], args[1]
	tz, _ := cmd.Flags().GetString("timezone")

	s, cfg, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	_, err = s.CreateUser(cmd.Context(), store.CreateUserParams{
		UserID:   id,
		Name:     name,
		Timezone: tz,
	})
	if errors.Is(err, store.ErrDuplicateUser) {
		fmt.Printf("User %s already exists.\n", id)
		return
	}
	if err != nil {
		exitErr("create user", err)
	}

	pm, err := profile.NewManager(cfg.Storage.ProfileDir)
	if err == nil {
		pm.Create(id, name)
	}

	fmt.Printf("Created user %s (%s).\n", id, name)
}
