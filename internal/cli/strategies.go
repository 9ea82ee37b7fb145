package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	strategiesCmd := &cobra.Command{
		Use:   "strategies",
		Short: "Manage coping strategies",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all coping strategies",
		Run:   runStrategiesList,
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the starter strategy set (no-op when strategies exist)",
		Run:   runStrategiesSeed,
	}

	strategiesCmd.AddCommand(listCmd, seedCmd)
	RootCmd.AddCommand(strategiesCmd)
}

func runStrategiesList(cmd *cobra.Command, args []string) {
	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	strategies, err := s.GetAllStrategies(cmd.Context())
	if err != nil {
		exitErr("load strategies", err)
	}

	if len(strategies) == 0 {
		fmt.Println("No strategies yet. Try: mood-companion strategies seed")
		return
	}

	for _, cs := range strategies {
		fmt.Printf("%s [%s] used %d times\n  %s\n", cs.Name, cs.Category, cs.UsageCount, cs.Description)
	}
}

func runStrategiesSeed(cmd *cobra.Command, args []string) {
	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	n, err := s.SeedDefaultStrategies(cmd.Context())
	if err != nil {
		exitErr("seed strategies", err)
	}
	if n == 0 {
		fmt.Println("Strategies already present, nothing to do.")
		return
	}
	fmt.Printf("Seeded %d strategies.\n", n)
}
