package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a summary statistics report",
		Run:   runReport,
	}

	RootCmd.AddCommand(cmd)
}

func runReport(cmd *cobra.Command, args []string) {
	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	report, err := s.SummaryReportFor(cmd.Context(), userFlag)
	if err != nil {
		exitErr("build report", err)
	}
	if report == nil {
		fmt.Println("No data available yet. Log a few moods first.")
		return
	}

	b, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(b))
}
