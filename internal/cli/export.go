package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export mood data as JSON or CSV",
		Run:   runExport,
	}

	cmd.Flags().StringP("format", "f", "json", "Export format: json or csv")
	cmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	cmd.Flags().Int("days", 0, "Window in days (default: configured history window)")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	days, _ := cmd.Flags().GetInt("days")

	s, _, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var w io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			exitErr("create output file", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "json":
		export, err := s.ExportMoodJSON(cmd.Context(), userFlag, days)
		if err != nil {
			exitErr("export", err)
		}
		if err := export.WriteJSON(w); err != nil {
			exitErr("write export", err)
		}
	case "csv":
		if err := s.WriteMoodCSV(cmd.Context(), w, userFlag, days); err != nil {
			exitErr("export", err)
		}
	default:
		exitErr("export", fmt.Errorf("unknown format %q (use json or csv)", format))
	}
}
