// Package cli implements the mood-companion CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/mood-companion/internal/config"
	"github.com/rcliao/mood-companion/internal/logging"
	"github.com/rcliao/mood-companion/internal/store"
)

var (
	cfgPath  string
	dbPath   string
	userFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "mood-companion",
	Short: "A conversational mood-journaling companion",
	Long: "Mood journaling with specialist agents: log check-ins, spot patterns, " +
		"get coping strategies, and reach crisis resources. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgPath, "config", "companion.yaml", "Config file path")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $MOOD_COMPANION_DB or ~/.mood-companion/companion.db)")
	RootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "default_user", "User id")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	return cfg, nil
}

// openStore opens the SQLite store from config. Storage open failures are
// the one fatal error class in the companion.
func openStore() (*store.SQLiteStore, *config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		return nil, nil, err
	}
	s.SetDefaultHistoryDays(cfg.Storage.HistoryDays)
	return s, cfg, nil
}

func newLogger(cfg *config.Config) *zap.Logger {
	log, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
