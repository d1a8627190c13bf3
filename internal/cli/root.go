// Package cli implements the studymind command line.
package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/config"
	"github.com/opencode-ai/studymind/internal/db"
	"github.com/opencode-ai/studymind/internal/logging"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/seed"
)

var (
	cfgFile        string
	logLevel       string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noProgress     bool

	appConfig  *config.Config
	logCleanup = func() {}
)

var rootCmd = &cobra.Command{
	Use:   "studymind",
	Short: "AI-assisted study planner for the terminal",
	Long: `StudyMind plans study sessions with a team of simulated AI agents,
runs a pomodoro focus timer and charts your progress.

Run without arguments to open the terminal UI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		appConfig = cfg

		// The TUI owns the terminal, so only the ui command logs to a file.
		opts := logging.Options{Level: cfg.Logging.Level, Console: true}
		if cmd.Name() == "ui" || !cmd.HasParent() {
			opts = logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File}
		}
		cleanup, err := logging.Init(opts)
		if err != nil {
			return err
		}
		logCleanup = cleanup
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logCleanup()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/studymind/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or open the TUI")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// GetConfig returns the loaded configuration, or nil before a command ran.
func GetConfig() *config.Config {
	return appConfig
}

func currentConfig() *config.Config {
	if appConfig == nil {
		return config.DefaultConfig()
	}
	return appConfig
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	cfg := currentConfig()
	database, err := db.Open(ctx, db.Config{Path: cfg.Database.Path})
	if err != nil {
		return nil, &PreflightError{
			Message:  fmt.Sprintf("cannot open database %s", cfg.Database.Path),
			Hint:     err.Error(),
			NextStep: "set database.path in the config file or STUDYMIND_DATABASE_PATH",
		}
	}
	return database, nil
}

func loadSnapshot() (*models.Snapshot, error) {
	path := strings.TrimSpace(currentConfig().Seed.Path)
	snapshot, err := seed.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sample data: %w", err)
	}
	return snapshot, nil
}
