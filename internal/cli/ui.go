package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/app"
	"github.com/opencode-ai/studymind/internal/auth"
	"github.com/opencode-ai/studymind/internal/logging"
	"github.com/opencode-ai/studymind/internal/tui"
)

func init() {
	rootCmd.AddCommand(uiCmd)
}

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the StudyMind TUI",
	Long:  "Launch the StudyMind terminal user interface (TUI).",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd.Context())
	},
}

func runTUI(ctx context.Context) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "TUI requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use CLI subcommands",
			NextStep: "studymind --help",
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	snapshot, err := loadSnapshot()
	if err != nil {
		return err
	}

	cfg := currentConfig()
	state, err := app.New(ctx, app.Deps{
		Config:   cfg,
		Snapshot: snapshot,
		Theme:    sess.theme,
		Auth:     auth.NewService(sess.users, logging.Component("auth")),
		Events:   sess.events,
		Logger:   logging.Component("app"),
	})
	if err != nil {
		return err
	}

	return tui.Run(tui.Options{
		State:        state,
		HighContrast: cfg.TUI.HighContrast,
		Logger:       logging.Component("tui"),
	})
}
