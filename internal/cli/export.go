package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/chart"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/theme"
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportStatusCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export StudyMind data",
	Long:  "Export StudyMind state for automation or reporting.",
}

var exportStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Export full status",
	Long:  "Export full status as JSON: theme, sample data, history summary, account and event counts.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		snapshot, err := loadSnapshot()
		if err != nil {
			return err
		}

		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		users, err := sess.users.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count accounts: %w", err)
		}
		counts, err := sess.events.CountByType(ctx)
		if err != nil {
			return err
		}
		totalEvents := 0
		for _, n := range counts {
			totalEvents += n
		}

		status := ExportStatus{
			GeneratedAt: time.Now().UTC(),
			Theme:       sess.theme.Preference(),
			Appearance:  sess.theme.Appearance(),
			Snapshot:    snapshot,
			Summary:     chart.Summarize(snapshot),
			Accounts:    users,
			EventCounts: counts,
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), status)
		}

		writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
		fmt.Fprintf(writer, "Theme:\t%s\n", status.Theme)
		fmt.Fprintf(writer, "Subjects:\t%d\n", len(snapshot.Subjects))
		fmt.Fprintf(writer, "Study sessions:\t%d\n", len(snapshot.StudySessions))
		fmt.Fprintf(writer, "Agents:\t%d\n", len(snapshot.Agents))
		fmt.Fprintf(writer, "Accounts:\t%d\n", users)
		fmt.Fprintf(writer, "Events:\t%d\n", totalEvents)
		if err := writer.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Use --json or --jsonl for full export output.")
		return nil
	},
}

// ExportStatus is the payload returned by `studymind export status`.
type ExportStatus struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Theme       theme.Preference         `json:"theme"`
	Appearance  theme.Appearance         `json:"appearance"`
	Snapshot    *models.Snapshot         `json:"snapshot"`
	Summary     chart.Summary            `json:"summary"`
	Accounts    int                      `json:"accounts"`
	EventCounts map[models.EventType]int `json:"event_counts"`
}
