package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/db"
	"github.com/opencode-ai/studymind/internal/models"
)

var (
	eventsLimit int
	eventsType  string
	eventsSince time.Duration
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", 20, "maximum number of events")
	eventsCmd.Flags().StringVar(&eventsType, "type", "", "only show this event type (e.g. theme.changed)")
	eventsCmd.Flags().DurationVar(&eventsSince, "since", 0, "only show events newer than this (e.g. 1h)")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the interaction log",
	Long: `Show recent interaction events recorded by the TUI and CLI.

Without filters the newest events are listed first. With --type or --since
events are listed oldest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := openSession(ctx)
		if err != nil {
			return err
		}
		defer sess.Close()

		var list []*models.Event
		if eventsType == "" && eventsSince <= 0 {
			list, err = sess.events.Recent(ctx, eventsLimit)
		} else {
			q := db.EventQuery{Limit: eventsLimit}
			if eventsType != "" {
				t := models.EventType(eventsType)
				q.Type = &t
			}
			if eventsSince > 0 {
				since := time.Now().Add(-eventsSince)
				q.Since = &since
			}
			var page *db.EventPage
			page, err = sess.events.Query(ctx, q)
			if page != nil {
				list = page.Events
			}
		}
		if err != nil {
			return fmt.Errorf("failed to list events: %w", err)
		}

		if IsJSONOutput() || IsJSONLOutput() {
			if list == nil {
				list = []*models.Event{}
			}
			return WriteOutput(cmd.OutOrStdout(), list)
		}

		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No events recorded yet.")
			return nil
		}
		rows := make([][]string, 0, len(list))
		for _, e := range list {
			rows = append(rows, []string{
				e.Timestamp.Local().Format("2006-01-02 15:04:05"),
				formatEventType(e.Type),
				fmt.Sprintf("%s/%s", e.EntityType, e.EntityID),
				formatPayload(e.Payload),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"TIME", "TYPE", "ENTITY", "PAYLOAD"}, rows)
	},
}

func formatPayload(payload []byte) string {
	const maxPayload = 60
	if len(payload) == 0 {
		return "-"
	}
	text := string(payload)
	if len(text) > maxPayload {
		return text[:maxPayload-3] + "..."
	}
	return text
}
