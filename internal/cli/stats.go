package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/chart"
	"github.com/opencode-ai/studymind/internal/models"
)

func init() {
	rootCmd.AddCommand(statsCmd)
}

// StatsReport is the payload of `studymind stats`.
type StatsReport struct {
	UserStats models.UserStats `json:"user_stats"`
	History   chart.Summary    `json:"history"`
	Subjects  []models.Subject `json:"subjects"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	Long:  "Show the dashboard statistics and a summary of the study session history.",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot, err := loadSnapshot()
		if err != nil {
			return err
		}
		sum := chart.Summarize(snapshot)
		report := StatsReport{
			UserStats: snapshot.UserStats,
			History:   sum,
			Subjects:  snapshot.Subjects,
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), report)
		}

		out := cmd.OutOrStdout()
		us := snapshot.UserStats
		rows := [][]string{
			{"Study hours", strconv.Itoa(us.TotalStudyHours)},
			{"Streak", fmt.Sprintf("%d days", us.StreakDays)},
			{"Completion rate", fmt.Sprintf("%d%%", us.CompletionRate)},
			{"Average score", fmt.Sprintf("%d%%", us.AverageScore)},
			{"Goals achieved", fmt.Sprintf("%d/%d", us.GoalsAchieved, us.TotalGoals)},
		}
		if err := writeTable(out, []string{"STAT", "VALUE"}, rows); err != nil {
			return err
		}

		fmt.Fprintln(out)
		history := [][]string{
			{"Sessions", strconv.Itoa(sum.Sessions)},
			{"Completed", fmt.Sprintf("%d (%s)", sum.Completed, formatPercent(sum.CompletionRatio))},
			{"Time studied", formatMinutes(sum.TotalMinutes)},
			{"Mean score", fmt.Sprintf("%.1f ± %.1f", sum.MeanScore, sum.ScoreStdDev)},
			{"Mean progress", fmt.Sprintf("%.1f%%", sum.MeanProgress)},
		}
		if err := writeTable(out, []string{"HISTORY", "VALUE"}, history); err != nil {
			return err
		}

		if len(snapshot.Subjects) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		subjects := make([][]string, 0, len(snapshot.Subjects))
		for _, s := range snapshot.Subjects {
			subjects = append(subjects, []string{
				s.Name,
				string(s.Difficulty),
				strconv.Itoa(s.HoursAllocated) + "h",
				strconv.Itoa(s.Progress) + "%",
			})
		}
		return writeTable(out, []string{"SUBJECT", "DIFFICULTY", "HOURS", "PROGRESS"}, subjects)
	},
}
