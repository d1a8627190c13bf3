package cli

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/studymind/internal/events"
	"github.com/opencode-ai/studymind/internal/logging"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/planner"
)

var (
	planSubjects []string
	planSeed     int64
)

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringArrayVarP(&planSubjects, "subject", "s", nil, "subject to include (repeatable)")
	planCmd.Flags().Int64Var(&planSeed, "seed", 0, "random seed (0 uses planner.random_seed or the clock)")
}

// PlanResult is the payload of `studymind plan`.
type PlanResult struct {
	Subjects []string         `json:"subjects"`
	Days     []PlanDay        `json:"days"`
	Sessions int              `json:"sessions"`
	Agents   []PlanAgent      `json:"agents"`
	Insights []models.Insight `json:"insights"`
	Elapsed  string           `json:"elapsed"`
}

// PlanDay is one weekday of the generated plan.
type PlanDay struct {
	Day      string   `json:"day"`
	Sessions []string `json:"sessions"`
}

// PlanAgent reports how an analysis agent finished.
type PlanAgent struct {
	Name     string  `json:"name"`
	Progress float64 `json:"progress"`
	Done     bool    `json:"done"`
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a weekly study plan",
	Long: `Run the agent analysis without the TUI and print a Monday to Friday plan.

Examples:
  studymind plan
  studymind plan --subject Mathematics --subject Physics --seed 7
  studymind plan --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := currentConfig()

		snapshot, err := loadSnapshot()
		if err != nil {
			return err
		}
		subjects, err := resolveSubjects(snapshot, planSubjects)
		if err != nil {
			return err
		}

		seed := planSeed
		if seed == 0 {
			seed = cfg.Planner.RandomSeed
		}
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng := rand.New(rand.NewSource(seed))

		analyzer := planner.NewAnalyzer(planner.Config{
			Frame:        cfg.Planner.FrameInterval,
			Stagger:      cfg.Planner.Stagger,
			MaxIncrement: planner.DefaultConfig().MaxIncrement,
			InsightDelay: planner.DefaultConfig().InsightDelay,
			AdvanceDelay: planner.DefaultConfig().AdvanceDelay,
		}, planner.DefaultAgents(), rng, logging.Component("analyzer"))

		sim := analyzer.Start()
		report := newAnalysisReport(cmd.ErrOrStderr(), len(sim.Agents()))
		completed := false
		for !completed {
			res := analyzer.Step(sim.Handle())
			report.Observe(sim.Elapsed(), sim.Agents())
			completed = res.Completed
			if !res.Continue {
				break
			}
		}
		if !completed {
			err := fmt.Errorf("analysis stopped after %s without completing", sim.Elapsed())
			report.Close(sim.Elapsed(), err)
			return err
		}
		report.Close(sim.Elapsed(), nil)

		plan := planner.GeneratePlan(rng, subjects)
		result := PlanResult{
			Subjects: subjects,
			Sessions: planner.CountSessions(plan),
			Elapsed:  sim.Elapsed().String(),
		}
		if len(subjects) == 0 {
			result.Subjects = planner.DefaultPlanSubjects
		}
		for _, day := range plan {
			result.Days = append(result.Days, PlanDay{Day: day.Day, Sessions: day.Sessions})
		}
		for i, agent := range sim.Agents() {
			result.Agents = append(result.Agents, PlanAgent{
				Name:     agent.Spec.Name,
				Progress: agent.Progress,
				Done:     agent.Done,
			})
			if i < len(snapshot.Insights) {
				result.Insights = append(result.Insights, snapshot.Insights[i])
			}
		}

		if err := recordPlan(ctx, len(plan), result.Sessions); err != nil {
			logger := logging.Component("cli")
			logger.Warn().Err(err).Msg("failed to record generated plan")
		}

		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(cmd.OutOrStdout(), result)
		}

		out := cmd.OutOrStdout()
		rows := make([][]string, 0, len(result.Days))
		for _, day := range result.Days {
			rows = append(rows, []string{day.Day, strings.Join(day.Sessions, ", ")})
		}
		if err := writeTable(out, []string{"DAY", "SESSIONS"}, rows); err != nil {
			return err
		}
		fmt.Fprintf(out, "\n%d sessions across %d days (analysis took %s)\n\n", result.Sessions, len(result.Days), result.Elapsed)
		agents := make([][]string, 0, len(result.Agents))
		for _, agent := range result.Agents {
			agents = append(agents, []string{agent.Name, fmt.Sprintf("%.0f%%", agent.Progress), formatYesNo(agent.Done)})
		}
		if err := writeTable(out, []string{"AGENT", "PROGRESS", "DONE"}, agents); err != nil {
			return err
		}
		if len(result.Insights) > 0 {
			fmt.Fprintln(out, "\nInsights:")
			for _, in := range result.Insights {
				fmt.Fprintf(out, "  %s: %s\n", in.Agent, in.Text)
			}
		}
		return nil
	},
}

// resolveSubjects matches requested names against the sample subjects,
// ignoring case. An empty request selects nothing.
func resolveSubjects(snapshot *models.Snapshot, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return nil, nil
	}
	known := make(map[string]string, len(snapshot.Subjects))
	for _, name := range snapshot.SubjectNames() {
		known[strings.ToLower(name)] = name
	}
	resolved := make([]string, 0, len(requested))
	for _, name := range requested {
		canonical, ok := known[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, &PreflightError{
				Message:  fmt.Sprintf("unknown subject %q", name),
				Hint:     "available subjects: " + strings.Join(snapshot.SubjectNames(), ", "),
				NextStep: "pass --subject with one of the names above",
			}
		}
		resolved = append(resolved, canonical)
	}
	return resolved, nil
}

func recordPlan(ctx context.Context, days, sessions int) error {
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	return events.LogPlan(ctx, sess.events, models.EventTypePlanGenerated, days, sessions)
}
