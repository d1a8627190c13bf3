package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/opencode-ai/studymind/internal/chart"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/planner"
	"github.com/opencode-ai/studymind/internal/seed"
	"github.com/opencode-ai/studymind/internal/theme"
)

type cliEnv struct {
	t      *testing.T
	dir    string
	config string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	env := &cliEnv{t: t, dir: dir, config: filepath.Join(dir, "config.yaml")}
	env.useDatabase(filepath.Join(dir, "studymind.db"))

	t.Cleanup(func() {
		resetFlags()
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	return env
}

// useDatabase rewrites the config file to point at path.
func (e *cliEnv) useDatabase(path string) {
	e.t.Helper()
	body := fmt.Sprintf(`database:
  path: %s
logging:
  level: error
  file: %s
tui:
  theme: light
`, path, filepath.Join(e.dir, "studymind.log"))
	require.NoError(e.t, os.WriteFile(e.config, []byte(body), 0o644))
}

func resetFlags() {
	cfgFile, logLevel = "", ""
	jsonOutput, jsonlOutput = false, false
	nonInteractive, noProgress = false, false
	planSubjects, planSeed = nil, 0
	chartWidth, chartSVG = 72, ""
	eventsLimit, eventsType, eventsSince = 20, "", 0
	appConfig = nil
	backgroundDetector = nil
}

func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	resetFlags()
	backgroundDetector = func() bool { return true }

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(append([]string{"--config", e.config, "--no-progress"}, args...))
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *cliEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out, err := e.run(append(args, "--json")...)
	require.NoError(e.t, err)
	require.NoError(e.t, json.Unmarshal([]byte(out), v), out)
}

func TestThemeShowUsesConfiguredFallback(t *testing.T) {
	env := newCLIEnv(t)

	var status ThemeStatus
	env.runJSON(&status, "theme")
	assert.Equal(t, theme.Light, status.Preference)
	assert.Equal(t, theme.AppearanceLight, status.Appearance)
	assert.Equal(t, theme.Light.Icon(), status.Icon)
}

func TestThemeSetPersists(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("theme", "set", "dark")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")

	var status ThemeStatus
	env.runJSON(&status, "theme", "show")
	assert.Equal(t, theme.Dark, status.Preference)
	assert.Equal(t, theme.AppearanceDark, status.Appearance)
}

func TestThemeSetRejectsUnknown(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("theme", "set", "purple")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown theme")
}

func TestThemeCycleRotatesAndLogs(t *testing.T) {
	env := newCLIEnv(t)

	var status ThemeStatus
	env.runJSON(&status, "theme", "cycle")
	assert.Equal(t, theme.Dark, status.Preference)

	env.runJSON(&status, "theme", "cycle")
	assert.Equal(t, theme.Auto, status.Preference)
	assert.Equal(t, theme.AppearanceDark, status.Appearance, "auto follows the detected background")

	var logged []models.Event
	env.runJSON(&logged, "events", "--type", string(models.EventTypeThemeChanged))
	require.Len(t, logged, 2)

	var first models.ThemeChangedPayload
	require.NoError(t, json.Unmarshal(logged[0].Payload, &first))
	assert.Equal(t, "light", first.Old)
	assert.Equal(t, "dark", first.New)
}

func TestStatsJSON(t *testing.T) {
	env := newCLIEnv(t)
	snapshot, err := seed.Builtin()
	require.NoError(t, err)

	var report StatsReport
	env.runJSON(&report, "stats")
	assert.Equal(t, snapshot.UserStats, report.UserStats)
	assert.Len(t, report.Subjects, len(snapshot.Subjects))
	assert.Equal(t, chart.Summarize(snapshot), report.History)
}

func TestStatsTable(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("stats")
	require.NoError(t, err)
	for _, want := range []string{"Study hours", "Goals achieved", "Mean score", "Mathematics", "PROGRESS"} {
		assert.Contains(t, out, want)
	}
}

func TestChartListsNames(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("chart")
	require.NoError(t, err)
	for _, name := range chart.Names() {
		assert.Contains(t, out, name)
	}

	var listing ChartListing
	env.runJSON(&listing, "chart")
	assert.Equal(t, chart.Names(), listing.Charts)
}

func TestChartDrawsInTerminal(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("chart", chart.NameProgress, "--width", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "Mathematics")
}

func TestChartWritesSVG(t *testing.T) {
	env := newCLIEnv(t)
	path := filepath.Join(env.dir, "charts", "hours.svg")

	out, err := env.run("chart", chart.NameHours, "--svg", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote hours chart")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestChartUnknownName(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("chart", "pie")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Hint, chart.NameProgress)
}

func TestPlanIsDeterministicForSeed(t *testing.T) {
	env := newCLIEnv(t)

	var first, second PlanResult
	env.runJSON(&first, "plan", "--seed", "7")
	env.runJSON(&second, "plan", "--seed", "7")
	assert.Equal(t, first.Days, second.Days)

	require.Len(t, first.Days, 5)
	assert.Equal(t, "Monday", first.Days[0].Day)
	assert.Equal(t, "Friday", first.Days[4].Day)
	for _, day := range first.Days {
		assert.GreaterOrEqual(t, len(day.Sessions), 2)
		assert.LessOrEqual(t, len(day.Sessions), 3)
	}
	for _, agent := range first.Agents {
		assert.True(t, agent.Done, agent.Name)
		assert.Equal(t, 100.0, agent.Progress)
	}
	assert.Len(t, first.Insights, len(first.Agents))
}

func TestPlanUsesSelectedSubjects(t *testing.T) {
	env := newCLIEnv(t)

	var result PlanResult
	env.runJSON(&result, "plan", "--seed", "3", "--subject", "physics", "--subject", "Chemistry")
	assert.Equal(t, []string{"Physics", "Chemistry"}, result.Subjects)
	for _, day := range result.Days {
		for _, s := range day.Sessions {
			assert.Contains(t, result.Subjects, s)
		}
	}
}

func TestPlanUnknownSubject(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("plan", "--subject", "Astrology")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Hint, "Mathematics")
}

func TestPlanRecordsEvent(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("plan", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Monday")
	assert.Contains(t, out, "Insights:")

	var logged []models.Event
	env.runJSON(&logged, "events", "--type", string(models.EventTypePlanGenerated))
	require.Len(t, logged, 1)
	assert.Equal(t, models.EntityTypePlan, logged[0].EntityType)
}

func TestPlanSucceedsWhenEventLogUnavailable(t *testing.T) {
	env := newCLIEnv(t)
	blocker := filepath.Join(env.dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0o644))
	env.useDatabase(filepath.Join(blocker, "studymind.db"))

	var result PlanResult
	env.runJSON(&result, "plan", "--seed", "3")
	require.Len(t, result.Days, 5)
	assert.Positive(t, result.Sessions)

	_, err := env.run("events")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Message, "cannot open database")
}

func TestAnalysisReportListsFinishedAgents(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	t.Setenv("STUDYMIND_NO_PROGRESS", "0")
	t.Setenv("NO_PROGRESS", "false")

	var buf bytes.Buffer
	report := newAnalysisReport(&buf, 2)
	require.NotNil(t, report)

	agents := []planner.AgentProgress{
		{Spec: planner.AgentSpec{Name: "PlannerBot"}, Done: true},
		{Spec: planner.AgentSpec{Name: "AdaptiveAI"}},
	}
	report.Observe(2*time.Second, agents)
	report.Observe(2100*time.Millisecond, agents)
	agents[1].Done = true
	report.Observe(3500*time.Millisecond, agents)
	report.Close(6500*time.Millisecond, nil)

	assert.Equal(t, "Analyzing study preferences with 2 agents\n"+
		"  [1/2] PlannerBot finished at 2s\n"+
		"  [2/2] AdaptiveAI finished at 3.5s\n"+
		"Analysis complete in 6.5s\n", buf.String())
}

func TestAnalysisReportDisabled(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	t.Setenv("STUDYMIND_NO_PROGRESS", "1")

	var buf bytes.Buffer
	report := newAnalysisReport(&buf, 3)
	assert.Nil(t, report)
	report.Observe(time.Second, nil)
	report.Close(time.Second, errors.New("stopped"))
	assert.Empty(t, buf.String())
}

func TestIsNonInteractive(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	restore := stdioIsTerminal
	t.Cleanup(func() { stdioIsTerminal = restore })

	stdioIsTerminal = func() bool { return true }
	t.Setenv("STUDYMIND_NON_INTERACTIVE", "false")
	assert.False(t, IsNonInteractive())

	t.Setenv("STUDYMIND_NON_INTERACTIVE", "")
	assert.True(t, IsNonInteractive(), "set but empty counts as on")

	t.Setenv("STUDYMIND_NON_INTERACTIVE", "0")
	nonInteractive = true
	assert.True(t, IsNonInteractive())

	nonInteractive = false
	stdioIsTerminal = func() bool { return false }
	assert.True(t, IsNonInteractive())
}

func TestEventsEmpty(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("events")
	require.NoError(t, err)
	assert.Contains(t, out, "No events recorded yet.")
}

func TestEventsTable(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("theme", "set", "dark")
	require.NoError(t, err)

	out, err := env.run("events", "--since", "1h")
	require.NoError(t, err)
	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "THEME theme.changed")
	assert.Contains(t, out, "theme/theme")
}

func TestExportStatusJSON(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("theme", "set", "dark")
	require.NoError(t, err)

	var status ExportStatus
	env.runJSON(&status, "export", "status")
	assert.Equal(t, theme.Dark, status.Theme)
	assert.Equal(t, 0, status.Accounts)
	assert.Equal(t, 1, status.EventCounts[models.EventTypeThemeChanged])
	require.NotNil(t, status.Snapshot)
	assert.Len(t, status.Snapshot.Subjects, 5)
	assert.False(t, status.GeneratedAt.IsZero())
}

func TestExportStatusSummary(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run("export", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Subjects:")
	assert.Contains(t, out, "Use --json or --jsonl for full export output.")
}

func TestJSONLinesWritesOneValuePerLine(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("theme", "cycle")
	require.NoError(t, err)
	_, err = env.run("theme", "cycle")
	require.NoError(t, err)

	out, err := env.run("events", "--jsonl")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		var e models.Event
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		assert.Equal(t, models.EventTypeThemeChanged, e.Type)
	}
}

func TestUIRefusesNonInteractive(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run("--non-interactive")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	assert.Contains(t, preflight.Message, "interactive terminal")
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, &PreflightError{Message: "no database", Hint: "disk full", NextStep: "free space"})
	assert.Equal(t, "Error: no database\nHint: disk full\nNext: free space\n", buf.String())

	buf.Reset()
	printError(&buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "45m", formatMinutes(45))
	assert.Equal(t, "1h 00m", formatMinutes(60))
	assert.Equal(t, "2h 05m", formatMinutes(125))
}

func TestFormatPayloadTruncates(t *testing.T) {
	assert.Equal(t, "-", formatPayload(nil))
	long := `{"old":"` + strings.Repeat("x", 80) + `"}`
	got := formatPayload([]byte(long))
	assert.Len(t, got, 60)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestResolveSubjectsIgnoresCase(t *testing.T) {
	snapshot, err := seed.Builtin()
	require.NoError(t, err)
	names := snapshot.SubjectNames()

	rapid.Check(t, func(t *rapid.T) {
		picked := rapid.SliceOfN(rapid.SampledFrom(names), 1, len(names)).Draw(t, "picked")
		requested := make([]string, len(picked))
		for i, name := range picked {
			if rapid.Bool().Draw(t, "upper") {
				requested[i] = strings.ToUpper(name)
			} else {
				requested[i] = " " + strings.ToLower(name)
			}
		}
		resolved, err := resolveSubjects(snapshot, requested)
		if err != nil {
			t.Fatalf("resolve %v: %v", requested, err)
		}
		if len(resolved) != len(picked) {
			t.Fatalf("got %d subjects, want %d", len(resolved), len(picked))
		}
		for i := range picked {
			if resolved[i] != picked[i] {
				t.Fatalf("subject %d: got %q, want %q", i, resolved[i], picked[i])
			}
		}
	})
}
