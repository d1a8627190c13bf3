package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/opencode-ai/studymind/internal/planner"
)

// analysisReport prints one line per agent as the headless analysis in
// `studymind plan` finishes it. Durations are agent time, not wall time.
// A nil report prints nothing.
type analysisReport struct {
	out      io.Writer
	total    int
	finished map[string]bool
}

func newAnalysisReport(out io.Writer, agents int) *analysisReport {
	if !progressEnabled() {
		return nil
	}
	fmt.Fprintf(out, "Analyzing study preferences with %d agents\n", agents)
	return &analysisReport{out: out, total: agents, finished: make(map[string]bool)}
}

// Observe reports agents that finished since the previous call.
func (r *analysisReport) Observe(elapsed time.Duration, agents []planner.AgentProgress) {
	if r == nil {
		return
	}
	for _, agent := range agents {
		if !agent.Done || r.finished[agent.Spec.Name] {
			continue
		}
		r.finished[agent.Spec.Name] = true
		fmt.Fprintf(r.out, "  [%d/%d] %s finished at %s\n", len(r.finished), r.total, agent.Spec.Name, formatAgentTime(elapsed))
	}
}

// Close prints the closing line. A non-nil err marks the run as failed.
func (r *analysisReport) Close(elapsed time.Duration, err error) {
	if r == nil {
		return
	}
	if err != nil {
		fmt.Fprintf(r.out, "Analysis failed after %s: %v\n", formatAgentTime(elapsed), err)
		return
	}
	fmt.Fprintf(r.out, "Analysis complete in %s\n", formatAgentTime(elapsed))
}

func progressEnabled() bool {
	if IsJSONOutput() || IsJSONLOutput() || noProgress {
		return false
	}
	return !envFlag("STUDYMIND_NO_PROGRESS") && !envFlag("NO_PROGRESS")
}

func formatAgentTime(d time.Duration) string {
	return d.Round(100 * time.Millisecond).String()
}
