// Package planner simulates the multi-agent plan analysis and produces the
// canned study plan and calendar grids.
package planner

import (
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// AgentSpec declares one analysis agent.
type AgentSpec struct {
	ID       string
	Name     string
	Duration time.Duration
}

// DefaultAgents returns the three agents shown on the analysis step, in
// stagger order.
func DefaultAgents() []AgentSpec {
	return []AgentSpec{
		{ID: "analysis-planner", Name: "PlannerBot", Duration: 2 * time.Second},
		{ID: "analysis-adaptive", Name: "AdaptiveAI", Duration: 3 * time.Second},
		{ID: "analysis-analytics", Name: "AnalyticsAI", Duration: 4 * time.Second},
	}
}

// Config tunes the animation timing.
type Config struct {
	Frame        time.Duration // one progress tick
	Stagger      time.Duration // start offset between consecutive agents
	MaxIncrement float64       // progress added per tick is in [0, MaxIncrement)
	InsightDelay time.Duration // agent completion -> insight visible
	AdvanceDelay time.Duration // last completion -> analysis complete
}

// DefaultConfig returns the stock timings.
func DefaultConfig() Config {
	return Config{
		Frame:        100 * time.Millisecond,
		Stagger:      500 * time.Millisecond,
		MaxIncrement: 15,
		InsightDelay: 500 * time.Millisecond,
		AdvanceDelay: 1500 * time.Millisecond,
	}
}

// AgentProgress is the animation state of one agent.
type AgentProgress struct {
	Spec           AgentSpec
	Progress       float64 // percent, [0, 100]
	Started        bool
	Done           bool
	InsightVisible bool
	doneAt         time.Duration
}

// Status is the caption under the agent's progress bar.
func (a AgentProgress) Status() string {
	switch {
	case a.Done:
		return "Analysis complete!"
	case a.Started:
		return "Analyzing..."
	default:
		return "Waiting..."
	}
}

// Handle identifies one simulation run. The zero Handle never matches.
type Handle uint64

// StepResult reports what a frame did.
type StepResult struct {
	// Applied is false when the frame belonged to a replaced run.
	Applied bool
	// Continue is true while more frames are needed.
	Continue bool
	// Completed is set exactly once, on the frame the run finishes.
	Completed bool
}

// Simulation is one analysis run over virtual time.
type Simulation struct {
	handle   Handle
	cfg      Config
	rng      *rand.Rand
	agents   []AgentProgress
	elapsed  time.Duration
	finished bool
}

// Handle returns the run's handle.
func (s *Simulation) Handle() Handle { return s.handle }

// Agents returns a copy of the agents' state.
func (s *Simulation) Agents() []AgentProgress {
	return append([]AgentProgress(nil), s.agents...)
}

// Elapsed returns the virtual time since the run started.
func (s *Simulation) Elapsed() time.Duration { return s.elapsed }

// Finished reports whether the run has completed.
func (s *Simulation) Finished() bool { return s.finished }

// step advances virtual time by one frame.
func (s *Simulation) step() StepResult {
	if s.finished {
		return StepResult{}
	}
	s.elapsed += s.cfg.Frame

	allDone := true
	var lastDone time.Duration
	for i := range s.agents {
		a := &s.agents[i]
		start := time.Duration(i) * s.cfg.Stagger
		if s.elapsed >= start {
			a.Started = true
		}
		if a.Started && !a.Done {
			if s.elapsed-start >= a.Spec.Duration {
				// Completion is pinned to the agent's duration so agents
				// always finish in stagger order.
				a.Progress = 100
				a.Done = true
				a.doneAt = s.elapsed
			} else if s.elapsed > start {
				a.Progress += s.rng.Float64() * s.cfg.MaxIncrement
				if a.Progress > 99 {
					a.Progress = 99
				}
			}
		}
		if a.Done && s.elapsed >= a.doneAt+s.cfg.InsightDelay {
			a.InsightVisible = true
		}
		if !a.Done {
			allDone = false
		} else if a.doneAt > lastDone {
			lastDone = a.doneAt
		}
	}

	if allDone && s.elapsed >= lastDone+s.cfg.AdvanceDelay {
		s.finished = true
		return StepResult{Applied: true, Completed: true}
	}
	return StepResult{Applied: true, Continue: true}
}

// Analyzer owns at most one live simulation.
type Analyzer struct {
	cfg     Config
	specs   []AgentSpec
	rng     *rand.Rand
	current *Simulation
	issued  Handle
	logger  zerolog.Logger
}

// NewAnalyzer creates an analyzer. A nil rng gets a time-seeded source.
func NewAnalyzer(cfg Config, specs []AgentSpec, rng *rand.Rand, logger zerolog.Logger) *Analyzer {
	def := DefaultConfig()
	if cfg.Frame <= 0 {
		cfg.Frame = def.Frame
	}
	if cfg.Stagger < 0 {
		cfg.Stagger = def.Stagger
	}
	if cfg.MaxIncrement <= 0 {
		cfg.MaxIncrement = def.MaxIncrement
	}
	if cfg.InsightDelay < 0 {
		cfg.InsightDelay = def.InsightDelay
	}
	if cfg.AdvanceDelay < 0 {
		cfg.AdvanceDelay = def.AdvanceDelay
	}
	if len(specs) == 0 {
		specs = DefaultAgents()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Analyzer{cfg: cfg, specs: specs, rng: rng, logger: logger}
}

// Config returns the effective timing configuration.
func (a *Analyzer) Config() Config { return a.cfg }

// Start begins a new run, replacing any previous one.
func (a *Analyzer) Start() *Simulation {
	a.issued++
	agents := make([]AgentProgress, len(a.specs))
	for i, spec := range a.specs {
		agents[i] = AgentProgress{Spec: spec}
	}
	if a.current != nil && !a.current.finished {
		a.logger.Debug().Uint64("handle", uint64(a.current.handle)).Msg("replacing running analysis")
	}
	a.current = &Simulation{
		handle: a.issued,
		cfg:    a.cfg,
		rng:    a.rng,
		agents: agents,
	}
	a.logger.Info().Uint64("handle", uint64(a.issued)).Int("agents", len(agents)).Msg("analysis started")
	return a.current
}

// Current returns the latest run, or nil.
func (a *Analyzer) Current() *Simulation { return a.current }

// Step advances the run identified by h by one frame.
func (a *Analyzer) Step(h Handle) StepResult {
	if a.current == nil || h == 0 || h != a.current.handle {
		return StepResult{}
	}
	res := a.current.step()
	if res.Completed {
		a.logger.Info().Uint64("handle", uint64(h)).Dur("elapsed", a.current.elapsed).Msg("analysis complete")
	}
	return res
}
