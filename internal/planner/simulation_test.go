package planner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newAnalyzer(seed int64) *Analyzer {
	return NewAnalyzer(DefaultConfig(), DefaultAgents(), rand.New(rand.NewSource(seed)), zerolog.Nop())
}

func runToCompletion(t *testing.T, a *Analyzer, h Handle) (frames int, order []string) {
	t.Helper()
	seen := map[string]bool{}
	for frames = 1; frames < 1000; frames++ {
		res := a.Step(h)
		require.True(t, res.Applied)
		for _, agent := range a.Current().Agents() {
			if agent.Done && !seen[agent.Spec.ID] {
				seen[agent.Spec.ID] = true
				order = append(order, agent.Spec.ID)
			}
		}
		if res.Completed {
			return frames, order
		}
		require.True(t, res.Continue)
	}
	t.Fatal("simulation never completed")
	return 0, nil
}

func TestSimulationCompletesInStaggerOrder(t *testing.T) {
	a := newAnalyzer(1)
	sim := a.Start()

	frames, order := runToCompletion(t, a, sim.Handle())

	assert.Equal(t, []string{"analysis-planner", "analysis-adaptive", "analysis-analytics"}, order)
	// last agent: 1000ms stagger + 4000ms duration, plus 1500ms advance delay.
	assert.Equal(t, 65, frames)
	assert.Equal(t, 6500*time.Millisecond, sim.Elapsed())
	assert.True(t, sim.Finished())

	for _, agent := range sim.Agents() {
		assert.Equal(t, 100.0, agent.Progress)
		assert.True(t, agent.InsightVisible)
		assert.Equal(t, "Analysis complete!", agent.Status())
	}
}

func TestInsightDelay(t *testing.T) {
	a := newAnalyzer(2)
	sim := a.Start()
	for i := 0; i < 20; i++ { // 2000ms: first agent completes
		a.Step(sim.Handle())
	}
	first := sim.Agents()[0]
	require.True(t, first.Done)
	assert.False(t, first.InsightVisible)

	for i := 0; i < 5; i++ {
		a.Step(sim.Handle())
	}
	assert.True(t, sim.Agents()[0].InsightVisible)
}

func TestStaggeredStart(t *testing.T) {
	a := newAnalyzer(3)
	sim := a.Start()
	for i := 0; i < 4; i++ { // 400ms
		a.Step(sim.Handle())
	}
	agents := sim.Agents()
	assert.True(t, agents[0].Started)
	assert.False(t, agents[1].Started)
	assert.Equal(t, "Waiting...", agents[2].Status())
}

func TestRestartReplacesRun(t *testing.T) {
	a := newAnalyzer(4)
	old := a.Start()
	a.Step(old.Handle())

	fresh := a.Start()
	require.NotEqual(t, old.Handle(), fresh.Handle())

	res := a.Step(old.Handle())
	assert.False(t, res.Applied)
	assert.Equal(t, 100*time.Millisecond, old.Elapsed())

	res = a.Step(fresh.Handle())
	assert.True(t, res.Applied)
	assert.Equal(t, 100*time.Millisecond, fresh.Elapsed())
}

func TestStepAfterCompletionIsNoop(t *testing.T) {
	a := newAnalyzer(5)
	sim := a.Start()
	runToCompletion(t, a, sim.Handle())

	res := a.Step(sim.Handle())
	assert.False(t, res.Applied)
	assert.False(t, res.Completed)
}

func TestStepWithoutRun(t *testing.T) {
	a := newAnalyzer(6)
	assert.False(t, a.Step(1).Applied)
}

func TestProgressBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a := newAnalyzer(seed)
		sim := a.Start()
		prev := make([]float64, len(DefaultAgents()))
		for i := 0; i < 100; i++ {
			res := a.Step(sim.Handle())
			for j, agent := range sim.Agents() {
				if agent.Progress < prev[j] || agent.Progress > 100 {
					rt.Fatalf("agent %d progress %v (prev %v)", j, agent.Progress, prev[j])
				}
				if agent.Progress == 100 && !agent.Done {
					rt.Fatalf("agent %d at 100 but not done", j)
				}
				prev[j] = agent.Progress
			}
			if res.Completed {
				return
			}
		}
		rt.Fatal("simulation did not complete within 100 frames")
	})
}
