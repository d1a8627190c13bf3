package planner

import (
	"math"
	"math/rand"

	"github.com/opencode-ai/studymind/internal/models"
)

// Activities are the captions cycled under active agents.
var Activities = []string{
	"Analyzing patterns...",
	"Optimizing schedule...",
	"Processing data...",
	"Generating insights...",
	"Learning preferences...",
}

// Confidence bounds for the ambient drift.
const (
	MinConfidence = 85.0
	MaxConfidence = 98.0
)

// AgentStatus is the live card state for one seed agent.
type AgentStatus struct {
	Agent      models.Agent
	Activity   string
	Confidence float64
}

// RoundedConfidence returns the displayed percentage.
func (a AgentStatus) RoundedConfidence() int {
	return int(math.Round(a.Confidence))
}

// Board animates the dashboard agent cards.
type Board struct {
	rng    *rand.Rand
	agents []AgentStatus
}

// NewBoard seeds cards from the snapshot agents.
func NewBoard(agents []models.Agent, rng *rand.Rand) *Board {
	b := &Board{rng: rng, agents: make([]AgentStatus, len(agents))}
	for i, agent := range agents {
		b.agents[i] = AgentStatus{
			Agent:      agent,
			Activity:   Activities[0],
			Confidence: float64(agent.Confidence),
		}
	}
	return b
}

// Agents returns a copy of the cards.
func (b *Board) Agents() []AgentStatus {
	return append([]AgentStatus(nil), b.agents...)
}

// RotateActivities assigns a random activity to each active agent.
func (b *Board) RotateActivities() {
	for i := range b.agents {
		if !b.agents[i].Agent.Active {
			continue
		}
		b.agents[i].Activity = Activities[b.rng.Intn(len(Activities))]
	}
}

// DriftConfidence moves each confidence by up to ±2, clamped to
// [MinConfidence, MaxConfidence].
func (b *Board) DriftConfidence() {
	for i := range b.agents {
		change := (b.rng.Float64() - 0.5) * 4
		c := b.agents[i].Confidence + change
		b.agents[i].Confidence = math.Max(MinConfidence, math.Min(MaxConfidence, c))
	}
}
