package app

import (
	"context"

	"github.com/opencode-ai/studymind/internal/events"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/notify"
	"github.com/opencode-ai/studymind/internal/planner"
	"github.com/opencode-ai/studymind/internal/wizard"
)

// Preferred study times on the planner preferences step.
var StudyTimes = []string{"Morning", "Afternoon", "Evening"}

// SessionLengths are the selectable session lengths in minutes.
var SessionLengths = []int{45, 60, 90, 120}

// PlannerPreferences are the values of the planner preferences step.
type PlannerPreferences struct {
	HoursPerDay   int
	PreferredTime string
	SessionLength int
}

// DefaultPlannerPreferences returns the initial preferences.
func DefaultPlannerPreferences() PlannerPreferences {
	return PlannerPreferences{HoursPerDay: 4, PreferredTime: StudyTimes[0], SessionLength: 60}
}

func (s *State) plannerSteps() []wizard.Step {
	return []wizard.Step{
		{Label: "Select Subjects"},
		{Label: "Preferences"},
		{
			Label:   "AI Analysis",
			OnEnter: s.startAnalysis,
			Validate: func() error {
				if sim := s.Analyzer.Current(); sim == nil || !sim.Finished() {
					return ErrAnalysisRunning
				}
				return nil
			},
		},
		{Label: "Your Plan", OnEnter: s.generatePlan},
	}
}

// PlannerNext moves the planner wizard forward.
func (s *State) PlannerNext() bool {
	return s.advance(s.Planner, s.Planner.Current()+1)
}

// PlannerBack moves the planner wizard back one step.
func (s *State) PlannerBack() bool {
	return s.Planner.Back() == nil
}

// ToggleSubject flips the selection of the subject with id.
func (s *State) ToggleSubject(id int) bool {
	for _, subject := range s.Snapshot.Subjects {
		if subject.ID == id {
			s.selected[id] = !s.selected[id]
			return true
		}
	}
	return false
}

// SubjectSelected reports whether the subject with id is selected.
func (s *State) SubjectSelected(id int) bool { return s.selected[id] }

// SelectedSubjects returns the selected subject names in seed order.
func (s *State) SelectedSubjects() []string {
	var names []string
	for _, subject := range s.Snapshot.Subjects {
		if s.selected[subject.ID] {
			names = append(names, subject.Name)
		}
	}
	return names
}

// AdjustStudyHours changes the planned hours per day within [1, 12].
func (s *State) AdjustStudyHours(delta int) {
	s.Prefs.HoursPerDay = min(max(s.Prefs.HoursPerDay+delta, 1), 12)
}

// CycleStudyTime selects the next preferred study time.
func (s *State) CycleStudyTime() {
	s.Prefs.PreferredTime = nextOf(StudyTimes, s.Prefs.PreferredTime)
}

// CycleSessionLength selects the next session length.
func (s *State) CycleSessionLength() {
	s.Prefs.SessionLength = nextOf(SessionLengths, s.Prefs.SessionLength)
}

func nextOf[T comparable](options []T, current T) T {
	for i, v := range options {
		if v == current {
			return options[(i+1)%len(options)]
		}
	}
	return options[0]
}

// Analysis returns the current analysis run, or nil.
func (s *State) Analysis() *planner.Simulation { return s.Analyzer.Current() }

// Insight returns the canned insight paired with analysis agent i.
func (s *State) Insight(i int) (models.Insight, bool) {
	if i < 0 || i >= len(s.Snapshot.Insights) {
		return models.Insight{}, false
	}
	return s.Snapshot.Insights[i], true
}

func (s *State) startAnalysis() {
	sim := s.Analyzer.Start()
	s.schedule(EffectAnalysisFrame, s.Analyzer.Config().Frame, uint64(sim.Handle()))
}

func (s *State) analysisFrame(h uint64) {
	res := s.Analyzer.Step(planner.Handle(h))
	switch {
	case !res.Applied:
	case res.Continue:
		s.schedule(EffectAnalysisFrame, s.Analyzer.Config().Frame, h)
	case res.Completed:
		// The plan step follows the analysis even if the user moved back.
		if err := s.Planner.Advance(StepPlan); err != nil {
			s.logger.Warn().Err(err).Msg("failed to open plan step")
		}
	}
}

func (s *State) generatePlan() {
	s.plan = planner.GeneratePlan(s.rng, s.SelectedSubjects())
	days, sessions := len(s.plan), planner.CountSessions(s.plan)
	s.record(func(ctx context.Context, repo events.Repository) error {
		return events.LogPlan(ctx, repo, models.EventTypePlanGenerated, days, sessions)
	})
}

// AcceptPlan confirms the generated plan and opens the calendar shortly after.
func (s *State) AcceptPlan() bool {
	if s.Planner.Current() != StepPlan || len(s.plan) == 0 {
		return false
	}
	days, sessions := len(s.plan), planner.CountSessions(s.plan)
	s.record(func(ctx context.Context, repo events.Repository) error {
		return events.LogPlan(ctx, repo, models.EventTypePlanAccepted, days, sessions)
	})
	s.notify(notify.KindSuccess, "Study plan accepted! Redirecting to calendar...")
	s.deferAction(EffectShowCalendar, s.delays.PlanRedirect)
	return true
}
