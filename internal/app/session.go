package app

import (
	"context"
	"errors"
	"strings"

	"github.com/opencode-ai/studymind/internal/auth"
	"github.com/opencode-ai/studymind/internal/events"
	"github.com/opencode-ai/studymind/internal/models"
	"github.com/opencode-ai/studymind/internal/navigator"
	"github.com/opencode-ai/studymind/internal/notify"
	"github.com/opencode-ai/studymind/internal/wizard"
)

// StudyGoals are the choices on the last registration step.
var StudyGoals = []string{
	"Exam Preparation",
	"Skill Building",
	"Course Completion",
	"Personal Interest",
}

// RegistrationForm holds the values typed into the registration wizard.
type RegistrationForm struct {
	Name       string
	Email      string
	Password   string
	StudyGoal  string
	DailyHours int
}

// Strength scores the typed password.
func (f RegistrationForm) Strength() auth.Strength {
	return auth.CheckStrength(f.Password)
}

func (s *State) registrationSteps() []wizard.Step {
	return []wizard.Step{
		{
			Label: "Account",
			Validate: func() error {
				return auth.ValidateAccount(s.Form.Name, s.Form.Email)
			},
		},
		{
			Label: "Password",
			Validate: func() error {
				return auth.ValidatePassword(s.Form.Password)
			},
		},
		{Label: "Study Goals"},
	}
}

// RegistrationNext moves the registration wizard forward, surfacing gate
// failures as notifications.
func (s *State) RegistrationNext() bool {
	return s.advance(s.Registration, s.Registration.Current()+1)
}

// RegistrationBack moves the registration wizard back one step.
func (s *State) RegistrationBack() bool {
	return s.Registration.Back() == nil
}

// CycleStudyGoal selects the next study goal.
func (s *State) CycleStudyGoal() {
	for i, goal := range StudyGoals {
		if goal == s.Form.StudyGoal {
			s.Form.StudyGoal = StudyGoals[(i+1)%len(StudyGoals)]
			return
		}
	}
	s.Form.StudyGoal = StudyGoals[0]
}

// AdjustDailyHours changes the registration daily study hours within [1, 12].
func (s *State) AdjustDailyHours(delta int) {
	s.Form.DailyHours = min(max(s.Form.DailyHours+delta, 1), 12)
}

// BeginLogin starts the simulated sign-in. It returns false when the form is
// incomplete or a sign-in is already in flight.
func (s *State) BeginLogin(email, password string) bool {
	if s.Pending(EffectFinishLogin) {
		return false
	}
	if strings.TrimSpace(email) == "" || password == "" {
		s.notify(notify.KindError, "Please enter your email and password")
		return false
	}
	s.loginEmail = email
	s.loginPassword = password
	s.deferAction(EffectFinishLogin, s.delays.Login)
	return true
}

func (s *State) finishLogin() {
	email, password := s.loginEmail, s.loginPassword
	s.loginEmail, s.loginPassword = "", ""

	user, err := s.auth.Login(s.ctx, email, password)
	if err != nil {
		s.notify(notify.KindError, err.Error())
		return
	}
	s.signIn(user, models.EventTypeUserLoggedIn)
	s.notify(notify.KindSuccess, "Welcome back!")
}

// CompleteRegistration starts the simulated account creation from the last
// registration step.
func (s *State) CompleteRegistration() bool {
	if s.Registration.Current() != s.Registration.Len() || s.Pending(EffectFinishRegistration) {
		return false
	}
	s.deferAction(EffectFinishRegistration, s.delays.Registration)
	return true
}

func (s *State) finishRegistration() {
	user, err := s.auth.Register(s.ctx, auth.Registration{
		Name:       s.Form.Name,
		Email:      s.Form.Email,
		Password:   s.Form.Password,
		StudyGoal:  s.Form.StudyGoal,
		DailyHours: s.Form.DailyHours,
	})
	if err != nil {
		s.notify(notify.KindError, err.Error())
		return
	}
	s.Form = RegistrationForm{DailyHours: 2, StudyGoal: StudyGoals[0]}
	s.Registration.Reset()
	s.signIn(user, models.EventTypeUserRegistered)
	s.notify(notify.KindSuccess, "Account created successfully!")
}

func (s *State) signIn(user *models.User, eventType models.EventType) {
	s.user = user
	s.Pages.NavigateTo(navigator.PageApp)
	s.record(func(ctx context.Context, repo events.Repository) error {
		return events.LogUser(ctx, repo, eventType, user.Email)
	})
}

// Logout signs out and returns to the landing page.
func (s *State) Logout() {
	if s.user != nil {
		email := s.user.Email
		s.record(func(ctx context.Context, repo events.Repository) error {
			return events.LogUser(ctx, repo, models.EventTypeUserLoggedOut, email)
		})
	}
	s.user = nil
	s.userMenuOpen = false
	s.Pages.NavigateTo(navigator.PageLanding)
	s.notify(notify.KindInfo, "Logged out successfully")
}

// advance runs a wizard move and turns gate errors into a warning.
func (s *State) advance(w *wizard.Wizard, target int) bool {
	if err := w.Advance(target); err != nil {
		if !errors.Is(err, wizard.ErrUnknownStep) {
			s.notify(notify.KindWarning, err.Error())
		}
		return false
	}
	return true
}
