// Package auth simulates login and registration against local user records.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencode-ai/studymind/internal/db"
	"github.com/opencode-ai/studymind/internal/models"
)

// Auth errors.
var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password is too weak")
	ErrInvalidEmail       = errors.New("enter a valid email address")
	ErrMissingName        = errors.New("full name is required")
)

// Demo account used when an unregistered email signs in.
const (
	DemoName     = "John Doe"
	DemoInitials = "JD"
)

// UserStore is the persistence the service needs.
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// Registration collects the three registration steps.
type Registration struct {
	Name       string
	Email      string
	Password   string
	StudyGoal  string
	DailyHours int
}

// Service performs the simulated auth flows.
type Service struct {
	users  UserStore
	cost   int
	logger zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithCost sets the bcrypt cost.
func WithCost(cost int) Option {
	return func(s *Service) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			s.cost = cost
		}
	}
}

// NewService creates a Service. users may be nil, in which case every login
// is the demo account and registrations are not persisted.
func NewService(users UserStore, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{users: users, cost: bcrypt.DefaultCost, logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidateAccount checks the first registration step.
func ValidateAccount(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return ErrMissingName
	}
	return validateEmail(email)
}

// ValidatePassword checks the second registration step.
func ValidatePassword(password string) error {
	if CheckStrength(password).Level < Medium {
		return ErrWeakPassword
	}
	return nil
}

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.Count(email, "@") != 1 {
		return ErrInvalidEmail
	}
	return nil
}

// Login signs a user in. Registered emails must match their password; any
// other email signs in as the demo account.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	if s.users != nil {
		user, err := s.users.GetByEmail(ctx, email)
		switch {
		case err == nil:
			if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
				s.logger.Debug().Str("email", email).Msg("password mismatch")
				return nil, ErrInvalidCredentials
			}
			return user, nil
		case !errors.Is(err, db.ErrUserNotFound):
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
	}

	s.logger.Debug().Str("email", email).Msg("signing in demo account")
	return &models.User{Name: DemoName, Email: email, Initials: DemoInitials}, nil
}

// Register validates, hashes and stores a new account.
func (s *Service) Register(ctx context.Context, reg Registration) (*models.User, error) {
	if err := ValidateAccount(reg.Name, reg.Email); err != nil {
		return nil, err
	}
	if err := ValidatePassword(reg.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	name := strings.TrimSpace(reg.Name)
	user := &models.User{
		Name:         name,
		Email:        strings.TrimSpace(reg.Email),
		Initials:     models.Initials(name),
		PasswordHash: string(hash),
		StudyGoal:    reg.StudyGoal,
		DailyHours:   reg.DailyHours,
	}
	if s.users != nil {
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to register: %w", err)
		}
	}
	s.logger.Info().Str("user_id", user.ID).Msg("user registered")
	return user, nil
}
