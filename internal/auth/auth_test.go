package auth

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/opencode-ai/studymind/internal/db"
)

func setupService(t *testing.T) *Service {
	t.Helper()
	database, err := db.Open(context.Background(), db.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewService(db.NewUserRepository(database), zerolog.Nop(), WithCost(bcrypt.MinCost))
}

func TestCheckStrength(t *testing.T) {
	tests := []struct {
		password string
		score    int
		level    Level
	}{
		{"", 0, Weak},
		{"abc", 25, Weak},
		{"abcdefgh", 50, Medium},
		{"abcDEF", 50, Medium},
		{"abcdefgH", 75, Strong},
		{"Abcdefg1", 100, Strong},
		{"12345678", 50, Medium},
	}
	for _, tt := range tests {
		got := CheckStrength(tt.password)
		assert.Equal(t, tt.score, got.Score, tt.password)
		assert.Equal(t, tt.level, got.Level, tt.password)
	}
	assert.Equal(t, "Strong password", CheckStrength("Abcdefg1").Feedback())
}

func TestRegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	svc := setupService(t)

	user, err := svc.Register(ctx, Registration{
		Name:       "ada lovelace",
		Email:      "Ada@Example.com",
		Password:   "Analytic1",
		StudyGoal:  "exam",
		DailyHours: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, "AL", user.Initials)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "Analytic1", user.PasswordHash)

	got, err := svc.Login(ctx, "ada@example.com", "Analytic1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Register(ctx, Registration{Name: "Ada", Email: "ada@example.com", Password: "Analytic1"})
	require.ErrorIs(t, err, db.ErrUserAlreadyExists)
}

func TestLoginUnknownEmailIsDemo(t *testing.T) {
	svc := setupService(t)
	user, err := svc.Login(context.Background(), "someone@example.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, DemoName, user.Name)
	assert.Equal(t, DemoInitials, user.Initials)
	assert.Equal(t, "someone@example.com", user.Email)

	_, err = svc.Login(context.Background(), "", "x")
	require.ErrorIs(t, err, ErrMissingCredentials)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(nil, zerolog.Nop(), WithCost(bcrypt.MinCost))
	ctx := context.Background()

	_, err := svc.Register(ctx, Registration{Email: "a@b.c", Password: "Analytic1"})
	require.ErrorIs(t, err, ErrMissingName)

	_, err = svc.Register(ctx, Registration{Name: "A", Email: "nope", Password: "Analytic1"})
	require.ErrorIs(t, err, ErrInvalidEmail)

	_, err = svc.Register(ctx, Registration{Name: "A", Email: "a@b.c", Password: "abc"})
	require.ErrorIs(t, err, ErrWeakPassword)

	user, err := svc.Register(ctx, Registration{Name: "A B", Email: "a@b.c", Password: "abcdefgh"})
	require.NoError(t, err)
	assert.Equal(t, "AB", user.Initials)
}
