package cli

import (
	"context"

	"github.com/opencode-ai/studymind/internal/db"
	"github.com/opencode-ai/studymind/internal/logging"
	"github.com/opencode-ai/studymind/internal/theme"
)

// session bundles the database-backed stores a command needs.
type session struct {
	db     *db.DB
	prefs  *db.PreferenceRepository
	users  *db.UserRepository
	events *db.EventRepository
	theme  *theme.Store
}

// backgroundDetector overrides terminal background detection when set.
var backgroundDetector func() bool

func openSession(ctx context.Context, opts ...theme.Option) (*session, error) {
	database, err := openDatabase(ctx)
	if err != nil {
		return nil, err
	}
	s := &session{
		db:     database,
		prefs:  db.NewPreferenceRepository(database),
		users:  db.NewUserRepository(database),
		events: db.NewEventRepository(database),
	}
	fallback := theme.Parse(currentConfig().TUI.Theme)
	opts = append([]theme.Option{theme.WithBackgroundDetector(backgroundDetector)}, opts...)
	s.theme, err = theme.NewStore(ctx, s.prefs, fallback, logging.Component("theme"), opts...)
	if err != nil {
		database.Close()
		return nil, err
	}
	return s, nil
}

func (s *session) Close() error {
	return s.db.Close()
}
