// Package navigator tracks which of a fixed set of views is active.
package navigator

import (
	"fmt"

	"github.com/rs/zerolog"
)

// ViewID names a view.
type ViewID string

// Page views.
const (
	PageLanding ViewID = "landing"
	PageAuth    ViewID = "auth"
	PageApp     ViewID = "app"
)

// App shell sections.
const (
	SectionDashboard ViewID = "dashboard"
	SectionPlanner   ViewID = "planner"
	SectionCalendar  ViewID = "calendar"
	SectionAnalytics ViewID = "analytics"
	SectionSettings  ViewID = "settings"
)

// Pages lists the top-level pages in display order.
func Pages() []ViewID {
	return []ViewID{PageLanding, PageAuth, PageApp}
}

// Sections lists the app shell sections in display order.
func Sections() []ViewID {
	return []ViewID{SectionDashboard, SectionPlanner, SectionCalendar, SectionAnalytics, SectionSettings}
}

// Navigator holds exactly one active view out of a declared set.
type Navigator struct {
	name     string
	views    []ViewID
	active   map[ViewID]bool
	current  ViewID
	enter    map[ViewID]func()
	onChange func(from, to ViewID)
	logger   zerolog.Logger
}

// New creates a navigator with initial active. It fails when views is empty,
// contains duplicates or does not contain initial.
func New(name string, views []ViewID, initial ViewID, logger zerolog.Logger) (*Navigator, error) {
	if len(views) == 0 {
		return nil, fmt.Errorf("navigator %s: no views declared", name)
	}
	n := &Navigator{
		name:   name,
		views:  append([]ViewID(nil), views...),
		active: make(map[ViewID]bool, len(views)),
		enter:  make(map[ViewID]func()),
		logger: logger.With().Str("navigator", name).Logger(),
	}
	for _, id := range views {
		if _, dup := n.active[id]; dup {
			return nil, fmt.Errorf("navigator %s: duplicate view %q", name, id)
		}
		n.active[id] = false
	}
	if !n.Has(initial) {
		return nil, fmt.Errorf("navigator %s: initial view %q not declared", name, initial)
	}
	n.active[initial] = true
	n.current = initial
	return n, nil
}

// OnEnter registers fn to run each time id is navigated to.
func (n *Navigator) OnEnter(id ViewID, fn func()) {
	n.enter[id] = fn
}

// OnChange registers fn to run after every successful navigation.
func (n *Navigator) OnChange(fn func(from, to ViewID)) {
	n.onChange = fn
}

// NavigateTo deactivates every view, activates id and runs its enter hook
// once. Unknown ids are a logged no-op and return false.
func (n *Navigator) NavigateTo(id ViewID) bool {
	if !n.Has(id) {
		n.logger.Debug().Str("view", string(id)).Msg("navigation to unknown view ignored")
		return false
	}

	from := n.current
	for view := range n.active {
		n.active[view] = false
	}
	n.active[id] = true
	n.current = id

	if fn := n.enter[id]; fn != nil {
		fn()
	}
	if n.onChange != nil {
		n.onChange(from, id)
	}
	n.logger.Debug().Str("from", string(from)).Str("to", string(id)).Msg("navigated")
	return true
}

// Current returns the active view.
func (n *Navigator) Current() ViewID { return n.current }

// IsActive reports whether id is the active view.
func (n *Navigator) IsActive(id ViewID) bool { return n.active[id] }

// Views returns the declared views.
func (n *Navigator) Views() []ViewID {
	return append([]ViewID(nil), n.views...)
}

// Has reports whether id is declared.
func (n *Navigator) Has(id ViewID) bool {
	_, ok := n.active[id]
	return ok
}

// Neighbor returns the view delta positions from the current one in
// declaration order, wrapping around in both directions.
func (n *Navigator) Neighbor(delta int) ViewID {
	size := len(n.views)
	for i, id := range n.views {
		if id == n.current {
			return n.views[((i+delta)%size+size)%size]
		}
	}
	return n.views[0]
}
