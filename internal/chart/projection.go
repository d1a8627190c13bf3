// Package chart builds chart projections over the sample data and draws them.
package chart

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opencode-ai/studymind/internal/models"
)

// ErrUnknownChart is returned for an unrecognised projection name.
var ErrUnknownChart = errors.New("unknown chart")

// ErrEmptyProjection is returned when there is nothing to draw.
var ErrEmptyProjection = errors.New("projection has no data")

// Series is one labelled list of values, aligned with Projection.Labels.
type Series struct {
	Label  string    `json:"label"`
	Values []float64 `json:"values"`
}

// Projection is a renderer-agnostic chart description.
type Projection struct {
	Name   string   `json:"name"`
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
	// Max pins the value axis. Zero scales to the largest value.
	Max float64 `json:"max,omitempty"`
}

// Validate checks that every series lines up with the labels.
func (p Projection) Validate() error {
	if len(p.Labels) == 0 || len(p.Series) == 0 {
		return ErrEmptyProjection
	}
	for _, s := range p.Series {
		if len(s.Values) != len(p.Labels) {
			return fmt.Errorf("series %q has %d values for %d labels", s.Label, len(s.Values), len(p.Labels))
		}
	}
	return nil
}

// Scale returns the axis maximum.
func (p Projection) Scale() float64 {
	if p.Max > 0 {
		return p.Max
	}
	max := 0.0
	for _, s := range p.Series {
		for _, v := range s.Values {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Projection names.
const (
	NameProgress    = "progress"
	NameWeekly      = "weekly"
	NamePerformance = "performance"
	NameHours       = "hours"
	NamePattern     = "pattern"
)

var builders = map[string]func(*models.Snapshot) Projection{
	NameProgress:    SubjectProgress,
	NameWeekly:      func(*models.Snapshot) Projection { return WeeklyHours() },
	NamePerformance: func(*models.Snapshot) Projection { return PerformanceTrend() },
	NameHours:       SubjectHours,
	NamePattern:     func(*models.Snapshot) Projection { return StudyPattern() },
}

// Names lists the available projections, sorted.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build returns the named projection.
func Build(name string, snapshot *models.Snapshot) (Projection, error) {
	build, ok := builders[name]
	if !ok {
		return Projection{}, fmt.Errorf("%w: %q", ErrUnknownChart, name)
	}
	return build(snapshot), nil
}

// Dashboard returns the projections shown on the dashboard.
func Dashboard(snapshot *models.Snapshot) []Projection {
	return []Projection{SubjectProgress(snapshot), WeeklyHours()}
}

// Analytics returns the projections shown on the analytics page.
func Analytics(snapshot *models.Snapshot) []Projection {
	return []Projection{PerformanceTrend(), SubjectHours(snapshot), StudyPattern()}
}

// SubjectProgress is completion percentage per subject.
func SubjectProgress(snapshot *models.Snapshot) Projection {
	p := Projection{Name: NameProgress, Title: "Subject Progress", Max: 100}
	values := []float64{}
	for _, s := range subjects(snapshot) {
		p.Labels = append(p.Labels, s.Name)
		values = append(values, float64(s.Progress))
	}
	p.Series = []Series{{Label: "Progress %", Values: values}}
	return p
}

// WeeklyHours is hours studied per weekday.
func WeeklyHours() Projection {
	return Projection{
		Name:   NameWeekly,
		Title:  "Weekly Study Hours",
		Labels: []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		Series: []Series{{Label: "Study Hours", Values: []float64{4, 6, 5, 8, 7, 3, 2}}},
	}
}

// PerformanceTrend is average score per week.
func PerformanceTrend() Projection {
	return Projection{
		Name:   NamePerformance,
		Title:  "Performance Trend",
		Labels: []string{"Week 1", "Week 2", "Week 3", "Week 4"},
		Series: []Series{{Label: "Average Score", Values: []float64{75, 82, 78, 84}}},
		Max:    100,
	}
}

// SubjectHours is the allocated hours distribution.
func SubjectHours(snapshot *models.Snapshot) Projection {
	p := Projection{Name: NameHours, Title: "Subject Hours Distribution"}
	values := []float64{}
	for _, s := range subjects(snapshot) {
		p.Labels = append(p.Labels, s.Name)
		values = append(values, float64(s.HoursAllocated))
	}
	p.Series = []Series{{Label: "Hours", Values: values}}
	return p
}

// StudyPattern is session count by time of day.
func StudyPattern() Projection {
	return Projection{
		Name:   NamePattern,
		Title:  "Study Pattern by Hour",
		Labels: []string{"6AM", "9AM", "12PM", "3PM", "6PM", "9PM"},
		Series: []Series{{Label: "Study Sessions", Values: []float64{2, 8, 5, 6, 4, 1}}},
	}
}

func subjects(snapshot *models.Snapshot) []models.Subject {
	if snapshot == nil {
		return nil
	}
	return snapshot.Subjects
}
