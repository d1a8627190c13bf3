package planner

import "math/rand"

// PlanDay is one weekday of a generated study plan.
type PlanDay struct {
	Day      string
	Sessions []string
}

// CalendarDay is one cell of the weekly calendar grid.
type CalendarDay struct {
	Label    string
	Number   int
	Sessions []string
}

var (
	weekdays     = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}
	calendarDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
)

// DefaultPlanSubjects is used when no subject was selected.
var DefaultPlanSubjects = []string{"Mathematics", "Physics", "Chemistry", "Biology"}

// GeneratePlan fills Monday through Friday with two or three sessions each,
// drawn from subjects.
func GeneratePlan(rng *rand.Rand, subjects []string) []PlanDay {
	if len(subjects) == 0 {
		subjects = DefaultPlanSubjects
	}
	plan := make([]PlanDay, len(weekdays))
	for i, day := range weekdays {
		count := rng.Intn(2) + 2
		sessions := make([]string, count)
		for j := range sessions {
			sessions[j] = subjects[rng.Intn(len(subjects))]
		}
		plan[i] = PlanDay{Day: day, Sessions: sessions}
	}
	return plan
}

// GenerateWeek builds a Mon..Sun grid with one to three sessions on
// weekdays and free weekends.
func GenerateWeek(rng *rand.Rand, subjects []string) []CalendarDay {
	week := make([]CalendarDay, len(calendarDays))
	for i, label := range calendarDays {
		day := CalendarDay{Label: label, Number: i + 1}
		if i < 5 && len(subjects) > 0 {
			count := rng.Intn(3) + 1
			for j := 0; j < count; j++ {
				day.Sessions = append(day.Sessions, subjects[rng.Intn(len(subjects))])
			}
		}
		week[i] = day
	}
	return week
}

// CountSessions totals the sessions in a plan.
func CountSessions(plan []PlanDay) int {
	n := 0
	for _, day := range plan {
		n += len(day.Sessions)
	}
	return n
}
