// Package models defines the core data types for StudyMind.
package models

// Difficulty grades a subject.
type Difficulty string

const (
	DifficultyLow    Difficulty = "Low"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHigh   Difficulty = "High"
)

// Subject is a course the student is preparing for.
type Subject struct {
	ID             int        `json:"id" yaml:"id"`
	Name           string     `json:"name" yaml:"name"`
	Difficulty     Difficulty `json:"difficulty" yaml:"difficulty"`
	HoursAllocated int        `json:"hours_allocated" yaml:"hours_allocated"`
	// Progress is a percentage in [0, 100].
	Progress int `json:"progress" yaml:"progress"`
}

// StudySession is a past study block.
type StudySession struct {
	Date      string `json:"date" yaml:"date"`
	Subject   string `json:"subject" yaml:"subject"`
	Duration  int    `json:"duration" yaml:"duration"` // minutes
	Completed bool   `json:"completed" yaml:"completed"`
	// Score is nil for sessions that were not completed.
	Score *int `json:"score" yaml:"score"`
}

// Agent is one of the simulated planning assistants.
type Agent struct {
	Name       string `json:"name" yaml:"name"`
	Role       string `json:"role" yaml:"role"`
	Specialty  string `json:"specialty" yaml:"specialty"`
	Confidence int    `json:"confidence" yaml:"confidence"`
	Active     bool   `json:"active" yaml:"active"`
}

// UserStats summarizes the student's history.
type UserStats struct {
	TotalStudyHours int `json:"total_study_hours" yaml:"total_study_hours"`
	StreakDays      int `json:"streak_days" yaml:"streak_days"`
	CompletionRate  int `json:"completion_rate" yaml:"completion_rate"`
	AverageScore    int `json:"average_score" yaml:"average_score"`
	GoalsAchieved   int `json:"goals_achieved" yaml:"goals_achieved"`
	TotalGoals      int `json:"total_goals" yaml:"total_goals"`
}

// Insight is a canned observation attributed to an agent.
type Insight struct {
	Agent      string `json:"agent" yaml:"agent"`
	Text       string `json:"insight" yaml:"insight"`
	Confidence int    `json:"confidence" yaml:"confidence"`
}

// UpcomingSession is a scheduled study block.
type UpcomingSession struct {
	Date     string `json:"date" yaml:"date"`
	Time     string `json:"time" yaml:"time"`
	Subject  string `json:"subject" yaml:"subject"`
	Duration int    `json:"duration" yaml:"duration"` // minutes
	Type     string `json:"type" yaml:"type"`
}

// Snapshot is the read-only sample data set loaded at startup.
type Snapshot struct {
	Subjects         []Subject         `json:"subjects" yaml:"subjects"`
	StudySessions    []StudySession    `json:"study_sessions" yaml:"study_sessions"`
	Agents           []Agent           `json:"ai_agents" yaml:"ai_agents"`
	UserStats        UserStats         `json:"user_stats" yaml:"user_stats"`
	Insights         []Insight         `json:"recent_insights" yaml:"recent_insights"`
	UpcomingSessions []UpcomingSession `json:"upcoming_sessions" yaml:"upcoming_sessions"`
}

// SubjectNames returns the subject names in seed order.
func (s *Snapshot) SubjectNames() []string {
	names := make([]string, len(s.Subjects))
	for i, subject := range s.Subjects {
		names[i] = subject.Name
	}
	return names
}

// Validate checks the snapshot for missing or out-of-range values.
func (s *Snapshot) Validate() error {
	validation := &ValidationErrors{}
	if len(s.Subjects) == 0 {
		validation.AddMessage("subjects", "at least one subject is required")
	}
	seen := make(map[int]struct{}, len(s.Subjects))
	for _, subject := range s.Subjects {
		if subject.Name == "" {
			validation.AddMessage("subjects.name", "subject name is required")
		}
		if subject.Progress < 0 || subject.Progress > 100 {
			validation.AddMessage("subjects.progress", "progress must be between 0 and 100")
		}
		if _, ok := seen[subject.ID]; ok {
			validation.AddMessage("subjects.id", "subject ids must be unique")
		}
		seen[subject.ID] = struct{}{}
	}
	for _, agent := range s.Agents {
		if agent.Name == "" {
			validation.AddMessage("ai_agents.name", "agent name is required")
		}
	}
	return validation.Err()
}
