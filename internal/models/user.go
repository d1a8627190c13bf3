package models

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// User is the signed-in (or registered) student.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Initials     string    `json:"initials"`
	PasswordHash string    `json:"-"`
	StudyGoal    string    `json:"study_goal,omitempty"`
	DailyHours   int       `json:"daily_hours,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Initials returns the upper-cased first letter of each word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
