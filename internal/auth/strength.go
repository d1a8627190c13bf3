package auth

// Level buckets a password score.
type Level int

const (
	Weak Level = iota
	Medium
	Strong
)

// String returns the level name.
func (l Level) String() string {
	switch l {
	case Medium:
		return "medium"
	case Strong:
		return "strong"
	default:
		return "weak"
	}
}

// Strength is the result of scoring a password.
type Strength struct {
	Score int
	Level Level
}

// Feedback is the text shown under the password field.
func (s Strength) Feedback() string {
	switch s.Level {
	case Medium:
		return "Medium password"
	case Strong:
		return "Strong password"
	default:
		return "Weak password"
	}
}

// Percent is the score as a 0..1 fraction, for progress bars.
func (s Strength) Percent() float64 {
	return float64(s.Score) / 100
}

// CheckStrength scores a password: 25 points each for length >= 8, a
// lowercase letter, an uppercase letter and a digit.
func CheckStrength(password string) Strength {
	var lower, upper, digit bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}

	score := 0
	if len([]rune(password)) >= 8 {
		score += 25
	}
	for _, ok := range []bool{lower, upper, digit} {
		if ok {
			score += 25
		}
	}

	level := Strong
	switch {
	case score < 50:
		level = Weak
	case score < 75:
		level = Medium
	}
	return Strength{Score: score, Level: level}
}
