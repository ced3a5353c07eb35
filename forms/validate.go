package forms

import (
	"regexp"
)

var emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail checks the address against the sign-up email pattern.
func IsValidEmail(email string) bool {
	return emailRegexp.MatchString(email)
}

// IsValidPassword checks the registration password rules: at least 8
// characters with at least one lowercase letter, one uppercase letter and
// one digit.
func IsValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	classes := characterClasses(password)
	return classes.lower && classes.upper && classes.digit
}

type passwordClasses struct {
	lower  bool
	upper  bool
	digit  bool
	symbol bool
}

func characterClasses(password string) passwordClasses {
	classes := passwordClasses{}
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z':
			classes.lower = true
		case c >= 'A' && c <= 'Z':
			classes.upper = true
		case c >= '0' && c <= '9':
			classes.digit = true
		default:
			classes.symbol = true
		}
	}
	return classes
}

// StrengthLevel buckets a password strength score.
type StrengthLevel string

const (
	StrengthWeak   StrengthLevel = "weak"
	StrengthMedium StrengthLevel = "medium"
	StrengthStrong StrengthLevel = "strong"
)

// Strength is the score shown next to the registration password field.
type Strength struct {
	Score int
	Level StrengthLevel
	Text  string
}

// PasswordStrength scores a password 0-5: one point each for length >= 8,
// a lowercase letter, an uppercase letter, a digit and a symbol.
// Scores of 2 or less are weak, 3 is medium, 4 and above strong.
func PasswordStrength(password string) Strength {
	score := 0
	if len(password) >= 8 {
		score++
	}
	classes := characterClasses(password)
	if classes.lower {
		score++
	}
	if classes.upper {
		score++
	}
	if classes.digit {
		score++
	}
	if classes.symbol {
		score++
	}

	strength := Strength{Score: score}
	switch {
	case score <= 2:
		strength.Level = StrengthWeak
		strength.Text = "Weak password"
	case score == 3:
		strength.Level = StrengthMedium
		strength.Text = "Medium password"
	default:
		strength.Level = StrengthStrong
		strength.Text = "Strong password"
	}
	return strength
}
