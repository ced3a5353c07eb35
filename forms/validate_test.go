package forms_test

import (
	"testing"

	"github.com/jrsteele09/go-auth-client/forms"
	"github.com/stretchr/testify/require"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"first.last@sub.example.org", true},
		{"a@b", false},
		{"a.com", false},
		{"", false},
		{"a b@c.com", false},
		{"@b.com", false},
	}

	for _, test := range tests {
		t.Run(test.email, func(t *testing.T) {
			require.Equal(t, test.valid, forms.IsValidEmail(test.email))
		})
	}
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		valid    bool
	}{
		{"abc", false},
		{"Abcdef12", true},
		{"abcdefgh", false}, // no uppercase, no digit
		{"ABCDEFG1", false}, // no lowercase
		{"Abcdefgh", false}, // no digit
		{"Abcdef1", false},  // too short
	}

	for _, test := range tests {
		t.Run(test.password, func(t *testing.T) {
			require.Equal(t, test.valid, forms.IsValidPassword(test.password))
		})
	}
}

func TestPasswordStrength(t *testing.T) {
	t.Run("short lowercase password is weak", func(t *testing.T) {
		strength := forms.PasswordStrength("abc")
		require.Equal(t, 1, strength.Score)
		require.Equal(t, forms.StrengthWeak, strength.Level)
		require.Equal(t, "Weak password", strength.Text)
	})

	t.Run("valid password without symbols is strong", func(t *testing.T) {
		strength := forms.PasswordStrength("Abcdef12")
		require.Equal(t, 4, strength.Score)
		require.Equal(t, forms.StrengthStrong, strength.Level)
		require.Equal(t, "Strong password", strength.Text)
	})

	t.Run("three criteria is medium", func(t *testing.T) {
		strength := forms.PasswordStrength("Abcdefgh")
		require.Equal(t, 3, strength.Score)
		require.Equal(t, forms.StrengthMedium, strength.Level)
		require.Equal(t, "Medium password", strength.Text)
	})

	t.Run("all criteria scores five", func(t *testing.T) {
		strength := forms.PasswordStrength("Abcdef1!")
		require.Equal(t, 5, strength.Score)
		require.Equal(t, forms.StrengthStrong, strength.Level)
	})

	t.Run("adding criteria never lowers the score", func(t *testing.T) {
		passwords := []string{"a", "abcdefgh", "Abcdefgh", "Abcdefg1", "Abcdef1!"}
		previous := -1
		for _, password := range passwords {
			score := forms.PasswordStrength(password).Score
			require.GreaterOrEqual(t, score, previous, password)
			previous = score
		}
	})
}
