package auth

// loginErrorMappings translates backend error tokens into user-facing
// strings. Unknown tokens pass through verbatim; an absent token falls back
// to a generic failure message.
var loginErrorMappings = map[string]string{
	"Invalid client":        "Authentication service configuration error. Please contact support.",
	"User not found":        "No account found with this email address. Please check your email or sign up.",
	"Invalid credentials":   "Incorrect email or password. Please try again.",
	"Account locked":        "Your account has been temporarily locked due to multiple failed login attempts. Please try again later.",
	"Email not verified":    "Please verify your email address before signing in. Check your inbox for the verification link.",
	"Account disabled":      "Your account has been disabled. Please contact support for assistance.",
	"Invalid password":      "Incorrect password. Please try again.",
	"Authentication failed": "Login failed. Please check your email and password.",
}

const (
	loginFallbackMessage    = "Login failed. Please try again."
	registerFallbackMessage = "Registration failed. Please try again."
	networkErrorMessage     = "Network error. Please try again."
	fixErrorsBelowMessage   = "Please fix the errors below and try again."
)

// MapLoginError translates a backend login error token to its user-facing string.
func MapLoginError(backendError string) string {
	if mapped, ok := loginErrorMappings[backendError]; ok {
		return mapped
	}
	if backendError != "" {
		return backendError
	}
	return loginFallbackMessage
}
