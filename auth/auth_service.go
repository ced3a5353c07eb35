// Package auth implements the client side of the identity-provider HTTP
// contract: login, registration, password reset, logout, current-user fetch
// and the brokered OAuth provider flow. It owns no transport details beyond
// endpoint shapes; those live in the gateway.
package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-auth-client/gateway"
	"github.com/jrsteele09/go-auth-client/internal/config"
	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/jrsteele09/go-auth-client/users"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// AuthData is the payload returned by login and OAuth callback calls.
type AuthData struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	User         *users.User `json:"user"`
}

// RegisterRequest carries the registration form payload.
type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	ClientID  string `json:"clientId"`
}

// Service wraps the auth endpoints of the identity provider.
type Service struct {
	gateway      *gateway.Client
	store        *session.Store
	clientID     string
	clientSecret string
	logger       zerolog.Logger
}

type ServiceOption func(*Service)

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(cfg config.ClientConfig, gatewayClient *gateway.Client, store *session.Store, options ...ServiceOption) (*Service, error) {
	if cfg == nil {
		return nil, errors.New("[auth.NewService] config is required")
	}
	if gatewayClient == nil {
		return nil, errors.New("[auth.NewService] gateway client is required")
	}
	if store == nil {
		return nil, errors.New("[auth.NewService] session store is required")
	}

	service := &Service{
		gateway:      gatewayClient,
		store:        store,
		clientID:     cfg.GetClientID(),
		clientSecret: cfg.GetClientSecret(),
		logger:       zerolog.Nop(),
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Login authenticates with email and password. On success the token pair is
// persisted and the returned user is attached to the session. On failure the
// returned error is a *FormError carrying the user-facing message from the
// login error-mapping table.
func (s *Service) Login(ctx context.Context, email, password string) (*users.User, error) {
	envelope, err := s.gateway.Post(ctx, "/auth/login", map[string]string{
		"email":        email,
		"password":     password,
		"clientId":     s.clientID,
		"clientSecret": s.clientSecret,
	})
	if err != nil {
		return nil, &FormError{Message: networkErrorMessage}
	}

	if !envelope.Success {
		return nil, &FormError{Message: loginFailureMessage(envelope)}
	}

	data := AuthData{}
	if err := envelope.DecodeData(&data); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] decode auth data")
	}
	if err := s.adoptAuthData(data); err != nil {
		return nil, errors.Wrap(err, "[Service.Login]")
	}
	return data.User, nil
}

// loginFailureMessage picks the user-facing failure text: a message and an
// error token combine, a lone error token goes through the mapping table,
// a lone message is shown verbatim.
func loginFailureMessage(envelope *gateway.Envelope) string {
	switch {
	case envelope.Message != "" && envelope.Error != "":
		return envelope.Message + ": " + envelope.Error
	case envelope.Error != "":
		return MapLoginError(envelope.Error)
	case envelope.Message != "":
		return envelope.Message
	}
	return loginFallbackMessage
}

// registerFieldMappings maps lowercased server field names onto the form's
// field names.
var registerFieldMappings = map[string]string{
	"password":  "password",
	"email":     "email",
	"firstname": "firstName",
	"lastname":  "lastName",
}

// Register creates an account. It does not log the user in; the caller
// shows a verification prompt and returns to the login view. Failures come
// back as a *FormError with field-scoped errors where the backend supplied
// them.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	req.ClientID = s.clientID

	envelope, err := s.gateway.Post(ctx, "/auth/register", req)
	if err != nil {
		return &FormError{Message: registerFallbackMessage}
	}
	if envelope.Success {
		return nil
	}
	return registrationError(envelope)
}

// registrationError interprets a failed registration envelope: field errors
// first, then the general error, then the message, then a fallback. The
// EMAIL_ALREADY_EXISTS and WEAK_PASSWORD codes attach extra field errors on
// top of whichever branch applied.
func registrationError(envelope *gateway.Envelope) *FormError {
	formErr := &FormError{}

	switch {
	case envelope.HasFieldErrors():
		for field, message := range envelope.Errors {
			target := field
			if mapped, ok := registerFieldMappings[strings.ToLower(field)]; ok {
				target = mapped
			}
			formErr.FieldError(target, message)
		}
		formErr.Message = fixErrorsBelowMessage
	case envelope.Error != "":
		formErr.Message = envelope.Error
	case envelope.Message != "":
		formErr.Message = envelope.Message
	default:
		formErr.Message = registerFallbackMessage
	}

	switch envelope.Code {
	case "EMAIL_ALREADY_EXISTS":
		formErr.FieldError("email", "This email is already registered. Please use a different email or try signing in.")
	case "WEAK_PASSWORD":
		formErr.FieldError("password", "Password is too weak. Please use a stronger password.")
	}

	return formErr
}

// PasswordReset requests a reset link for the given email.
func (s *Service) PasswordReset(ctx context.Context, email string) error {
	envelope, err := s.gateway.Post(ctx, "/auth/password-reset", map[string]string{"email": email})
	if err != nil {
		return &FormError{Message: networkErrorMessage}
	}
	if !envelope.Success {
		return &FormError{Message: envelope.DisplayMessage("Password reset failed")}
	}
	return nil
}

// Logout tells the backend to invalidate the session and clears the local
// session regardless of whether that call succeeded.
func (s *Service) Logout(ctx context.Context) error {
	_, callErr := s.gateway.Post(ctx, "/auth/logout", nil)
	if callErr != nil {
		s.logger.Warn().Err(callErr).Msg("Logout call failed, clearing local session anyway")
	}

	if err := s.store.Clear(); err != nil {
		return errors.Wrap(err, "[Service.Logout] clear session")
	}
	return nil
}

// CurrentUser fetches /users/me and attaches the result to the session.
// Until this succeeds a loaded token pair is not considered authenticated.
func (s *Service) CurrentUser(ctx context.Context) (*users.User, error) {
	envelope, err := s.gateway.Get(ctx, "/users/me")
	if err != nil {
		return nil, err
	}
	if !envelope.Success {
		return nil, errors.Wrap(interrors.ErrNotAuthenticated, envelope.DisplayMessage("failed to fetch user"))
	}

	user := &users.User{}
	if err := envelope.DecodeData(user); err != nil {
		return nil, errors.Wrap(err, "[Service.CurrentUser] decode user")
	}
	if err := s.store.SetUser(user); err != nil {
		return nil, errors.Wrap(err, "[Service.CurrentUser]")
	}
	return user, nil
}

func (s *Service) adoptAuthData(data AuthData) error {
	if err := s.store.Save(session.Tokens{
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
	}); err != nil {
		return errors.Wrap(err, "save tokens")
	}
	if err := s.store.SetUser(data.User); err != nil {
		return errors.Wrap(err, "set user")
	}
	return nil
}
