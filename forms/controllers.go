package forms

import (
	"context"

	"github.com/jrsteele09/go-auth-client/auth"
	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/users"
	"github.com/pkg/errors"
)

// User-facing messages shown by the controllers.
const (
	MsgEmailRequired     = "Email is required"
	MsgEmailInvalid      = "Please enter a valid email"
	MsgPasswordRequired  = "Password is required"
	MsgPasswordTooWeak   = "Password must be at least 8 characters with uppercase, lowercase, and number"
	MsgPasswordsNoMatch  = "Passwords do not match"
	MsgFirstNameRequired = "First name is required"
	MsgLastNameRequired  = "Last name is required"
	MsgTermsRequired     = "You must agree to the terms and conditions"
	MsgFixErrorsBelow    = "Please fix the errors below and try again."

	RegisterSuccessTitle   = "Account Created Successfully!"
	RegisterSuccessMessage = "Welcome! Your account has been created. Please check your email to verify your account, then you can sign in."
	ResetSuccessTitle      = "Reset Link Sent!"
	ResetSuccessMessage    = "Please check your email for password reset instructions."
)

// LoginService is the part of the auth service the login form needs.
// Narrow interfaces keep the controllers testable with fake transports.
type LoginService interface {
	Login(ctx context.Context, email, password string) (*users.User, error)
}

type RegisterService interface {
	Register(ctx context.Context, req auth.RegisterRequest) error
}

type ResetService interface {
	PasswordReset(ctx context.Context, email string) error
}

// LoginController drives the login form: local validation, a single gateway
// call per submission, and error placement.
type LoginController struct {
	*Form
	service LoginService
}

func NewLoginController(service LoginService) (*LoginController, error) {
	if service == nil {
		return nil, errors.New("[NewLoginController] service is required")
	}
	return &LoginController{Form: NewForm(), service: service}, nil
}

// Submit validates the form and, when clean, issues the login call.
// Validation failures surface every violated rule at once and never reach
// the network.
func (c *LoginController) Submit(ctx context.Context) (*users.User, error) {
	if err := c.beginSubmit(); err != nil {
		return nil, err
	}

	email := c.Field("email")
	password := c.RawField("password")

	fieldErrors := map[string]string{}
	switch {
	case email == "":
		fieldErrors["email"] = MsgEmailRequired
	case !IsValidEmail(email):
		fieldErrors["email"] = MsgEmailInvalid
	}
	if password == "" {
		fieldErrors["password"] = MsgPasswordRequired
	}
	if len(fieldErrors) > 0 {
		c.fail("", fieldErrors)
		return nil, interrors.ErrValidationFailed
	}

	c.submitting()
	user, err := c.service.Login(ctx, email, password)
	if err != nil {
		c.failFromError(err)
		return nil, err
	}
	c.succeed()
	return user, nil
}

// RegisterController drives the registration form.
type RegisterController struct {
	*Form
	service RegisterService
}

func NewRegisterController(service RegisterService) (*RegisterController, error) {
	if service == nil {
		return nil, errors.New("[NewRegisterController] service is required")
	}
	return &RegisterController{Form: NewForm(), service: service}, nil
}

// ValidatePasswordMatch is the real-time confirm-password check: it only
// fires once the confirmation field has content.
func (c *RegisterController) ValidatePasswordMatch() {
	password := c.RawField("password")
	confirm := c.RawField("confirmPassword")

	c.mu.Lock()
	defer c.mu.Unlock()
	if confirm != "" && password != confirm {
		c.fieldErrors["confirmPassword"] = MsgPasswordsNoMatch
	} else {
		delete(c.fieldErrors, "confirmPassword")
	}
}

func (c *RegisterController) Submit(ctx context.Context) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}

	firstName := c.Field("firstName")
	lastName := c.Field("lastName")
	email := c.Field("email")
	password := c.RawField("password")
	confirmPassword := c.RawField("confirmPassword")

	fieldErrors := map[string]string{}
	if firstName == "" {
		fieldErrors["firstName"] = MsgFirstNameRequired
	}
	if lastName == "" {
		fieldErrors["lastName"] = MsgLastNameRequired
	}
	switch {
	case email == "":
		fieldErrors["email"] = MsgEmailRequired
	case !IsValidEmail(email):
		fieldErrors["email"] = MsgEmailInvalid
	}
	switch {
	case password == "":
		fieldErrors["password"] = MsgPasswordRequired
	case !IsValidPassword(password):
		fieldErrors["password"] = MsgPasswordTooWeak
	}
	if password != confirmPassword {
		fieldErrors["confirmPassword"] = MsgPasswordsNoMatch
	}
	if !c.Checked("terms") {
		fieldErrors["terms"] = MsgTermsRequired
	}
	if len(fieldErrors) > 0 {
		c.fail(MsgFixErrorsBelow, fieldErrors)
		return interrors.ErrValidationFailed
	}

	c.submitting()
	err := c.service.Register(ctx, auth.RegisterRequest{
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		c.failFromError(err)
		return err
	}
	c.succeed()
	return nil
}

// ResetController drives the password-reset form.
type ResetController struct {
	*Form
	service ResetService
}

func NewResetController(service ResetService) (*ResetController, error) {
	if service == nil {
		return nil, errors.New("[NewResetController] service is required")
	}
	return &ResetController{Form: NewForm(), service: service}, nil
}

func (c *ResetController) Submit(ctx context.Context) error {
	if err := c.beginSubmit(); err != nil {
		return err
	}

	email := c.Field("email")
	if email == "" {
		c.fail("", map[string]string{"email": MsgEmailRequired})
		return interrors.ErrValidationFailed
	}

	c.submitting()
	if err := c.service.PasswordReset(ctx, email); err != nil {
		c.failFromError(err)
		return err
	}
	c.succeed()
	return nil
}

// failFromError places an auth.FormError's message and field errors onto
// the form; any other error becomes a bare form-level failure.
func (f *Form) failFromError(err error) {
	formErr := &auth.FormError{}
	if interrors.As(err, &formErr) {
		f.fail(formErr.Message, formErr.Fields)
		return
	}
	f.fail(err.Error(), nil)
}
