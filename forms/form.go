// Package forms owns per-form field state, the local validation rules, and
// the submission state machine shared by the login, registration,
// password-reset and budget forms.
package forms

import (
	"strings"
	"sync"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
)

// State is a form's position in the submission lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateSuccess    State = "success"
	StateFailed     State = "failed"
)

// Form holds field values, field-level and form-level errors, and the
// submission state. Success and Failed are terminal for a submission
// attempt; editing any field returns the form to Idle.
type Form struct {
	mu          sync.Mutex
	state       State
	fields      map[string]string
	checkboxes  map[string]bool
	fieldErrors map[string]string
	formError   string
}

func NewForm() *Form {
	return &Form{
		state:       StateIdle,
		fields:      map[string]string{},
		checkboxes:  map[string]bool{},
		fieldErrors: map[string]string{},
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SetField stores a field value. Editing after a terminal state returns the
// form to Idle for the next attempt.
func (f *Form) SetField(name, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields[name] = value
	if f.state == StateSuccess || f.state == StateFailed {
		f.state = StateIdle
	}
}

// Field returns the trimmed value of a field.
func (f *Form) Field(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return strings.TrimSpace(f.fields[name])
}

// RawField returns the field value without trimming (passwords).
func (f *Form) RawField(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields[name]
}

func (f *Form) SetChecked(name string, checked bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkboxes[name] = checked
	if f.state == StateSuccess || f.state == StateFailed {
		f.state = StateIdle
	}
}

func (f *Form) Checked(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.checkboxes[name]
}

// FieldErrors returns a copy of the field-scoped error map.
func (f *Form) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	errs := make(map[string]string, len(f.fieldErrors))
	for field, message := range f.fieldErrors {
		errs[field] = message
	}
	return errs
}

func (f *Form) FieldError(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors[name]
}

func (f *Form) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formError
}

// ClearErrors removes every field-level and form-level error.
func (f *Form) ClearErrors() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fieldErrors = map[string]string{}
	f.formError = ""
}

// Reset returns the form to a blank Idle state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateIdle
	f.fields = map[string]string{}
	f.checkboxes = map[string]bool{}
	f.fieldErrors = map[string]string{}
	f.formError = ""
}

// beginSubmit moves the form into Validating. A submission already in
// flight is rejected, which is the submit-control-disabled rule.
func (f *Form) beginSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateSubmitting {
		return interrors.ErrSubmissionInFlight
	}
	f.state = StateValidating
	f.fieldErrors = map[string]string{}
	f.formError = ""
	return nil
}

func (f *Form) submitting() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateSubmitting
}

func (f *Form) succeed() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateSuccess
}

func (f *Form) fail(formError string, fieldErrors map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = StateFailed
	f.formError = formError
	for field, message := range fieldErrors {
		f.fieldErrors[field] = message
	}
}
