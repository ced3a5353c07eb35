package auth

// FormError carries everything a form needs to display a failed submission:
// a form-level message plus any field-scoped errors keyed by field name.
type FormError struct {
	Message string
	Fields  map[string]string
}

func (e *FormError) Error() string {
	return e.Message
}

// FieldError attaches (or overwrites) a field-scoped error.
func (e *FormError) FieldError(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
}
