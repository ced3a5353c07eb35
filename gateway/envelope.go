package gateway

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// Envelope is the wrapper the backend returns on every call. All optional
// fields may appear in combination; callers check Success first.
type Envelope struct {
	Success bool              `json:"success"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Error   string            `json:"error,omitempty"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Code    string            `json:"code,omitempty"`
}

// DecodeData unmarshals the data payload into v.
func (e *Envelope) DecodeData(v any) error {
	if len(e.Data) == 0 {
		return errors.New("[Envelope.DecodeData] no data payload")
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return errors.Wrap(err, "[Envelope.DecodeData] Unmarshal")
	}
	return nil
}

// HasFieldErrors reports whether the backend returned field-scoped errors.
func (e *Envelope) HasFieldErrors() bool {
	return len(e.Errors) > 0
}

// DisplayMessage picks the general message to show for a failed envelope:
// error, then message, then the machine-readable code, then a generic
// fallback. Field-scoped errors are handled separately by the form
// controllers, which attach them to their fields.
func (e *Envelope) DisplayMessage(fallback string) string {
	switch {
	case e.Error != "":
		return e.Error
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	}
	return fallback
}

func networkErrorEnvelope() *Envelope {
	return &Envelope{
		Success: false,
		Error:   "Network error. Please try again.",
	}
}
