package config

import (
	"time"
)

type HTTPConfig interface {
	GetRequestTimeout() time.Duration
}

type HTTP struct{}

var _ HTTPConfig = HTTP{}

// GetRequestTimeout bounds every outbound call. A hung request resolves to
// the network-error taxonomy instead of keeping a form in Submitting forever.
func (HTTP) GetRequestTimeout() time.Duration {
	raw := GetEnv("IDP_HTTP_TIMEOUT", "15s")
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 15 * time.Second
	}
	return d
}
