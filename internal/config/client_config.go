package config

// ClientConfig describes how the client identifies itself to the identity provider.
type ClientConfig interface {
	GetBaseURL() string
	GetClientID() string
	GetClientSecret() string
}

type Client struct{}

var _ ClientConfig = Client{}

// GetBaseURL returns the base URL of the identity-provider API
// (e.g. "http://localhost:8082/api"). All endpoint paths are relative to it.
func (Client) GetBaseURL() string {
	return GetEnv("IDP_BASE_URL", "http://localhost:8082/api")
}

func (Client) GetClientID() string {
	return GetEnv("IDP_CLIENT_ID", "No-Client-Id-provided")
}

func (Client) GetClientSecret() string {
	return GetEnv("IDP_CLIENT_SECRET", "")
}
