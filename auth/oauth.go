package auth

import (
	"context"
	"net/url"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/users"
	"github.com/pkg/errors"
)

// Provider identifies a brokered OAuth provider. The identity provider owns
// the actual provider credentials and token exchange; the client only
// fetches the authorize URL and hands back the code/state pair.
type Provider string

const (
	ProviderLinkedIn Provider = "linkedin"
	ProviderGoogle   Provider = "google"
)

// GenerateState produces the CSRF state parameter for an OAuth flow.
func GenerateState() string {
	return uuid.New().String()
}

// AuthorizeURL asks the backend for the provider's authorization URL.
// The LinkedIn route takes the client ID and state as query parameters;
// the Google route derives them server-side.
func (s *Service) AuthorizeURL(ctx context.Context, provider Provider, state string) (string, error) {
	var endpoint string
	switch provider {
	case ProviderLinkedIn:
		query := url.Values{}
		query.Set("clientId", s.clientID)
		query.Set("state", state)
		endpoint = "/oauth2/linkedin/authorize?" + query.Encode()
	case ProviderGoogle:
		endpoint = "/oauth2/google/auth"
	default:
		return "", errors.Errorf("[Service.AuthorizeURL] unknown provider %q", provider)
	}

	envelope, err := s.gateway.Get(ctx, endpoint)
	if err != nil {
		return "", errors.Wrap(err, "[Service.AuthorizeURL]")
	}
	if !envelope.Success {
		return "", errors.New("[Service.AuthorizeURL] " + envelope.DisplayMessage("failed to initiate "+string(provider)+" authentication"))
	}

	var redirectURL string
	if err := envelope.DecodeData(&redirectURL); err != nil {
		return "", errors.Wrap(err, "[Service.AuthorizeURL] decode redirect URL")
	}
	return redirectURL, nil
}

// ExchangeCallback posts the provider's code/state pair back to the identity
// provider and adopts the returned token pair and user.
func (s *Service) ExchangeCallback(ctx context.Context, provider Provider, code, state string) (*users.User, error) {
	query := url.Values{}
	query.Set("code", code)
	query.Set("state", state)
	query.Set("clientId", s.clientID)

	endpoint := "/oauth2/" + string(provider) + "/callback?" + query.Encode()

	envelope, err := s.gateway.Post(ctx, endpoint, nil)
	if err != nil {
		return nil, &FormError{Message: "Network error during " + string(provider) + " authentication"}
	}
	if !envelope.Success {
		return nil, &FormError{Message: envelope.DisplayMessage(string(provider) + " authentication failed")}
	}

	data := AuthData{}
	if err := envelope.DecodeData(&data); err != nil {
		return nil, errors.Wrap(err, "[Service.ExchangeCallback] decode auth data")
	}
	if err := s.adoptAuthData(data); err != nil {
		return nil, errors.Wrap(err, "[Service.ExchangeCallback]")
	}
	return data.User, nil
}
