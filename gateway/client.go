// Package gateway wraps outbound HTTP calls to the identity-provider and
// budget APIs. It attaches bearer tokens from the session store, decodes the
// response envelope, and performs a single-shot token refresh and retry when
// an authenticated call comes back 401.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const refreshEndpoint = "/auth/refresh"

// Config is the part of the client configuration the gateway needs.
type Config interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
}

// Client issues envelope-shaped calls against a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *session.Store
	timeout    time.Duration
	logger     zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient substitutes the underlying transport (primarily for tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg Config, store *session.Store, options ...Option) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("[gateway.New] config is required")
	}
	if store == nil {
		return nil, errors.New("[gateway.New] session store is required")
	}

	client := &Client{
		baseURL:    cfg.GetBaseURL(),
		httpClient: http.DefaultClient,
		store:      store,
		timeout:    cfg.GetRequestTimeout(),
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// Call issues a single request. body, when non-nil, is serialized as JSON.
//
// Transport failures and timeouts return an error from the network taxonomy
// alongside a synthesized envelope. Backend failures with a decodable body
// return the envelope with Success=false and no error. A 401 on an
// authenticated call triggers exactly one refresh and one retry; if the
// refresh fails the session is cleared and ErrSessionExpired tells the
// caller to redirect to login. A 401 that survives the retry is surfaced as
// ErrUnauthorized, never a second refresh.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) (*Envelope, error) {
	accessToken := c.store.AccessToken()

	envelope, status, err := c.do(ctx, method, endpoint, body, accessToken)
	if err != nil {
		return envelope, err
	}

	if status != http.StatusUnauthorized || accessToken == "" {
		return envelope, nil
	}

	// Authenticated call came back 401: one refresh, one retry.
	newToken, err := c.refresh(ctx)
	if err != nil {
		c.logger.Warn().Str("endpoint", endpoint).Err(err).Msg("Token refresh failed, clearing session")
		if clearErr := c.store.Clear(); clearErr != nil {
			c.logger.Error().Err(clearErr).Msg("Failed to clear session")
		}
		return envelope, interrors.ErrSessionExpired
	}

	if err := c.store.UpdateAccessToken(newToken); err != nil {
		return envelope, errors.Wrap(err, "[Client.Call] UpdateAccessToken")
	}

	envelope, status, err = c.do(ctx, method, endpoint, body, newToken)
	if err != nil {
		return envelope, err
	}
	if status == http.StatusUnauthorized {
		return envelope, interrors.ErrUnauthorized
	}
	return envelope, nil
}

func (c *Client) Get(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Call(ctx, http.MethodGet, endpoint, nil)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Call(ctx, http.MethodPost, endpoint, body)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any) (*Envelope, error) {
	return c.Call(ctx, http.MethodPut, endpoint, body)
}

func (c *Client) Delete(ctx context.Context, endpoint string) (*Envelope, error) {
	return c.Call(ctx, http.MethodDelete, endpoint, nil)
}

// do performs one HTTP round trip and decodes the envelope. It never
// refreshes; that policy lives in Call.
func (c *Client) do(ctx context.Context, method, endpoint string, body any, accessToken string) (*Envelope, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, 0, errors.Wrap(err, "[Client.do] Marshal body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, 0, errors.Wrap(err, "[Client.do] NewRequest")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return networkErrorEnvelope(), 0, errors.Wrap(interrors.ErrRequestTimeout, endpoint)
		}
		return networkErrorEnvelope(), 0, errors.Wrap(interrors.ErrNetwork, err.Error())
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkErrorEnvelope(), resp.StatusCode, errors.Wrap(interrors.ErrNetwork, err.Error())
	}

	c.logger.Debug().Str("method", method).Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("API call")

	envelope := &Envelope{}
	if err := json.Unmarshal(raw, envelope); err != nil {
		// Undecodable body: collapse to the generic network-error envelope.
		return networkErrorEnvelope(), resp.StatusCode, nil
	}
	return envelope, resp.StatusCode, nil
}

// refresh exchanges the stored refresh token for a new access token.
func (c *Client) refresh(ctx context.Context) (string, error) {
	refreshToken := c.store.RefreshToken()
	if refreshToken == "" {
		return "", interrors.ErrNoRefreshToken
	}

	// The refresh call itself carries no bearer token.
	envelope, status, err := c.do(ctx, http.MethodPost, refreshEndpoint, map[string]string{
		"refreshToken": refreshToken,
	}, "")
	if err != nil {
		return "", errors.Wrap(err, "[Client.refresh]")
	}
	if status < 200 || status >= 300 || !envelope.Success {
		return "", errors.New("[Client.refresh] refresh rejected: " + envelope.DisplayMessage("token refresh failed"))
	}

	var data struct {
		AccessToken string `json:"accessToken"`
	}
	if err := envelope.DecodeData(&data); err != nil {
		return "", errors.Wrap(err, "[Client.refresh] decode")
	}
	if data.AccessToken == "" {
		return "", errors.New("[Client.refresh] empty access token in refresh response")
	}

	c.logger.Info().Msg("Access token refreshed")
	return data.AccessToken, nil
}
