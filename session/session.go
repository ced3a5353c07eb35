package session

import (
	"sync"

	"github.com/jrsteele09/go-auth-client/users"
	"github.com/pkg/errors"
)

// Tokens is the access/refresh token pair issued by the identity provider.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func (t Tokens) Complete() bool {
	return t.AccessToken != "" && t.RefreshToken != ""
}

// Store owns the client's cached authentication state: the token pair and
// the backend-owned user record. A locally loaded token pair without a
// fetched user is not considered authenticated, so stale or expired tokens
// are never trusted until a user fetch succeeds.
type Store struct {
	storage Storage

	mu     sync.RWMutex
	tokens Tokens
	user   *users.User
}

func NewStore(storage Storage) (*Store, error) {
	if storage == nil {
		return nil, errors.New("[NewStore] storage is required")
	}
	return &Store{storage: storage}, nil
}

// Load reads the persisted token pair from storage. The in-memory session is
// populated only when both tokens are present; a lone token is ignored.
// No network call is made and no user is attached.
func (s *Store) Load() (Tokens, bool) {
	accessToken, errAccess := s.storage.Get(AccessTokenKey)
	refreshToken, errRefresh := s.storage.Get(RefreshTokenKey)
	if errAccess != nil || errRefresh != nil {
		return Tokens{}, false
	}

	tokens := Tokens{AccessToken: accessToken, RefreshToken: refreshToken}
	if !tokens.Complete() {
		return Tokens{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	return tokens, true
}

// Save persists the token pair, overwriting any prior value.
func (s *Store) Save(tokens Tokens) error {
	if err := s.storage.Set(AccessTokenKey, tokens.AccessToken); err != nil {
		return errors.Wrap(err, "[Store.Save] access token")
	}
	if err := s.storage.Set(RefreshTokenKey, tokens.RefreshToken); err != nil {
		return errors.Wrap(err, "[Store.Save] refresh token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = tokens
	return nil
}

// Clear removes the persisted tokens and resets the in-memory session.
func (s *Store) Clear() error {
	errAccess := s.storage.Delete(AccessTokenKey)
	errRefresh := s.storage.Delete(RefreshTokenKey)

	s.mu.Lock()
	s.tokens = Tokens{}
	s.user = nil
	s.mu.Unlock()

	if errAccess != nil {
		return errors.Wrap(errAccess, "[Store.Clear] access token")
	}
	if errRefresh != nil {
		return errors.Wrap(errRefresh, "[Store.Clear] refresh token")
	}
	return nil
}

// IsAuthenticated reports whether both an access token and a fetched user
// are present in memory.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken != "" && s.user != nil
}

// SetUser attaches the backend-owned user record. A user may only be
// attached while an access token is held.
func (s *Store) SetUser(user *users.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user != nil && s.tokens.AccessToken == "" {
		return errors.New("[Store.SetUser] cannot attach a user without an access token")
	}
	s.user = user
	return nil
}

func (s *Store) User() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Tokens() Tokens {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens.RefreshToken
}

// UpdateAccessToken swaps in a freshly refreshed access token, keeping the
// current refresh token, and persists the new pair.
func (s *Store) UpdateAccessToken(accessToken string) error {
	s.mu.Lock()
	s.tokens.AccessToken = accessToken
	tokens := s.tokens
	s.mu.Unlock()

	if err := s.storage.Set(AccessTokenKey, tokens.AccessToken); err != nil {
		return errors.Wrap(err, "[Store.UpdateAccessToken] persist")
	}
	return nil
}
