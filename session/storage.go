package session

// Keys under which the token pair is persisted. They match the browser
// client's localStorage keys, so either client can resume a session the
// other established.
const (
	AccessTokenKey  = "idp_access_token"
	RefreshTokenKey = "idp_refresh_token"
)

// Storage is the durable key-value medium behind the session store.
// Implementations must return errors.ErrKeyNotFound for absent keys.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}
