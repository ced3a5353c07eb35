// Package filestorage persists session tokens in an encrypted file. It is
// the headless counterpart of the browser's localStorage: a CLI or daemon
// keeps credentials on disk between runs, so they are sealed with a
// passphrase-derived key rather than written in the clear.
package filestorage

import (
	"crypto/rand"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/pkg/errors"
	"golang.org/x/crypto/nacl/secretbox"
	"golang.org/x/crypto/scrypt"
)

const (
	fileName  = "tokens.dat"
	saltLen   = 32
	nonceLen  = 24
	keyLen    = 32
	scryptN   = 1 << 15
	scryptR   = 8
	scryptP   = 1
	fileperms = 0o600
)

var _ session.Storage = (*Storage)(nil)

// Storage implements session.Storage on top of a single sealed file.
// Every mutation rewrites the whole file; the value set is two short
// strings, so this is not a throughput concern.
type Storage struct {
	path       string
	passphrase []byte

	lock sync.Mutex
}

func New(dataFolder, passphrase string) (*Storage, error) {
	if passphrase == "" {
		return nil, errors.New("[filestorage.New] passphrase is required")
	}
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestorage.New] MkdirAll")
	}
	return &Storage{
		path:       filepath.Join(dataFolder, fileName),
		passphrase: []byte(passphrase),
	}, nil
}

func (s *Storage) Get(key string) (string, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	value, ok := values[key]
	if !ok {
		return "", interrors.ErrKeyNotFound
	}
	return value, nil
}

func (s *Storage) Set(key, value string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value
	return s.write(values)
}

func (s *Storage) Delete(key string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	delete(values, key)
	return s.write(values)
}

func (s *Storage) read() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[filestorage.read] ReadFile")
	}
	if len(raw) < saltLen+nonceLen {
		return nil, errors.New("[filestorage.read] file truncated")
	}

	salt := raw[:saltLen]
	var nonce [nonceLen]byte
	copy(nonce[:], raw[saltLen:saltLen+nonceLen])
	sealed := raw[saltLen+nonceLen:]

	key, err := s.deriveKey(salt)
	if err != nil {
		return nil, err
	}

	plaintext, ok := secretbox.Open(nil, sealed, &nonce, key)
	if !ok {
		return nil, errors.New("[filestorage.read] decryption failed, wrong passphrase or corrupt file")
	}

	values := map[string]string{}
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, errors.Wrap(err, "[filestorage.read] Unmarshal")
	}
	return values, nil
}

func (s *Storage) write(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "[filestorage.write] Marshal")
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return errors.Wrap(err, "[filestorage.write] rand salt")
	}
	var nonce [nonceLen]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return errors.Wrap(err, "[filestorage.write] rand nonce")
	}

	key, err := s.deriveKey(salt)
	if err != nil {
		return err
	}

	sealed := secretbox.Seal(nil, plaintext, &nonce, key)

	out := make([]byte, 0, saltLen+nonceLen+len(sealed))
	out = append(out, salt...)
	out = append(out, nonce[:]...)
	out = append(out, sealed...)

	if err := os.WriteFile(s.path, out, fileperms); err != nil {
		return errors.Wrap(err, "[filestorage.write] WriteFile")
	}
	return nil
}

func (s *Storage) deriveKey(salt []byte) (*[keyLen]byte, error) {
	derived, err := scrypt.Key(s.passphrase, salt, scryptN, scryptR, scryptP, keyLen)
	if err != nil {
		return nil, errors.Wrap(err, "[filestorage.deriveKey] scrypt")
	}
	var key [keyLen]byte
	copy(key[:], derived)
	return &key, nil
}
