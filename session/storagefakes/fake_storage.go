package storagefakes

import (
	"sync"

	"github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
)

var _ session.Storage = (*FakeStorage)(nil)

// FakeStorage is an in-memory session.Storage for tests.
type FakeStorage struct {
	values map[string]string
	lock   sync.RWMutex

	// SetErr, when non-nil, is returned from every Set call.
	SetErr error
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{values: make(map[string]string)}
}

func (fs *FakeStorage) Get(key string) (string, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	value, ok := fs.values[key]
	if !ok {
		return "", errors.ErrKeyNotFound
	}
	return value, nil
}

func (fs *FakeStorage) Set(key, value string) error {
	if fs.SetErr != nil {
		return fs.SetErr
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.values[key] = value
	return nil
}

func (fs *FakeStorage) Delete(key string) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()
	delete(fs.values, key)
	return nil
}
