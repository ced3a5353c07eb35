package main

import (
	"sync"

	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
)

var _ session.Storage = (*memoryStorage)(nil)

// memoryStorage keeps tokens for the lifetime of the process, for demo runs
// without a storage passphrase configured.
type memoryStorage struct {
	values map[string]string
	lock   sync.RWMutex
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{values: make(map[string]string)}
}

func (ms *memoryStorage) Get(key string) (string, error) {
	ms.lock.RLock()
	defer ms.lock.RUnlock()
	value, ok := ms.values[key]
	if !ok {
		return "", interrors.ErrKeyNotFound
	}
	return value, nil
}

func (ms *memoryStorage) Set(key, value string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *memoryStorage) Delete(key string) error {
	ms.lock.Lock()
	defer ms.lock.Unlock()
	delete(ms.values, key)
	return nil
}
