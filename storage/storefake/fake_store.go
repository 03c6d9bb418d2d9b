package storefake

import (
	"errors"
	"sync"

	"github.com/oldbaker/go-storefront/storage"
)

var errWriteFailed = errors.New("storage write failed")

var _ storage.Store = (*FakeStore)(nil)

// FakeStore is an in-memory storage.Store for tests. FailWrites makes every
// Set/Delete return an error, for exercising degraded-storage paths.
type FakeStore struct {
	lock       sync.RWMutex
	values     map[string]string
	FailWrites bool
	WriteErr   error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		values: make(map[string]string),
	}
}

func (fs *FakeStore) Get(key string) (string, bool) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	value, ok := fs.values[key]
	return value, ok
}

func (fs *FakeStore) Set(key, value string) error {
	if fs.FailWrites {
		return fs.failure()
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()
	fs.values[key] = value
	return nil
}

func (fs *FakeStore) Delete(key string) error {
	if fs.FailWrites {
		return fs.failure()
	}
	fs.lock.Lock()
	defer fs.lock.Unlock()
	delete(fs.values, key)
	return nil
}

// Len reports the number of stored keys.
func (fs *FakeStore) Len() int {
	fs.lock.RLock()
	defer fs.lock.RUnlock()
	return len(fs.values)
}

func (fs *FakeStore) failure() error {
	if fs.WriteErr != nil {
		return fs.WriteErr
	}
	return errWriteFailed
}
