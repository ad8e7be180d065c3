package utils

import "sync"

// KeyMutex provides mutual exclusion per string key. Locks for distinct keys
// are independent, so operations on different keys never block each other.
//
// Entries are created on first use and kept for the lifetime of the KeyMutex;
// the key space is expected to be small (one entry per application).
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyMutex constructs an empty [KeyMutex].
func NewKeyMutex() *KeyMutex {
	return &KeyMutex{
		locks: make(map[string]*sync.Mutex),
	}
}

// Lock acquires the mutex for key, creating it on first use.
func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
}

// Unlock releases the mutex for key. Unlocking a key that was never locked
// panics, same as sync.Mutex.
func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	lock, ok := k.locks[key]
	k.mu.Unlock()

	if !ok {
		panic("utils: unlock of unknown key " + key)
	}
	lock.Unlock()
}
