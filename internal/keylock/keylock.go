// Package keylock serializes work per key. Every mutation of one order's
// cart state is a read-modify-write, so all writers for the same order id
// must run one at a time; different orders proceed in parallel.
package keylock

import "sync"

// KeyLock hands out one mutex per key on demand.
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*lockEntry
}

type lockEntry struct {
	sync.Mutex
	refs int
}

// New creates an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{locks: make(map[int64]*lockEntry)}
}

// Lock acquires the mutex for key, creating it if needed.
func (k *KeyLock) Lock(key int64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if !ok {
		e = &lockEntry{}
		k.locks[key] = e
	}
	e.refs++
	k.mu.Unlock()
	e.Mutex.Lock()
}

// Unlock releases the mutex for key and frees it once no one waits.
func (k *KeyLock) Unlock(key int64) {
	k.mu.Lock()
	e, ok := k.locks[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(k.locks, key)
		}
	}
	k.mu.Unlock()
	if ok {
		e.Mutex.Unlock()
	}
}

// size reports the number of live entries, for tests.
func (k *KeyLock) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
