// internal/app/system/locks/locks.go
//
// Package locks provides a keyed try-lock used to keep at most one save in
// flight per org unit. A superseding click while a save is pending is
// rejected rather than raced.
package locks

import "sync"

// Keyed is a set of independent locks addressed by int64 key.
// The zero value is not usable; call New.
type Keyed struct {
	mu   sync.Mutex
	held map[int64]struct{}
}

func New() *Keyed {
	return &Keyed{held: make(map[int64]struct{})}
}

// TryLock acquires the lock for key if it is free. Returns false when the
// key is already held.
func (k *Keyed) TryLock(key int64) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if _, busy := k.held[key]; busy {
		return false
	}
	k.held[key] = struct{}{}
	return true
}

// Unlock releases the lock for key. Unlocking a free key is a no-op.
func (k *Keyed) Unlock(key int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.held, key)
}

// TryLockAll acquires every key or none: on the first busy key it releases
// what it took and returns false. Used by bulk saves so a batch never
// interleaves with a single-unit save.
func (k *Keyed) TryLockAll(keys []int64) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		if _, busy := k.held[key]; busy {
			for _, took := range keys {
				if took == key {
					break
				}
				delete(k.held, took)
			}
			return false
		}
		k.held[key] = struct{}{}
	}
	return true
}

// UnlockAll releases every key.
func (k *Keyed) UnlockAll(keys []int64) {
	k.mu.Lock()
	defer k.mu.Unlock()
	for _, key := range keys {
		delete(k.held, key)
	}
}
