package impl

import "sync"

// UserLocks serializes multi-step read-then-write flows per user. Checkout,
// cart upserts and the preferred-flag operations read state, compute and write
// back; two concurrent requests for the same user must not interleave between
// those steps. One shared instance is injected into every service so the
// exclusion covers cross-service flows too. Locking is partitioned by user id,
// so users never contend with each other.
type UserLocks struct {
	mu    sync.Mutex
	locks map[int64]*userLock
}

type userLock struct {
	mu   sync.Mutex
	refs int
}

func NewUserLocks() *UserLocks {
	return &UserLocks{locks: make(map[int64]*userLock)}
}

// Lock acquires the lock for a user id and returns the unlock function.
// Entries are reference counted and removed on release to keep the map from
// growing with one entry per user ever seen.
func (l *UserLocks) Lock(userID int64) func() {
	l.mu.Lock()
	entry, ok := l.locks[userID]
	if !ok {
		entry = &userLock{}
		l.locks[userID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}
