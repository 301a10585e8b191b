package service

import (
	"strings"
	"sync"
)

// assigneeLocks tracks which assignee keys have a reschedule in flight.
// Keys are folded to lower case to match the store's case-insensitive keys.
// A key is only present while it is held.
type assigneeLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newAssigneeLocks() *assigneeLocks {
	return &assigneeLocks{held: make(map[string]struct{})}
}

// tryAcquire takes key without blocking. ok is false when the key is held.
func (l *assigneeLocks) tryAcquire(key string) (release func(), ok bool) {
	key = strings.ToLower(key)

	l.mu.Lock()
	defer l.mu.Unlock()
	if _, busy := l.held[key]; busy {
		return nil, false
	}
	l.held[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, key)
			l.mu.Unlock()
		})
	}, true
}

// size is the number of keys currently held.
func (l *assigneeLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.held)
}
