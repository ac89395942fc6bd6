package sequence

import (
	"strconv"
	"sync"
)

// UserScope is the allocation scope for the global user id sequence.
const UserScope = "users"

// ExpenseScope returns the allocation scope for one user's transaction numbers.
func ExpenseScope(userID int) string {
	return "expenses:" + strconv.Itoa(userID)
}

// Locker serializes identifier allocation per scope. Two creations in the same
// scope can otherwise both read the same current maximum and allocate the same
// next value; holding the scope lock across the max-query, the uniqueness
// checks and the insert makes allocate-and-insert effectively atomic.
type Locker struct {
	mu     sync.Mutex
	scopes map[string]*sync.Mutex
}

// NewLocker creates an instance of Locker
func NewLocker() *Locker {
	return &Locker{scopes: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for a scope, creating it on first use, and returns
// the matching unlock function.
func (l *Locker) Lock(scope string) func() {
	l.mu.Lock()
	m, ok := l.scopes[scope]
	if !ok {
		m = &sync.Mutex{}
		l.scopes[scope] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
