// Package history provides the append-only operation log shared by the
// compute engines.
package history

import "sync"

// Log is an ordered, append-only sequence of entries. Entries are never
// edited or removed individually; Clear drops all of them and resets the
// counter in one step.
//
// Log is safe for concurrent use.
type Log[T any] struct {
	mu      sync.Mutex
	entries []T
	count   int64
}

// New returns an empty log.
func New[T any]() *Log[T] {
	return &Log[T]{}
}

// Append increments the counter and appends the entry produced by build.
// build receives the new counter value, which is 1 for the first entry after
// construction or Clear. The lock is held while build runs.
func (l *Log[T]) Append(build func(seq int64) T) T {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	entry := build(l.count)
	l.entries = append(l.entries, entry)
	return entry
}

// Entries returns a copy of the log in insertion order. An empty log yields
// an empty, non-nil slice.
func (l *Log[T]) Entries() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(make([]T, 0, len(l.entries)), l.entries...)
}

// Len returns the number of entries currently held.
func (l *Log[T]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Count returns the number of operations recorded since the last Clear.
func (l *Log[T]) Count() int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

// Snapshot returns the counter and entry count read under a single lock.
func (l *Log[T]) Snapshot() (count int64, length int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count, len(l.entries)
}

// Clear empties the log and resets the counter.
func (l *Log[T]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.count = 0
}
