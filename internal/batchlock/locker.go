// Package batchlock serializes mutating operations per batch. Balance checks
// and linked writes are read-then-write sequences; two concurrent callers that
// both pass the check could otherwise break the non-negative-stock and
// remaining-birds invariants.
package batchlock

import (
	"sync"

	"go.uber.org/fx"
)

// Locker hands out one mutex per batch number.
type Locker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewLocker returns an empty keyed locker.
func NewLocker() *Locker {
	return &Locker{locks: make(map[string]*sync.Mutex)}
}

// Acquire blocks until the batch lock is held and returns the release func.
// Locks are never removed from the map; the set of batches is small and
// long-lived.
func (l *Locker) Acquire(batchNo string) func() {
	l.mu.Lock()
	m, ok := l.locks[batchNo]
	if !ok {
		m = &sync.Mutex{}
		l.locks[batchNo] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

// Module wires a process-wide locker.
var Module = fx.Module("batchlock",
	fx.Provide(NewLocker),
)
