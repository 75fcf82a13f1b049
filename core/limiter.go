package core

import "sync"

// TurnLimiter bounds the number of model turns a single run may take.
type TurnLimiter struct {
	max   int
	count int
	mu    sync.Mutex
}

// NewTurnLimiter creates a new limiter. If max <= 0, unlimited turns are allowed.
func NewTurnLimiter(max int) *TurnLimiter {
	return &TurnLimiter{max: max}
}

// Acquire reserves one turn. It returns false once the budget is spent.
func (l *TurnLimiter) Acquire() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max > 0 && l.count >= l.max {
		return false
	}
	l.count++

	return true
}

// Count returns the number of turns taken so far.
func (l *TurnLimiter) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.count
}

// Remaining returns how many turns are left, or -1 when unlimited.
func (l *TurnLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.max <= 0 {
		return -1
	}

	return l.max - l.count
}
