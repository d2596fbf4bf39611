package player

import "sync/atomic"

// Scope marks the lifetime of a view. Canceling it does not stop work already
// in flight; it only makes its results unwanted.
type Scope struct {
	canceled atomic.Bool
}

// NewScope creates and returns a new instance of Scope.
func NewScope() *Scope {
	return &Scope{}
}

// Cancel leaves the scope. It is safe to call more than once.
func (s *Scope) Cancel() {
	s.canceled.Store(true)
}

// Canceled reports whether the scope was left.
func (s *Scope) Canceled() bool {
	return s.canceled.Load()
}
