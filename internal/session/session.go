// Package session holds the in-memory authentication state of the running
// process together with its idle auto-lock timer.
package session

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultIdleTimeout locks an unlocked session after this much inactivity.
const DefaultIdleTimeout = 15 * time.Minute

// Session is the authenticated/locked flag consulted by every gated
// operation. It starts locked. While unlocked, an idle timer locks it again
// unless Touch is called within the idle timeout. A zero timeout disables
// auto-lock.
//
// A Session is safe for concurrent use.
type Session struct {
	clock clockwork.Clock
	idle  time.Duration

	mu            sync.Mutex
	authenticated bool
	timer         clockwork.Timer
	generation    uint64
	onIdleLock    func()
}

// New returns a locked session.
func New(clock clockwork.Clock, idle time.Duration) *Session {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Session{clock: clock, idle: idle}
}

// OnIdleLock registers fn to run, outside the session lock, after the idle
// timer has locked the session.
func (s *Session) OnIdleLock(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onIdleLock = fn
}

// Unlock marks the session authenticated and (re)starts the idle timer.
func (s *Session) Unlock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authenticated = true
	s.restartLocked()
}

// Lock marks the session unauthenticated and cancels the idle timer. It is
// idempotent.
func (s *Session) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockLocked()
}

// IsAuthenticated reports whether the session is unlocked.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Touch records user activity. It restarts the idle timer of an unlocked
// session and does nothing for a locked one.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.authenticated {
		s.restartLocked()
	}
}

func (s *Session) lockLocked() {
	s.authenticated = false
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) restartLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
	if s.idle <= 0 {
		return
	}

	gen := s.generation
	s.timer = s.clock.AfterFunc(s.idle, func() { s.expire(gen) })
}

func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	// A Touch or Lock after this timer was armed supersedes it.
	if gen != s.generation || !s.authenticated {
		s.mu.Unlock()
		return
	}
	s.lockLocked()
	fn := s.onIdleLock
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}
