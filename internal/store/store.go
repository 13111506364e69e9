package store

import (
	"strings"
	"sync"
	"time"
)

// Store owns the state tree. Dispatches are serialized under a mutex;
// subscribers are notified after each dispatch with a snapshot.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers map[int]func(State)
	nextSubID   int

	// pending auto-clear for the current notification, at most one
	clearTimer *time.Timer
	timerGen   int
}

func New() *Store {
	return &Store{subscribers: make(map[int]func(State))}
}

// State returns a snapshot. The anecdote slice is copied so callers
// cannot reach into the tree.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() State {
	snap := s.state
	if s.state.Anecdotes != nil {
		snap.Anecdotes = append(snap.Anecdotes[:0:0], s.state.Anecdotes...)
	}
	return snap
}

// Subscribe registers fn to run after every dispatch. The returned func
// unsubscribes.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	s.state = rootReducer(s.state, action)
	snap := s.snapshot()
	subs := make([]func(State), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// SetTimedNotification dispatches the notification and schedules its
// clear after d. A previous pending clear is cancelled first, so a newer
// message is never wiped by a stale timer.
func (s *Store) SetTimedNotification(message, typ string, d time.Duration) {
	s.mu.Lock()
	if s.clearTimer != nil {
		s.clearTimer.Stop()
	}
	s.timerGen++
	gen := s.timerGen
	s.mu.Unlock()

	// The message must land before the timer is armed, or a tiny d
	// could clear first and leave the message stuck.
	s.Dispatch(SetNotification{Message: message, Type: typ})

	s.mu.Lock()
	if gen == s.timerGen {
		s.clearTimer = time.AfterFunc(d, func() {
			// Stop can lose the race with an already-fired timer; the
			// generation check keeps such a stale clear from landing.
			s.mu.Lock()
			stale := gen != s.timerGen
			s.mu.Unlock()
			if !stale {
				s.Dispatch(ClearNotification{})
			}
		})
	}
	s.mu.Unlock()
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
