package session

import "sync"

// State says what kind of free-text follow-up the router expects from a user.
type State int

const (
	StateNone State = iota
	StateAwaitingToken
	StateAwaitingAlert
	StateAwaitingRemoval
)

// Store holds the per-user awaiting-input state. One state per user: a new
// prompt replaces whatever was pending before, so two prompts can never be
// outstanding at once.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State
}

func NewStore() *Store {
	return &Store{states: make(map[int64]State)}
}

// Set records the state the next free-text message from the user resolves.
func (s *Store) Set(userID int64, state State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if state == StateNone {
		delete(s.states, userID)
		return
	}
	s.states[userID] = state
}

// Get returns the pending state without consuming it.
func (s *Store) Get(userID int64) State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.states[userID]
}

// Take returns the pending state and resets it to StateNone. Exactly one
// free-text message is consumed per prompt, regardless of its content.
func (s *Store) Take(userID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.states[userID]
	delete(s.states, userID)
	return state
}
