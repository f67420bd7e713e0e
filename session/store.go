package session

import (
	"errors"
	"sync"
)

var (
	// ErrLoginInProgress is returned by [Store.BeginLogin] while another login
	// has not resolved.
	ErrLoginInProgress = errors.New("login already in progress")
	// ErrLoginCanceled reports a login that a Clear overtook before it resolved.
	ErrLoginCanceled = errors.New("login canceled by logout")
)

// Observer receives AuthState snapshots. Observers run synchronously on the
// goroutine performing the transition and must not call Subscribe or any
// mutating Store method.
type Observer func(AuthState)

// Store holds the authentication state. The zero value is not usable; call
// [NewStore].
type Store struct {
	// transition serializes state changes with observer delivery so every
	// observer sees transitions in the order they happened.
	transition sync.Mutex

	mu        sync.RWMutex
	state     AuthState
	canceled  bool
	observers map[uint64]Observer
	nextID    uint64
}

// NewStore returns a Store in the Unauthenticated state.
func NewStore() *Store {
	return &Store{observers: make(map[uint64]Observer)}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers fn, immediately delivers the current state to it, and
// returns a function that removes the registration. Cancel is idempotent and
// may be called from inside an observer.
func (s *Store) Subscribe(fn Observer) (cancel func()) {
	if fn == nil {
		return func() {}
	}

	s.transition.Lock()
	defer s.transition.Unlock()

	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	current := s.state.clone()
	s.mu.Unlock()

	fn(current)

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// BeginLogin enters Authenticating. It fails with [ErrLoginInProgress] if a
// login is already in flight and leaves the state untouched.
func (s *Store) BeginLogin() error {
	var err error
	s.apply(func(st *AuthState) bool {
		if st.IsLoading {
			err = ErrLoginInProgress
			return false
		}
		st.IsLoading = true
		s.canceled = false
		return true
	})
	return err
}

// CompleteLogin resolves an in-flight login as Authenticated with p and
// reports true. When a Clear ran after BeginLogin the login is resolved as
// Unauthenticated instead and CompleteLogin reports false. With no login in
// flight it changes nothing.
func (s *Store) CompleteLogin(p Principal) bool {
	var authenticated bool
	s.apply(func(st *AuthState) bool {
		if !st.IsLoading {
			return false
		}
		st.IsLoading = false
		if s.canceled {
			s.canceled = false
			return true
		}
		st.Principal = &p
		st.IsAuthenticated = true
		authenticated = true
		return true
	})
	return authenticated
}

// FailLogin resolves an in-flight login as failed: IsLoading is cleared and
// the principal held before BeginLogin is kept. It reports false when no
// login is in flight.
func (s *Store) FailLogin() bool {
	return s.apply(func(st *AuthState) bool {
		if !st.IsLoading {
			return false
		}
		st.IsLoading = false
		return true
	})
}

// Clear drops the principal. It reports whether the state changed; clearing
// an unauthenticated store notifies nobody. An in-flight login keeps its
// IsLoading flag but is canceled: its CompleteLogin will not authenticate.
func (s *Store) Clear() bool {
	return s.apply(func(st *AuthState) bool {
		if st.IsLoading {
			s.canceled = true
		}
		if st.Principal == nil {
			return false
		}
		st.Principal = nil
		st.IsAuthenticated = false
		return true
	})
}

// Restore installs a rehydrated principal. Only an idle Unauthenticated
// store accepts it.
func (s *Store) Restore(p Principal) bool {
	return s.apply(func(st *AuthState) bool {
		if st.IsLoading || st.Principal != nil {
			return false
		}
		st.Principal = &p
		st.IsAuthenticated = true
		return true
	})
}

func (s *Store) apply(mutate func(*AuthState) bool) bool {
	s.transition.Lock()
	defer s.transition.Unlock()

	s.mu.Lock()
	if !mutate(&s.state) {
		s.mu.Unlock()
		return false
	}
	next := s.state.clone()
	observers := make([]Observer, 0, len(s.observers))
	for _, fn := range s.observers {
		observers = append(observers, fn)
	}
	s.mu.Unlock()

	for _, fn := range observers {
		fn(next.clone())
	}
	return true
}
