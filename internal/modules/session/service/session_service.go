package service

import (
	"context"
	"sync"

	"eduvantage/internal/modules/session/domain"
	sessionout "eduvantage/internal/modules/session/port/out"
)

// SessionService owns the in-memory navigation state and mirrors every
// transition to the state store so a relaunch resumes where the user
// left off.
type SessionService struct {
	mu    sync.Mutex
	store sessionout.StateStore
	state domain.State
}

func NewSessionService(store sessionout.StateStore) *SessionService {
	return &SessionService{store: store, state: domain.NewState()}
}

// Load restores persisted state. Missing or corrupt state falls back to
// the welcome screen.
func (s *SessionService) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, err := s.store.Load(ctx)
	if err != nil {
		s.state = domain.NewState()
		return
	}
	if state.Stack == nil {
		state.Stack = []domain.Route{}
	}
	s.state = state
}

func (s *SessionService) persist(ctx context.Context) error {
	return s.store.Save(ctx, s.state)
}

func (s *SessionService) Push(ctx context.Context, route domain.Route) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Stack = append(s.state.Stack, route)
	return s.state, s.persist(ctx)
}

// Pop removes the top route. Popping an empty stack is a no-op.
func (s *SessionService) Pop(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.state.Stack) == 0 {
		return s.state, nil
	}
	s.state.Stack = s.state.Stack[:len(s.state.Stack)-1]
	return s.state, s.persist(ctx)
}

// ResetToRoot empties the stack, returning to the welcome screen without
// touching authentication.
func (s *SessionService) ResetToRoot(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Stack = []domain.Route{}
	return s.state, s.persist(ctx)
}

// Authenticate flips to the signed-in surface and clears the flow stack.
func (s *SessionService) Authenticate(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Authenticated = true
	s.state.Stack = []domain.Route{}
	return s.state, s.persist(ctx)
}

// EndSession signs out and lands on the welcome screen. Stored records
// and credentials are untouched.
func (s *SessionService) EndSession(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Authenticated = false
	s.state.Stack = []domain.Route{}
	return s.state, s.persist(ctx)
}

func (s *SessionService) Current() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.Stack = make([]domain.Route, len(s.state.Stack))
	copy(out.Stack, s.state.Stack)
	return out
}
