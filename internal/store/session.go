package store

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/learnboard/internal/apperr"
)

// Session tracks who is signed in against a Store.
type Session struct {
	store Store

	mu   sync.RWMutex
	user *User
}

// NewSession returns a signed-out session over s.
func NewSession(s Store) *Session {
	return &Session{store: s}
}

// Store returns the session's store.
func (s *Session) Store() Store { return s.store }

// User returns the signed-in user. The bool is false when signed out.
func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

// Login signs in the demo student and replaces the store's contents with
// the demo history. Any non-empty email is accepted.
func (s *Session) Login(ctx context.Context, email string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, apperr.InvalidInput("login", "email is required")
	}
	if err := s.store.Reset(ctx); err != nil {
		return User{}, fmt.Errorf("login: %w", err)
	}
	if err := Seed(ctx, s.store); err != nil {
		return User{}, fmt.Errorf("login: %w", err)
	}
	return s.signIn(), nil
}

// Resume signs in without discarding existing history. The demo history
// is seeded only when the store holds nothing for the demo student, so a
// database file keeps its contents across runs.
func (s *Session) Resume(ctx context.Context, email string) (User, error) {
	if strings.TrimSpace(email) == "" {
		return User{}, apperr.InvalidInput("resume session", "email is required")
	}
	empty, err := s.isEmpty(ctx, DemoUser().ID)
	if err != nil {
		return User{}, fmt.Errorf("resume session: %w", err)
	}
	if empty {
		if err := Seed(ctx, s.store); err != nil {
			return User{}, fmt.Errorf("resume session: %w", err)
		}
	}
	return s.signIn(), nil
}

func (s *Session) signIn() User {
	u := DemoUser()
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	return u
}

func (s *Session) isEmpty(ctx context.Context, userID string) (bool, error) {
	results, err := s.store.Results(ctx, userID)
	if err != nil {
		return false, err
	}
	bookings, err := s.store.Bookings(ctx, userID)
	if err != nil {
		return false, err
	}
	certs, err := s.store.Certificates(ctx, userID)
	if err != nil {
		return false, err
	}
	history, err := s.store.Progress(ctx, "")
	if err != nil {
		return false, err
	}
	return len(results)+len(bookings)+len(certs)+len(history) == 0, nil
}

// Logout signs out and clears the store.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if err := s.store.Reset(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
