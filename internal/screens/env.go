// Package screens holds what every dashboard screen shares: the injected
// dependencies and the messages broadcast across the screen stack.
package screens

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/learnboard/internal/attempt"
	"github.com/abhisek/learnboard/internal/scoring"
	"github.com/abhisek/learnboard/internal/store"
)

// Env carries the dependencies screens are built with.
type Env struct {
	Session  *store.Session
	Engine   *scoring.Engine
	Recorder *attempt.Recorder
	Logger   *zap.Logger

	// DefaultDurationMins replaces a missing assessment duration.
	DefaultDurationMins int

	// Now is the clock used for booking dates. Defaults to time.Now.
	Now func() time.Time
}

// NewEnv fills in defaults for a session-backed environment.
func NewEnv(session *store.Session, logger *zap.Logger) *Env {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Env{
		Session:             session,
		Engine:              scoring.NewEngine(),
		Recorder:            attempt.NewRecorder(session.Store(), logger),
		Logger:              logger,
		DefaultDurationMins: attempt.DefaultDurationMins,
		Now:                 time.Now,
	}
}

// Store returns the session's store.
func (e *Env) Store() store.Store { return e.Session.Store() }

// User returns the signed-in user, or the zero User when signed out.
func (e *Env) User() store.User {
	u, _ := e.Session.User()
	return u
}

// Today returns the current time from the environment's clock.
func (e *Env) Today() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Context returns the context store calls run under.
func (e *Env) Context() context.Context {
	return context.Background()
}

// StoreChangedMsg is broadcast to every screen on the stack when the store
// reports a change, so views recompute their derived data.
type StoreChangedMsg struct {
	Event store.Event
}
