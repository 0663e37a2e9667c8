package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nhath/tabsql/internal/action"
	"github.com/nhath/tabsql/internal/db"
)

// Session drives dispatch for one App against one backend
type Session struct {
	App     *App
	Backend *db.Backend
	Queue   *Queue
}

func NewSession(a *App, backend *db.Backend) *Session {
	return &Session{App: a, Backend: backend, Queue: NewQueue()}
}

// Run dispatches act and every follow-up, stopping at the first error
func (s *Session) Run(ctx context.Context, act action.Action) error {
	for act != nil {
		next, err := Dispatch(ctx, act, s.App, s.Backend)
		if err != nil {
			return err
		}
		act = next
	}
	return nil
}

// Invoke runs act like Run, showing any error on the status line. A panic
// is recovered and reported through the queue on the next frame.
func (s *Session) Invoke(ctx context.Context, act action.Action) {
	defer func() {
		if r := recover(); r != nil {
			s.App.log.Error("panic in dispatch", "action", fmt.Sprintf("%T", act), "panic", r)
			s.Queue.Post(action.StatusBarError{Msg: fmt.Sprintf("internal error: %v", r)})
		}
	}()

	if err := s.Run(ctx, act); err != nil {
		s.App.log.Warn("action failed", "action", fmt.Sprintf("%T", act), "err", err)
		_ = s.Run(ctx, action.StatusBarError{Msg: err.Error()})
	}
}

// Drain invokes every queued action in order
func (s *Session) Drain(ctx context.Context) {
	for _, act := range s.Queue.Drain() {
		s.Invoke(ctx, act)
	}
}

// Logger returns the session logger
func (s *Session) Logger() *slog.Logger { return s.App.log }
