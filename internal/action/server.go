package action

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/ctxutil"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
	"github.com/navkit/navkit/internal/supervisor"
)

// Server is the in-process goal endpoint. It fronts a supervisor with a
// readiness gate so clients can discover availability the same way they
// would against a remote endpoint: wait, then send.
//
// A Server is also its own Client; harness code receives it as a Client
// and never sees the supervisor underneath.
type Server struct {
	sup    *supervisor.Supervisor
	logger zerolog.Logger

	ready   chan struct{}
	started atomic.Bool
	stopped atomic.Bool
}

// NewServer creates a server for the supervisor. The server rejects all
// traffic until Start is called.
func NewServer(sup *supervisor.Supervisor, logger zerolog.Logger) *Server {
	return &Server{
		sup:    sup,
		logger: logger.With().Str("component", "action_server").Logger(),
		ready:  make(chan struct{}),
	}
}

// Start opens the server for goals. Calling Start more than once is a
// no-op.
func (s *Server) Start() {
	if s.started.CompareAndSwap(false, true) {
		s.logger.Info().Msg("action server accepting goals")
		close(s.ready)
	}
}

// Stop closes the server. The supervisor cancels any in-flight goal on
// its next tick; goals submitted after Stop are refused.
func (s *Server) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		s.logger.Info().Msg("action server stopping")
		s.sup.Close()
	}
}

// WaitForServer implements Client.
func (s *Server) WaitForServer(ctx context.Context, timeout time.Duration) error {
	if s.stopped.Load() {
		return navkiterrors.ErrServerStopped
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-s.ready:
		return nil
	case <-timer.C:
		return navkiterrors.Wrapf(navkiterrors.ErrServerUnavailable, "not ready after %s", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SendGoal implements Client.
func (s *Server) SendGoal(ctx context.Context, goal *domain.Goal) (domain.GoalHandle, error) {
	var zero domain.GoalHandle

	if err := ctxutil.Canceled(ctx); err != nil {
		return zero, err
	}
	if s.stopped.Load() {
		return zero, navkiterrors.ErrServerStopped
	}
	if !s.started.Load() {
		return zero, navkiterrors.Wrap(navkiterrors.ErrServerUnavailable, "server not accepting goals")
	}
	return s.sup.Submit(ctx, goal)
}

// GetResult implements Client.
func (s *Server) GetResult(ctx context.Context, handle domain.GoalHandle, timeout time.Duration) (*domain.Result, error) {
	return s.sup.AwaitResult(ctx, handle, timeout)
}

// CancelGoal implements Client.
func (s *Server) CancelGoal(ctx context.Context, handle domain.GoalHandle) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}
	s.sup.Cancel(handle)
	return nil
}

// Ensure Server satisfies the endpoint contract.
var _ Client = (*Server)(nil)
