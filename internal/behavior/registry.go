package behavior

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
)

// Registry routes goals to registered behaviors by command prefix
// ("spin:0.5" routes to the behavior registered as "spin"). It is
// itself a Behavior, so a single supervisor can serve several recovery
// kinds without each needing its own action endpoint.
//
// Registration is not safe for concurrent use with execution; register
// all behaviors before the server starts accepting goals.
type Registry struct {
	logger    zerolog.Logger
	behaviors map[string]Behavior
	fallback  Behavior

	// active is the behavior selected by the last Initialize call. Only
	// the scheduling goroutine touches it.
	active Behavior
}

// NewRegistry creates an empty behavior registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		logger:    logger.With().Str("behavior", "registry").Logger(),
		behaviors: make(map[string]Behavior),
	}
}

// Register adds a behavior under its own name. Registering the same
// name twice replaces the earlier entry.
func (r *Registry) Register(b Behavior) {
	r.behaviors[b.Name()] = b
}

// SetFallback sets the behavior that receives goals whose command does
// not match any registered prefix. Without a fallback such goals fail
// Initialize.
func (r *Registry) SetFallback(b Behavior) {
	r.fallback = b
}

// Name implements Behavior.
func (r *Registry) Name() string { return "recovery" }

// Initialize selects the behavior for the goal's command and delegates
// setup to it.
func (r *Registry) Initialize(ctx context.Context, goal *domain.Goal) constants.ExecutionState {
	r.active = r.lookup(goal.Command)
	if r.active == nil {
		r.logger.Warn().Str("command", goal.Command).Msg("no behavior registered for command")
		return constants.StateFailed
	}
	return r.active.Initialize(ctx, goal)
}

// Step delegates to the selected behavior.
func (r *Registry) Step(ctx context.Context) constants.ExecutionState {
	if r.active == nil {
		return constants.StateFailed
	}
	return r.active.Step(ctx)
}

// OnCancel delegates to the selected behavior.
func (r *Registry) OnCancel(ctx context.Context) error {
	if r.active == nil {
		return nil
	}
	return r.active.OnCancel(ctx)
}

// lookup resolves a command to a registered behavior. Commands of the
// form "<name>:<args>" route by name; everything else goes to the
// fallback.
func (r *Registry) lookup(command string) Behavior {
	if name, _, ok := strings.Cut(command, ":"); ok {
		if b, found := r.behaviors[name]; found {
			return b
		}
	}
	return r.fallback
}

// Ensure Registry implements Behavior.
var _ Behavior = (*Registry)(nil)
