package supervisor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

func TestIsValidTransition(t *testing.T) {
	tests := []struct {
		name  string
		from  constants.ExecutionState
		to    constants.ExecutionState
		valid bool
	}{
		{"idle to initializing", constants.StateIdle, constants.StateInitializing, true},
		{"initializing to running", constants.StateInitializing, constants.StateRunning, true},
		{"initializing to succeeded", constants.StateInitializing, constants.StateSucceeded, true},
		{"initializing to failed", constants.StateInitializing, constants.StateFailed, true},
		{"running to canceling", constants.StateRunning, constants.StateCanceling, true},
		{"running to succeeded", constants.StateRunning, constants.StateSucceeded, true},
		{"running to failed", constants.StateRunning, constants.StateFailed, true},
		{"canceling to succeeded", constants.StateCanceling, constants.StateSucceeded, true},
		{"canceling to failed", constants.StateCanceling, constants.StateFailed, true},

		{"same state rejected", constants.StateRunning, constants.StateRunning, false},
		{"idle cannot skip to running", constants.StateIdle, constants.StateRunning, false},
		{"running cannot regress to initializing", constants.StateRunning, constants.StateInitializing, false},
		{"canceling cannot resume running", constants.StateCanceling, constants.StateRunning, false},
		{"succeeded is terminal", constants.StateSucceeded, constants.StateRunning, false},
		{"failed is terminal", constants.StateFailed, constants.StateInitializing, false},
		{"terminal states never swap", constants.StateSucceeded, constants.StateFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalState(t *testing.T) {
	assert.True(t, IsTerminalState(constants.StateSucceeded))
	assert.True(t, IsTerminalState(constants.StateFailed))
	assert.False(t, IsTerminalState(constants.StateIdle))
	assert.False(t, IsTerminalState(constants.StateInitializing))
	assert.False(t, IsTerminalState(constants.StateRunning))
	assert.False(t, IsTerminalState(constants.StateCanceling))
}

func TestTransition_RecordsAuditTrail(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	inst := newInstance(domain.GoalHandle{ID: "g-1", AcceptedAt: now},
		&domain.Goal{Command: "wait:1s"}, now)

	require.Equal(t, constants.StateInitializing, inst.State())

	inst.mu.Lock()
	err := transition(inst, constants.StateRunning, "initialization complete", now.Add(time.Millisecond))
	inst.mu.Unlock()
	require.NoError(t, err)

	trail := inst.Transitions()
	require.Len(t, trail, 2)
	assert.Equal(t, constants.StateIdle, trail[0].FromState)
	assert.Equal(t, constants.StateInitializing, trail[0].ToState)
	assert.Equal(t, "goal accepted", trail[0].Reason)
	assert.Equal(t, constants.StateRunning, trail[1].ToState)
}

func TestTransition_RejectsInvalidEdge(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	inst := newInstance(domain.GoalHandle{ID: "g-2"}, &domain.Goal{Command: "wait:1s"}, now)

	inst.mu.Lock()
	err := transition(inst, constants.StateCanceling, "premature", now)
	inst.mu.Unlock()

	require.Error(t, err)
	assert.ErrorIs(t, err, navkiterrors.ErrInvalidTransition)
	// The rejected edge must leave state and trail untouched.
	assert.Equal(t, constants.StateInitializing, inst.State())
	assert.Len(t, inst.Transitions(), 1)
}
