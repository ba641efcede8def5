// Package errors provides centralized error handling for navkit.
//
// This package defines sentinel errors used for programmatic error
// categorization throughout the application. All error types can be
// checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrGoalRejected indicates a goal failed structural validation at
	// submission time. No behavior instance is created for a rejected goal.
	ErrGoalRejected = errors.New("goal rejected")

	// ErrExecutionFailed indicates the cyclic step reported failure or
	// raised an internal fault while running.
	ErrExecutionFailed = errors.New("behavior execution failed")

	// ErrCanceled indicates an explicit cancellation was honored and the
	// behavior instance was brought to a terminal state.
	ErrCanceled = errors.New("behavior canceled")

	// ErrServerUnavailable indicates the action server did not become
	// available within the client's wait budget. This is a caller-local
	// condition distinct from any behavior outcome.
	ErrServerUnavailable = errors.New("action server unavailable")

	// ErrResultTimeout indicates a result was not available within the
	// caller's wait budget. The behavior instance may still be running;
	// a later wait on the same handle can retrieve its eventual result.
	ErrResultTimeout = errors.New("result wait timed out")

	// ErrInvalidTransition indicates an attempt to make an invalid
	// execution state transition.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrHandleStale indicates a goal handle whose result has already
	// been consumed, or that does not correspond to any known instance.
	ErrHandleStale = errors.New("goal handle is stale")

	// ErrServerStopped indicates the action server was shut down. It
	// chains to ErrServerUnavailable so callers that only care about
	// availability can match either with a single errors.Is check.
	ErrServerStopped = fmt.Errorf("action server stopped: %w", ErrServerUnavailable)

	// ErrCostmapNotSet indicates a planning operation was requested
	// before a costmap was configured on the harness.
	ErrCostmapNotSet = errors.New("costmap not set")

	// ErrPathEmpty indicates the planner returned a path with no points.
	ErrPathEmpty = errors.New("path is empty")

	// ErrPathCollision indicates a path point maps to a non-free
	// costmap cell.
	ErrPathCollision = errors.New("path has collision")

	// ErrPathEndpointDeviation indicates the path's endpoints deviate
	// from the requested start or goal beyond the configured tolerance.
	ErrPathEndpointDeviation = errors.New("path deviates from requested endpoints")

	// ErrNoFreeCell indicates no free cell could be sampled from the
	// costmap (e.g. a fully occupied grid).
	ErrNoFreeCell = errors.New("no free cell available")

	// ErrMapInvalid indicates a costmap file failed structural validation.
	ErrMapInvalid = errors.New("invalid costmap definition")

	// ErrConfigNil indicates a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidTiming indicates an invalid timing configuration value.
	ErrConfigInvalidTiming = errors.New("invalid timing configuration")

	// ErrConfigInvalidPlanning indicates an invalid planning configuration value.
	ErrConfigInvalidPlanning = errors.New("invalid planning configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrUnknownScenario indicates a scenario name that is not registered.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrScenarioFailed indicates at least one conformance scenario failed.
	ErrScenarioFailed = errors.New("scenario failed")

	// ErrBatchFailed indicates a randomized batch run exceeded the
	// acceptable failure ratio.
	ErrBatchFailed = errors.New("batch failure ratio exceeded")

	// ErrInvalidArgument indicates that an invalid argument was provided.
	ErrInvalidArgument = errors.New("invalid argument")
)
