package harness

import (
	"context"
	"errors"

	"github.com/navkit/navkit/internal/behavior"
	"github.com/navkit/navkit/internal/constants"
	navkiterrors "github.com/navkit/navkit/internal/errors"
)

// Scenario is one named conformance case: a command to submit and the
// verdict it must produce.
type Scenario struct {
	Name    string
	Command string
	Want    constants.Outcome
}

// ConformanceScenarios returns the standard protocol conformance
// suite. Order matters: the failure cases run back to back so residue
// from one instance leaking into the next would be caught.
func ConformanceScenarios() []Scenario {
	return []Scenario{
		{Name: "success", Command: behavior.CommandSuccess, Want: constants.OutcomeSucceeded},
		{Name: "failure_on_init", Command: behavior.CommandFailOnInit, Want: constants.OutcomeFailed},
		{Name: "failure_on_run", Command: behavior.CommandFailOnRun, Want: constants.OutcomeFailed},
		{Name: "success_after_failures", Command: behavior.CommandSuccess, Want: constants.OutcomeSucceeded},
	}
}

// ScenarioByName finds a scenario in the conformance suite.
func ScenarioByName(name string) (Scenario, error) {
	for _, sc := range ConformanceScenarios() {
		if sc.Name == name {
			return sc, nil
		}
	}
	return Scenario{}, navkiterrors.Wrapf(navkiterrors.ErrUnknownScenario, "%q", name)
}

// ScenarioResult is the report for one executed scenario.
type ScenarioResult struct {
	Scenario Scenario
	Got      constants.Outcome
	Err      error
}

// Passed reports whether the scenario produced its expected verdict.
func (r ScenarioResult) Passed() bool {
	return r.Err == nil && r.Got == r.Scenario.Want
}

// RunScenario executes one scenario end to end. A goal rejection or an
// unavailable server counts as a failed verdict, not an aborted run,
// so a scenario expecting failure can still pass.
func (h *Harness) RunScenario(ctx context.Context, sc Scenario) ScenarioResult {
	res := ScenarioResult{Scenario: sc}

	handle, err := h.SendCommand(ctx, sc.Command)
	switch {
	case errors.Is(err, navkiterrors.ErrGoalRejected),
		errors.Is(err, navkiterrors.ErrServerUnavailable):
		res.Got = constants.OutcomeFailed
	case err != nil:
		res.Err = err
		return res
	default:
		res.Got = h.GetOutcome(ctx, handle)
	}

	h.logger.Info().
		Str("scenario", sc.Name).
		Str("want", sc.Want.String()).
		Str("got", res.Got.String()).
		Bool("passed", res.Passed()).
		Msg("scenario finished")
	return res
}

// RunAll executes the scenarios strictly in order against the single
// shared server and returns every report. The returned error is
// non-nil iff at least one scenario missed its expected verdict.
func (h *Harness) RunAll(ctx context.Context, scenarios []Scenario) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, 0, len(scenarios))
	failed := 0

	for _, sc := range scenarios {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := h.RunScenario(ctx, sc)
		if !res.Passed() {
			failed++
		}
		results = append(results, res)
	}

	if failed > 0 {
		return results, navkiterrors.Wrapf(navkiterrors.ErrScenarioFailed,
			"%d of %d scenarios", failed, len(scenarios))
	}
	return results, nil
}
