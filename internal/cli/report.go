package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/navkit/navkit/internal/constants"
	"github.com/navkit/navkit/internal/domain"
	"github.com/navkit/navkit/internal/harness"
)

// reportStyles contains styling for harness report output.
type reportStyles struct {
	header lipgloss.Style
	pass   lipgloss.Style
	fail   lipgloss.Style
	dim    lipgloss.Style
	name   lipgloss.Style
}

// newReportStyles creates styles for report output.
func newReportStyles() *reportStyles {
	return &reportStyles{
		header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00D7FF")).
			MarginBottom(1),
		pass: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF87")).
			Bold(true),
		fail: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")).
			Bold(true),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		name: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")),
	}
}

// scenarioReportJSON is the machine-readable scenario report entry.
type scenarioReportJSON struct {
	Scenario string `json:"scenario"`
	Command  string `json:"command"`
	Want     string `json:"want"`
	Got      string `json:"got"`
	Passed   bool   `json:"passed"`
	Error    string `json:"error,omitempty"`
}

// renderScenarioReport writes the conformance suite report in the
// requested output format.
func renderScenarioReport(w io.Writer, format string, results []harness.ScenarioResult) error {
	if format == OutputJSON {
		entries := make([]scenarioReportJSON, 0, len(results))
		for _, res := range results {
			entry := scenarioReportJSON{
				Scenario: res.Scenario.Name,
				Command:  res.Scenario.Command,
				Want:     res.Scenario.Want.String(),
				Got:      res.Got.String(),
				Passed:   res.Passed(),
			}
			if res.Err != nil {
				entry.Error = res.Err.Error()
			}
			entries = append(entries, entry)
		}
		return writeJSON(w, entries)
	}

	styles := newReportStyles()
	passed := 0

	_, _ = fmt.Fprintln(w, styles.header.Render("Conformance Scenarios"))
	_, _ = fmt.Fprintln(w, styles.dim.Render(strings.Repeat("─", 40)))
	for _, res := range results {
		verdict := styles.fail.Render("✗ fail")
		if res.Passed() {
			verdict = styles.pass.Render("✓ pass")
			passed++
		}
		_, _ = fmt.Fprintf(w, "%s  %s %s\n",
			verdict,
			styles.name.Render(res.Scenario.Name),
			styles.dim.Render(fmt.Sprintf("(want %s, got %s)", res.Scenario.Want, res.Got)))
	}
	_, _ = fmt.Fprintln(w, styles.dim.Render(strings.Repeat("─", 40)))
	_, _ = fmt.Fprintf(w, "%d/%d passed\n", passed, len(results))
	return nil
}

// commandOutcomeJSON is the machine-readable ad-hoc command report.
type commandOutcomeJSON struct {
	Command string `json:"command"`
	Outcome string `json:"outcome"`
}

// renderCommandOutcome writes the verdict for one ad-hoc command goal.
func renderCommandOutcome(w io.Writer, format, command string, outcome constants.Outcome) error {
	if format == OutputJSON {
		return writeJSON(w, commandOutcomeJSON{Command: command, Outcome: outcome.String()})
	}

	styles := newReportStyles()
	verdict := styles.fail.Render("✗ " + outcome.String())
	if outcome == constants.OutcomeSucceeded {
		verdict = styles.pass.Render("✓ " + outcome.String())
	}
	_, _ = fmt.Fprintf(w, "%s  %s\n", verdict, styles.name.Render(command))
	return nil
}

// checkResultJSON is the machine-readable single-trial report.
type checkResultJSON struct {
	Start  pointJSON `json:"start"`
	Goal   pointJSON `json:"goal"`
	Valid  bool      `json:"valid"`
	Reason string    `json:"reason,omitempty"`
}

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// renderCheckResult writes the verdict of one planning trial.
func renderCheckResult(w io.Writer, format string, start, goal domain.Point, trialErr error) error {
	if format == OutputJSON {
		out := checkResultJSON{
			Start: pointJSON{X: start.X, Y: start.Y},
			Goal:  pointJSON{X: goal.X, Y: goal.Y},
			Valid: trialErr == nil,
		}
		if trialErr != nil {
			out.Reason = trialErr.Error()
		}
		return writeJSON(w, out)
	}

	styles := newReportStyles()
	route := fmt.Sprintf("(%.2f, %.2f) → (%.2f, %.2f)", start.X, start.Y, goal.X, goal.Y)
	if trialErr == nil {
		_, _ = fmt.Fprintf(w, "%s  %s\n", styles.pass.Render("✓ valid path"), styles.name.Render(route))
	} else {
		_, _ = fmt.Fprintf(w, "%s  %s\n", styles.fail.Render("✗ invalid path"), styles.name.Render(route))
		_, _ = fmt.Fprintln(w, styles.dim.Render("  "+trialErr.Error()))
	}
	return nil
}

// trialReportJSON is the machine-readable batch report.
type trialReportJSON struct {
	Trials         int     `json:"trials"`
	Failures       int     `json:"failures"`
	FailureRatio   float64 `json:"failure_ratio"`
	AcceptableFail float64 `json:"acceptable_fail_ratio"`
	Passed         bool    `json:"passed"`
	ElapsedMillis  int64   `json:"elapsed_ms"`
}

// renderTrialReport writes the randomized batch report.
func renderTrialReport(w io.Writer, format string, report harness.TrialReport, acceptable float64, runErr error) error {
	if format == OutputJSON {
		return writeJSON(w, trialReportJSON{
			Trials:         report.Trials,
			Failures:       report.Failures,
			FailureRatio:   report.FailureRatio(),
			AcceptableFail: acceptable,
			Passed:         runErr == nil,
			ElapsedMillis:  report.Elapsed.Milliseconds(),
		})
	}

	styles := newReportStyles()
	_, _ = fmt.Fprintln(w, styles.header.Render("Randomized Planning Trials"))
	_, _ = fmt.Fprintf(w, "%s: %d\n", styles.name.Render("trials"), report.Trials)
	_, _ = fmt.Fprintf(w, "%s: %d\n", styles.name.Render("failures"), report.Failures)
	_, _ = fmt.Fprintf(w, "%s: %.3f (acceptable %.3f)\n",
		styles.name.Render("failure ratio"), report.FailureRatio(), acceptable)
	_, _ = fmt.Fprintf(w, "%s: %s\n", styles.dim.Render("elapsed"), report.Elapsed)

	if runErr == nil {
		_, _ = fmt.Fprintln(w, styles.pass.Render("✓ batch passed"))
	} else {
		_, _ = fmt.Fprintln(w, styles.fail.Render("✗ batch failed"))
	}
	return nil
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
