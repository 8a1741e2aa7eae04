package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/altercycle/internal/scenario"
)

// RunReport is the structured result of the run command.
type RunReport struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
}

// ScenarioResult is one scenario outcome in wire form.
type ScenarioResult struct {
	Name     string   `json:"name"`
	Passed   bool     `json:"passed"`
	Failures []string `json:"failures,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario-file-or-dir>",
		Short: "Run conformance scenarios",
		Long: `Execute YAML conformance scenarios against fresh rings and report
assertion outcomes. A directory runs every *.yaml scenario in file-name
order.

Exits 0 when all scenarios pass, 1 when any assertion fails.

Example:
  altercycle run ./scenarios
  altercycle run --verbose ./scenarios/flag-dont-reject.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarios(rootOpts, cmd, args[0])
		},
	}
}

func runScenarios(opts *RootOptions, cmd *cobra.Command, path string) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	scenarios, err := loadScenarios(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenarios", err)
	}
	logger.Info("scenarios loaded", "count", len(scenarios), "path", path)

	report := RunReport{Scenarios: []ScenarioResult{}}
	for _, sc := range scenarios {
		logger.Debug("running scenario", "name", sc.Name, "steps", len(sc.Steps))
		res, err := scenario.Run(sc)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s failed to run", sc.Name), err)
		}

		sr := ScenarioResult{Name: sc.Name, Passed: res.Passed()}
		for _, f := range res.Failures {
			sr.Failures = append(sr.Failures, f.Error())
		}
		report.Scenarios = append(report.Scenarios, sr)
		if sr.Passed {
			report.Passed++
			logger.Debug("scenario passed", "name", sc.Name)
		} else {
			report.Failed++
			logger.Warn("scenario failed", "name", sc.Name, "failures", len(sr.Failures))
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := f.Emit(report, renderRun(report)); err != nil {
		return err
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", report.Failed))
	}
	return nil
}

func loadScenarios(path string) ([]*scenario.Scenario, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return scenario.LoadDir(path)
	}
	sc, err := scenario.Load(path)
	if err != nil {
		return nil, err
	}
	return []*scenario.Scenario{sc}, nil
}

func renderRun(report RunReport) string {
	var b strings.Builder
	for _, sr := range report.Scenarios {
		status := "PASS"
		if !sr.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s %s\n", status, sr.Name)
		for _, f := range sr.Failures {
			for _, line := range strings.Split(f, "\n") {
				fmt.Fprintf(&b, "    %s\n", line)
			}
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed", report.Passed, report.Failed)
	return b.String()
}
