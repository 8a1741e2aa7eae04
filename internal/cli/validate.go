package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// ValidationReport is the structured result of the validate command.
type ValidationReport struct {
	Sequence   string            `json:"sequence"`
	Nodes      int               `json:"nodes"`
	Valid      bool              `json:"valid"`
	Violations []ViolationRecord `json:"violations,omitempty"`
}

// ViolationRecord is one rejected transition in wire form.
type ViolationRecord struct {
	Seq             int64  `json:"seq"`
	PrevOrientation string `json:"prev_orientation"`
	NewOrientation  string `json:"new_orientation"`
	Ordinal         int64  `json:"ordinal"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <sequence-file>",
		Short: "Check strict alternation of a sequence",
		Long: `Ingest a YAML sequence file and re-check the whole ring, including
the wraparound pair, against the strict-flip rule. Violations recorded
at ingest time are listed with their sequence indices.

Exits 0 when the sequence alternates cleanly, 1 when it does not.

Example:
  altercycle validate ./capture.yaml
  altercycle validate --format json ./capture.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	r, err := LoadSequence(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load sequence", err)
	}

	valid, err := r.ValidateSequence()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to validate", err)
	}

	report := ValidationReport{
		Sequence: path,
		Nodes:    r.Len(),
		Valid:    valid,
	}
	for _, v := range r.Violations() {
		report.Violations = append(report.Violations, ViolationRecord{
			Seq:             v.Seq,
			PrevOrientation: v.PrevOrientation.String(),
			NewOrientation:  v.NewOrientation.String(),
			Ordinal:         v.Ordinal,
		})
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	if err := f.Emit(report, renderValidation(report)); err != nil {
		return err
	}

	if !valid {
		return NewExitError(ExitFailure, fmt.Sprintf("sequence %s does not alternate", path))
	}
	return nil
}

func renderValidation(report ValidationReport) string {
	var b strings.Builder
	status := "VALID"
	if !report.Valid {
		status = "INVALID"
	}
	fmt.Fprintf(&b, "%s: %d nodes, %s", report.Sequence, report.Nodes, status)
	for _, v := range report.Violations {
		fmt.Fprintf(&b, "\n  violation at seq %d: %s -> %s", v.Seq, v.PrevOrientation, v.NewOrientation)
	}
	return b.String()
}
