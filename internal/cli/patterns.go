package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/altercycle/ring"
)

// PatternsOptions holds flags for the patterns command.
type PatternsOptions struct {
	*RootOptions
	Length             int
	RequireAlternation bool
	NoWrap             bool
}

// PatternReport is the structured result of the patterns command.
type PatternReport struct {
	Sequence string          `json:"sequence"`
	Length   int             `json:"length"`
	Patterns []PatternRecord `json:"patterns"`
}

// PatternRecord is one recurring window in wire form. Elements render
// as "value(orientation)".
type PatternRecord struct {
	Elements []string `json:"elements"`
	Count    int      `json:"count"`
	Total    int      `json:"total"`
	Starts   []int    `json:"starts"`
}

// NewPatternsCommand creates the patterns command.
func NewPatternsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PatternsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "patterns <sequence-file>",
		Short: "Find recurring windows around the ring",
		Long: `Slide a fixed-size window around the ring (wrapping past the last
element back to the head) and report the windows that occur more than
once. Windows that are rotations of one another count as one pattern.

Example:
  altercycle patterns --length 2 ./capture.yaml
  altercycle patterns --length 3 --require-alternation --no-wrap ./capture.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPatterns(opts, cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Length, "length", 0, "window length (required)")
	cmd.Flags().BoolVar(&opts.RequireAlternation, "require-alternation", false,
		"only report windows whose orientations strictly alternate")
	cmd.Flags().BoolVar(&opts.NoWrap, "no-wrap", false, "do not let windows cross the head boundary")
	_ = cmd.MarkFlagRequired("length")

	return cmd
}

func runPatterns(opts *PatternsOptions, cmd *cobra.Command, path string) error {
	r, err := LoadSequence(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load sequence", err)
	}

	patterns, err := r.FindPatterns(ring.PatternOptions{
		Length:             opts.Length,
		RequireAlternation: opts.RequireAlternation,
		NoWrap:             opts.NoWrap,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "pattern search failed", err)
	}

	report := PatternReport{Sequence: path, Length: opts.Length, Patterns: []PatternRecord{}}
	for _, p := range patterns {
		rec := PatternRecord{Count: p.Count, Total: p.Total, Starts: p.Starts}
		for _, e := range p.Elements {
			rec.Elements = append(rec.Elements, fmt.Sprintf("%s(%s)", e.Value, e.Orientation))
		}
		report.Patterns = append(report.Patterns, rec)
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Emit(report, renderPatterns(report))
}

func renderPatterns(report PatternReport) string {
	if len(report.Patterns) == 0 {
		return fmt.Sprintf("%s: no recurring windows of length %d", report.Sequence, report.Length)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d recurring window(s) of length %d", report.Sequence, len(report.Patterns), report.Length)
	for _, p := range report.Patterns {
		fmt.Fprintf(&b, "\n  %s x%d (total %d, starts %v)",
			strings.Join(p.Elements, " "), p.Count, p.Total, p.Starts)
	}
	return b.String()
}
