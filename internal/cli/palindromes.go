package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/altercycle/ring"
)

// PalindromesOptions holds flags for the palindromes command.
type PalindromesOptions struct {
	*RootOptions
	MinLength  int
	Wrap       bool
	Complement string
}

// PalindromeReport is the structured result of the palindromes command.
type PalindromeReport struct {
	Sequence  string                 `json:"sequence"`
	MinLength int                    `json:"min_length"`
	Matches   []ring.PalindromeMatch `json:"matches"`
}

// NewPalindromesCommand creates the palindromes command.
func NewPalindromesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PalindromesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "palindromes <sequence-file>",
		Short: "Find orientation-aware mirror sub-sequences",
		Long: `Search the ring for maximal sub-sequences that read the same forward
and backward. By default values must match identically; --complement
supplies a pairing relation instead, so e.g. DNA base pairing reads
"A=T,C=G". Matches must also mirror orientation parity, which is what
separates this from a plain string-palindrome scan.

Example:
  altercycle palindromes --min-length 3 ./capture.yaml
  altercycle palindromes --min-length 4 --complement A=T,C=G ./genome.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPalindromes(opts, cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.MinLength, "min-length", 0, "minimum match length (required)")
	cmd.Flags().BoolVar(&opts.Wrap, "wrap", false, "let matches cross the head boundary")
	cmd.Flags().StringVar(&opts.Complement, "complement", "",
		"comma-separated value pairs (e.g. A=T,C=G) used as the mirror relation instead of identity")
	_ = cmd.MarkFlagRequired("min-length")

	return cmd
}

func runPalindromes(opts *PalindromesOptions, cmd *cobra.Command, path string) error {
	eq, err := complementEquivalence(opts.Complement)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid complement table", err)
	}

	r, err := LoadSequence(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load sequence", err)
	}

	matches, err := r.FindPalindromes(ring.PalindromeOptions[string]{
		MinLength:   opts.MinLength,
		Equivalence: eq,
		Wrap:        opts.Wrap,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "palindrome search failed", err)
	}

	report := PalindromeReport{Sequence: path, MinLength: opts.MinLength, Matches: matches}
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return f.Emit(report, renderPalindromes(report))
}

// complementEquivalence parses "A=T,C=G" into a symmetric equivalence
// predicate. An empty spec returns nil, selecting identity.
func complementEquivalence(spec string) (ring.Equivalence[string], error) {
	if spec == "" {
		return nil, nil
	}

	comp := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		comp[parts[0]] = parts[1]
		comp[parts[1]] = parts[0]
	}
	return func(a, b string) bool {
		return comp[a] == b
	}, nil
}

func renderPalindromes(report PalindromeReport) string {
	if len(report.Matches) == 0 {
		return fmt.Sprintf("%s: no palindromes of length >= %d", report.Sequence, report.MinLength)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d palindrome(s) of length >= %d", report.Sequence, len(report.Matches), report.MinLength)
	for _, m := range report.Matches {
		fmt.Fprintf(&b, "\n  start %d, length %d", m.Start, m.Length)
	}
	return b.String()
}
