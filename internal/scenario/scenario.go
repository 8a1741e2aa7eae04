package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario: a sequence of ring operations
// followed by assertions on the resulting state, journal and search
// results. Scenarios are the executable form of the container's
// testable properties and double as documentation for wrapper authors.
type Scenario struct {
	// Name uniquely identifies this scenario. Also the golden file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Steps contains the ring operations to perform, in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final ring and journal.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is one ring operation.
//
// Handles are referred to by step number: "target: 2" means the handle
// returned by the scenario's second step. Steps are numbered from 1.
type Step struct {
	// Op is the operation: append, insert_after, remove, flip,
	// clear_history.
	Op string `yaml:"op"`

	// Value is the payload for append and insert_after.
	Value string `yaml:"value,omitempty"`

	// Orientation forces the appended node's orientation (0 or 1).
	// When absent the alternation engine computes it.
	Orientation *int `yaml:"orientation,omitempty"`

	// Meta is optional node metadata for append and insert_after.
	Meta map[string]any `yaml:"meta,omitempty"`

	// Target is the 1-based step number whose handle this operation
	// refers to (remove, insert_after).
	Target int `yaml:"target,omitempty"`

	// Positions is the flip count for the flip op.
	Positions int `yaml:"positions,omitempty"`
}

// Assertion validates the final state. Exactly one assertion type per
// entry; unused fields stay at their zero values.
type Assertion struct {
	// Type selects the assertion:
	//   - "sequence_valid": ValidateSequence returns Expect
	//   - "violation_count": len(Violations()) equals Count
	//   - "history_count": len(History()) equals Count
	//   - "ring_len": Len() equals Count
	//   - "pattern_count": FindPatterns(Length, RequireAlternation)
	//     yields Count patterns
	//   - "palindrome_contains": FindPalindromes(MinLength) reports a
	//     match at Start with MatchLength
	//   - "render": String() equals Render
	Type string `yaml:"type"`

	Expect             bool   `yaml:"expect,omitempty"`
	Count              int    `yaml:"count,omitempty"`
	Length             int    `yaml:"length,omitempty"`
	RequireAlternation bool   `yaml:"require_alternation,omitempty"`
	MinLength          int    `yaml:"min_length,omitempty"`
	Start              int    `yaml:"start,omitempty"`
	MatchLength        int    `yaml:"match_length,omitempty"`
	Render             string `yaml:"render,omitempty"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("load scenario %s: %w", path, err)
	}
	return &sc, nil
}

// LoadDir loads every *.yaml scenario in a directory, sorted by file
// name for deterministic execution order.
func LoadDir(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		sc, err := Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

var validOps = map[string]bool{
	"append":        true,
	"insert_after":  true,
	"remove":        true,
	"flip":          true,
	"clear_history": true,
}

var validAssertions = map[string]bool{
	"sequence_valid":      true,
	"violation_count":     true,
	"history_count":       true,
	"ring_len":            true,
	"pattern_count":       true,
	"palindrome_contains": true,
	"render":              true,
}

// Validate checks structural soundness before execution: known ops,
// known assertion types, in-range targets, in-domain orientations.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	for i, step := range s.Steps {
		if !validOps[step.Op] {
			return fmt.Errorf("step %d: unknown op %q", i+1, step.Op)
		}
		if step.Orientation != nil && *step.Orientation != 0 && *step.Orientation != 1 {
			return fmt.Errorf("step %d: orientation must be 0 or 1, got %d", i+1, *step.Orientation)
		}
		switch step.Op {
		case "remove", "insert_after":
			if step.Target < 1 || step.Target > i {
				return fmt.Errorf("step %d: target must name an earlier step, got %d", i+1, step.Target)
			}
		}
	}
	for i, a := range s.Assertions {
		if !validAssertions[a.Type] {
			return fmt.Errorf("assertion %d: unknown type %q", i+1, a.Type)
		}
	}
	return nil
}
