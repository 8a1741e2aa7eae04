package scenario

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its trace snapshot
// against the golden file testdata/{scenario.Name}.golden.
//
// Snapshots are deterministic: handles come from a sequential generator
// and orderings are logical, so the same scenario always serializes to
// the same bytes. Regenerate golden files with:
//
//	go test ./internal/scenario -update
func RunWithGolden(t *testing.T, sc *Scenario) *Result {
	t.Helper()

	res, err := Run(sc)
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}
	for _, f := range res.Failures {
		t.Errorf("scenario %s: %v", sc.Name, f)
	}

	// Renders contain "->" arrows; keep them readable in golden files.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res.Snapshot); err != nil {
		t.Fatalf("scenario %s: marshal snapshot: %v", sc.Name, err)
	}

	g := goldie.New(t)
	g.Assert(t, sc.Name, buf.Bytes())
	return res
}
