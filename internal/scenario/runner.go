package scenario

import (
	"fmt"

	"github.com/roach88/altercycle/ring"
)

// TraceEvent is one executed step in a trace snapshot. Orientations are
// rendered as "0"/"1" strings so the JSON form stays stable.
type TraceEvent struct {
	Op          string `json:"op"`
	Value       string `json:"value,omitempty"`
	Orientation string `json:"orientation,omitempty"`
	Handle      string `json:"handle,omitempty"`
	Accepted    *bool  `json:"accepted,omitempty"`
}

// TraceSnapshot captures a scenario execution for golden comparison.
// Rings in scenarios use sequential handle generators, so the snapshot
// is byte-identical across runs.
type TraceSnapshot struct {
	ScenarioName  string       `json:"scenario_name"`
	Trace         []TraceEvent `json:"trace"`
	FinalRender   string       `json:"final_render"`
	SequenceValid *bool        `json:"sequence_valid,omitempty"`
	Violations    int          `json:"violations"`
	HistoryLen    int          `json:"history_len"`
}

// Result is the outcome of one scenario run. Failures holds assertion
// errors; a scenario passes when Failures is empty.
type Result struct {
	Scenario *Scenario
	Snapshot TraceSnapshot
	Failures []error
}

// Passed reports whether every assertion held.
func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

// Run executes a scenario against a fresh string ring with sequential
// handles. Structural problems (unknown target handle, ring errors on a
// well-formed scenario) abort the run with an error; assertion failures
// are collected in the result instead.
func Run(sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	r := ring.New[string](ring.WithHandleGenerator[string](ring.NewSeqGenerator()))

	// handles[i] is the handle created by step i+1, zero for ops that
	// create no node.
	handles := make([]ring.Handle, len(sc.Steps))
	snapshot := TraceSnapshot{ScenarioName: sc.Name}

	for i, step := range sc.Steps {
		ev := TraceEvent{Op: step.Op}
		switch step.Op {
		case "append":
			h, err := appendStep(r, step)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			handles[i] = h
			fillNodeEvent(&ev, r, h)
		case "insert_after":
			h, err := r.InsertAfter(handles[step.Target-1], step.Value, step.Meta)
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			handles[i] = h
			fillNodeEvent(&ev, r, h)
		case "remove":
			if err := r.Remove(handles[step.Target-1]); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
			ev.Handle = string(handles[step.Target-1])
		case "flip":
			r.FlipOrientations(step.Positions)
		case "clear_history":
			r.ClearHistory()
		}
		snapshot.Trace = append(snapshot.Trace, ev)

		// Node-creating steps pick up the validator's verdict.
		if step.Op == "append" || step.Op == "insert_after" {
			hist := r.History()
			if len(hist) > 0 {
				accepted := hist[len(hist)-1].Accepted
				snapshot.Trace[len(snapshot.Trace)-1].Accepted = &accepted
			}
		}
	}

	snapshot.FinalRender = r.String()
	snapshot.Violations = len(r.Violations())
	snapshot.HistoryLen = len(r.History())
	if r.Len() > 0 {
		valid, err := r.ValidateSequence()
		if err != nil {
			return nil, fmt.Errorf("validate sequence: %w", err)
		}
		snapshot.SequenceValid = &valid
	}

	res := &Result{Scenario: sc, Snapshot: snapshot}
	for _, a := range sc.Assertions {
		if err := check(r, a); err != nil {
			res.Failures = append(res.Failures, err)
		}
	}
	return res, nil
}

func appendStep(r *ring.Ring[string], step Step) (ring.Handle, error) {
	if step.Orientation != nil {
		return r.AppendOriented(step.Value, ring.Orientation(*step.Orientation), step.Meta)
	}
	return r.Append(step.Value, step.Meta)
}

func fillNodeEvent(ev *TraceEvent, r *ring.Ring[string], h ring.Handle) {
	n, err := r.Get(h)
	if err != nil {
		return
	}
	ev.Value = n.Value
	ev.Orientation = n.Orientation.String()
	ev.Handle = string(h)
}
