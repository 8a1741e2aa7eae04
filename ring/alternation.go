package ring

// Validator decides whether a transition from prev to next is legal.
// It is the sole decision point for transition legality, used both at
// append time and during a full-sequence re-check. Supplied once at
// construction via WithValidator; immutable afterwards.
//
// A validator must be a pure function of its arguments. It runs under
// the ring's lock, so it must not call back into the ring.
type Validator[T comparable] func(prev, next Node[T]) bool

// DefaultValidator is the strict-flip rule: a transition is legal iff
// the orientations differ.
func DefaultValidator[T comparable](prev, next Node[T]) bool {
	return next.Orientation != prev.Orientation
}

// ValidateSequence walks the entire ring once in forward-link order and
// reports whether every adjacent pair satisfies the validator. The walk
// stops after exactly one full cycle and includes the wraparound pair
// (last node, head) - the ring is cyclic, not linear, so the closing
// pair counts like any other.
func (r *Ring[T]) ValidateSequence() (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.head < 0 {
		return false, newError(CodeEmptyRing, "validate_sequence", "ring has no nodes")
	}

	snap := r.snapshotLocked(r.head)
	for i, n := range snap {
		next := snap[(i+1)%len(snap)]
		if !r.validator(n, next) {
			return false, nil
		}
	}
	return true, nil
}

// Violations returns every journal record with Accepted=false, in
// sequence-index order. Pure read; the journal is not modified. The
// result stays non-empty until the caller acknowledges the anomalies
// with ClearHistory.
func (r *Ring[T]) Violations() []Transition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.journal.violations()
}
