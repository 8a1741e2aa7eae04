package ring

// Transition is one journal entry, created synchronously with each
// append. Entries are append-only: once written they are never mutated
// or deleted, and an Accepted=false entry is never retroactively
// revised. Entries live until the caller clears the history.
type Transition struct {
	// Seq is the sequence index of the appended node.
	Seq int64

	// PrevOrientation is the predecessor's orientation at append time.
	// The first append of a ring has no predecessor; it records
	// Orientation0 here and is vacuously accepted.
	PrevOrientation Orientation

	// NewOrientation is the appended node's orientation.
	NewOrientation Orientation

	// Accepted is the validator's verdict for this transition.
	Accepted bool

	// Ordinal is the journal's logical-clock stamp. Ordinals strictly
	// increase in journal order and survive ClearHistory (the clock is
	// not reset, so pre- and post-clear entries remain distinguishable).
	Ordinal int64
}

// journal is the in-memory append-only transition log.
//
// It has no lock of its own: the owning Ring serializes access through
// its instance lock (writes under the write lock, reads under the read
// lock). Records are kept in insertion order, which is also seq order
// since both come from the same locked append path.
type journal struct {
	records []Transition
}

// record appends one entry. O(1) amortized; never rejects input.
func (j *journal) record(t Transition) {
	j.records = append(j.records, t)
}

// all returns a copy of the full log in insertion order. Copying keeps
// the journal immutable from the caller's side.
func (j *journal) all() []Transition {
	out := make([]Transition, len(j.records))
	copy(out, j.records)
	return out
}

// violations returns the Accepted=false entries in insertion order.
func (j *journal) violations() []Transition {
	var out []Transition
	for _, t := range j.records {
		if !t.Accepted {
			out = append(out, t)
		}
	}
	return out
}

// clear drops all entries.
func (j *journal) clear() {
	j.records = nil
}

// History returns the full transition log, oldest first. The returned
// slice is the caller's to keep; later appends do not show up in it.
func (r *Ring[T]) History() []Transition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.journal.all()
}

// ClearHistory drops all journal records. This is how a caller
// acknowledges prior anomalies before continuing. The ring structure
// and node orientations are untouched.
func (r *Ring[T]) ClearHistory() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.journal.clear()
}
