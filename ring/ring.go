package ring

import (
	"iter"
	"strings"
	"sync"
)

// Ring is an alternating cyclic sequence container.
//
// The zero value is not usable; construct with New. A Ring owns its
// nodes and its transition journal exclusively - callers hold nodes only
// as read views (Node) and refer to them by Handle.
//
// Lock granularity, documented for test authors: one RWMutex per Ring.
// Mutating operations serialize on the write lock; whole-ring reads take
// the read lock and see a consistent snapshot. Single-node lookups (Get,
// Head, Len) also use the read lock.
type Ring[T comparable] struct {
	mu    sync.RWMutex
	arena []slot[T]
	free  []int
	index map[Handle]int
	head  int // arena index of the head node, -1 when empty
	size  int

	seq     clock // append ordinals (sequence indices)
	ticks   clock // journal ordinals
	journal journal

	validator Validator[T]
	handles   HandleGenerator
	strict    bool
}

// Option configures a Ring at construction. The validator and handle
// generator are fixed once New returns; no mutation API exists for them.
type Option[T comparable] func(*Ring[T])

// WithValidator replaces the default strict-flip transition rule.
func WithValidator[T comparable](v Validator[T]) Option[T] {
	return func(r *Ring[T]) { r.validator = v }
}

// WithHandleGenerator replaces the default UUIDv7 handle generator.
// Tests and golden scenarios use SeqGenerator for deterministic handles.
func WithHandleGenerator[T comparable](g HandleGenerator) Option[T] {
	return func(r *Ring[T]) { r.handles = g }
}

// WithStrict makes Append and friends return an alternation violation as
// an *Error with CodeValidation. The node is still appended and the
// journal still records the failed transition; strict mode changes what
// the caller sees, not what the ring does.
func WithStrict[T comparable]() Option[T] {
	return func(r *Ring[T]) { r.strict = true }
}

// New creates an empty ring.
func New[T comparable](opts ...Option[T]) *Ring[T] {
	r := &Ring[T]{
		index:     make(map[Handle]int),
		head:      -1,
		validator: DefaultValidator[T],
		handles:   UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Len returns the current live node count. O(1).
func (r *Ring[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.size
}

// Head returns the head node: the first-appended live node, the origin
// for orientation parity and default traversal start.
func (r *Ring[T]) Head() (Node[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.head < 0 {
		return Node[T]{}, newError(CodeEmptyRing, "head", "ring has no nodes")
	}
	return r.arena[r.head].view(), nil
}

// Get returns the node identified by h.
func (r *Ring[T]) Get(h Handle) (Node[T], error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.index[h]
	if !ok {
		return Node[T]{}, newError(CodeNotFound, "get", "unknown handle %q", h)
	}
	return r.arena[idx].view(), nil
}

// Append adds a node after the current last node and rewires ring
// closure so the new node's forward link points at the head. The
// orientation is computed by the alternation engine (complement of the
// predecessor's orientation; Orientation0 for the first node) and the
// transition is validated and journaled.
//
// Append always grows the ring by one. A violating transition does not
// reject the append - it is recorded with Accepted=false and surfaced
// through Violations(). With WithStrict the violation is also returned
// as an error alongside the valid handle.
func (r *Ring[T]) Append(value T, meta map[string]any) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked("append", value, nil, meta)
}

// AppendOriented is Append with a caller-forced orientation instead of
// the computed one. This is how wrappers ingest pre-tagged data and how
// tests provoke violations. An orientation outside {0, 1} fails with
// CodeInvalidArgument.
func (r *Ring[T]) AppendOriented(value T, o Orientation, meta map[string]any) (Handle, error) {
	if o > Orientation1 {
		return "", newError(CodeInvalidArgument, "append", "orientation must be 0 or 1, got %d", o)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked("append", value, &o, meta)
}

// InsertAfter adds a node directly after the node identified by after.
// The new node's orientation is the complement of its predecessor's, and
// the (predecessor, new) transition is validated and journaled. The new
// node still receives the next global sequence index - indices order
// appends in time, not positions around the ring.
//
// Note the successor pair is not re-validated here; an insertion that
// breaks alternation further around the ring shows up in
// ValidateSequence, not in the journal.
func (r *Ring[T]) InsertAfter(after Handle, value T, meta map[string]any) (Handle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	prevIdx, ok := r.index[after]
	if !ok {
		return "", newError(CodeNotFound, "insert_after", "unknown handle %q", after)
	}
	return r.insertLocked("insert_after", prevIdx, value, nil, meta)
}

// Remove detaches the node identified by h and re-links its neighbors to
// preserve ring closure. Removing the head reseats head to the removed
// node's successor; removing the last node empties the ring. The node's
// sequence index is never reassigned.
func (r *Ring[T]) Remove(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.index[h]
	if !ok {
		return newError(CodeNotFound, "remove", "unknown handle %q", h)
	}

	s := &r.arena[idx]
	if r.size == 1 {
		r.head = -1
	} else {
		r.arena[s.prev].next = s.next
		r.arena[s.next].prev = s.prev
		if r.head == idx {
			r.head = s.next
		}
	}

	delete(r.index, h)
	r.releaseSlot(idx)
	r.size--
	return nil
}

// TraverseOptions configures Traverse.
type TraverseOptions struct {
	// Start is the node to begin at. The zero Handle means the head.
	Start Handle

	// Count is the number of nodes to yield, wrapping around the ring
	// past the last node. Zero means an unbounded cyclic sequence - the
	// ring has no natural end, so callers wanting a finite view must
	// say how many nodes they need. Negative counts are invalid.
	Count int
}

// Traverse returns a lazy sequence of nodes in forward-link order.
//
// The sequence iterates a snapshot taken under the read lock, so it is
// consistent even while other goroutines mutate the ring, and it is
// restartable: ranging over the returned sequence again begins at the
// same start with the same snapshot.
func (r *Ring[T]) Traverse(opts TraverseOptions) (iter.Seq[Node[T]], error) {
	if opts.Count < 0 {
		return nil, newError(CodeInvalidArgument, "traverse", "count must be >= 0, got %d", opts.Count)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.head < 0 {
		return nil, newError(CodeEmptyRing, "traverse", "ring has no nodes")
	}

	start := r.head
	if opts.Start != "" {
		idx, ok := r.index[opts.Start]
		if !ok {
			return nil, newError(CodeNotFound, "traverse", "unknown handle %q", opts.Start)
		}
		start = idx
	}

	snap := r.snapshotLocked(start)
	count := opts.Count
	return func(yield func(Node[T]) bool) {
		for i := 0; count == 0 || i < count; i++ {
			if !yield(snap[i%len(snap)]) {
				return
			}
		}
	}, nil
}

// FlipOrientations complements every node's orientation the given number
// of times. Odd totals invert the ring's parity, even totals are a
// no-op. Flips are a bulk relabel, not appends, so the journal is not
// touched. A negative count flips by its absolute value, mirroring the
// symmetric nature of the complement.
func (r *Ring[T]) FlipOrientations(positions int) {
	if positions < 0 {
		positions = -positions
	}
	if positions%2 == 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.arena {
		if r.arena[i].live {
			r.arena[i].orientation = r.arena[i].orientation.Flip()
		}
	}
}

// Transform rewrites every node's value in ring order while leaving
// orientations untouched. fn receives the current value and orientation.
func (r *Ring[T]) Transform(fn func(T, Orientation) T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.head < 0 {
		return
	}
	idx := r.head
	for range r.size {
		s := &r.arena[idx]
		s.value = fn(s.value, s.orientation)
		idx = s.next
	}
}

// String renders the ring for diagnostics:
// Ring[a(0) -> b(1::k=v) -> c(0)]. Deterministic given the same ring.
func (r *Ring[T]) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.head < 0 {
		return "Ring[]"
	}
	parts := make([]string, 0, r.size)
	for _, n := range r.snapshotLocked(r.head) {
		parts = append(parts, n.render())
	}
	return "Ring[" + strings.Join(parts, " -> ") + "]"
}

// appendLocked links a new node after the current last node. forced is
// nil when the alternation engine should compute the orientation.
// Caller holds the write lock.
func (r *Ring[T]) appendLocked(op string, value T, forced *Orientation, meta map[string]any) (Handle, error) {
	if r.head < 0 {
		return r.insertFirstLocked(op, value, forced, meta)
	}
	return r.insertLocked(op, r.arena[r.head].prev, value, forced, meta)
}

// insertFirstLocked seeds an empty ring. The first node has no
// predecessor, so its transition is vacuously accepted and the journal
// records the zero orientation as the previous one.
func (r *Ring[T]) insertFirstLocked(op string, value T, forced *Orientation, meta map[string]any) (Handle, error) {
	o := Orientation0
	if forced != nil {
		o = *forced
	}

	idx := r.allocSlot()
	s := &r.arena[idx]
	s.value = value
	s.orientation = o
	s.meta = meta
	s.seq = r.seq.next()
	s.handle = r.handles.Generate()
	s.next = idx
	s.prev = idx
	s.live = true

	r.head = idx
	r.index[s.handle] = idx
	r.size++

	r.journal.record(Transition{
		Seq:             s.seq,
		PrevOrientation: Orientation0,
		NewOrientation:  o,
		Accepted:        true,
		Ordinal:         r.ticks.next(),
	})
	return s.handle, nil
}

// insertLocked links a new node after prevIdx, validates the transition
// against that predecessor and journals the outcome. Caller holds the
// write lock and guarantees prevIdx is live.
func (r *Ring[T]) insertLocked(op string, prevIdx int, value T, forced *Orientation, meta map[string]any) (Handle, error) {
	prev := r.arena[prevIdx].view()

	o := prev.Orientation.Flip()
	if forced != nil {
		o = *forced
	}

	idx := r.allocSlot()
	s := &r.arena[idx]
	s.value = value
	s.orientation = o
	s.meta = meta
	s.seq = r.seq.next()
	s.handle = r.handles.Generate()
	s.live = true

	// prevIdx may have been r.head.prev before allocSlot; re-read links
	// through the arena since allocSlot can grow the backing array.
	nextIdx := r.arena[prevIdx].next
	s.prev = prevIdx
	s.next = nextIdx
	r.arena[prevIdx].next = idx
	r.arena[nextIdx].prev = idx

	r.index[s.handle] = idx
	r.size++

	accepted := r.validator(prev, s.view())
	r.journal.record(Transition{
		Seq:             s.seq,
		PrevOrientation: prev.Orientation,
		NewOrientation:  o,
		Accepted:        accepted,
		Ordinal:         r.ticks.next(),
	})

	if r.strict && !accepted {
		return s.handle, newError(CodeValidation, op,
			"transition %s -> %s rejected by validator at seq %d", prev.Orientation, o, s.seq)
	}
	return s.handle, nil
}

// allocSlot returns the arena index of a free slot, growing the arena
// when the free list is empty.
func (r *Ring[T]) allocSlot() int {
	if n := len(r.free); n > 0 {
		idx := r.free[n-1]
		r.free = r.free[:n-1]
		return idx
	}
	r.arena = append(r.arena, slot[T]{})
	return len(r.arena) - 1
}

// releaseSlot zeroes a slot and pushes it on the free list. Zeroing
// drops the value and meta references so they can be collected.
func (r *Ring[T]) releaseSlot(idx int) {
	r.arena[idx] = slot[T]{}
	r.free = append(r.free, idx)
}

// snapshotLocked copies the ring in forward-link order starting at the
// given arena index. Caller holds at least the read lock and guarantees
// the ring is non-empty.
func (r *Ring[T]) snapshotLocked(start int) []Node[T] {
	snap := make([]Node[T], 0, r.size)
	idx := start
	for range r.size {
		snap = append(snap, r.arena[idx].view())
		idx = r.arena[idx].next
	}
	return snap
}
