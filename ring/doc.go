// Package ring implements AlterCycle, a cyclic sequence container whose
// elements carry an alternating binary orientation tag.
//
// The container is built from four cooperating pieces that share one
// storage structure:
//
//   - the cyclic store: nodes in insertion order, logically wrapped into
//     a ring (node storage is an arena of index-linked slots, the "head"
//     is a stored index, so there are no self-referential pointer cycles)
//   - the alternation engine: computes each node's orientation relative
//     to its predecessor and validates transitions, either with the
//     default strict-flip rule or a caller-supplied Validator
//   - the transition journal: an append-only log of every append and its
//     validation outcome, queryable for anomalies
//   - pattern and palindrome search: rotation-window duplicate detection
//     and orientation-aware expand-around-center palindrome search
//
// ARCHITECTURE:
//
// Flag, don't reject:
// An append that violates alternation still joins the ring. The failed
// transition is recorded in the journal and surfaced through Violations()
// until the caller clears the history. This keeps every break visible
// instead of aborting ingestion at the first anomaly. Callers that want
// strict enforcement construct the ring with WithStrict, which returns
// the violation as an error while still recording it.
//
// Logical ordering:
// Sequence indices and journal ordinals come from monotonic logical
// clocks, never wall time. Indices strictly increase across the life of
// the ring and are never reassigned after a removal.
//
// Concurrency contract:
// One RWMutex per Ring. Mutators (Append, AppendOriented, InsertAfter,
// Remove, FlipOrientations, Transform, ClearHistory) take the write
// lock; whole-ring reads (Traverse, ValidateSequence, FindPatterns,
// FindPalindromes, History) take the read lock and operate on a
// consistent snapshot. Every operation is synchronous and completes in
// time proportional to the ring size; there are no background tasks and
// no suspension points.
package ring
