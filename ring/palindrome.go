package ring

import "sort"

// Equivalence decides whether two values count as mirror matches for
// palindrome purposes. Wrappers substitute domain relations here (a DNA
// analyzer supplies base complementarity); the core never hard-codes
// one. The predicate should be symmetric.
type Equivalence[T comparable] func(a, b T) bool

// PalindromeMatch is one maximal orientation-aware palindrome: a
// contiguous run of Length nodes beginning Start positions after the
// head (in forward-link order).
type PalindromeMatch struct {
	Start  int
	Length int
}

// PalindromeOptions configures FindPalindromes.
type PalindromeOptions[T comparable] struct {
	// MinLength is the minimum match length to report. Must be positive.
	MinLength int

	// Equivalence is the mirror-match predicate. Nil means identity.
	Equivalence Equivalence[T]

	// Wrap allows matches to cross the head boundary. Off by default: a
	// palindrome is usually read as a linear excerpt of the ring. A
	// wrapped match never exceeds Len() nodes (it may not self-overlap).
	Wrap bool
}

// FindPalindromes returns every maximal sub-sequence of length >=
// MinLength that reads the same forward and backward under the
// equivalence predicate, expanded around each candidate center (odd
// lengths) and center gap (even lengths).
//
// Expansion is gated by the alternation invariant: it proceeds only
// while the newly covered adjacent orientations alternate AND the mirror
// pair's orientation parity mirrors (equal orientations at even mirror
// distance, complementary at odd). This orientation awareness is what
// separates the search from a plain string-palindrome scan: a mirror
// match must mirror parity, not just value.
//
// Overlapping matches are all reported; only exact duplicate ranges are
// deduplicated. Results are ordered by start, then length.
func (r *Ring[T]) FindPalindromes(opts PalindromeOptions[T]) ([]PalindromeMatch, error) {
	if opts.MinLength <= 0 {
		return nil, newError(CodeInvalidArgument, "find_palindromes", "min length must be positive, got %d", opts.MinLength)
	}

	eq := opts.Equivalence
	if eq == nil {
		eq = func(a, b T) bool { return a == b }
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.head < 0 {
		return nil, newError(CodeEmptyRing, "find_palindromes", "ring has no nodes")
	}

	snap := r.snapshotLocked(r.head)
	s := &palindromeScan[T]{snap: snap, eq: eq, wrap: opts.Wrap, seen: make(map[[2]int]bool)}

	n := len(snap)
	for c := 0; c < n; c++ {
		s.expandOdd(c, opts.MinLength)
	}
	evenCenters := n - 1
	if opts.Wrap {
		evenCenters = n // the (last, head) gap is a center too
	}
	for c := 0; c < evenCenters; c++ {
		s.expandEven(c, opts.MinLength)
	}

	sort.Slice(s.matches, func(i, j int) bool {
		if s.matches[i].Start != s.matches[j].Start {
			return s.matches[i].Start < s.matches[j].Start
		}
		return s.matches[i].Length < s.matches[j].Length
	})
	return s.matches, nil
}

type palindromeScan[T comparable] struct {
	snap    []Node[T]
	eq      Equivalence[T]
	wrap    bool
	seen    map[[2]int]bool
	matches []PalindromeMatch
}

func (s *palindromeScan[T]) at(i int) Node[T] {
	n := len(s.snap)
	return s.snap[((i%n)+n)%n]
}

// inRange reports whether positions l..r form a legal window: within the
// linear snapshot bounds when not wrapping, within Len() total nodes
// (no self-overlap) when wrapping.
func (s *palindromeScan[T]) inRange(l, r int) bool {
	if s.wrap {
		return r-l+1 <= len(s.snap)
	}
	return l >= 0 && r < len(s.snap)
}

// mirrorStep checks the gate for extending a match outward to the pair
// (l, r): value equivalence, alternation on the freshly covered edges,
// and mirrored orientation parity across the center.
func (s *palindromeScan[T]) mirrorStep(l, r int) bool {
	if !s.eq(s.at(l).Value, s.at(r).Value) {
		return false
	}
	// Alternation on the two new boundary edges. For an adjacent pair
	// (r == l+1) the single edge doubles as the parity check below.
	if r > l+1 {
		if s.at(l).Orientation == s.at(l+1).Orientation {
			return false
		}
		if s.at(r-1).Orientation == s.at(r).Orientation {
			return false
		}
	}
	// Mirror parity: equal orientations at even mirror distance,
	// complementary at odd.
	if (r-l)%2 == 0 {
		return s.at(l).Orientation == s.at(r).Orientation
	}
	return s.at(l).Orientation != s.at(r).Orientation
}

// expandOdd grows the maximal odd-length match centered at c.
func (s *palindromeScan[T]) expandOdd(c, minLength int) {
	l, r := c, c
	for s.inRange(l-1, r+1) && s.mirrorStep(l-1, r+1) {
		l--
		r++
	}
	s.report(l, r, minLength)
}

// expandEven grows the maximal even-length match around the gap between
// c and c+1. No match is reported when even the innermost pair fails.
func (s *palindromeScan[T]) expandEven(c, minLength int) {
	if !s.inRange(c, c+1) || !s.mirrorStep(c, c+1) {
		return
	}
	l, r := c, c+1
	for s.inRange(l-1, r+1) && s.mirrorStep(l-1, r+1) {
		l--
		r++
	}
	s.report(l, r, minLength)
}

// report records the maximal match l..r if it clears the length floor.
// Start is normalized to a head-relative offset; exact duplicate ranges
// are dropped.
func (s *palindromeScan[T]) report(l, r, minLength int) {
	length := r - l + 1
	if length < minLength {
		return
	}
	n := len(s.snap)
	start := ((l % n) + n) % n
	key := [2]int{start, length}
	if s.seen[key] {
		return
	}
	s.seen[key] = true
	s.matches = append(s.matches, PalindromeMatch{Start: start, Length: length})
}
