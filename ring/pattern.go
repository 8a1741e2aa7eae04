package ring

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/text/unicode/norm"
)

// Domain prefix for window identity hashing. The version suffix enables
// future algorithm migration without colliding with old digests.
const domainWindow = "altercycle/window/v1"

// PatternElement is one position of a detected pattern: the payload
// value together with its orientation. Orientation is part of pattern
// identity - the same values under different orientations are different
// patterns.
type PatternElement[T comparable] struct {
	Value       T
	Orientation Orientation
}

// Pattern is one recurring window.
//
// Rotated duplicates fold into a single pattern: windows whose contents
// are rotations of each other share an identity, and the reported
// Elements are the lexicographically least rotation. Count and Starts
// describe the windows that match Elements exactly; Total additionally
// counts the rotated forms.
type Pattern[T comparable] struct {
	Elements []PatternElement[T]
	Count    int
	Starts   []int // head-relative window offsets of exact occurrences
	Total    int
}

// PatternOptions configures FindPatterns.
type PatternOptions struct {
	// Length is the window size. Must be positive.
	Length int

	// RequireAlternation keeps only windows whose internal orientations
	// strictly alternate.
	RequireAlternation bool

	// NoWrap restricts windows to contiguous runs that do not cross the
	// head boundary. The default treats the ring as Len() overlapping
	// rotations of size Length, wrapping past the last node to the head.
	NoWrap bool
}

// FindPatterns scans the window rotations of the ring and returns the
// distinct windows that occur more than once, in order of first
// occurrence.
//
// Window identity uses a domain-separated SHA-256 digest over canonical
// element bytes (string values NFC-normalized), so comparison cost is
// O(n·k) for n nodes and window length k rather than O(n²·k); folding
// rotated duplicates adds O(k) per window-pair comparison.
func (r *Ring[T]) FindPatterns(opts PatternOptions) ([]Pattern[T], error) {
	if opts.Length <= 0 {
		return nil, newError(CodeInvalidArgument, "find_patterns", "pattern length must be positive, got %d", opts.Length)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.head < 0 {
		return nil, newError(CodeEmptyRing, "find_patterns", "ring has no nodes")
	}

	snap := r.snapshotLocked(r.head)
	n := len(snap)
	k := opts.Length
	if k > n {
		return nil, nil
	}

	// Canonical bytes per position, computed once so each window costs
	// O(k) to key.
	frames := make([][]byte, n)
	for i, node := range snap {
		frames[i] = canonicalElement(node.Value, node.Orientation)
	}

	starts := n
	if opts.NoWrap {
		starts = n - k + 1
	}

	type group struct {
		repr  []PatternElement[T]
		key   string // digest of the least rotation
		exact string // digest of the representative's exact contents (== key)
		count int
		list  []int
		total int
	}
	groups := make(map[string]*group)
	var order []string

	window := make([][]byte, k)
	for s := 0; s < starts; s++ {
		for i := 0; i < k; i++ {
			window[i] = frames[(s+i)%n]
		}

		if opts.RequireAlternation && !windowAlternates(snap, s, k) {
			continue
		}

		rot := leastRotation(window)
		key := windowDigest(window, rot)
		exact := key
		if rot != 0 {
			exact = windowDigest(window, 0)
		}

		g, ok := groups[key]
		if !ok {
			g = &group{key: key}
			groups[key] = g
			order = append(order, key)
		}
		g.total++
		if g.repr == nil {
			g.repr = make([]PatternElement[T], k)
			for i := 0; i < k; i++ {
				node := snap[(s+rot+i)%n]
				g.repr[i] = PatternElement[T]{Value: node.Value, Orientation: node.Orientation}
			}
		}
		if exact == key {
			g.count++
			g.list = append(g.list, s)
		}
	}

	var out []Pattern[T]
	for _, key := range order {
		g := groups[key]
		if g.total <= 1 {
			continue
		}
		out = append(out, Pattern[T]{
			Elements: g.repr,
			Count:    g.count,
			Starts:   g.list,
			Total:    g.total,
		})
	}
	return out, nil
}

// windowAlternates reports whether the k-window starting at offset s has
// strictly alternating internal orientations.
func windowAlternates[T comparable](snap []Node[T], s, k int) bool {
	n := len(snap)
	for i := 0; i < k-1; i++ {
		if snap[(s+i)%n].Orientation == snap[(s+i+1)%n].Orientation {
			return false
		}
	}
	return true
}

// canonicalElement produces the canonical bytes of one (value,
// orientation) pair. String values are NFC-normalized so equal text in
// different Unicode compositions hashes identically; everything else
// uses its default formatted form. Length-prefix framing prevents
// boundary ambiguity between adjacent elements.
func canonicalElement(v any, o Orientation) []byte {
	var repr string
	if s, ok := v.(string); ok {
		repr = norm.NFC.String(s)
	} else {
		repr = fmt.Sprintf("%v", v)
	}
	return fmt.Appendf(nil, "%d:%s|%s", len(repr), repr, o)
}

// windowDigest computes the window identity digest for the rotation of
// window starting at offset rot. Format: SHA256(domain + 0x00 + frames).
// The null separator prevents domain/data boundary ambiguity.
func windowDigest(window [][]byte, rot int) string {
	h := sha256.New()
	h.Write([]byte(domainWindow))
	h.Write([]byte{0x00})
	k := len(window)
	for i := 0; i < k; i++ {
		h.Write(window[(rot+i)%k])
	}
	return hex.EncodeToString(h.Sum(nil))
}

// leastRotation returns the offset of the lexicographically least
// rotation of the window, comparing element frames bytewise.
func leastRotation(window [][]byte) int {
	best := 0
	for cand := 1; cand < len(window); cand++ {
		if rotationLess(window, cand, best) {
			best = cand
		}
	}
	return best
}

func rotationLess(window [][]byte, a, b int) bool {
	k := len(window)
	for i := 0; i < k; i++ {
		if c := bytes.Compare(window[(a+i)%k], window[(b+i)%k]); c != 0 {
			return c < 0
		}
	}
	return false
}
