package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alternatingRing builds a ring from values with default (computed)
// orientations: 0,1,0,1,...
func alternatingRing(t *testing.T, values ...string) *Ring[string] {
	t.Helper()
	r := New[string]()
	for _, v := range values {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}
	return r
}

// =============================================================================
// Argument and boundary handling
// =============================================================================

func TestFindPatterns_ZeroLength(t *testing.T) {
	r := alternatingRing(t, "a", "b")
	_, err := r.FindPatterns(PatternOptions{Length: 0})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestFindPatterns_NegativeLength(t *testing.T) {
	r := alternatingRing(t, "a", "b")
	_, err := r.FindPatterns(PatternOptions{Length: -3})
	require.Error(t, err)
	assert.True(t, IsInvalidArgument(err))
}

func TestFindPatterns_EmptyRing(t *testing.T) {
	r := New[string]()
	_, err := r.FindPatterns(PatternOptions{Length: 1})
	require.Error(t, err)
	assert.True(t, IsEmptyRing(err))
}

func TestFindPatterns_LengthExceedsRing(t *testing.T) {
	r := alternatingRing(t, "a", "b")
	patterns, err := r.FindPatterns(PatternOptions{Length: 3})
	require.NoError(t, err)
	assert.Empty(t, patterns)
}

// =============================================================================
// Detection
// =============================================================================

func TestFindPatterns_StrictAlternationRing(t *testing.T) {
	// 0,1,0,1,0,1 - six nodes, values mirroring their orientations.
	r := alternatingRing(t, "0", "1", "0", "1", "0", "1")

	patterns, err := r.FindPatterns(PatternOptions{Length: 2, RequireAlternation: true})
	require.NoError(t, err)

	// The six rotations are (0,1) and (1,0) three times each; they are
	// rotations of one another, so exactly one pattern is reported, with
	// the least rotation (0,1) as representative.
	require.Len(t, patterns, 1)
	p := patterns[0]
	require.Len(t, p.Elements, 2)
	assert.Equal(t, "0", p.Elements[0].Value)
	assert.Equal(t, Orientation0, p.Elements[0].Orientation)
	assert.Equal(t, "1", p.Elements[1].Value)
	assert.Equal(t, Orientation1, p.Elements[1].Orientation)
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, []int{0, 2, 4}, p.Starts)
	assert.Equal(t, 6, p.Total)
}

func TestFindPatterns_NoRepeats(t *testing.T) {
	r := alternatingRing(t, "a", "b", "c", "d")
	patterns, err := r.FindPatterns(PatternOptions{Length: 2})
	require.NoError(t, err)
	assert.Empty(t, patterns, "windows occurring once are not patterns")
}

func TestFindPatterns_WindowsCrossTheHeadBoundary(t *testing.T) {
	// a,b,c,a - the wrapped window (a,?) at start 3 pairs the last node
	// with the head.
	r := alternatingRing(t, "a", "b", "a", "b")

	patterns, err := r.FindPatterns(PatternOptions{Length: 2})
	require.NoError(t, err)
	require.Len(t, patterns, 1)
	assert.Equal(t, 4, patterns[0].Total, "all four rotations participate")
}

func TestFindPatterns_NoWrapDropsBoundaryWindows(t *testing.T) {
	r := alternatingRing(t, "a", "b", "a", "b")

	wrapped, err := r.FindPatterns(PatternOptions{Length: 2})
	require.NoError(t, err)
	linear, err := r.FindPatterns(PatternOptions{Length: 2, NoWrap: true})
	require.NoError(t, err)

	require.Len(t, wrapped, 1)
	require.Len(t, linear, 1)
	assert.Less(t, linear[0].Total, wrapped[0].Total)
}

func TestFindPatterns_RequireAlternationFiltersBrokenWindows(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("b", Orientation0, nil) // break
	require.NoError(t, err)
	_, err = r.AppendOriented("a", Orientation0, nil) // break
	require.NoError(t, err)
	_, err = r.AppendOriented("b", Orientation0, nil) // break
	require.NoError(t, err)

	all, err := r.FindPatterns(PatternOptions{Length: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, all, "without the filter the repeated (a,b) windows count")

	filtered, err := r.FindPatterns(PatternOptions{Length: 2, RequireAlternation: true})
	require.NoError(t, err)
	assert.Empty(t, filtered, "no window with equal adjacent orientations survives")
}

func TestFindPatterns_OrientationIsPartOfIdentity(t *testing.T) {
	// Same values, different orientations: (a@0) and (a@1) windows must
	// not merge.
	r := New[string]()
	_, err := r.Append("a", nil) // a@0
	require.NoError(t, err)
	_, err = r.AppendOriented("a", Orientation0, nil) // a@0
	require.NoError(t, err)
	_, err = r.AppendOriented("a", Orientation1, nil) // a@1
	require.NoError(t, err)

	patterns, err := r.FindPatterns(PatternOptions{Length: 1})
	require.NoError(t, err)
	require.Len(t, patterns, 1, "only a@0 repeats")
	assert.Equal(t, Orientation0, patterns[0].Elements[0].Orientation)
	assert.Equal(t, 2, patterns[0].Count)
}

func TestFindPatterns_IdempotentRead(t *testing.T) {
	r := alternatingRing(t, "0", "1", "0", "1")

	first, err := r.FindPatterns(PatternOptions{Length: 2})
	require.NoError(t, err)
	second, err := r.FindPatterns(PatternOptions{Length: 2})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// =============================================================================
// Canonicalization
// =============================================================================

func TestCanonicalElement_NFCNormalizesStrings(t *testing.T) {
	// U+00E9 (precomposed) and U+0065 U+0301 (decomposed) are the same
	// text; their canonical bytes must agree.
	composed := canonicalElement("café", Orientation0)
	decomposed := canonicalElement("café", Orientation0)
	assert.Equal(t, composed, decomposed)
}

func TestCanonicalElement_OrientationChangesBytes(t *testing.T) {
	a := canonicalElement("x", Orientation0)
	b := canonicalElement("x", Orientation1)
	assert.NotEqual(t, a, b)
}

func TestLeastRotation_PicksLexicographicMinimum(t *testing.T) {
	window := [][]byte{[]byte("b"), []byte("a"), []byte("c")}
	assert.Equal(t, 1, leastRotation(window))
}

func TestLeastRotation_IdentityWhenAlreadyMinimal(t *testing.T) {
	window := [][]byte{[]byte("a"), []byte("b")}
	assert.Equal(t, 0, leastRotation(window))
}
