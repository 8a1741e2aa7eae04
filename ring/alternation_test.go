package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ValidateSequence
// =============================================================================

func TestValidateSequence_EmptyRing(t *testing.T) {
	r := New[string]()
	_, err := r.ValidateSequence()
	require.Error(t, err)
	assert.True(t, IsEmptyRing(err))
}

func TestValidateSequence_SingleNode(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)

	// The single pair is (head, head), which cannot alternate.
	ok, err := r.ValidateSequence()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateSequence_EvenRingAlternates(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b", "c", "d"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}

	ok, err := r.ValidateSequence()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestValidateSequence_OddRingFailsOnWraparound(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b", "c"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}

	// Orientations 0,1,0: every linear pair alternates, but the cyclic
	// closing pair (last, head) is 0 -> 0. A linear check would pass
	// here; the cyclic one must not.
	ok, err := r.ValidateSequence()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateSequence_DetectsForcedBreakMidRing(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("b", Orientation0, nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("c", Orientation1, nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("d", Orientation0, nil)
	require.NoError(t, err)

	ok, err := r.ValidateSequence()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestValidateSequence_IdempotentRead(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}

	first, err := r.ValidateSequence()
	require.NoError(t, err)
	second, err := r.ValidateSequence()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// =============================================================================
// Violations
// =============================================================================

func TestViolations_EmptyWithoutBreaks(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}
	assert.Empty(t, r.Violations())
}

func TestViolations_OrderedBySequenceIndex(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("b", Orientation0, nil) // break at seq 2
	require.NoError(t, err)
	_, err = r.AppendOriented("c", Orientation1, nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("d", Orientation1, nil) // break at seq 4
	require.NoError(t, err)

	violations := r.Violations()
	require.Len(t, violations, 2)
	assert.Equal(t, int64(2), violations[0].Seq)
	assert.Equal(t, int64(4), violations[1].Seq)
	for _, v := range violations {
		assert.False(t, v.Accepted)
	}
}

func TestViolations_SurfacedUntilHistoryCleared(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)
	_, err = r.AppendOriented("b", Orientation0, nil)
	require.NoError(t, err)

	require.Len(t, r.Violations(), 1)
	require.Len(t, r.Violations(), 1, "pure read, repeatable")

	r.ClearHistory()
	assert.Empty(t, r.Violations())
	assert.Equal(t, 2, r.Len(), "clearing history leaves the ring intact")
}
