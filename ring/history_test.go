package ring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Journal completeness and immutability
// =============================================================================

func TestHistory_OneRecordPerAppend(t *testing.T) {
	r := New[string]()
	for i, v := range []string{"a", "b", "c"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
		assert.Len(t, r.History(), i+1)
	}
}

func TestHistory_RecordsFirstAppendAsVacuouslyAccepted(t *testing.T) {
	r := New[string]()
	_, err := r.AppendOriented("a", Orientation0, nil)
	require.NoError(t, err)

	hist := r.History()
	require.Len(t, hist, 1)
	assert.True(t, hist[0].Accepted, "the first node has no predecessor to violate")
	assert.Equal(t, int64(1), hist[0].Seq)
}

func TestHistory_CountsInsertAfterAndRemoveAsymmetrically(t *testing.T) {
	r := New[string]()
	ha, err := r.Append("a", nil)
	require.NoError(t, err)
	hb, err := r.InsertAfter(ha, "b", nil)
	require.NoError(t, err)
	require.NoError(t, r.Remove(hb))

	// Two appends journaled; removal is structural, not a transition.
	assert.Len(t, r.History(), 2)
}

func TestHistory_ReturnedSliceIsACopy(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)

	hist := r.History()
	hist[0].Accepted = false

	fresh := r.History()
	assert.True(t, fresh[0].Accepted, "mutating the returned slice must not touch the journal")
}

func TestHistory_LaterAppendsDoNotShowInOldView(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)

	old := r.History()
	_, err = r.Append("b", nil)
	require.NoError(t, err)

	assert.Len(t, old, 1)
	assert.Len(t, r.History(), 2)
}

func TestHistory_OrdinalsStrictlyIncrease(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b", "c"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}

	hist := r.History()
	for i := 1; i < len(hist); i++ {
		assert.Greater(t, hist[i].Ordinal, hist[i-1].Ordinal)
	}
}

// =============================================================================
// ClearHistory
// =============================================================================

func TestClearHistory_DropsRecordsOnly(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}

	r.ClearHistory()

	assert.Empty(t, r.History())
	assert.Equal(t, 2, r.Len())
	assertClosure(t, r)
}

func TestClearHistory_OrdinalClockSurvives(t *testing.T) {
	r := New[string]()
	_, err := r.Append("a", nil)
	require.NoError(t, err)
	before := r.History()[0].Ordinal

	r.ClearHistory()
	_, err = r.Append("b", nil)
	require.NoError(t, err)

	after := r.History()[0].Ordinal
	assert.Greater(t, after, before, "pre- and post-clear entries stay distinguishable")
}

func TestClearHistory_CountsResetForCompleteness(t *testing.T) {
	r := New[string]()
	for _, v := range []string{"a", "b", "c"} {
		_, err := r.Append(v, nil)
		require.NoError(t, err)
	}
	r.ClearHistory()

	_, err := r.Append("d", nil)
	require.NoError(t, err)
	assert.Len(t, r.History(), 1, "history counts appends since the last clear")
}
