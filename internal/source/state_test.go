package source

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bazaar-engine/internal/domain"
)

func TestStateLifecycle(t *testing.T) {
	st := NewState("products", domain.KindProduct)
	require.Equal(t, StatusIdle, st.Status())

	seq := st.begin()
	require.Equal(t, StatusLoading, st.Status())

	ok := st.applyLoaded(seq, []domain.Record{{ID: "1"}}, 10*time.Millisecond)
	require.True(t, ok)
	require.Equal(t, StatusLoaded, st.Status())
	require.Len(t, st.Items(), 1)
	require.Empty(t, st.ErrorMessage())
}

func TestStateFailureKeepsStaleItems(t *testing.T) {
	st := NewState("products", domain.KindProduct)
	seq := st.begin()
	require.True(t, st.applyLoaded(seq, []domain.Record{{ID: "1"}, {ID: "2"}}, 0))

	seq = st.begin()
	require.True(t, st.applyFailed(seq, "boom", 0))
	require.Equal(t, StatusFailed, st.Status())
	require.Equal(t, "boom", st.ErrorMessage())
	// last-known-good data stays visible
	require.Len(t, st.Items(), 2)
}

func TestStateDiscardsOutOfOrderResponses(t *testing.T) {
	st := NewState("products", domain.KindProduct)

	first := st.begin()
	second := st.begin()

	// newer request resolves first
	require.True(t, st.applyLoaded(second, []domain.Record{{ID: "new"}}, 0))

	// the stale response must not overwrite it
	require.False(t, st.applyLoaded(first, []domain.Record{{ID: "old"}}, 0))
	require.Equal(t, "new", st.Items()[0].ID)

	require.False(t, st.applyFailed(first, "stale error", 0))
	require.Equal(t, StatusLoaded, st.Status())
	require.Empty(t, st.ErrorMessage())
}

func TestStateSnapshot(t *testing.T) {
	st := NewState("investors", domain.KindInvestor)
	seq := st.begin()
	st.applyLoaded(seq, []domain.Record{{ID: "1"}}, 42*time.Millisecond)

	snap := st.Snapshot()
	require.Equal(t, "investors", snap.Name)
	require.Equal(t, StatusLoaded, snap.Status)
	require.Equal(t, 1, snap.Items)
	require.Equal(t, int64(42), snap.DurationMs)
	require.NotEmpty(t, snap.LoadedAt)
}
