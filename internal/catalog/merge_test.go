package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar-engine/internal/domain"
)

func TestMergeKeepsDeclaredOrder(t *testing.T) {
	products := []domain.Record{
		{ID: "p1", Kind: domain.KindProduct},
		{ID: "p2", Kind: domain.KindProduct},
	}
	services := []domain.Record{
		{ID: "s1", Kind: domain.KindService},
	}

	out := Merge(products, services)
	require.Len(t, out, 3)
	require.Equal(t, "p1", out[0].ID)
	require.Equal(t, "p2", out[1].ID)
	require.Equal(t, "s1", out[2].ID)
}

func TestMergeNoDedupeAcrossSources(t *testing.T) {
	// identity is scoped per source: the same id in two sources is two
	// listings
	a := []domain.Record{{ID: "42", Kind: domain.KindProduct}}
	b := []domain.Record{{ID: "42", Kind: domain.KindService}}

	out := Merge(a, b)
	require.Len(t, out, 2)
}

func TestMergeSniffsUntaggedKinds(t *testing.T) {
	batch := []domain.Record{
		{ID: "p", Stock: 5, OrdersCount: 2},
		{ID: "s", Files: []domain.Attachment{{URL: "http://x/a.pdf"}}},
		{ID: "b", FundingNeeded: 1000},
		{ID: "mystery"},
	}

	out := Merge(batch)
	require.Equal(t, domain.KindProduct, out[0].Kind)
	require.Equal(t, domain.KindService, out[1].Kind)
	require.Equal(t, domain.KindBusiness, out[2].Kind)
	require.Equal(t, domain.KindUnknown, out[3].Kind)
}

func TestMergeEmpty(t *testing.T) {
	require.Empty(t, Merge())
	require.Empty(t, Merge(nil, nil))
}
