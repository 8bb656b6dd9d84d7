package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar-engine/internal/domain"
)

func TestDistinctValues(t *testing.T) {
	records := []domain.Record{
		{Category: "Food"},
		{Category: "food"}, // case-insensitive dedupe, first spelling wins
		{Category: "Design"},
		{Category: "  "},
		{Category: ""},
	}

	got := DistinctValues(records, "category")
	require.Equal(t, []string{"Design", "Food"}, got)
}

func TestDistinctValuesSectors(t *testing.T) {
	records := []domain.Record{
		{FocusSectors: []string{"Fintech", "Agritech"}},
		{FocusSectors: []string{"fintech", "Health"}},
	}

	got := DistinctValues(records, "sector")
	require.Equal(t, []string{"Agritech", "Fintech", "Health"}, got)
}

func TestDistinctValuesCountry(t *testing.T) {
	records := []domain.Record{
		{Location: domain.Location{Country: "Egypt"}},
		{Location: domain.Location{Raw: "Jordan"}},
		{},
	}

	got := DistinctValues(records, "country")
	require.Equal(t, []string{"Egypt", "Jordan"}, got)
}

func TestFacetsSkipsEmptyFields(t *testing.T) {
	records := []domain.Record{{Category: "Food"}}

	facets := Facets(records)
	require.Contains(t, facets, "category")
	require.NotContains(t, facets, "stage")
	require.NotContains(t, facets, "city")
}
