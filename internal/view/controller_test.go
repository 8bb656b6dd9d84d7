package view

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bazaar-engine/internal/domain"
	"bazaar-engine/internal/query"
	"bazaar-engine/internal/source"
)

func serveJSON(t *testing.T, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

const productsBody = `{"data":[
  {"id":"p1","name":"Olive Press","category":"Machinery","price":"1200"},
  {"id":"p2","name":"Loom","category":"Machinery","price":"800"},
  {"id":"p3","name":"Dates Box","category":"Food","price":"50"},
  {"id":"p4","name":"Honey Jar","category":"Food","price":"90"},
  {"id":"p5","name":"Copper Pot","category":"Crafts","price":"300"},
  {"id":"p6","name":"Rug","category":"Crafts","price":"450"}
]}`

const servicesBody = `{"data":[
  {"id":"s1","name":"Logo Design","category":"Design"},
  {"id":"s2","name":"Bookkeeping","category":"Finance"}
]}`

// loadedController builds a two-source controller and fetches both
// sources synchronously so snapshots are deterministic.
func loadedController(t *testing.T, pageSize int) *Controller {
	t.Helper()
	pairs := []source.Pair{
		newPair(t, "products", domain.KindProduct, productsBody),
		newPair(t, "services", domain.KindService, servicesBody),
	}
	for _, p := range pairs {
		require.NoError(t, p.Fetcher.Refresh(context.Background(), p.State, nil))
	}
	return NewController("suppliers", pageSize, query.SortKey(""), pairs)
}

func newPair(t *testing.T, name string, kind domain.Kind, body string) source.Pair {
	t.Helper()
	origin := source.Origin{Name: name, Kind: kind, URL: serveJSON(t, body)}
	return source.Pair{
		Fetcher: source.NewFetcher(origin, nil, nil, 5*time.Second),
		State:   source.NewState(name, kind),
	}
}

func TestSnapshotMergesInDeclaredOrder(t *testing.T) {
	c := loadedController(t, 20)

	snap := c.Snapshot()
	require.Equal(t, 8, snap.TotalItems)
	require.Equal(t, 1, snap.TotalPages)
	require.Equal(t, "p1", snap.PageItems[0].ID)
	require.Equal(t, "s2", snap.PageItems[7].ID)
	require.False(t, snap.IsLoading)
	require.False(t, snap.NoResults)
	require.Len(t, snap.Sources, 2)
}

func TestFilterChangeResetsPage(t *testing.T) {
	c := loadedController(t, 4)

	c.SetPage(2)
	require.Equal(t, 2, c.Snapshot().CurrentPage)

	c.SetFilter(context.Background(), "category", "Food")
	snap := c.Snapshot()
	require.Equal(t, 1, snap.CurrentPage)
	require.Equal(t, 2, snap.TotalItems)
	require.Equal(t, 1, snap.ActiveFilterCount)
}

func TestSearchChangeResetsPage(t *testing.T) {
	c := loadedController(t, 4)

	c.SetPage(2)
	c.SetSearchText(context.Background(), "olive")
	snap := c.Snapshot()
	require.Equal(t, 1, snap.CurrentPage)
	require.Equal(t, 1, snap.TotalItems)
	require.Equal(t, "olive", snap.SearchText)
}

func TestSetPageClamps(t *testing.T) {
	c := loadedController(t, 4) // 8 items -> 2 pages

	c.SetPage(0)
	require.Equal(t, 1, c.Snapshot().CurrentPage)

	c.SetPage(99)
	require.Equal(t, 2, c.Snapshot().CurrentPage)
}

func TestSortChangeKeepsPage(t *testing.T) {
	c := loadedController(t, 4)

	c.SetPage(2)
	c.SetSortKey(string(query.SortName))
	require.Equal(t, 2, c.Snapshot().CurrentPage)
}

func TestClearFilters(t *testing.T) {
	c := loadedController(t, 4)

	c.SetFilter(context.Background(), "category", "Food")
	c.SetSearchText(context.Background(), "honey")
	c.ClearFilters(context.Background())

	snap := c.Snapshot()
	require.Equal(t, 8, snap.TotalItems)
	require.Zero(t, snap.ActiveFilterCount)
	require.Empty(t, snap.SearchText)
	require.Equal(t, 1, snap.CurrentPage)
}

func TestNoResultsOnlyWhenSettled(t *testing.T) {
	c := loadedController(t, 4)

	c.SetSearchText(context.Background(), "zzz-nothing-matches")
	snap := c.Snapshot()
	require.True(t, snap.NoResults)
	require.Zero(t, snap.TotalItems)
}

func TestFailedSourceKeepsViewUsable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	broken := source.Pair{
		Fetcher: source.NewFetcher(source.Origin{Name: "investors", Kind: domain.KindInvestor, URL: srv.URL}, nil, nil, 5*time.Second),
		State:   source.NewState("investors", domain.KindInvestor),
	}
	healthy := newPair(t, "products", domain.KindProduct, productsBody)

	require.Error(t, broken.Fetcher.Refresh(context.Background(), broken.State, nil))
	require.NoError(t, healthy.Fetcher.Refresh(context.Background(), healthy.State, nil))

	c := NewController("mixed", 20, query.SortKey(""), []source.Pair{broken, healthy})
	snap := c.Snapshot()
	require.Equal(t, 6, snap.TotalItems)
	require.Contains(t, snap.ErrorMessage, "unauthorized")
	require.False(t, snap.NoResults)
}

func TestRangeFilter(t *testing.T) {
	c := loadedController(t, 20)

	c.SetRangeFilter(context.Background(), "price", 100, 500)
	snap := c.Snapshot()
	require.Equal(t, 2, snap.TotalItems) // Copper Pot 300, Rug 450
	require.Equal(t, 1, snap.ActiveFilterCount)

	c.ClearRangeFilter(context.Background(), "price")
	require.Zero(t, c.Snapshot().ActiveFilterCount)
}

func TestOnUpdatedFiresForSortAndPage(t *testing.T) {
	c := loadedController(t, 4)

	var fired []string
	c.OnUpdated = func(view string) { fired = append(fired, view) }

	c.SetSortKey(string(query.SortName))
	c.SetPage(2)
	require.Equal(t, []string{"suppliers", "suppliers"}, fired)
}
