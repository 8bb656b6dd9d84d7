package view

import (
	"context"
	"strings"
	"sync"

	"bazaar-engine/internal/catalog"
	"bazaar-engine/internal/domain"
	"bazaar-engine/internal/query"
	"bazaar-engine/internal/source"
)

// Controller owns the interactive query state of one view: its filter
// spec, search text, sort key and page, plus the source states the view
// spans. Filters and sort never leak across views because every view has
// its own controller, recreated on activation.
type Controller struct {
	name     string
	pageSize int
	pairs    []source.Pair // merge order = declared order in config

	mu     sync.Mutex
	spec   query.FilterSpec
	search string
	sort   query.SortKey
	page   int

	// OnSourceDone and OnUpdated hook journaling and event publishing in
	// without the controller knowing about either.
	OnSourceDone func(st *source.State, err error)
	OnUpdated    func(view string)
}

func NewController(name string, pageSize int, defaultSort query.SortKey, pairs []source.Pair) *Controller {
	if pageSize < 1 {
		pageSize = 12
	}
	return &Controller{
		name:     name,
		pageSize: pageSize,
		pairs:    pairs,
		spec:     query.NewFilterSpec(),
		sort:     defaultSort,
		page:     1,
	}
}

func (c *Controller) Name() string { return c.name }

// Snapshot recomputes the derived view synchronously from whatever is
// resident: merge -> filter -> sort -> paginate. Pure over its inputs; a
// failed source contributes its stale items plus an error message.
type Snapshot struct {
	View              string              `json:"view"`
	PageItems         []domain.Record     `json:"pageItems"`
	TotalPages        int                 `json:"totalPages"`
	CurrentPage       int                 `json:"currentPage"`
	TotalItems        int                 `json:"totalItems"`
	FacetOptions      map[string][]string `json:"facetOptions"`
	ActiveFilterCount int                 `json:"activeFilterCount"`
	SortKey           string              `json:"sortKey,omitempty"`
	SearchText        string              `json:"searchText,omitempty"`
	IsLoading         bool                `json:"isLoading"`
	NoResults         bool                `json:"noResults"`
	ErrorMessage      string              `json:"errorMessage,omitempty"`
	Sources           []source.Snapshot   `json:"sources"`
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	spec := c.spec.Clone()
	search := c.search
	sortKey := c.sort
	page := c.page
	c.mu.Unlock()

	batches := make([][]domain.Record, 0, len(c.pairs))
	srcSnaps := make([]source.Snapshot, 0, len(c.pairs))
	loading := false
	var errMsgs []string
	for _, p := range c.pairs {
		batches = append(batches, p.State.Items())
		snap := p.State.Snapshot()
		srcSnaps = append(srcSnaps, snap)
		if snap.Status == source.StatusLoading {
			loading = true
		}
		if snap.Status == source.StatusFailed && snap.Error != "" {
			errMsgs = append(errMsgs, snap.Error)
		}
	}

	merged := catalog.Merge(batches...)
	filtered := query.Filter(merged, spec, search)
	ordered := query.Sort(filtered, sortKey)
	pg := query.Paginate(ordered, c.pageSize, page)

	return Snapshot{
		View:              c.name,
		PageItems:         pg.Items,
		TotalPages:        pg.TotalPages,
		CurrentPage:       page,
		TotalItems:        len(ordered),
		FacetOptions:      catalog.Facets(merged),
		ActiveFilterCount: spec.ActiveCount(),
		SortKey:           string(sortKey),
		SearchText:        search,
		IsLoading:         loading,
		NoResults:         !loading && len(ordered) == 0,
		ErrorMessage:      strings.Join(errMsgs, "; "),
		Sources:           srcSnaps,
	}
}

// SetFilter sets or clears one exact-match constraint. Any filter change
// resets the page to 1 and re-fetches, so stale out-of-range pages are
// never shown.
func (c *Controller) SetFilter(ctx context.Context, field, value string) {
	c.mu.Lock()
	c.spec.SetExact(field, value)
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

// SetRangeFilter constrains a numeric field to [min, max] inclusive.
func (c *Controller) SetRangeFilter(ctx context.Context, field string, min, max float64) {
	c.mu.Lock()
	c.spec.SetRange(field, min, max)
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

func (c *Controller) ClearRangeFilter(ctx context.Context, field string) {
	c.mu.Lock()
	c.spec.ClearRange(field)
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

func (c *Controller) SetSearchText(ctx context.Context, text string) {
	c.mu.Lock()
	c.search = strings.TrimSpace(text)
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

// SetSortKey reorders only; the resident data still matches, so no
// re-fetch and no page reset.
func (c *Controller) SetSortKey(key string) {
	c.mu.Lock()
	c.sort = query.SortKey(key)
	c.mu.Unlock()
	c.notifyUpdated()
}

// SetPage clamps to [1, totalPages]; the paginator itself never clamps.
func (c *Controller) SetPage(n int) {
	total := c.totalPages()
	if n < 1 {
		n = 1
	}
	if n > total {
		n = total
	}
	c.mu.Lock()
	c.page = n
	c.mu.Unlock()
	c.notifyUpdated()
}

func (c *Controller) ClearFilters(ctx context.Context) {
	c.mu.Lock()
	c.spec.Clear()
	c.search = ""
	c.page = 1
	c.mu.Unlock()
	c.Refresh(ctx)
}

func (c *Controller) totalPages() int {
	c.mu.Lock()
	spec := c.spec.Clone()
	search := c.search
	c.mu.Unlock()

	batches := make([][]domain.Record, 0, len(c.pairs))
	for _, p := range c.pairs {
		batches = append(batches, p.State.Items())
	}
	filtered := query.Filter(catalog.Merge(batches...), spec, search)
	return query.Paginate(filtered, c.pageSize, 1).TotalPages
}

// Refresh re-fetches every source the view spans, concurrently and
// independently, parameterized by the current filter spec. The call never
// blocks on the network.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	params := c.spec.QueryParams(c.search)
	c.mu.Unlock()

	go func() {
		source.RefreshAll(ctx, c.pairs, params, c.OnSourceDone)
		c.notifyUpdated()
	}()
}

func (c *Controller) notifyUpdated() {
	if c.OnUpdated != nil {
		c.OnUpdated(c.name)
	}
}
