package source

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"time"

	"bazaar-engine/internal/domain"
)

// Origin describes one data origin: where it lives, what kind of records
// it returns, and how the response is shaped.
type Origin struct {
	Name     string
	Kind     domain.Kind
	URL      string
	ItemsKey string // source-specific plural key besides "data" ("products", ...)
	Format   string // "json" (default) or "html"
	Auth     bool   // attach a bearer token from the credential store
}

// TokenSource supplies per-source bearer tokens (backed by the OS
// keychain in production).
type TokenSource interface {
	Token(source string) (string, error)
}

// Fetcher performs the one read request an origin supports and drives
// its State through loading -> loaded|failed.
type Fetcher struct {
	origin  Origin
	hc      *http.Client
	limiter *HostLimiter
	tokens  TokenSource
	timeout time.Duration
}

func NewFetcher(origin Origin, limiter *HostLimiter, tokens TokenSource, timeout time.Duration) *Fetcher {
	if origin.Format == "" {
		origin.Format = "json"
	}
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Fetcher{
		origin:  origin,
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
		tokens:  tokens,
		timeout: timeout,
	}
}

func (f *Fetcher) Name() string { return f.origin.Name }

// Refresh runs one fetch and applies the outcome to st. The state keeps
// its previous items on failure; superseded responses are dropped by the
// sequence guard in State.
func (f *Fetcher) Refresh(ctx context.Context, st *State, params map[string]string) error {
	seq := st.begin()
	start := time.Now()

	fctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	items, err := f.Fetch(fctx, params)
	dur := time.Since(start)
	if err != nil {
		if st.applyFailed(seq, FailureMessage(err), dur) {
			log.Printf("[%s] fetch failed: %v", f.origin.Name, err)
		}
		return err
	}
	if st.applyLoaded(seq, items, dur) {
		log.Printf("[%s] loaded items=%d dur_ms=%d", f.origin.Name, len(items), dur.Milliseconds())
	}
	return nil
}

// Fetch issues the origin's read request, parameterized by the flat
// key-value map drawn from the active filter spec. Origin-side filtering
// is best-effort; the engine re-filters client-side either way.
func (f *Fetcher) Fetch(ctx context.Context, params map[string]string) ([]domain.Record, error) {
	reqURL, err := buildURL(f.origin.URL, params)
	if err != nil {
		return nil, fmt.Errorf("%s: bad url: %w", f.origin.Name, err)
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	req.Header.Set("User-Agent", "BazaarEngine/1.0 (+local)")
	if f.origin.Auth && f.tokens != nil {
		tok, terr := f.tokens.Token(f.origin.Name)
		if terr != nil || tok == "" {
			return nil, fmt.Errorf("%s: %w", f.origin.Name, ErrUnauthorized)
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	if f.limiter != nil {
		if err := f.limiter.WaitURL(ctx, reqURL); err != nil {
			return nil, err
		}
	}

	res, err := f.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: get: %w", f.origin.Name, err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", f.origin.Name, ErrUnauthorized)
	case res.StatusCode >= 400:
		return nil, fmt.Errorf("%s: status %d", f.origin.Name, res.StatusCode)
	}

	var items []domain.Record
	if f.origin.Format == "html" {
		items, err = parseDirectory(res.Body)
	} else {
		items, err = decodeItems(res.Body, f.origin.ItemsKey)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: decode: %w", f.origin.Name, err)
	}

	for i := range items {
		items[i].Normalize(f.origin.Kind)
	}
	return items, nil
}

func buildURL(base string, params map[string]string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	if len(params) == 0 {
		return u.String(), nil
	}
	q := u.Query()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, params[k])
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
