package view

import (
	"context"
	"sort"
	"sync"
	"time"

	"bazaar-engine/internal/config"
	"bazaar-engine/internal/domain"
	"bazaar-engine/internal/query"
	"bazaar-engine/internal/source"
)

// Hooks let the host wire journaling and event publishing into every
// controller the session builds.
type Hooks struct {
	OnSourceDone func(st *source.State, err error)
	OnUpdated    func(view string)
}

// Session owns one controller per configured view. Activating a view
// rebuilds its controller from scratch: source states are cheap to
// discard and recreate, and a fresh controller guarantees no filter
// carries over from the previous visit.
type Session struct {
	mu          sync.Mutex
	cfg         config.Config
	limiter     *source.HostLimiter
	tokens      source.TokenSource
	hooks       Hooks
	controllers map[string]*Controller
}

func NewSession(cfg config.Config, tokens source.TokenSource, hooks Hooks) *Session {
	s := &Session{
		cfg:         cfg,
		limiter:     source.NewHostLimiter(cfg.Fetch.HostReqPerSec, cfg.Fetch.HostBurst),
		tokens:      tokens,
		hooks:       hooks,
		controllers: make(map[string]*Controller),
	}
	for _, v := range cfg.Views {
		s.controllers[v.Name] = s.build(v)
	}
	return s
}

func (s *Session) build(def config.ViewDef) *Controller {
	timeout := time.Duration(s.cfg.Fetch.TimeoutSeconds) * time.Second

	pairs := make([]source.Pair, 0, len(def.Sources))
	for _, name := range def.Sources {
		sd, ok := s.cfg.Source(name)
		if !ok {
			continue // validation warns about this; skip rather than crash
		}
		origin := source.Origin{
			Name:     sd.Name,
			Kind:     domain.Kind(sd.Kind),
			URL:      sd.URL,
			ItemsKey: sd.ItemsKey,
			Format:   sd.Format,
			Auth:     sd.Auth,
		}
		pairs = append(pairs, source.Pair{
			Fetcher: source.NewFetcher(origin, s.limiter, s.tokens, timeout),
			State:   source.NewState(sd.Name, origin.Kind),
		})
	}

	c := NewController(def.Name, s.cfg.App.PageSize, query.SortKey(def.DefaultSort), pairs)
	c.OnSourceDone = s.hooks.OnSourceDone
	c.OnUpdated = s.hooks.OnUpdated
	return c
}

// Reconfigure rebuilds every controller against a new config. Filter
// state does not survive a reconfigure; views that disappeared are
// dropped.
func (s *Session) Reconfigure(cfg config.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.limiter = source.NewHostLimiter(cfg.Fetch.HostReqPerSec, cfg.Fetch.HostBurst)
	s.controllers = make(map[string]*Controller, len(cfg.Views))
	for _, v := range cfg.Views {
		s.controllers[v.Name] = s.build(v)
	}
}

// Get returns the controller for a view, or nil for unknown names.
func (s *Session) Get(name string) *Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controllers[name]
}

// Activate rebuilds the view's controller (dropping any previous filter
// state) and starts its initial fetch.
func (s *Session) Activate(ctx context.Context, name string) *Controller {
	s.mu.Lock()
	def, ok := s.cfg.View(name)
	if !ok {
		s.mu.Unlock()
		return nil
	}
	c := s.build(def)
	s.controllers[name] = c
	s.mu.Unlock()

	c.Refresh(ctx)
	return c
}

// Views lists the configured view names, sorted.
func (s *Session) Views() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.controllers))
	for name := range s.controllers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// SourceSnapshots collects the per-source status of every controller,
// for /sources/status.
func (s *Session) SourceSnapshots() map[string][]source.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string][]source.Snapshot, len(s.controllers))
	for name, c := range s.controllers {
		snaps := make([]source.Snapshot, 0, len(c.pairs))
		for _, p := range c.pairs {
			snaps = append(snaps, p.State.Snapshot())
		}
		out[name] = snaps
	}
	return out
}

// RefreshAllViews re-fetches every view's sources; the background
// refresh loop drives this on an interval.
func (s *Session) RefreshAllViews(ctx context.Context) {
	s.mu.Lock()
	cs := make([]*Controller, 0, len(s.controllers))
	for _, c := range s.controllers {
		cs = append(cs, c)
	}
	s.mu.Unlock()
	for _, c := range cs {
		c.Refresh(ctx)
	}
}
