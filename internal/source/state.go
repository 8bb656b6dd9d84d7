package source

import (
	"sync"
	"time"

	"bazaar-engine/internal/domain"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusFailed  Status = "failed"
)

// State is the fetch lifecycle of one independent data origin. It is
// mutated only through its own fetch transitions; everything else reads
// snapshots. States never cross-mutate: one origin failing leaves the
// others untouched.
type State struct {
	name string
	kind domain.Kind

	mu       sync.Mutex
	items    []domain.Record
	status   Status
	errMsg   string
	seq      uint64 // last issued fetch
	applied  uint64 // last fetch whose outcome was applied
	loadedAt time.Time
	lastDur  time.Duration
}

func NewState(name string, kind domain.Kind) *State {
	return &State{name: name, kind: kind, status: StatusIdle}
}

func (s *State) Name() string      { return s.name }
func (s *State) Kind() domain.Kind { return s.kind }

// Items returns the current (possibly stale) item set. Callers treat the
// slice as read-only.
func (s *State) Items() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *State) ErrorMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// begin issues a new fetch sequence number and moves the state to
// loading. A later begin logically supersedes any in-flight fetch.
func (s *State) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.status = StatusLoading
	return s.seq
}

// applyLoaded replaces the items wholesale. Responses from superseded
// fetches (seq at or below the last applied one) are discarded so an
// out-of-order resolution never overwrites newer data.
func (s *State) applyLoaded(seq uint64, items []domain.Record, dur time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.items = items
	s.status = StatusLoaded
	s.errMsg = ""
	s.loadedAt = time.Now().UTC()
	s.lastDur = dur
	return true
}

// applyFailed records the failure but keeps the previous items, so the
// UI can show last-known-good data alongside the error.
func (s *State) applyFailed(seq uint64, msg string, dur time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.applied {
		return false
	}
	s.applied = seq
	s.status = StatusFailed
	s.errMsg = msg
	s.lastDur = dur
	return true
}

// Snapshot is the read-only view surfaced at /sources/status.
type Snapshot struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Status     Status `json:"status"`
	Error      string `json:"error,omitempty"`
	Items      int    `json:"items"`
	LoadedAt   string `json:"loadedAt,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Name:       s.name,
		Kind:       string(s.kind),
		Status:     s.status,
		Error:      s.errMsg,
		Items:      len(s.items),
		DurationMs: s.lastDur.Milliseconds(),
	}
	if !s.loadedAt.IsZero() {
		snap.LoadedAt = s.loadedAt.Format(time.RFC3339)
	}
	return snap
}
