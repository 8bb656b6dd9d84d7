package query

import (
	"strings"

	"bazaar-engine/internal/domain"
)

// FilterSpec is the active set of user-selected constraints for one view.
// Empty entries are wildcards. Country/city live in Exact but match by
// substring (see filter.go); range fields constrain derived numerics.
type FilterSpec struct {
	Exact  map[string]string       `json:"exact,omitempty"`
	Ranges map[string]domain.Range `json:"ranges,omitempty"`
}

func NewFilterSpec() FilterSpec {
	return FilterSpec{
		Exact:  make(map[string]string),
		Ranges: make(map[string]domain.Range),
	}
}

func (s *FilterSpec) SetExact(field, value string) {
	if s.Exact == nil {
		s.Exact = make(map[string]string)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		delete(s.Exact, field)
		return
	}
	s.Exact[field] = value
}

func (s *FilterSpec) SetRange(field string, min, max float64) {
	if s.Ranges == nil {
		s.Ranges = make(map[string]domain.Range)
	}
	s.Ranges[field] = domain.Range{Min: min, Max: max}
}

func (s *FilterSpec) ClearRange(field string) {
	delete(s.Ranges, field)
}

func (s *FilterSpec) Clear() {
	s.Exact = make(map[string]string)
	s.Ranges = make(map[string]domain.Range)
}

// Clone deep-copies the spec so readers can evaluate it outside the
// owner's lock.
func (s FilterSpec) Clone() FilterSpec {
	out := NewFilterSpec()
	for k, v := range s.Exact {
		out.Exact[k] = v
	}
	for k, v := range s.Ranges {
		out.Ranges[k] = v
	}
	return out
}

// ActiveCount is how many constraints are in effect, for the UI badge.
func (s FilterSpec) ActiveCount() int {
	n := 0
	for _, v := range s.Exact {
		if strings.TrimSpace(v) != "" {
			n++
		}
	}
	n += len(s.Ranges)
	return n
}

// QueryParams flattens the spec into the key-value map the fetch boundary
// forwards to an origin. Origin-side filtering is best-effort; the engine
// re-filters whatever comes back.
func (s FilterSpec) QueryParams(search string) map[string]string {
	out := make(map[string]string)
	for _, k := range []string{"category", "city", "country", "state"} {
		if v := s.Exact[k]; v != "" {
			out[k] = v
		}
	}
	if v := s.Exact["active"]; v != "" {
		out["availableNow"] = v
	}
	if r, ok := s.Ranges["rating"]; ok {
		out["minRating"] = trimFloat(r.Min)
	}
	if r, ok := s.Ranges["price"]; ok {
		out["minPrice"] = trimFloat(r.Min)
		out["maxPrice"] = trimFloat(r.Max)
	}
	if search = strings.TrimSpace(search); search != "" {
		out["name"] = search
	}
	return out
}
