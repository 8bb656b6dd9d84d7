package catalog

import (
	"sort"
	"strings"

	"bazaar-engine/internal/domain"
)

// FacetFields are the filterable fields whose distinct values populate
// the UI's filter controls.
var FacetFields = []string{"category", "type", "status", "stage", "industry", "sector", "country", "city"}

// DistinctValues collects the sorted set of non-empty values a field
// takes across the merged collection. Recomputed whenever the collection
// changes.
func DistinctValues(records []domain.Record, field string) []string {
	seen := make(map[string]string)
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; !ok {
			seen[key] = v
		}
	}

	for _, r := range records {
		switch field {
		case "category":
			add(r.Category)
		case "type":
			add(r.Type)
		case "status":
			add(r.Status)
		case "stage":
			add(r.Stage)
			add(r.PreferredStage)
		case "industry":
			add(r.Industry)
		case "sector":
			for _, s := range r.FocusSectors {
				add(s)
			}
		case "country":
			add(r.Location.CountryText())
		case "city":
			add(r.Location.City)
		}
	}

	out := make([]string, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Facets builds the full facet catalog, skipping fields with no values.
func Facets(records []domain.Record) map[string][]string {
	out := make(map[string][]string)
	for _, f := range FacetFields {
		if vals := DistinctValues(records, f); len(vals) > 0 {
			out[f] = vals
		}
	}
	return out
}
