package query

import (
	"sort"
	"strings"
	"time"

	"bazaar-engine/internal/domain"
)

// SortKey selects one of the fixed comparators below.
type SortKey string

const (
	SortName          SortKey = "name"
	SortRating        SortKey = "rating"
	SortReviews       SortKey = "reviews"
	SortPrice         SortKey = "price"
	SortNewest        SortKey = "newest"
	SortOldest        SortKey = "oldest"
	SortMostFunded    SortKey = "mostFunded"
	SortLowestCapital SortKey = "lowestCapital"
)

// Sort orders a copy of records by the given key. The sort is stable:
// ties keep the filter output order. An unknown key reorders nothing.
func Sort(records []domain.Record, key SortKey) []domain.Record {
	less := comparator(key)
	if less == nil {
		return records
	}
	out := make([]domain.Record, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j])
	})
	return out
}

func comparator(key SortKey) func(a, b domain.Record) bool {
	switch key {
	case SortName:
		return func(a, b domain.Record) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case SortRating:
		return func(a, b domain.Record) bool {
			return a.Rating > b.Rating
		}
	case SortReviews:
		return func(a, b domain.Record) bool {
			return a.OrdersCount > b.OrdersCount
		}
	case SortPrice:
		return func(a, b domain.Record) bool {
			return ParsePrice(a.Price) < ParsePrice(b.Price)
		}
	case SortNewest:
		return func(a, b domain.Record) bool {
			return created(a).After(created(b))
		}
	case SortOldest:
		return func(a, b domain.Record) bool {
			return created(a).Before(created(b))
		}
	case SortMostFunded:
		return func(a, b domain.Record) bool {
			return fundedRatio(a) > fundedRatio(b)
		}
	case SortLowestCapital:
		return func(a, b domain.Record) bool {
			return a.FundingNeeded < b.FundingNeeded
		}
	}
	return nil
}

// created falls back to the zero time so records without timestamps
// compare equal and keep their insertion order under the stable sort.
func created(r domain.Record) time.Time {
	if r.Created != nil {
		return *r.Created
	}
	return time.Time{}
}

func fundedRatio(r domain.Record) float64 {
	needed := r.FundingNeeded
	if needed <= 0 {
		needed = 1
	}
	return r.FundingRaised / needed
}
