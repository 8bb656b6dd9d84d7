package query

import "bazaar-engine/internal/domain"

// Page is one slice of the ordered result set.
type Page struct {
	Items      []domain.Record `json:"items"`
	TotalPages int             `json:"totalPages"`
}

// Paginate slices records into fixed-size pages. TotalPages is at least 1
// even for an empty set. page is 1-based and is NOT clamped here: the
// view controller resets it to 1 whenever filters, search, or the active
// view change, so an out-of-range page yields an empty slice by contract.
func Paginate(records []domain.Record, pageSize, page int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	total := (len(records) + pageSize - 1) / pageSize
	if total < 1 {
		total = 1
	}

	start := (page - 1) * pageSize
	if start < 0 || start >= len(records) {
		return Page{Items: []domain.Record{}, TotalPages: total}
	}
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	return Page{Items: records[start:end], TotalPages: total}
}
