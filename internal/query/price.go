package query

import (
	"strconv"
	"strings"

	"bazaar-engine/internal/domain"
)

// ParsePrice normalizes a price for numeric comparison by keeping only
// digit characters: "$1,200" -> 1200, "EGP 300" -> 300. Empty or
// non-numeric prices come out as 0 so comparators never see NaN.
func ParsePrice(p domain.Price) float64 {
	var b strings.Builder
	for _, r := range p.String() {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0
	}
	return n
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
