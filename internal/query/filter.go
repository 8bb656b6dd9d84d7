package query

import (
	"strings"

	"bazaar-engine/internal/domain"
)

// Filter returns the records matching every active constraint. All
// conditions AND together; an empty spec and empty search return the
// input unchanged. It never fails: a field a record's kind does not carry
// simply does not constrain that record.
func Filter(records []domain.Record, spec FilterSpec, search string) []domain.Record {
	search = strings.TrimSpace(search)
	if search == "" && spec.ActiveCount() == 0 {
		return records
	}

	needle := strings.ToLower(search)
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !matchesSearch(r, needle) {
			continue
		}
		if !matchesExact(r, spec) {
			continue
		}
		if !matchesLocation(r, spec) {
			continue
		}
		if !matchesRanges(r, spec) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r domain.Record, needle string) bool {
	return strings.Contains(strings.ToLower(r.Name), needle) ||
		strings.Contains(strings.ToLower(r.Description), needle) ||
		strings.Contains(strings.ToLower(r.Category), needle)
}

func matchesExact(r domain.Record, spec FilterSpec) bool {
	for field, want := range spec.Exact {
		if want == "" {
			continue
		}
		switch field {
		case "country", "city":
			// substring semantics, handled in matchesLocation
			continue
		case "sector":
			// investor focus sectors are a list; membership, not equality
			if r.Kind != domain.KindInvestor {
				continue
			}
			if !containsFold(r.FocusSectors, want) {
				return false
			}
			continue
		case "active":
			if r.IsActive == nil {
				continue
			}
			if (want == "true") != *r.IsActive {
				return false
			}
			continue
		}

		got, known := exactField(r, field)
		if !known {
			// unknown spec key or field the kind lacks: never reject
			continue
		}
		if !strings.EqualFold(got, want) {
			return false
		}
	}
	return true
}

// exactField resolves an equality-filter field for the record's kind.
// known=false means the kind does not carry the field (or the key is
// unrecognized) and the constraint is skipped.
func exactField(r domain.Record, field string) (value string, known bool) {
	switch field {
	case "category":
		return r.Category, true
	case "kind":
		return string(r.Kind), true
	case "type":
		return r.Type, r.Type != ""
	case "status":
		return r.Status, r.Kind == domain.KindService || r.Kind == domain.KindRequest
	case "stage":
		switch r.Kind {
		case domain.KindBusiness:
			return r.Stage, true
		case domain.KindInvestor:
			return r.PreferredStage, true
		}
		return "", false
	case "industry":
		return r.Industry, r.Kind == domain.KindBusiness
	}
	return "", false
}

func matchesLocation(r domain.Record, spec FilterSpec) bool {
	country := strings.TrimSpace(spec.Exact["country"])
	if country == "" {
		// no country selected: the city constraint is unenforceable
		return true
	}

	countryText := strings.ToLower(r.Location.CountryText())
	if countryText == "" {
		return false
	}
	hit := strings.Contains(countryText, strings.ToLower(country))
	if !hit {
		// filters often carry ISO codes ("EG") against data stored as
		// display names ("Egypt")
		if name := CountryName(country); name != "" {
			hit = strings.Contains(countryText, strings.ToLower(name))
		}
	}
	if !hit {
		return false
	}

	city := strings.TrimSpace(spec.Exact["city"])
	if city == "" {
		return true
	}
	cityText := strings.ToLower(r.Location.CityText())
	return cityText != "" && strings.Contains(cityText, strings.ToLower(city))
}

func matchesRanges(r domain.Record, spec FilterSpec) bool {
	for field, rng := range spec.Ranges {
		val, known := rangeField(r, field)
		if !known {
			continue
		}
		if val < rng.Min || val > rng.Max {
			return false
		}
	}
	return true
}

func rangeField(r domain.Record, field string) (value float64, known bool) {
	switch field {
	case "price":
		return ParsePrice(r.Price), true
	case "rating":
		return r.Rating, r.Kind == domain.KindProduct
	case "fundingNeeded":
		return r.FundingNeeded, r.Kind == domain.KindBusiness
	case "fundingProgress":
		return r.FundingProgress(), r.Kind == domain.KindBusiness
	}
	return 0, false
}

func containsFold(xs []string, want string) bool {
	for _, x := range xs {
		if strings.EqualFold(strings.TrimSpace(x), want) {
			return true
		}
	}
	return false
}
