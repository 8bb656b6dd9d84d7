package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Kind discriminates the record union. It is set at ingestion time from the
// source declaration; InferKind is only a fallback for untagged payloads.
type Kind string

const (
	KindProduct  Kind = "product"
	KindService  Kind = "service"
	KindInvestor Kind = "investor"
	KindBusiness Kind = "business"
	KindRequest  Kind = "request"
	KindUnknown  Kind = ""
)

type Attachment struct {
	Name string `json:"name,omitempty"`
	URL  string `json:"url"`
}

// Range is an inclusive numeric interval (investment ranges, filter ranges).
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Record struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	// Price arrives either as a number or a currency-formatted string
	// ("$1,200"). It is kept verbatim; comparators normalize on demand.
	Price    Price      `json:"price,omitempty"`
	IsActive *bool      `json:"isActive,omitempty"`
	Location Location   `json:"location,omitempty"`
	Created  *time.Time `json:"createdAt,omitempty"`

	// product
	Stock       int     `json:"stock,omitempty"`
	OrdersCount int     `json:"ordersCount,omitempty"`
	Rating      float64 `json:"rating,omitempty"`

	// service
	Files  []Attachment `json:"files,omitempty"`
	Status string       `json:"status,omitempty"`

	// investor
	InvestmentRange *Range   `json:"investmentRange,omitempty"`
	PreferredStage  string   `json:"preferredStage,omitempty"`
	FocusSectors    []string `json:"focusSectors,omitempty"`

	// business/project
	FundingNeeded float64 `json:"fundingNeeded,omitempty"`
	FundingRaised float64 `json:"fundingRaised,omitempty"`
	Stage         string  `json:"stage,omitempty"`
	Industry      string  `json:"industry,omitempty"`
	Type          string  `json:"type,omitempty"`
}

// Price keeps whatever the origin sent, string or number.
type Price string

func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*p = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*p = Price(n.String())
	return nil
}

func (p Price) String() string { return string(p) }

// Normalize trims the identity fields so downstream matching never sees
// padding, and tags untagged records. Missing text fields stay "" rather
// than failing: absence is a data-quality problem, not a type error.
func (r *Record) Normalize(fallback Kind) {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Category = strings.TrimSpace(r.Category)
	if r.Kind == KindUnknown {
		r.Kind = fallback
	}
	if r.Kind == KindUnknown {
		r.Kind = InferKind(*r)
	}
}

// InferKind sniffs the record shape when no kind was declared. Best effort
// only; declared kinds always win.
func InferKind(r Record) Kind {
	switch {
	case r.Stock > 0 || r.OrdersCount > 0 || r.Rating > 0:
		return KindProduct
	case len(r.Files) > 0 || r.Status != "":
		return KindService
	case r.InvestmentRange != nil || len(r.FocusSectors) > 0 || r.PreferredStage != "":
		return KindInvestor
	case r.FundingNeeded > 0 || r.FundingRaised > 0 || r.Stage != "":
		return KindBusiness
	}
	return KindUnknown
}

// FundingProgress derives the percent funded. A missing or zero
// FundingNeeded is treated as 1 so the division never blows up; a record
// with nothing raised reports 0.
func (r Record) FundingProgress() float64 {
	needed := r.FundingNeeded
	if needed <= 0 {
		needed = 1
	}
	return math.Round(r.FundingRaised / needed * 100)
}
