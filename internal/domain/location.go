package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Location appears in two shapes in the wild: a free-text string
// ("Cairo, Egypt") or a structured object. Both decode into the same
// value; Raw is only set for the string form.
type Location struct {
	Raw         string
	Country     string
	Governorate string
	City        string
}

type locationObject struct {
	Country     string `json:"country,omitempty"`
	Governorate string `json:"governorate,omitempty"`
	State       string `json:"state,omitempty"`
	City        string `json:"city,omitempty"`
}

func (l *Location) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*l = Location{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Location{Raw: strings.TrimSpace(s)}
		return nil
	}
	var obj locationObject
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	gov := obj.Governorate
	if gov == "" {
		gov = obj.State
	}
	*l = Location{
		Country:     strings.TrimSpace(obj.Country),
		Governorate: strings.TrimSpace(gov),
		City:        strings.TrimSpace(obj.City),
	}
	return nil
}

func (l Location) MarshalJSON() ([]byte, error) {
	if l.Country == "" && l.Governorate == "" && l.City == "" {
		return json.Marshal(l.Raw)
	}
	return json.Marshal(locationObject{
		Country:     l.Country,
		Governorate: l.Governorate,
		City:        l.City,
	})
}

func (l Location) IsZero() bool {
	return l.Raw == "" && l.Country == "" && l.Governorate == "" && l.City == ""
}

// CountryText is the text country filters match against: the structured
// country (or governorate) when present, otherwise the raw string.
func (l Location) CountryText() string {
	if l.Country != "" {
		return l.Country
	}
	if l.Governorate != "" {
		return l.Governorate
	}
	return l.Raw
}

// CityText is the text city filters match against.
func (l Location) CityText() string {
	if l.City != "" {
		return l.City
	}
	return l.Raw
}
