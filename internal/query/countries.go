package query

import "strings"

// countryNames maps ISO 3166-1 alpha-2 codes to the display names origins
// store in listing locations. Filters may arrive as either form.
var countryNames = map[string]string{
	"AE": "United Arab Emirates",
	"AT": "Austria",
	"AU": "Australia",
	"BE": "Belgium",
	"BH": "Bahrain",
	"BR": "Brazil",
	"CA": "Canada",
	"CH": "Switzerland",
	"CN": "China",
	"DE": "Germany",
	"DK": "Denmark",
	"DZ": "Algeria",
	"EG": "Egypt",
	"ES": "Spain",
	"FR": "France",
	"GB": "United Kingdom",
	"GR": "Greece",
	"IE": "Ireland",
	"IN": "India",
	"IQ": "Iraq",
	"IT": "Italy",
	"JO": "Jordan",
	"JP": "Japan",
	"KE": "Kenya",
	"KW": "Kuwait",
	"LB": "Lebanon",
	"LY": "Libya",
	"MA": "Morocco",
	"MX": "Mexico",
	"NG": "Nigeria",
	"NL": "Netherlands",
	"NO": "Norway",
	"OM": "Oman",
	"PK": "Pakistan",
	"PL": "Poland",
	"PS": "Palestine",
	"PT": "Portugal",
	"QA": "Qatar",
	"SA": "Saudi Arabia",
	"SD": "Sudan",
	"SE": "Sweden",
	"SG": "Singapore",
	"SY": "Syria",
	"TN": "Tunisia",
	"TR": "Turkey",
	"US": "United States",
	"YE": "Yemen",
	"ZA": "South Africa",
}

// CountryName resolves an ISO alpha-2 code to its display name, or ""
// when the input is not a known code.
func CountryName(code string) string {
	return countryNames[strings.ToUpper(strings.TrimSpace(code))]
}
