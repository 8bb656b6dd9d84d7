package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"bazaar-engine/internal/domain"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$1,200", 1200},
		{"$50", 50},
		{"EGP 300", 300},
		{"250", 250},
		{"", 0},
		{"free", 0},
		{"N/A", 0},
	}
	for _, c := range cases {
		require.Equal(t, c.want, ParsePrice(domain.Price(c.in)), "input %q", c.in)
	}
}

func TestCountryName(t *testing.T) {
	require.Equal(t, "Egypt", CountryName("EG"))
	require.Equal(t, "Egypt", CountryName(" eg "))
	require.Equal(t, "", CountryName("XX"))
}
