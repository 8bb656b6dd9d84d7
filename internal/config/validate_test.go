package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38471
	cfg.Sources = []SourceDef{
		{Name: "products", Kind: "product", URL: "https://api.example.com/products"},
		{Name: "investors", Kind: "investor", URL: "https://api.example.com/investors", Auth: true},
	}
	cfg.Views = []ViewDef{
		{Name: "products", Sources: []string{"products"}, DefaultSort: "price"},
		{Name: "investors", Sources: []string{"investors"}},
	}
	return cfg
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	out, res := NormalizeAndValidate(validConfig())
	require.True(t, res.OK(), "errors: %v", res.Errors)

	require.Equal(t, 12, out.App.PageSize)
	require.Equal(t, 20, out.Fetch.TimeoutSeconds)
	require.Equal(t, 120, out.Fetch.RefreshSeconds)
	require.Equal(t, 2.0, out.Fetch.HostReqPerSec)
	require.Equal(t, 4, out.Fetch.HostBurst)
	require.Equal(t, 30, out.Journal.RetentionDays)
	require.Equal(t, "json", out.Sources[0].Format)
}

func TestNormalizeTrimsAndLowercases(t *testing.T) {
	cfg := validConfig()
	cfg.Sources[0].Name = "  products  "
	cfg.Sources[0].Kind = " Product "
	cfg.Sources[0].Format = "JSON"

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK(), "errors: %v", res.Errors)
	require.Equal(t, "products", out.Sources[0].Name)
	require.Equal(t, "product", out.Sources[0].Kind)
	require.Equal(t, "json", out.Sources[0].Format)
}

func TestValidateRejectsBadConfigs(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.App.Port = 0 }},
		{"duplicate source", func(c *Config) { c.Sources = append(c.Sources, c.Sources[0]) }},
		{"unknown kind", func(c *Config) { c.Sources[0].Kind = "gadget" }},
		{"relative url", func(c *Config) { c.Sources[0].URL = "/products" }},
		{"bad format", func(c *Config) { c.Sources[0].Format = "xml" }},
		{"no views", func(c *Config) { c.Views = nil }},
		{"duplicate view", func(c *Config) { c.Views = append(c.Views, c.Views[0]) }},
		{"view without sources", func(c *Config) { c.Views[0].Sources = nil }},
		{"view with unknown source", func(c *Config) { c.Views[0].Sources = []string{"missing"} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			_, res := NormalizeAndValidate(cfg)
			require.False(t, res.OK())
			require.Error(t, Validate(cfg))
		})
	}
}

func TestUnknownSortIsWarningNotError(t *testing.T) {
	cfg := validConfig()
	cfg.Views[0].DefaultSort = "alphabetical"

	_, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	require.NotEmpty(t, res.Warnings)
}

func TestLowRefreshIntervalWarns(t *testing.T) {
	cfg := validConfig()
	cfg.Fetch.RefreshSeconds = 3

	out, res := NormalizeAndValidate(cfg)
	require.True(t, res.OK())
	require.Equal(t, 3, out.Fetch.RefreshSeconds)
	require.NotEmpty(t, res.Warnings)
}
