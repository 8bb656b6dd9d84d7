package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

var knownKinds = map[string]bool{
	"product": true, "service": true, "investor": true, "business": true, "request": true,
}

var knownSorts = map[string]bool{
	"": true, "name": true, "rating": true, "reviews": true, "price": true,
	"newest": true, "oldest": true, "mostFunded": true, "lowestCapital": true,
}

// NormalizeAndValidate trims and defaults a config copy, then checks it.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.PageSize <= 0 {
		out.App.PageSize = 12
	}
	if out.Fetch.TimeoutSeconds <= 0 {
		out.Fetch.TimeoutSeconds = 20
	}
	if out.Fetch.RefreshSeconds <= 0 {
		out.Fetch.RefreshSeconds = 120
	} else if out.Fetch.RefreshSeconds < 10 {
		res.addWarn("fetch.refresh_seconds is very low (%d) and may hammer origins.", out.Fetch.RefreshSeconds)
	}
	if out.Fetch.HostReqPerSec <= 0 {
		out.Fetch.HostReqPerSec = 2
	}
	if out.Fetch.HostBurst <= 0 {
		out.Fetch.HostBurst = 4
	}
	if out.Journal.RetentionDays <= 0 {
		out.Journal.RetentionDays = 30
	}

	seenSources := map[string]bool{}
	for i := range out.Sources {
		s := &out.Sources[i]
		s.Name = strings.TrimSpace(s.Name)
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		s.Format = strings.ToLower(strings.TrimSpace(s.Format))
		if s.Format == "" {
			s.Format = "json"
		}
		if s.Name == "" {
			res.addErr("sources[%d].name is required", i)
			continue
		}
		if seenSources[s.Name] {
			res.addErr("duplicate source name %q", s.Name)
		}
		seenSources[s.Name] = true
		if !knownKinds[s.Kind] {
			res.addErr("sources[%d] (%s): unknown kind %q", i, s.Name, s.Kind)
		}
		if s.Format != "json" && s.Format != "html" {
			res.addErr("sources[%d] (%s): format must be json or html", i, s.Name)
		}
		if u, err := url.Parse(s.URL); err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("sources[%d] (%s): url is not absolute", i, s.Name)
		}
	}

	if len(out.Views) == 0 {
		res.addErr("at least one view is required")
	}
	seenViews := map[string]bool{}
	for i := range out.Views {
		v := &out.Views[i]
		v.Name = strings.TrimSpace(v.Name)
		if v.Name == "" {
			res.addErr("views[%d].name is required", i)
			continue
		}
		if seenViews[v.Name] {
			res.addErr("duplicate view name %q", v.Name)
		}
		seenViews[v.Name] = true
		if len(v.Sources) == 0 {
			res.addErr("views[%d] (%s): sources must not be empty", i, v.Name)
		}
		for _, sn := range v.Sources {
			if !seenSources[sn] {
				res.addErr("views[%d] (%s): unknown source %q", i, v.Name, sn)
			}
		}
		if !knownSorts[v.DefaultSort] {
			res.addWarn("views[%d] (%s): unknown default_sort %q falls back to origin order", i, v.Name, v.DefaultSort)
		}
	}

	return out, res
}

// Validate is the hard-error gate used before persisting.
func Validate(cfg Config) error {
	_, res := NormalizeAndValidate(cfg)
	if !res.OK() {
		return fmt.Errorf("invalid config: %s", strings.Join(res.Errors, "; "))
	}
	return nil
}
