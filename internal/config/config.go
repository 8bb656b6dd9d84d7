package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SourceDef declares one data origin.
type SourceDef struct {
	Name     string `yaml:"name" json:"name"`
	Kind     string `yaml:"kind" json:"kind"`                               // product|service|investor|business|request
	URL      string `yaml:"url" json:"url"`
	ItemsKey string `yaml:"items_key,omitempty" json:"items_key,omitempty"` // plural key besides "data"
	Format   string `yaml:"format,omitempty" json:"format,omitempty"`       // json (default) | html
	Auth     bool   `yaml:"auth,omitempty" json:"auth,omitempty"`
}

// ViewDef declares one browsable view. Sources lists the origins the
// view spans, and its order IS the merge order -- explicit config, never
// call order.
type ViewDef struct {
	Name        string   `yaml:"name" json:"name"`
	Sources     []string `yaml:"sources" json:"sources"`
	DefaultSort string   `yaml:"default_sort,omitempty" json:"default_sort,omitempty"`
}

type Config struct {
	App struct {
		Port     int    `yaml:"port" json:"port"`
		DataDir  string `yaml:"data_dir" json:"data_dir"`
		PageSize int    `yaml:"page_size" json:"page_size"`
	} `yaml:"app" json:"app"`

	Fetch struct {
		TimeoutSeconds int     `yaml:"timeout_seconds" json:"timeout_seconds"`
		RefreshSeconds int     `yaml:"refresh_seconds" json:"refresh_seconds"`
		HostReqPerSec  float64 `yaml:"host_req_per_sec" json:"host_req_per_sec"`
		HostBurst      int     `yaml:"host_burst" json:"host_burst"`
	} `yaml:"fetch" json:"fetch"`

	Journal struct {
		RetentionDays int `yaml:"retention_days" json:"retention_days"`
	} `yaml:"journal" json:"journal"`

	Sources []SourceDef `yaml:"sources" json:"sources"`
	Views   []ViewDef   `yaml:"views" json:"views"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Source looks up a source declaration by name.
func (c Config) Source(name string) (SourceDef, bool) {
	for _, s := range c.Sources {
		if s.Name == name {
			return s, true
		}
	}
	return SourceDef{}, false
}

// View looks up a view declaration by name.
func (c Config) View(name string) (ViewDef, bool) {
	for _, v := range c.Views {
		if v.Name == name {
			return v, true
		}
	}
	return ViewDef{}, false
}
