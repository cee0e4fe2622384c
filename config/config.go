// Package config loads the settings of the report binaries from a TOML (or
// JSON) file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/carbocation/mirreport"
	"github.com/carbocation/mirreport/monitor"
)

const (
	DefaultTool          = "miRTrace"
	DefaultViewportWidth = 1200
)

var supportedFormats = map[string]bool{
	"svg": true, "png": true, "jpg": true, "jpeg": true,
	"gif": true, "tif": true, "tiff": true, "bmp": true,
}

type Config struct {
	Report ReportConfig `toml:"report" json:"report"`
	Export ExportConfig `toml:"export" json:"export"`
}

type ReportConfig struct {
	// Tool names the report in titles. Export file names use its lowercase
	// slug.
	Tool          string `toml:"tool" json:"tool"`
	ViewportWidth int    `toml:"viewport_width" json:"viewport_width"`
	Compressed    bool   `toml:"compressed" json:"compressed"`
	PollInterval  string `toml:"poll_interval" json:"poll_interval"`

	// Selected are sample indexes to select before exporting.
	Selected []int `toml:"selected,omitempty" json:"selected,omitempty"`
}

type ExportConfig struct {
	Dir     string   `toml:"dir" json:"dir"`
	Formats []string `toml:"formats" json:"formats"`
	Tables  bool     `toml:"tables" json:"tables"`
}

// Default is the configuration used without a config file.
func Default() *Config {
	return &Config{
		Report: ReportConfig{
			Tool:          DefaultTool,
			ViewportWidth: DefaultViewportWidth,
			PollInterval:  monitor.DefaultInterval.String(),
		},
		Export: ExportConfig{
			Dir:     ".",
			Formats: []string{"svg", "png"},
			Tables:  true,
		},
	}
}

// PollDuration parses the poll interval, falling back to the monitor default.
func (r ReportConfig) PollDuration() time.Duration {
	d, err := time.ParseDuration(r.PollInterval)
	if err != nil || d <= 0 {
		return monitor.DefaultInterval
	}
	return d
}

// SelectionVector expands Selected into a vector over n samples.
func (r ReportConfig) SelectionVector(n int) []bool {
	out := make([]bool, n)
	for _, i := range r.Selected {
		if i >= 0 && i < n {
			out[i] = true
		}
	}
	return out
}

// Load reads path over the defaults. Files ending in .json are decoded as
// JSON, everything else as TOML.
func Load(path string) (*Config, error) {
	path, err := mirreport.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, cfg)
	} else {
		err = toml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate fills empty settings with defaults and rejects invalid ones.
func (c *Config) Validate() error {
	def := Default()

	if c.Report.Tool == "" {
		c.Report.Tool = def.Report.Tool
	}
	if c.Report.ViewportWidth <= 0 {
		return fmt.Errorf("viewport_width must be > 0, got %d", c.Report.ViewportWidth)
	}
	if c.Report.PollInterval == "" {
		c.Report.PollInterval = def.Report.PollInterval
	}
	if d, err := time.ParseDuration(c.Report.PollInterval); err != nil || d <= 0 {
		return fmt.Errorf("invalid poll_interval %q", c.Report.PollInterval)
	}
	for _, i := range c.Report.Selected {
		if i < 0 {
			return fmt.Errorf("selected contains a negative sample index: %d", i)
		}
	}

	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
	dir, err := mirreport.ExpandHome(c.Export.Dir)
	if err != nil {
		return err
	}
	c.Export.Dir = dir

	for i, f := range c.Export.Formats {
		f = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(f), "."))
		if !supportedFormats[f] {
			return fmt.Errorf("unsupported export format %q", c.Export.Formats[i])
		}
		c.Export.Formats[i] = f
	}

	return nil
}

// Save writes the configuration as TOML.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return err
	}
	return f.Close()
}
