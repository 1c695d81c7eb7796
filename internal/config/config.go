package config

import (
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dokzlo13/glowd/internal/lights"
)

// Config represents the application configuration
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Database DatabaseConfig `yaml:"database"`
	Lights   LightsConfig   `yaml:"lights"`
	Sync     SyncConfig     `yaml:"sync"`
	Script   ScriptConfig   `yaml:"script"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	JSON   bool   `yaml:"json"` // JSON output instead of console
	Colors bool   `yaml:"colors"`
}

// GetLevel returns the configured log level with default
func (c *LogConfig) GetLevel() string {
	if c.Level == "" {
		return "info"
	}
	return c.Level
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// LightsConfig contains light vendor settings
type LightsConfig struct {
	Vendor       string   `yaml:"vendor"`         // hue, lifx, yeelight or demo
	Demo         bool     `yaml:"demo"`           // force demo mode regardless of vendor
	Transition   Duration `yaml:"transition"`     // fade time for color changes
	RateLimitRPS float64  `yaml:"rate_limit_rps"` // vendor calls per second, negative disables throttling

	Hue      HueConfig      `yaml:"hue"`
	Lifx     LifxConfig     `yaml:"lifx"`
	Yeelight YeelightConfig `yaml:"yeelight"`
}

// VendorTag returns the vendor as a typed tag, honoring the demo
// override. Load validates the vendor string, so an unparseable value
// here degrades to demo.
func (c *LightsConfig) VendorTag() lights.Vendor {
	if c.Demo {
		return lights.VendorDemo
	}
	v, err := lights.ParseVendor(c.Vendor)
	if err != nil {
		return lights.VendorDemo
	}
	return v
}

// HueConfig contains Hue bridge connection settings
type HueConfig struct {
	BridgeIP string `yaml:"bridge_ip"`
	Username string `yaml:"username"` // API key registered on the bridge
}

// LifxConfig contains LIFX LAN discovery settings
type LifxConfig struct {
	DiscoveryWindow Duration `yaml:"discovery_window"` // how long to wait for bulbs to answer
}

// YeelightConfig contains Yeelight LAN discovery settings
type YeelightConfig struct {
	DiscoveryWindow Duration `yaml:"discovery_window"`
}

// SyncConfig contains sync loop settings
type SyncConfig struct {
	Interval Duration `yaml:"interval"` // time between sync cycles
	Colors   int      `yaml:"colors"`   // palette size per cycle
	Restore  *bool    `yaml:"restore"`  // re-apply the last palette on startup
}

// RestoreEnabled reports whether the last palette is re-applied on
// startup. Defaults to true.
func (c *SyncConfig) RestoreEnabled() bool {
	return c.Restore == nil || *c.Restore
}

// ScriptConfig contains the optional Lua palette transform
type ScriptConfig struct {
	Path string `yaml:"path"` // empty disables the hook
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "./glowd.sqlite"
	}

	// Lights defaults
	if cfg.Lights.Vendor == "" {
		cfg.Lights.Vendor = string(lights.VendorDemo)
	}
	if cfg.Lights.Transition == 0 {
		cfg.Lights.Transition = Duration(400 * time.Millisecond)
	}
	if cfg.Lights.RateLimitRPS == 0 {
		cfg.Lights.RateLimitRPS = 10.0 // 10 requests per second
	}
	if cfg.Lights.Lifx.DiscoveryWindow == 0 {
		cfg.Lights.Lifx.DiscoveryWindow = Duration(3 * time.Second)
	}
	if cfg.Lights.Yeelight.DiscoveryWindow == 0 {
		cfg.Lights.Yeelight.DiscoveryWindow = Duration(3 * time.Second)
	}

	// Sync defaults
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = Duration(2 * time.Second)
	}
	if cfg.Sync.Colors == 0 {
		cfg.Sync.Colors = 3
	}

	// Vendor is a closed set, reject typos early
	if _, err := lights.ParseVendor(cfg.Lights.Vendor); err != nil {
		return nil, fmt.Errorf("invalid lights.vendor: %w", err)
	}
	if cfg.Lights.Transition.Duration() < 0 {
		return nil, fmt.Errorf("lights.transition cannot be negative")
	}
	if cfg.Sync.Interval.Duration() <= 0 {
		return nil, fmt.Errorf("sync.interval must be positive")
	}
	if cfg.Sync.Colors < 0 {
		return nil, fmt.Errorf("sync.colors must be positive")
	}

	return &cfg, nil
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	// Match ${VAR} or ${VAR:default}
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
