// Package config loads bigcalc.toml.
//
// The file is optional. It is looked up in the working directory and then in
// each parent directory until the filesystem root:
//
//	[batch]
//	jobs = 4
//	format = "json"     # text | json | msgpack
//	cache = true
//	cache_dir = ".bigcalc-cache"
//
//	[trace]
//	level = "detail"    # off | error | phase | detail | debug
//	output = "trace.ndjson"
//
//	[ui]
//	mode = "auto"       # auto | on | off
//	color = "auto"      # auto | on | off
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the configuration file.
const FileName = "bigcalc.toml"

// ErrInvalid reports a value outside the allowed set.
var ErrInvalid = errors.New("invalid configuration")

// Config is the decoded configuration with defaults applied.
type Config struct {
	// Path is the file the configuration came from; empty when defaults are used.
	Path  string      `toml:"-"`
	Batch BatchConfig `toml:"batch"`
	Trace TraceConfig `toml:"trace"`
	UI    UIConfig    `toml:"ui"`
}

// BatchConfig configures the batch command.
type BatchConfig struct {
	Jobs     int    `toml:"jobs"`
	Format   string `toml:"format"`
	Cache    bool   `toml:"cache"`
	CacheDir string `toml:"cache_dir"`
}

// TraceConfig configures tracing.
type TraceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

// UIConfig configures terminal output.
type UIConfig struct {
	Mode  string `toml:"mode"`
	Color string `toml:"color"`
}

// Mode switches a terminal feature such as the progress UI or color.
type Mode string

const (
	ModeAuto Mode = "auto" // on when the output is a terminal
	ModeOn   Mode = "on"
	ModeOff  Mode = "off"
)

// ParseMode parses auto|on|off, ignoring case and surrounding space.
// The empty string means ModeAuto.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.TrimSpace(strings.ToLower(value))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeOn:
		return ModeOn, nil
	case ModeOff:
		return ModeOff, nil
	default:
		return "", fmt.Errorf("%w: %q is not auto|on|off", ErrInvalid, value)
	}
}

// Default returns the configuration used when no file is found.
func Default() Config {
	return Config{
		Batch: BatchConfig{Format: "text", Cache: true},
		Trace: TraceConfig{Level: "off"},
		UI:    UIConfig{Mode: "auto", Color: "auto"},
	}
}

// Find walks up from startDir looking for bigcalc.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Discover finds and loads the configuration for startDir.
// It returns Default when there is no file.
func Discover(startDir string) (Config, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Load decodes path over the defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	if meta.IsDefined("batch", "cache_dir") && !filepath.IsAbs(cfg.Batch.CacheDir) {
		cfg.Batch.CacheDir = filepath.Join(filepath.Dir(path), cfg.Batch.CacheDir)
	}
	if meta.IsDefined("trace", "output") && cfg.Trace.Output != "-" && !filepath.IsAbs(cfg.Trace.Output) {
		cfg.Trace.Output = filepath.Join(filepath.Dir(path), cfg.Trace.Output)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks enumerated values and ranges.
func (c *Config) Validate() error {
	if c.Batch.Jobs < 0 {
		return fmt.Errorf("%w: [batch].jobs must be >= 0, got %d", ErrInvalid, c.Batch.Jobs)
	}
	checks := []struct {
		key, value string
		allowed    []string
	}{
		{"[batch].format", c.Batch.Format, []string{"text", "json", "msgpack"}},
		{"[trace].level", c.Trace.Level, []string{"off", "error", "phase", "detail", "debug"}},
	}
	for _, ch := range checks {
		if !oneOf(ch.value, ch.allowed) {
			return fmt.Errorf("%w: %s must be one of %s, got %q", ErrInvalid, ch.key, strings.Join(ch.allowed, "|"), ch.value)
		}
	}
	if _, err := ParseMode(c.UI.Mode); err != nil {
		return fmt.Errorf("[ui].mode: %w", err)
	}
	if _, err := ParseMode(c.UI.Color); err != nil {
		return fmt.Errorf("[ui].color: %w", err)
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
