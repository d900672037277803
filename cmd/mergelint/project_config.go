package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const configFileName = "mergelint.toml"

const defaultStructuralTimeout = 30 * time.Second

type projectConfig struct {
	Check      checkConfig      `toml:"check"`
	Tags       tagsConfig       `toml:"tags"`
	Structural structuralConfig `toml:"structural"`

	// Path is the file the config was read from; empty for defaults.
	Path string `toml:"-"`
	// timeout is Structural.Timeout parsed by Validate.
	timeout time.Duration
	// maxSet reports whether check.max_diagnostics was present.
	maxSet bool
}

type checkConfig struct {
	Extensions     []string `toml:"extensions"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	FirstCurlyOnly bool     `toml:"first_curly_only"`
}

type tagsConfig struct {
	Allow []string `toml:"allow"`
}

type structuralConfig struct {
	Command []string `toml:"command"`
	Timeout string   `toml:"timeout"`
}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadProjectConfig reads explicit when set, otherwise the nearest
// mergelint.toml above startDir. No file yields the defaults.
func loadProjectConfig(explicit, startDir string) (projectConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfigFile(startDir)
		if err != nil {
			return projectConfig{}, err
		}
		if !ok {
			cfg := projectConfig{}
			return cfg, cfg.Validate()
		}
		path = found
	}
	return readProjectConfig(path)
}

func readProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return projectConfig{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	cfg.maxSet = meta.IsDefined("check", "max_diagnostics")
	if err := cfg.Validate(); err != nil {
		return projectConfig{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and normalizes extensions and tag names.
func (c *projectConfig) Validate() error {
	if c.Check.MaxDiagnostics < 0 {
		return fmt.Errorf("check.max_diagnostics must be >= 0, got %d", c.Check.MaxDiagnostics)
	}
	for i, ext := range c.Check.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			return fmt.Errorf("check.extensions[%d] is empty", i)
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.Check.Extensions[i] = ext
	}
	for i, name := range c.Tags.Allow {
		name = strings.TrimSpace(name)
		if name == "" || strings.ContainsAny(name, " \t\r\n<>") {
			return fmt.Errorf("tags.allow[%d]: invalid tag name %q", i, c.Tags.Allow[i])
		}
	}
	if len(c.Structural.Command) > 0 && strings.TrimSpace(c.Structural.Command[0]) == "" {
		return errors.New("structural.command: program name is empty")
	}
	c.timeout = defaultStructuralTimeout
	if c.Structural.Timeout != "" {
		d, err := time.ParseDuration(c.Structural.Timeout)
		if err != nil {
			return fmt.Errorf("structural.timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("structural.timeout must be positive, got %s", c.Structural.Timeout)
		}
		c.timeout = d
	}
	return nil
}

// StructuralTimeout is the per-document limit for the structural linter.
func (c *projectConfig) StructuralTimeout() time.Duration {
	if c.timeout == 0 {
		return defaultStructuralTimeout
	}
	return c.timeout
}
