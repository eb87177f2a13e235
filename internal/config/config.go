// Package config loads railmon.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OpenTraceLab/railmon/pkg/console"
	"github.com/OpenTraceLab/railmon/pkg/transcript"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory and
// in the user config directory.
const FileName = "railmon.yaml"

// Config holds the user switches of a railmon run.
type Config struct {
	PrintScriptOutput         bool `yaml:"print_script_output"`
	RedirectStderrToStdout    bool `yaml:"redirect_stderr_to_stdout"`
	HighlightUnexpectedValues bool `yaml:"highlight_unexpected_values"`

	// system-console location
	QuartusDir    string `yaml:"quartus_dir"`
	EmbeddedRoot  string `yaml:"embedded_root"`
	SystemConsole string `yaml:"system_console"` // overrides the two above

	Script  string `yaml:"script"`
	Marker  string `yaml:"marker"`  // line printed before the script output
	Timeout string `yaml:"timeout"` // e.g. "90s"; empty waits forever

	LogFile string `yaml:"log_file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	cc := console.DefaultConfig()
	return &Config{
		PrintScriptOutput:         false,
		RedirectStderrToStdout:    true,
		HighlightUnexpectedValues: true,
		QuartusDir:                cc.QuartusDir,
		EmbeddedRoot:              cc.EmbeddedRoot,
		Script:                    cc.Script,
		Marker:                    transcript.DefaultMarker,
	}
}

// Load reads path on top of the defaults; keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	c := Default()
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Find loads explicit if set. Otherwise it tries ./railmon.yaml and then
// the user config directory, falling back to Default. The returned path is
// empty when no file was read.
func Find(explicit string) (*Config, string, error) {
	if explicit != "" {
		c, err := Load(explicit)
		return c, explicit, err
	}

	for _, path := range searchPaths() {
		c, err := Load(path)
		if err == nil {
			return c, path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, path, err
		}
	}
	return Default(), "", nil
}

func searchPaths() []string {
	paths := []string{FileName}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "railmon", FileName))
	}
	return paths
}

// Validate checks values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.Marker == "" {
		return errors.New("marker must not be empty")
	}
	return nil
}

// TimeoutDuration parses Timeout; empty means no timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout %q: negative", c.Timeout)
	}
	return d, nil
}

// Console returns the system-console settings.
func (c *Config) Console() (console.Config, error) {
	timeout, err := c.TimeoutDuration()
	if err != nil {
		return console.Config{}, err
	}
	return console.Config{
		QuartusDir:             c.QuartusDir,
		EmbeddedRoot:           c.EmbeddedRoot,
		Executable:             c.SystemConsole,
		Script:                 c.Script,
		RedirectStderrToStdout: c.RedirectStderrToStdout,
		Timeout:                timeout,
	}, nil
}
