// Package console runs Quartus system-console with the power rail sampling
// script and captures what it prints.
package console

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DefaultScript is the Tcl script that samples the rail ADC.
const DefaultScript = "read_power_rails.tcl"

// Config controls how system-console is located and run.
type Config struct {
	// QuartusDir is the Quartus installation directory.
	QuartusDir string
	// EmbeddedRoot, when it exists, is prepended to QuartusDir.
	EmbeddedRoot string
	// Executable bypasses the Quartus layout when set.
	Executable string

	Script string

	// RedirectStderrToStdout captures stderr into the same stream as stdout.
	RedirectStderrToStdout bool
	// Stderr receives stderr when it is not redirected. Defaults to os.Stderr.
	Stderr io.Writer

	// Timeout kills system-console after the given duration; 0 waits forever.
	Timeout time.Duration
}

// DefaultConfig returns the layout of a Quartus 13.0sp1 install.
func DefaultConfig() Config {
	return Config{
		QuartusDir:             filepath.FromSlash("/altera/13.0sp1/quartus"),
		EmbeddedRoot:           filepath.FromSlash("/eda"),
		Script:                 DefaultScript,
		RedirectStderrToStdout: true,
	}
}

// LaunchError means system-console could not be started at all.
type LaunchError struct {
	Path string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("console: failed to launch %s: %v", e.Path, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ExitError means system-console ran but did not exit cleanly. The output
// captured up to that point is still returned alongside it.
type ExitError struct {
	Path string
	Err  error
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("console: %s exited abnormally: %v", e.Path, e.Err)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Console runs system-console.
type Console struct {
	cfg Config
}

// New creates a Console from cfg, filling in defaults for empty fields.
func New(cfg Config) *Console {
	def := DefaultConfig()
	if cfg.QuartusDir == "" {
		cfg.QuartusDir = def.QuartusDir
	}
	if cfg.Script == "" {
		cfg.Script = def.Script
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	return &Console{cfg: cfg}
}

// Root returns the Quartus root in use: EmbeddedRoot/QuartusDir when
// EmbeddedRoot is an existing directory, QuartusDir otherwise.
func (c *Console) Root() string {
	if c.cfg.EmbeddedRoot != "" {
		if fi, err := os.Stat(c.cfg.EmbeddedRoot); err == nil && fi.IsDir() {
			return filepath.Join(c.cfg.EmbeddedRoot, c.cfg.QuartusDir)
		}
	}
	return c.cfg.QuartusDir
}

// Path returns the system-console executable that Run will start.
func (c *Console) Path() string {
	if c.cfg.Executable != "" {
		return c.cfg.Executable
	}
	return filepath.Join(c.Root(), "sopc_builder", "bin", "system-console")
}

// Args returns the command line arguments passed to system-console.
func (c *Console) Args() []string {
	return []string{"--script=" + c.cfg.Script}
}

// CommandLine renders the full command for display.
func (c *Console) CommandLine() string {
	line := c.Path()
	for _, a := range c.Args() {
		line += " " + a
	}
	if c.cfg.RedirectStderrToStdout {
		line += " 2>&1"
	}
	return line
}

// Run starts system-console once, waits for it and returns its output.
// A start failure returns a *LaunchError and no output. Any other failure
// returns the partial output together with an *ExitError.
func (c *Console) Run(ctx context.Context) (string, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	path := c.Path()
	cmd := exec.CommandContext(ctx, path, c.Args()...)
	cmd.WaitDelay = time.Second

	var out bytes.Buffer
	cmd.Stdout = &out
	if c.cfg.RedirectStderrToStdout {
		cmd.Stderr = &out
	} else {
		cmd.Stderr = c.cfg.Stderr
	}

	if err := cmd.Start(); err != nil {
		return "", &LaunchError{Path: path, Err: err}
	}

	if err := cmd.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w (%v)", ctxErr, err)
		}
		return out.String(), &ExitError{Path: path, Err: err}
	}
	return out.String(), nil
}
