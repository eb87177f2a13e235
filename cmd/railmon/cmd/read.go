package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/OpenTraceLab/railmon/internal/logger"
	"github.com/OpenTraceLab/railmon/pkg/blaster"
	"github.com/OpenTraceLab/railmon/pkg/console"
	"github.com/spf13/cobra"
)

var (
	quartusDir     string
	systemConsole  string
	redirectStderr bool
	timeout        time.Duration
)

var readCmd = &cobra.Command{
	Use:   "read",
	Short: "Run system-console and report rail currents",
	Long: `Run Quartus system-console with read_power_rails.tcl, wait for it to exit,
then decode the ADC word printed for every rail and report the current.

system-console is looked up under <quartus_dir>/sopc_builder/bin. When the
embedded toolchain directory (\eda) exists, quartus_dir is taken relative to it.

Examples:
  # Read with the settings from railmon.yaml
  railmon read

  # Use a different Quartus install and give up after two minutes
  railmon read --quartus-dir /opt/altera/13.0sp1/quartus --timeout 2m

  # Show the raw script output too
  railmon read --print-script-output`,
	Args: cobra.NoArgs,
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)

	readCmd.Flags().StringVar(&quartusDir, "quartus-dir", "",
		"Quartus installation directory")
	readCmd.Flags().StringVar(&systemConsole, "system-console", "",
		"path to the system-console executable (overrides --quartus-dir)")
	readCmd.Flags().BoolVar(&redirectStderr, "redirect-stderr", true,
		"capture system-console stderr together with stdout")
	readCmd.Flags().DurationVar(&timeout, "timeout", 0,
		"kill system-console after this long (0 waits forever)")
	addReportFlags(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	applyReportFlags(cmd)

	cc, err := cfg.Console()
	if err != nil {
		return err
	}
	if quartusDir != "" {
		cc.QuartusDir = quartusDir
	}
	if systemConsole != "" {
		cc.Executable = systemConsole
	}
	if cmd.Flags().Changed("redirect-stderr") {
		cc.RedirectStderrToStdout = redirectStderr
	}
	if cmd.Flags().Changed("timeout") {
		cc.Timeout = timeout
	}

	if verbose {
		checkCables()
	}

	// JSON output keeps stdout machine readable
	out := cmd.OutOrStdout()
	progress := func(msg string) {
		if reportOpts.json {
			logger.Info("%s", msg)
			return
		}
		fmt.Fprintln(out, msg)
	}

	sc := console.New(cc)
	logger.Debug("running %s", sc.CommandLine())

	progress("Starting system console...")
	raw, err := sc.Run(context.Background())
	var exitErr *console.ExitError
	switch {
	case errors.As(err, &exitErr):
		logger.Error("%v", err)
	case err != nil:
		return err
	}
	progress("System console exited.")

	return processOutput(out, raw)
}

// checkCables warns when no download cable is attached. It never fails the
// run: system-console may reach the board over a JTAG server.
func checkCables() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cables, err := blaster.Discover(ctx)
	if err != nil {
		logger.Debug("cable discovery: %v", err)
		return
	}
	if len(cables) == 0 {
		logger.Error("no USB-Blaster cable detected")
		return
	}
	for _, c := range cables {
		logger.Debug("found %s on bus %d address %d", c.Label(), c.Bus, c.Address)
	}
}
