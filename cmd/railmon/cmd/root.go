package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/OpenTraceLab/railmon/internal/config"
	"github.com/OpenTraceLab/railmon/internal/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	configPath string
	logFile    string

	cfg       *config.Config
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "railmon",
	Short: "Power rail current reader for Cyclone IV GX kits",
	Long: `railmon runs Quartus system-console with the read_power_rails.tcl script,
decodes the ADC words it prints and reports the current drawn on each power
rail of the board. The board is detected from the FPGA named in the console
output.

Supported boards:
  Cyclone IV GX Transceiver Starter Kit (EP4CGX15)
  Cyclone IV GX FPGA Development Kit    (EP4CGX150)

Examples:
  railmon read                              # Run system-console and report
  railmon read --plain                      # No comparison with expected values
  railmon decode capture.txt                # Report from a saved console log
  railmon boards                            # Show rail tables
  railmon cables                            # List attached USB-Blaster cables`,
	Version:           "0.3.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			logCloser.Close()
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress progress messages")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"configuration file (default ./"+config.FileName+" or user config dir)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write diagnostics to this file (rotated)")
}

func setup(cmd *cobra.Command, args []string) error {
	c, used, err := config.Find(configPath)
	if err != nil {
		return err
	}
	cfg = c

	if logFile == "" {
		logFile = cfg.LogFile
	}
	logger.Verbose = verbose
	logger.Quiet = quiet
	logCloser = logger.Setup(os.Stderr, logFile)

	if used != "" {
		logger.Debug("using config %s", used)
	}
	return nil
}
