package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <console-log>",
	Short: "Report rail currents from a saved system-console log",
	Long: `Decode a system-console transcript captured earlier (for example with
"system-console --script=read_power_rails.tcl > capture.txt 2>&1") without
running system-console. Use "-" to read from standard input.

Examples:
  # Decode a saved capture
  railmon decode capture.txt

  # The capture came from a board whose FPGA line was cut off
  railmon decode --board civgx-development-kit capture.txt

  # JSON output
  railmon decode --json capture.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	addReportFlags(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	applyReportFlags(cmd)

	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read console log: %w", err)
	}

	return processOutput(cmd.OutOrStdout(), string(data))
}
