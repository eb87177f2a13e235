package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/OpenTraceLab/railmon/pkg/blaster"
	"github.com/spf13/cobra"
)

var cablesCmd = &cobra.Command{
	Use:   "cables",
	Short: "List attached USB-Blaster cables",
	Long: `Scan the host USB buses for Altera/Intel USB-Blaster and USB-Blaster II
download cables. system-console needs one of these (or a remote JTAG server)
to reach the board.`,
	Args: cobra.NoArgs,
	RunE: runCables,
}

func init() {
	rootCmd.AddCommand(cablesCmd)
}

func runCables(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cables, err := blaster.Discover(ctx)
	if err != nil {
		return fmt.Errorf("discover cables: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(cables) == 0 {
		fmt.Fprintln(out, "No USB-Blaster cables found.")
		return nil
	}

	fmt.Fprintln(out, "Detected download cables:")
	for _, c := range cables {
		fmt.Fprintf(out, "  - %s [%s] (VID:PID %04X:%04X, bus %d addr %d)\n",
			c.Label(), c.Kind, c.VendorID, c.ProductID, c.Bus, c.Address)
	}
	return nil
}
