package cmd

import (
	"fmt"

	"github.com/OpenTraceLab/railmon/pkg/board"
	"github.com/spf13/cobra"
)

var boardsCmd = &cobra.Command{
	Use:   "boards",
	Short: "List supported boards and their rail tables",
	Args:  cobra.NoArgs,
	RunE:  runBoards,
}

func init() {
	rootCmd.AddCommand(boardsCmd)
}

func runBoards(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	for _, p := range board.All() {
		fmt.Fprintf(out, "%s (%s)\n", p.Name, p.ID)
		fmt.Fprintf(out, "  Detected by: %q\n", p.DetectPattern())
		fmt.Fprintf(out, "  %-20s %8s %6s %4s %6s %9s\n", "Rail", "Res", "PM idx", "ADC", "Script", "Expected")
		for _, r := range p.Rails {
			pmIdx := "-"
			if r.PowerMonitorIndex != nil {
				pmIdx = fmt.Sprintf("%d", *r.PowerMonitorIndex)
			}
			exp, _ := p.ExpectedFor(r)
			fmt.Fprintf(out, "  %-20s %7.3fΩ %6s %4d %6s %8.3fA\n",
				r.Name, r.ResistorOhms, pmIdx, r.ADCChannel, r.Label(), exp)
		}
		fmt.Fprintln(out)
	}

	return nil
}
