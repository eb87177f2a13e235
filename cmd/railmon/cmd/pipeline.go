package cmd

import (
	"fmt"
	"io"

	"github.com/OpenTraceLab/railmon/internal/logger"
	"github.com/OpenTraceLab/railmon/pkg/board"
	"github.com/OpenTraceLab/railmon/pkg/report"
	"github.com/OpenTraceLab/railmon/pkg/transcript"
	"github.com/spf13/cobra"
)

// reportFlags are shared by the read and decode commands.
type reportFlags struct {
	board             string
	json              bool
	plain             bool
	highlight         bool
	printScriptOutput bool
}

var reportOpts reportFlags

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&reportOpts.board, "board", "B", "",
		"skip detection and use this board ("+string(board.TransceiverKit)+", "+string(board.DevelopmentKit)+")")
	cmd.Flags().BoolVar(&reportOpts.json, "json", false,
		"output as JSON (for programmatic access)")
	cmd.Flags().BoolVar(&reportOpts.plain, "plain", false,
		"do not compare readings with expected values")
	cmd.Flags().BoolVar(&reportOpts.highlight, "highlight", true,
		"flag readings that differ from the expected values")
	cmd.Flags().BoolVar(&reportOpts.printScriptOutput, "print-script-output", false,
		"echo the script output before the report")
}

// applyReportFlags lets explicitly set flags override the config file.
func applyReportFlags(cmd *cobra.Command) {
	if cmd.Flags().Changed("highlight") {
		cfg.HighlightUnexpectedValues = reportOpts.highlight
	}
	if reportOpts.plain {
		cfg.HighlightUnexpectedValues = false
	}
	if cmd.Flags().Changed("print-script-output") {
		cfg.PrintScriptOutput = reportOpts.printScriptOutput
	}
}

func reportMode() report.Mode {
	if cfg.HighlightUnexpectedValues {
		return report.Highlighted
	}
	return report.Plain
}

// selectSession picks the board, either the one named by --board or the one
// found in the transcript.
func selectSession(t transcript.Transcript) (*report.Session, error) {
	if reportOpts.board != "" {
		p, err := board.Lookup(board.ID(reportOpts.board))
		if err != nil {
			return nil, err
		}
		return &report.Session{Transcript: t, Profile: p}, nil
	}

	s, err := report.NewSession(t)
	if err != nil {
		return nil, fmt.Errorf("cannot select rail table: %w (use --board to choose one)", err)
	}
	return s, nil
}

// processOutput runs extraction, board selection and reporting on raw
// console output. Only a board selection failure is returned as an error;
// rails that cannot be read are reported in their row.
func processOutput(w io.Writer, raw string) error {
	t := transcript.Extract(raw, cfg.Marker)
	logger.Debug("script output: %d line(s)", t.Lines())
	if t.Lines() == 0 {
		logger.Error("marker %q not found in console output", cfg.Marker)
	}

	if cfg.PrintScriptOutput && !reportOpts.json {
		fmt.Fprintln(w, "Script output:")
		for _, line := range t {
			fmt.Fprintln(w, line)
		}
	}

	s, err := selectSession(t)
	if err != nil {
		return err
	}

	mode := reportMode()
	rows := report.Build(s, mode)

	if reportOpts.json {
		return report.WriteJSON(w, s, rows, mode)
	}

	if reportOpts.board != "" {
		fmt.Fprintf(w, "Board selected: %s\n", s.Profile.Name)
	} else {
		fmt.Fprintf(w, "Board detected: %s\n", s.Profile.Name)
	}
	if err := report.Write(w, rows, mode); err != nil {
		return err
	}

	sum := report.Summarize(rows)
	if sum.Failed > 0 {
		logger.Error("%d of %d rail(s) could not be read", sum.Failed, len(rows))
	}
	logger.Debug("%d ok, %d outside tolerance, %d failed", sum.OK, sum.Flagged, sum.Failed)
	return nil
}
