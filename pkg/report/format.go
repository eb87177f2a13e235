package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/OpenTraceLab/railmon/pkg/adc"
)

// Header returns the title line printed above the readings.
func Header(mode Mode) string {
	if mode == Highlighted {
		return "Highlighted current readings:"
	}
	return "Current readings:"
}

// FormatRow renders one reading:
//
//	2.5_VCC              0.054 (exp 0.04) A    Rail 8    00 01 00 00
func FormatRow(r Row) string {
	if r.Err != nil {
		return fmt.Sprintf("%-20s error: %v", r.Rail.Name, r.Err)
	}

	reading := fmt.Sprintf("%-5.3f", r.Current)
	if r.Flagged {
		reading += " (exp " + formatExpected(r.Expected) + ")"
	}
	return fmt.Sprintf("%-20s %s A    %s    %s", r.Rail.Name, reading, r.Rail.Label(), r.Payload)
}

// formatExpected prints the shortest exact form, always with a decimal point.
func formatExpected(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Write prints the header and one line per row.
func Write(w io.Writer, rows []Row, mode Mode) error {
	if _, err := fmt.Fprintln(w, Header(mode)); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintln(w, FormatRow(r)); err != nil {
			return err
		}
	}
	return nil
}

// RunInfo is the JSON form of a run.
type RunInfo struct {
	Board     string     `json:"board"`
	BoardName string     `json:"board_name"`
	Mode      string     `json:"mode"`
	Rails     []RailInfo `json:"rails"`
}

// RailInfo is the JSON form of a Row.
type RailInfo struct {
	Name         string   `json:"name"`
	Rail         int      `json:"rail"`
	ADCChannel   int      `json:"adc_channel"`
	ResistorOhms float64  `json:"resistor_ohms"`
	Payload      string   `json:"payload,omitempty"`
	Sample       uint32   `json:"sample"`
	Voltage      float64  `json:"voltage"`
	Current      float64  `json:"current"`
	Expected     *float64 `json:"expected,omitempty"`
	Flagged      bool     `json:"flagged,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// BuildRunInfo converts rows for JSON output.
func BuildRunInfo(s *Session, rows []Row, mode Mode) *RunInfo {
	info := &RunInfo{
		Board:     string(s.Profile.ID),
		BoardName: s.Profile.Name,
		Mode:      mode.String(),
		Rails:     make([]RailInfo, len(rows)),
	}

	for i, r := range rows {
		ri := RailInfo{
			Name:         r.Rail.Name,
			Rail:         r.Rail.ScriptRail,
			ADCChannel:   r.Rail.ADCChannel,
			ResistorOhms: r.Rail.ResistorOhms,
			Payload:      r.Payload,
			Sample:       r.Sample,
			Voltage:      adc.Voltage(r.Sample),
			Current:      r.Current,
			Flagged:      r.Flagged,
		}
		if r.HasExpected {
			exp := r.Expected
			ri.Expected = &exp
		}
		if r.Err != nil {
			ri.Error = r.Err.Error()
		}
		info.Rails[i] = ri
	}

	return info
}

// WriteJSON encodes the run as indented JSON.
func WriteJSON(w io.Writer, s *Session, rows []Row, mode Mode) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildRunInfo(s, rows, mode))
}
