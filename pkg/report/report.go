// Package report turns a transcript into per-rail current readings and
// renders them for the console.
package report

import (
	"fmt"
	"math"

	"github.com/OpenTraceLab/railmon/pkg/adc"
	"github.com/OpenTraceLab/railmon/pkg/board"
	"github.com/OpenTraceLab/railmon/pkg/transcript"
)

// Tolerance is the deviation (A) from the expected current at which a
// reading is flagged.
const Tolerance = 0.005

// Mode selects how readings are reported.
type Mode int

const (
	// Highlighted compares each reading against the board's expected table.
	Highlighted Mode = iota
	// Plain prints readings without comparison.
	Plain
)

func (m Mode) String() string {
	switch m {
	case Plain:
		return "plain"
	case Highlighted:
		return "highlighted"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// LineNotFoundError reports a rail whose line is missing from the transcript.
type LineNotFoundError struct {
	Rail int
}

func (e *LineNotFoundError) Error() string {
	return fmt.Sprintf("report: no line for Rail %d in script output", e.Rail)
}

// Session is the state of one run: the extracted transcript and the board
// it came from.
type Session struct {
	Transcript transcript.Transcript
	Profile    *board.Profile
}

// NewSession detects the board from t.
func NewSession(t transcript.Transcript) (*Session, error) {
	p, err := board.Detect(t)
	if err != nil {
		return nil, err
	}
	return &Session{Transcript: t, Profile: p}, nil
}

// Row is the outcome for one rail.
type Row struct {
	Rail    board.RailDescriptor
	Line    string
	Payload string
	Sample  uint32
	Current float64

	// Set in Highlighted mode only.
	Expected    float64
	HasExpected bool
	Flagged     bool

	// Err is a *LineNotFoundError or *adc.DecodeError; the other fields
	// are zero when it is set.
	Err error
}

// roundingSlack absorbs binary representation error so that readings a
// decimal 0.005 away (0.045 vs 0.040) still count as deviating.
const roundingSlack = 1e-12

// Deviates reports whether current is at least Tolerance away from expected.
func Deviates(current, expected float64) bool {
	return math.Abs(current-expected) >= Tolerance-roundingSlack
}

// Build reads every rail of the session's board in table order. A rail that
// fails does not stop the others.
func Build(s *Session, mode Mode) []Row {
	rows := make([]Row, 0, len(s.Profile.Rails))
	for _, rail := range s.Profile.Rails {
		rows = append(rows, readRail(s, rail, mode))
	}
	return rows
}

func readRail(s *Session, rail board.RailDescriptor, mode Mode) Row {
	row := Row{Rail: rail}

	line, ok := s.Transcript.FindLineContaining(rail.Label())
	if !ok {
		row.Err = &LineNotFoundError{Rail: rail.ScriptRail}
		return row
	}

	sample, err := adc.DecodeSample(line)
	if err != nil {
		row.Err = err
		return row
	}
	current, err := adc.Current(sample, rail.ResistorOhms)
	if err != nil {
		row.Err = err
		return row
	}

	row.Line = line
	row.Payload = transcript.Payload(line)
	row.Sample = sample
	row.Current = current

	if mode == Highlighted {
		if exp, ok := s.Profile.ExpectedFor(rail); ok {
			row.Expected = exp
			row.HasExpected = true
			row.Flagged = Deviates(current, exp)
		}
	}
	return row
}

// Summary counts the outcomes of a run.
type Summary struct {
	OK      int
	Flagged int
	Failed  int
}

// Summarize tallies rows.
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch {
		case r.Err != nil:
			s.Failed++
		case r.Flagged:
			s.Flagged++
		default:
			s.OK++
		}
	}
	return s
}
