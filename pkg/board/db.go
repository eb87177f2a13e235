package board

import (
	"errors"
	"fmt"

	"github.com/OpenTraceLab/railmon/pkg/transcript"
)

// ErrUndetected is returned when a transcript names none of the known FPGAs.
var ErrUndetected = errors.New("board: no supported FPGA found in console output")

// profiles is the in-memory board table.
var profiles = make(map[ID]*Profile)

// register adds a board profile; tables are static so a bad one panics.
func register(p *Profile) {
	if err := p.Validate(); err != nil {
		panic(err)
	}
	profiles[p.ID] = p
}

// detectOrder is the order in which detection patterns are tried. The
// EP4CGX150 kit must stay ahead of the EP4CGX15 kit: a match on the bare
// part name "EP4CGX15" would also hit EP4CGX150 lines.
var detectOrder = []ID{DevelopmentKit, TransceiverKit}

// Lookup returns the profile for id.
func Lookup(id ID) (*Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return nil, fmt.Errorf("board: unknown board %q", id)
	}
	return p, nil
}

// All returns every known profile in detection order.
func All() []*Profile {
	out := make([]*Profile, 0, len(detectOrder))
	for _, id := range detectOrder {
		out = append(out, profiles[id])
	}
	return out
}

// Detect selects the profile whose FPGA appears in t.
func Detect(t transcript.Transcript) (*Profile, error) {
	for _, p := range All() {
		if _, ok := t.FindLineContaining(p.DetectPattern()); ok {
			return p, nil
		}
	}
	return nil, ErrUndetected
}
