// Package board holds the static rail tables of the supported Cyclone IV GX
// kits and detects which kit produced a transcript.
package board

import (
	"fmt"
	"strconv"
)

// UnusedRail is the rail name used for ADC channels with nothing attached.
const UnusedRail = "open"

// RailDescriptor describes one sensed power rail.
type RailDescriptor struct {
	Name         string  // schematic net name, or "open"
	ResistorOhms float64 // sense resistor

	// PowerMonitorIndex is the rail's position in the vendor Power Monitor
	// GUI list. Informational only; nil for unused channels.
	PowerMonitorIndex *int

	ADCChannel int // column in the expected-current table, from 0
	ScriptRail int // "Rail N" label printed by read_power_rails.tcl, from 1
}

// Unused reports whether the channel has no rail attached.
func (r RailDescriptor) Unused() bool {
	return r.Name == UnusedRail
}

// Label returns the lookup key for this rail's transcript line.
func (r RailDescriptor) Label() string {
	return "Rail " + strconv.Itoa(r.ScriptRail)
}

// ID identifies a supported board.
type ID string

const (
	TransceiverKit ID = "civgx-transceiver-kit"
	DevelopmentKit ID = "civgx-development-kit"
)

// Profile is a board variant with its rails and expected currents.
type Profile struct {
	ID     ID
	Name   string // "Cyclone IV GX FPGA Development Kit"
	Device string // FPGA part as reported by system-console, e.g. "EP4CGX150"

	// Rails in report order.
	Rails []RailDescriptor

	// Expected holds the currents (A) measured with the Power Monitor GUI on
	// the kit's factory design, indexed by ADCChannel.
	Expected []float64
}

// DetectPattern is the substring system-console prints for the board's FPGA.
func (p *Profile) DetectPattern() string {
	return p.Device + "@"
}

// ExpectedFor returns the expected current for rail.
func (p *Profile) ExpectedFor(rail RailDescriptor) (float64, bool) {
	if rail.ADCChannel < 0 || rail.ADCChannel >= len(p.Expected) {
		return 0, false
	}
	return p.Expected[rail.ADCChannel], true
}

// Validate checks the table invariants: one expected value per rail, ADC
// channels unique and contiguous from 0, positive sense resistors.
func (p *Profile) Validate() error {
	if len(p.Expected) != len(p.Rails) {
		return fmt.Errorf("board %s: %d rails but %d expected values", p.ID, len(p.Rails), len(p.Expected))
	}

	seen := make([]bool, len(p.Rails))
	for _, r := range p.Rails {
		if r.ADCChannel < 0 || r.ADCChannel >= len(p.Rails) {
			return fmt.Errorf("board %s: rail %q ADC channel %d out of range", p.ID, r.Name, r.ADCChannel)
		}
		if seen[r.ADCChannel] {
			return fmt.Errorf("board %s: ADC channel %d used twice", p.ID, r.ADCChannel)
		}
		seen[r.ADCChannel] = true

		if !(r.ResistorOhms > 0) {
			return fmt.Errorf("board %s: rail %q has non-positive sense resistor %g", p.ID, r.Name, r.ResistorOhms)
		}
		if r.ScriptRail < 1 {
			return fmt.Errorf("board %s: rail %q has invalid script rail number %d", p.ID, r.Name, r.ScriptRail)
		}
	}
	return nil
}
