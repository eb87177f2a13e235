package adc

import (
	"errors"
	"fmt"
)

const (
	// VRef is the ADC reference measured on both Cyclone IV GX kits. The
	// schematics say 5.0 V; readings only agree with the Power Monitor GUI
	// at 5.35 V.
	VRef = 5.35

	// FullScale is the ADC step count (23-bit conversion).
	FullScale = 1 << 23
)

// ErrBadResistor is returned for a sense resistor that is zero or negative.
var ErrBadResistor = errors.New("adc: sense resistor must be positive")

// Voltage converts a raw sample to the voltage across the sense resistor.
func Voltage(sample uint32) float64 {
	return float64(sample) * VRef / FullScale
}

// Current applies Ohm's law to the sample's voltage.
func Current(sample uint32, resistorOhms float64) (float64, error) {
	if !(resistorOhms > 0) {
		return 0, fmt.Errorf("%w: got %g", ErrBadResistor, resistorOhms)
	}
	return Voltage(sample) / resistorOhms, nil
}

// CurrentFromLine decodes a transcript rail line and returns its current.
func CurrentFromLine(line string, resistorOhms float64) (float64, error) {
	sample, err := DecodeSample(line)
	if err != nil {
		return 0, err
	}
	return Current(sample, resistorOhms)
}
