// Package transcript slices a raw system-console capture down to the lines
// printed by the embedded sampling script and provides the lookups used for
// board detection and per-rail parsing.
package transcript

import "strings"

// DefaultMarker is printed by system-console right before the sampling
// script produces its own output.
const DefaultMarker = "Script read_power_rails.tcl started."

// PayloadSeparator precedes the hex byte dump on every rail line.
const PayloadSeparator = ": "

// Transcript holds the script output lines in the order they were printed.
type Transcript []string

// Extract returns the lines that follow the first line containing marker.
// Everything up to and including the marker line is console noise and is
// dropped. If the marker never appears the transcript is empty.
func Extract(raw, marker string) Transcript {
	var out Transcript
	started := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if started {
			out = append(out, line)
			continue
		}
		if strings.Contains(line, marker) {
			started = true
		}
	}

	// A capture that ends with a newline leaves one empty trailing element.
	if n := len(out); n > 0 && out[n-1] == "" && strings.HasSuffix(raw, "\n") {
		out = out[:n-1]
	}
	return out
}

// Find returns the first line satisfying match.
func (t Transcript) Find(match func(line string) bool) (string, bool) {
	for _, line := range t {
		if match(line) {
			return line, true
		}
	}
	return "", false
}

// FindLineContaining returns the first line containing sub as a literal
// substring.
func (t Transcript) FindLineContaining(sub string) (string, bool) {
	return t.Find(func(line string) bool {
		return strings.Contains(line, sub)
	})
}

// Lines returns the number of retained lines.
func (t Transcript) Lines() int {
	return len(t)
}

// String joins the transcript back into newline separated text.
func (t Transcript) String() string {
	return strings.Join(t, "\n")
}

// Payload returns the part of line after the last ": " separator. A line
// without a separator is returned unchanged.
func Payload(line string) string {
	if i := strings.LastIndex(line, PayloadSeparator); i >= 0 {
		return line[i+len(PayloadSeparator):]
	}
	return line
}
