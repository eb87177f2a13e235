// Package adc decodes the ADC words dumped by the board sampling script and
// converts them to rail voltage and current.
package adc

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/railmon/pkg/transcript"
)

// DecodeError reports a payload that does not hold a little-endian sample.
type DecodeError struct {
	Payload string
	Reason  string
	Err     error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("adc: cannot decode %q: %s: %v", e.Payload, e.Reason, e.Err)
	}
	return fmt.Sprintf("adc: cannot decode %q: %s", e.Payload, e.Reason)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// ErrShortPayload is wrapped by DecodeError when fewer than two bytes are
// present.
var ErrShortPayload = errors.New("adc: payload needs at least two bytes")

// DecodePayload rebuilds the sample from the first two byte tokens,
// low byte first. Tokens after the second one are ignored.
func DecodePayload(payload string) (uint32, error) {
	dump, err := ParseHexDump(payload)
	if err != nil {
		return 0, &DecodeError{Payload: payload, Reason: "invalid hex dump", Err: err}
	}
	if len(dump.Bytes) < 2 && dump.Rest != "" {
		return 0, &DecodeError{
			Payload: payload,
			Reason:  fmt.Sprintf("byte %d is not hex: %q", len(dump.Bytes), dump.Rest),
		}
	}
	if len(dump.Bytes) < 2 {
		return 0, &DecodeError{
			Payload: payload,
			Reason:  fmt.Sprintf("found %d byte(s)", len(dump.Bytes)),
			Err:     ErrShortPayload,
		}
	}

	lo, err := strconv.ParseUint(dump.Bytes[0], 16, 8)
	if err != nil {
		return 0, &DecodeError{Payload: payload, Reason: "byte 0 out of range", Err: err}
	}
	hi, err := strconv.ParseUint(dump.Bytes[1], 16, 8)
	if err != nil {
		return 0, &DecodeError{Payload: payload, Reason: "byte 1 out of range", Err: err}
	}

	return uint32(lo) + 256*uint32(hi), nil
}

// DecodeSample decodes the sample carried by a transcript rail line.
func DecodeSample(line string) (uint32, error) {
	return DecodePayload(transcript.Payload(line))
}
