package dsp

// Mode is the carrier modulation scheme (spec.md §3).
type Mode int

const (
	QPSK Mode = iota
	OQPSK
)

// String returns the mode name, as accepted/printed by the -m flag.
func (m Mode) String() string {
	switch m {
	case QPSK:
		return "qpsk"
	case OQPSK:
		return "oqpsk"
	default:
		return "unknown"
	}
}

// ParseMode parses a -m flag value into a Mode. Unrecognized strings
// default to QPSK, matching the original demodulator's parse_mode.
func ParseMode(s string) Mode {
	if s == "oqpsk" {
		return OQPSK
	}
	return QPSK
}
