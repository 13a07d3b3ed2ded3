// Package demoderr defines the error kinds the demodulator's outer
// layers (source, writer, config) can fail with. DSP stages never
// return errors; they are defined for every finite input.
package demoderr

import "errors"

// Kinds, matched with errors.Is. Wrap with fmt.Errorf("...: %w", Kind)
// to attach context.
var (
	// ErrConfigInvalid reports an out-of-range configuration parameter.
	ErrConfigInvalid = errors.New("config invalid")

	// ErrInputOpen reports that the input file could not be opened.
	ErrInputOpen = errors.New("input open failed")

	// ErrInputFormat reports an unparseable or unsupported input format.
	ErrInputFormat = errors.New("input format invalid")

	// ErrOutputOpen reports that the output file could not be created.
	ErrOutputOpen = errors.New("output open failed")

	// ErrWriteFailure reports an I/O error while writing soft symbols.
	ErrWriteFailure = errors.New("write failure")
)
