// Package source yields complex baseband samples from a file (spec.md
// §4.A). It is a thin wrapper: WAV/raw parsing and sample-rate/bit-depth
// detection, not redesigned DSP.
package source

// Source produces a finite sequence of complex baseband samples.
type Source interface {
	// Read returns up to n samples, or fewer at EOF.
	Read(n int) []complex64

	// SampleRate is the source's sample rate in Hz.
	SampleRate() float64

	// Size is the total number of input units (bytes) in the source.
	Size() int64

	// Done is the number of input units consumed so far.
	Done() int64

	// Close releases any file handles held by the source.
	Close() error
}
