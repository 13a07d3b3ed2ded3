// Package testsignal synthesizes known-good QPSK/OQPSK symbol streams
// for exercising the demodulation pipeline end-to-end (spec.md §8's
// round-trip properties). It is test-support code, not part of the
// demodulator itself.
package testsignal

import "math"

// qpskPoints is a Gray-coded QPSK constellation normalized to unit
// average power.
var qpskPoints = func() [4]complex128 {
	pts := [4]complex128{
		complex(1, 1),   // 00
		complex(-1, 1),  // 01
		complex(-1, -1), // 11
		complex(1, -1),  // 10
	}
	scale := 1.0 / math.Sqrt(2)
	for i := range pts {
		pts[i] = complex(real(pts[i])*scale, imag(pts[i])*scale)
	}
	return pts
}()

// Modulate maps a bit slice (2 bits per symbol, values 0 or 1) to a
// QPSK symbol stream.
func Modulate(bits []byte) []complex128 {
	n := len(bits) / 2
	symbols := make([]complex128, n)
	for i := 0; i < n; i++ {
		idx := (int(bits[2*i]) << 1) | int(bits[2*i+1])
		idx ^= idx >> 1 // bit pair -> Gray-ordered position in qpskPoints
		symbols[i] = qpskPoints[idx]
	}
	return symbols
}

// ModulateOQPSK produces the same symbol stream as Modulate, one sample
// per symbol, with the Q branch delayed by one sample: sample i carries
// I of symbol i and Q of symbol i-1. At one sample per symbol that delay
// is a whole symbol, not a half-symbol offset. The first sample has
// Q = 0, and one extra sample (I = 0, Q of the last symbol) is appended
// at the tail.
func ModulateOQPSK(bits []byte) []complex64 {
	qpsk := Modulate(bits)
	out := make([]complex64, len(qpsk)+1)
	var prevQ float64
	for i, s := range qpsk {
		out[i] = complex64(complex(real(s), prevQ))
		prevQ = imag(s)
	}
	out[len(qpsk)] = complex64(complex(0, prevQ))
	return out
}

// PRBSBits generates a deterministic pseudorandom bit sequence (an
// LFSR-based PRBS, not true randomness) for reproducible test vectors.
func PRBSBits(n int, seed uint32) []byte {
	if seed == 0 {
		seed = 1
	}
	bits := make([]byte, n)
	state := seed
	for i := 0; i < n; i++ {
		bit := state & 1
		state >>= 1
		if bit != 0 {
			state ^= 0xB400 // taps for a maximal-length 16-bit LFSR
		}
		bits[i] = byte(bit)
	}
	return bits
}

// ToComplex64 narrows a complex128 symbol stream to complex64, the
// sample-path type used throughout internal/dsp.
func ToComplex64(in []complex128) []complex64 {
	out := make([]complex64, len(in))
	for i, s := range in {
		out[i] = complex64(s)
	}
	return out
}
