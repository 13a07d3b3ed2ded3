package dsp

import (
	"math"
	"math/cmplx"
)

// CoarseFreqEstimate searches the magnitude spectrum of a block of
// AGC'd, timing-recovered symbols for its dominant peak and returns an
// estimated carrier offset in radians/symbol, suitable for seeding
// Costas's initial NCO frequency before fine tracking takes over. This
// never runs more than once per demodulation and produces no visual
// output, so it does not reintroduce the "spectrum visualization"
// Non-goal.
//
// The QPSK 4th-power trick collapses the data modulation so the
// residual carrier appears as a single spectral line.
func CoarseFreqEstimate(symbols []complex64) float64 {
	n := nextPow2(len(symbols))
	if n == 0 {
		return 0
	}

	buf := make([]complex128, n)
	for i, s := range symbols {
		c := complex(float64(real(s)), float64(imag(s)))
		buf[i] = c * c * c * c // 4th power removes QPSK's 4-fold symmetry
	}

	spectrum := fft(buf)

	maxMag := -1.0
	maxIdx := 0
	for i, v := range spectrum {
		m := cmplx.Abs(v)
		if m > maxMag {
			maxMag = m
			maxIdx = i
		}
	}

	freqBin := maxIdx
	if freqBin > n/2 {
		freqBin -= n
	}

	// The 4th-power spectrum's peak is at 4x the true carrier offset
	// (in cycles per symbol); divide it back out and convert to
	// radians/symbol.
	cyclesPerSymbol := float64(freqBin) / float64(n) / 4
	return 2 * math.Pi * cyclesPerSymbol
}

func nextPow2(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// fft computes the DFT using Cooley-Tukey radix-2 (adapted from the
// teacher's OFDM FFT; input length must be a power of 2, zero-padded
// by the caller).
func fft(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	copy(out, x)
	if n <= 1 {
		return out
	}

	bitReverse(out)
	for size := 2; size <= n; size <<= 1 {
		halfSize := size >> 1
		wn := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for start := 0; start < n; start += size {
			w := complex(1.0, 0)
			for j := 0; j < halfSize; j++ {
				u := out[start+j]
				v := w * out[start+j+halfSize]
				out[start+j] = u + v
				out[start+j+halfSize] = u - v
				w *= wn
			}
		}
	}
	return out
}

func bitReverse(x []complex128) {
	n := len(x)
	bits := 0
	for tmp := n; tmp > 1; tmp >>= 1 {
		bits++
	}
	for i := 0; i < n; i++ {
		j := 0
		v := i
		for b := 0; b < bits; b++ {
			j = (j << 1) | (v & 1)
			v >>= 1
		}
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}
}
