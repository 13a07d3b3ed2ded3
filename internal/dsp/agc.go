package dsp

import "math"

// AGC normalizes the complex envelope magnitude of a sample stream
// toward a target level using exponential smoothing (spec.md §4.C).
// Adapted from the block-averaging ApplyAGC used for one-shot OFDM
// capture normalization in the teacher repo; here the estimator runs
// per-sample so it can track a continuous downlink.
type AGC struct {
	target float64
	window float64
	mu     float64
	primed bool
}

// NewAGC creates an AGC tracking toward target with smoothing window W.
func NewAGC(target, window float64) *AGC {
	return &AGC{target: target, window: window}
}

// Apply updates the magnitude estimate from x and returns x scaled by
// the current gain. Numerically stable for any finite input: if the
// magnitude estimate collapses to zero, Apply returns zero rather than
// dividing by it.
func (a *AGC) Apply(x complex64) complex64 {
	mag := cabs(x)

	if !a.primed {
		a.mu = mag
		a.primed = true
	} else {
		a.mu += (mag - a.mu) / a.window
	}

	if a.mu == 0 {
		return 0
	}

	gain := a.target / a.mu
	return complex(real(x)*float32(gain), imag(x)*float32(gain))
}

// Gain returns the AGC's currently applied linear gain.
func (a *AGC) Gain() float64 {
	if a.mu == 0 {
		return 0
	}
	return a.target / a.mu
}

func cabs(x complex64) float64 {
	re := float64(real(x))
	im := float64(imag(x))
	return math.Hypot(re, im)
}
