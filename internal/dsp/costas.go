package dsp

import "math"

// Lock-detector hysteresis thresholds and averaging time constant
// (spec.md §4.E, §9 open question — no criterion given in the source
// material, so these are the chosen design).
const (
	lockThreshold    = 0.05
	unlockThreshold  = 0.2
	lockAvgTimeConst = 256.0
)

// Costas implements a second-order Costas loop that derotates symbols
// and tracks residual carrier frequency/phase offset (spec.md §4.E).
type Costas struct {
	phase float64
	freq  float64

	alpha float64
	beta  float64

	errAvg float64
	locked bool
}

// NewCostas creates a Costas loop with damping zeta=1/sqrt(2) and loop
// bandwidth omega (radians/sample, derived in internal/config from the
// configured bandwidth in Hz and the symbol rate). initFreq seeds the
// NCO frequency (radians/sample); 0 unless a coarse frequency scan
// (internal/dsp/freqscan.go) has estimated an initial offset.
func NewCostas(omega, initFreq float64) *Costas {
	const zeta = 1 / math.Sqrt2
	denom := 1 + 2*zeta*omega + omega*omega
	// The lock average starts at the unlock threshold, so lock is only
	// declared once the error has actually settled.
	return &Costas{
		freq:   initFreq,
		alpha:  4 * zeta * omega / denom,
		beta:   4 * omega * omega / denom,
		errAvg: unlockThreshold,
	}
}

// Resync derotates one symbol and updates the loop state, returning
// the derotated symbol.
func (c *Costas) Resync(s complex64) complex64 {
	sr, si := float64(real(s)), float64(imag(s))

	sinP, cosP := math.Sincos(-c.phase)
	yr := sr*cosP - si*sinP
	yi := sr*sinP + si*cosP

	e := sign(yr)*yi - sign(yi)*yr

	c.freq = clampFloat(c.freq+c.beta*e, -1, 1)
	c.phase = wrapPhase(c.phase + c.freq + c.alpha*e)

	// A zero symbol carries no phase information and does not feed the
	// lock detector.
	if sr != 0 || si != 0 {
		c.updateLock(e)
	}

	return complex(float32(yr), float32(yi))
}

func (c *Costas) updateLock(e float64) {
	c.errAvg += (math.Abs(e) - c.errAvg) / lockAvgTimeConst
	if c.locked && c.errAvg > unlockThreshold {
		c.locked = false
	} else if !c.locked && c.errAvg < lockThreshold {
		c.locked = true
	}
}

// Freq returns the current NCO frequency in radians/sample.
func (c *Costas) Freq() float64 { return c.freq }

// Locked reports whether the loop currently considers itself locked.
func (c *Costas) Locked() bool { return c.locked }

func sign(x float64) float64 {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func clampFloat(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// wrapPhase maps phase into [-pi, pi).
func wrapPhase(phase float64) float64 {
	for phase >= math.Pi {
		phase -= 2 * math.Pi
	}
	for phase < -math.Pi {
		phase += 2 * math.Pi
	}
	return phase
}
