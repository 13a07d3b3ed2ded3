package dsp

// Early-late loop scalings (spec.md §4.D, §9 open question): preserved
// verbatim from the original demodulator, which derives them
// empirically rather than analytically.
const (
	kErr  = 10000.0
	kGain = 100.0
)

// Timing recovers symbol timing from an oversampled, AGC-normalized
// stream using early-late gating and emits one sample per symbol
// (spec.md §4.D).
type Timing struct {
	period float64
	offset float64

	early, cur, late complex64

	oqpsk      bool
	halfOffset float64
	halfSample complex64
	halfTaken  bool
}

// NewTiming creates a timing recovery loop for the given oversampled
// rate and symbol rate. period = interp_rate/symbol_rate need not be
// an integer.
func NewTiming(period float64, oqpsk bool) *Timing {
	return &Timing{period: period, oqpsk: oqpsk}
}

// Step shifts in one new oversampled input sample. When the timing
// loop triggers, it returns the recovered symbol and true; otherwise
// it returns the zero value and false.
func (t *Timing) Step(x complex64) (complex64, bool) {
	t.late = t.cur
	t.cur = t.early
	t.early = x
	t.offset++

	// Track a sample near the half-symbol point between triggers, used
	// by the OQPSK error term below.
	t.halfOffset++
	if !t.halfTaken && t.halfOffset >= t.period/2 {
		t.halfSample = t.early
		t.halfTaken = true
	}

	if t.offset < t.period {
		return 0, false
	}

	t.offset -= t.period
	e := t.timingError()
	t.offset += (e / kErr) * t.period / kGain

	t.halfOffset = 0
	t.halfTaken = false

	return t.cur, true
}

// timingError computes the early-late timing error signal for the
// current mode (spec.md §4.D).
func (t *Timing) timingError() float64 {
	eQ := (float64(imag(t.late)) - float64(imag(t.early))) * float64(imag(t.cur))
	if !t.oqpsk {
		return eQ
	}

	// OQPSK: average the Q-branch error above with an I-branch error that
	// uses the same late/early pair, weighted by the real part of the
	// sample taken near the half-symbol point.
	eI := (float64(real(t.late)) - float64(real(t.early))) * float64(real(t.halfSample))
	return (eQ + eI) / 2
}
