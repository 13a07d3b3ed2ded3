package dsp

import "github.com/dernasherbrezon/lrptdemod/internal/source"

// inputPullSize is how many raw input samples the interpolator pulls
// from its source per refill. It only affects I/O batching, not
// correctness: the polyphase history makes output independent of
// how the input stream is chunked.
const inputPullSize = 4096

// Interpolator upsamples by an integer factor (zero-stuffing) and
// matched-filters with a root-raised-cosine kernel, implemented as a
// polyphase filter bank to avoid computing multiply-by-zero taps
// (spec.md §4.B).
type Interpolator struct {
	src    source.Source
	kernel []float64
	factor int
	order  int

	history    []complex64
	historyPos int

	pending   []complex64
	primed    bool
	discarded int
}

// NewInterpolator constructs the interpolating filter for the given
// interpolation factor and RRC parameters. symbolRate and alpha follow
// spec.md §4.B/§4.H; samplePeriod is derived from the source's own
// sample rate and factor.
func NewInterpolator(src source.Source, factor, order int, alpha, symbolRate float64) *Interpolator {
	samplePeriod := 1.0 / (float64(factor) * src.SampleRate())
	symbolPeriod := 1.0 / symbolRate
	kernel := RRCKernel(order, alpha, symbolPeriod, samplePeriod)

	historyLen := order/factor + 1
	return &Interpolator{
		src:     src,
		kernel:  kernel,
		factor:  factor,
		order:   order,
		history: make([]complex64, historyLen),
	}
}

// Read returns up to n matched-filtered, upsampled samples, or fewer
// once the underlying source is exhausted.
func (ip *Interpolator) Read(n int) []complex64 {
	out := make([]complex64, 0, n)

	for len(out) < n {
		if len(ip.pending) > 0 {
			take := n - len(out)
			if take > len(ip.pending) {
				take = len(ip.pending)
			}
			out = append(out, ip.pending[:take]...)
			ip.pending = ip.pending[take:]
			continue
		}

		in := ip.src.Read(inputPullSize)
		if len(in) == 0 {
			break
		}

		generated := ip.generate(in)
		if !ip.primed {
			generated = ip.discardTransient(generated)
		}
		ip.pending = generated
	}

	return out
}

// discardTransient drops output samples until (order+1) have been
// discarded since stream start, per spec.md §4.B's prime-up rule.
func (ip *Interpolator) discardTransient(generated []complex64) []complex64 {
	need := ip.order + 1 - ip.discarded
	if need <= 0 {
		ip.primed = true
		return generated
	}
	if need >= len(generated) {
		ip.discarded += len(generated)
		return nil
	}
	ip.discarded += need
	ip.primed = true
	return generated[need:]
}

// generate runs each input sample through the polyphase filter bank,
// producing factor output samples per input sample.
func (ip *Interpolator) generate(in []complex64) []complex64 {
	out := make([]complex64, 0, len(in)*ip.factor)
	historyLen := len(ip.history)

	for _, x := range in {
		ip.history[ip.historyPos] = x
		ip.historyPos = (ip.historyPos + 1) % historyLen

		for p := 0; p < ip.factor; p++ {
			var accRe, accIm float64
			for k := 0; k < historyLen; k++ {
				hi := p + k*ip.factor
				if hi >= len(ip.kernel) {
					break
				}
				idx := (ip.historyPos - 1 - k + 2*historyLen) % historyLen
				s := ip.history[idx]
				tap := ip.kernel[hi]
				accRe += float64(real(s)) * tap
				accIm += float64(imag(s)) * tap
			}
			out = append(out, complex(float32(accRe), float32(accIm)))
		}
	}

	return out
}
