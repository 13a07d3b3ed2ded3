package dsp

import "math"

// RRCKernel computes a root-raised-cosine impulse response of length
// order+1, centered, with roll-off alpha over symbol period symbolPeriod
// and sample period samplePeriod (spec.md §4.B). Coefficients are
// peak-normalized so that matched-filtering a unit-amplitude symbol
// stream yields unit-amplitude peaks (the invariant in spec.md §3).
func RRCKernel(order int, alpha, symbolPeriod, samplePeriod float64) []float64 {
	n := order + 1
	taps := make([]float64, n)
	center := float64(order) / 2

	for i := 0; i < n; i++ {
		t := (float64(i) - center) * samplePeriod
		taps[i] = rrcSample(t, alpha, symbolPeriod)
	}

	normalizeKernel(taps, samplePeriod, symbolPeriod)
	return taps
}

// rrcSample evaluates the RRC impulse response at time t, handling the
// two analytic singularities (t=0 and t=±T/(4*alpha)).
func rrcSample(t, alpha, T float64) float64 {
	if alpha == 0 {
		return sinc(t / T)
	}

	if t == 0 {
		return (1.0 / T) * (1.0 + alpha*(4.0/math.Pi-1.0))
	}

	denom := 1.0 - math.Pow(4.0*alpha*t/T, 2)
	if math.Abs(denom) < 1e-9 {
		// t = ±T/(4*alpha): analytic limit.
		return (alpha / (T * math.Sqrt2)) *
			((1.0+2.0/math.Pi)*math.Sin(math.Pi/(4.0*alpha)) +
				(1.0-2.0/math.Pi)*math.Cos(math.Pi/(4.0*alpha)))
	}

	num := math.Sin(math.Pi*t/T*(1.0-alpha)) +
		4.0*alpha*t/T*math.Cos(math.Pi*t/T*(1.0+alpha))
	return (1.0 / T) * (num / (math.Pi * t / T * denom))
}

func sinc(x float64) float64 {
	if x == 0 {
		return 1
	}
	return math.Sin(math.Pi*x) / (math.Pi * x)
}

// normalizeKernel rescales taps so that the kernel's autocorrelation
// peak at the center lag (the sum of squared taps) equals
// symbolPeriod/samplePeriod, the number of samples per symbol (spec.md
// §8, property 2).
func normalizeKernel(taps []float64, samplePeriod, symbolPeriod float64) {
	var energy float64
	for _, v := range taps {
		energy += v * v
	}
	if energy == 0 {
		return
	}
	// Each tap represents an impulse-response sample at rate 1/samplePeriod;
	// normalizing by sqrt(energy) gives the filter unit passband gain for
	// a matched-filter cascade (RRC at Tx and Rx).
	scale := 1.0 / math.Sqrt(energy)
	scale *= math.Sqrt(symbolPeriod / samplePeriod)
	for i := range taps {
		taps[i] *= scale
	}
}
