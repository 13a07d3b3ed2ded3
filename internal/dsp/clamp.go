package dsp

// Clamp quantizes a real-valued sample to a signed 8-bit soft symbol
// (spec.md §3, §8 invariant 1): values in (-1, 1) that aren't exactly
// zero round away from zero to +-1 so the zero code is never produced
// for a non-zero input, and +-infinity saturates at +-128/127.
func Clamp(x float32) int8 {
	if x < -128 {
		return -128
	}
	if x > 127 {
		return 127
	}
	if x > 0 && x < 1 {
		return 1
	}
	if x < 0 && x > -1 {
		return -1
	}
	return int8(x)
}

// ClampSymbol quantizes a derotated complex symbol to a soft (I, Q)
// pair (spec.md §4.F). The factor-of-2 scale-down matches the
// original demodulator's headroom convention for its constellation
// amplitude.
func ClampSymbol(s complex64) (i, q int8) {
	return Clamp(real(s) / 2), Clamp(imag(s) / 2)
}
