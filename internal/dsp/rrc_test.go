package dsp

import (
	"math"
	"testing"
)

func TestRRCKernel_CenteredLength(t *testing.T) {
	taps := RRCKernel(64, 0.6, 1.0/72000.0, 1.0/(4*72000.0))
	if len(taps) != 65 {
		t.Fatalf("len(taps) = %d, want %d", len(taps), 65)
	}
}

func TestRRCKernel_MatchedFilterPeakAtCenter(t *testing.T) {
	order := 64
	taps := RRCKernel(order, 0.6, 1.0/72000.0, 1.0/(4*72000.0))

	n := len(taps)
	peakLag := n - 1
	var peak float64
	peakIdx := -1
	for lag := 0; lag < 2*n-1; lag++ {
		var corr float64
		for i := 0; i < n; i++ {
			j := i - (lag - (n - 1))
			if j < 0 || j >= n {
				continue
			}
			corr += taps[i] * taps[j]
		}
		if corr > peak {
			peak = corr
			peakIdx = lag
		}
	}
	if peakIdx != peakLag {
		t.Errorf("autocorrelation peak at lag %d, want center lag %d", peakIdx, peakLag)
	}
}

func TestRRCKernel_OrderFour(t *testing.T) {
	taps := RRCKernel(4, 0.6, 1.0/72000.0, 1.0/(4*72000.0))
	if len(taps) != 5 {
		t.Fatalf("len(taps) = %d, want 5", len(taps))
	}
	for i, v := range taps {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("tap %d is not finite: %v", i, v)
		}
	}
}

func TestSinc(t *testing.T) {
	if sinc(0) != 1 {
		t.Errorf("sinc(0) = %v, want 1", sinc(0))
	}
	if math.Abs(sinc(1)) > 1e-9 {
		t.Errorf("sinc(1) = %v, want ~0", sinc(1))
	}
}
