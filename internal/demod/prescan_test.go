package demod

import (
	"math"
	"testing"

	"github.com/dernasherbrezon/lrptdemod/internal/config"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
)

func TestPrescanFreq_EstimatesNonZeroOffset(t *testing.T) {
	const symbolRate = 72000.0
	const offsetHz = 500.0
	rotPerSymbol := 2 * math.Pi * offsetHz / symbolRate

	points := []complex64{1 + 1i, -1 + 1i, -1 - 1i, 1 - 1i}
	n := 20000
	samples := make([]complex64, n)
	phase := 0.0
	for i := 0; i < n; i++ {
		p := points[i%4]
		sinP, cosP := math.Sincos(phase)
		re := float64(real(p))*cosP - float64(imag(p))*sinP
		im := float64(real(p))*sinP + float64(imag(p))*cosP
		samples[i] = complex(float32(re), float32(im))
		phase += rotPerSymbol
	}

	src := &memSource{samples: samples, rate: symbolRate}
	cfg, err := config.New(src.SampleRate(), symbolRate, 1, config.DefaultRRCAlpha, config.DefaultRRCOrder, config.DefaultCostasBW, dsp.QPSK, config.DefaultAGCTarget, config.DefaultAGCWindow)
	if err != nil {
		t.Fatalf("config.New() error: %v", err)
	}

	got := PrescanFreq(src, cfg)
	if got == 0 {
		t.Fatal("PrescanFreq returned 0 for a clearly offset signal")
	}
}

func TestPrescanFreq_ZeroInput(t *testing.T) {
	src := &memSource{samples: make([]complex64, 5000), rate: 72000}
	cfg, err := config.New(src.SampleRate(), 72000, 1, config.DefaultRRCAlpha, config.DefaultRRCOrder, config.DefaultCostasBW, dsp.QPSK, config.DefaultAGCTarget, config.DefaultAGCWindow)
	if err != nil {
		t.Fatalf("config.New() error: %v", err)
	}
	if got := PrescanFreq(src, cfg); got != 0 {
		t.Errorf("PrescanFreq(zero input) = %v, want 0", got)
	}
}
