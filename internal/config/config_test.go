package config

import (
	"errors"
	"math"
	"testing"

	"github.com/dernasherbrezon/lrptdemod/internal/demoderr"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
)

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(140000, DefaultSymbolRate, DefaultInterpFactor, DefaultRRCAlpha, DefaultRRCOrder, DefaultCostasBW, dsp.QPSK, DefaultAGCTarget, DefaultAGCWindow)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	wantResync := 140000.0 * DefaultInterpFactor / DefaultSymbolRate
	if math.Abs(cfg.ResyncPeriod-wantResync) > 1e-9 {
		t.Errorf("ResyncPeriod = %v, want %v", cfg.ResyncPeriod, wantResync)
	}
}

func TestNew_OQPSKDividesBandwidthByFive(t *testing.T) {
	cfg, err := New(140000, DefaultSymbolRate, DefaultInterpFactor, DefaultRRCAlpha, DefaultRRCOrder, 40, dsp.OQPSK, DefaultAGCTarget, DefaultAGCWindow)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	wantOmega := 2 * math.Pi * (40.0 / 5) / DefaultSymbolRate
	if math.Abs(cfg.CostasOmega-wantOmega) > 1e-9 {
		t.Errorf("CostasOmega = %v, want %v", cfg.CostasOmega, wantOmega)
	}
}

func TestNew_RejectsInvalidParams(t *testing.T) {
	cases := []struct {
		name         string
		symbolRate   float64
		interpFactor int
		alpha        float64
		order        int
		costasBW     float64
	}{
		{"symbolRate<=0", 0, 4, 0.6, 64, 100},
		{"interpFactor<1", 72000, 0, 0.6, 64, 100},
		{"alpha>=1", 72000, 4, 1.0, 64, 100},
		{"alpha<=0", 72000, 4, 0, 64, 100},
		{"order<4", 72000, 4, 0.6, 3, 100},
		{"costasBW<=0", 72000, 4, 0.6, 64, 0},
		{"bwRatioTooHigh", 72000, 4, 0.6, 64, 40000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := New(140000, c.symbolRate, c.interpFactor, c.alpha, c.order, c.costasBW, dsp.QPSK, DefaultAGCTarget, DefaultAGCWindow)
			if !errors.Is(err, demoderr.ErrConfigInvalid) {
				t.Errorf("New() error = %v, want wrapped %v", err, demoderr.ErrConfigInvalid)
			}
		})
	}
}
