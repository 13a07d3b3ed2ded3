// Package config derives demodulator run parameters from CLI/user
// input and validates them (spec.md §4.H).
package config

import (
	"fmt"
	"math"

	"github.com/dernasherbrezon/lrptdemod/internal/demoderr"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
)

// Default parameter values, matching spec.md §6's CLI defaults and the
// original demodulator's AGC constants.
const (
	DefaultSymbolRate   = 72000
	DefaultInterpFactor = 4
	DefaultRRCAlpha     = 0.6
	DefaultRRCOrder     = 64
	DefaultCostasBW     = 100.0
	DefaultAGCTarget    = 180.0
	DefaultAGCWindow    = 1024 * 8
)

// Config holds fully-derived demodulator parameters.
type Config struct {
	SymbolRate   float64
	InterpFactor int
	RRCAlpha     float64
	RRCOrder     int
	CostasBW     float64
	Mode         dsp.Mode
	AGCTarget    float64
	AGCWindow    float64

	// Derived.
	SourceRate   float64
	SamplePeriod float64
	ResyncPeriod float64
	CostasOmega  float64
}

// New derives a Config from user-facing parameters and the source's
// sample rate, validating every field per spec.md §4.H.
func New(sourceRate, symbolRate float64, interpFactor int, rrcAlpha float64, rrcOrder int, costasBW float64, mode dsp.Mode, agcTarget, agcWindow float64) (*Config, error) {
	if symbolRate <= 0 {
		return nil, fmt.Errorf("%w: symbol rate must be > 0, got %v", demoderr.ErrConfigInvalid, symbolRate)
	}
	if interpFactor < 1 {
		return nil, fmt.Errorf("%w: interpolation factor must be >= 1, got %d", demoderr.ErrConfigInvalid, interpFactor)
	}
	if rrcAlpha <= 0 || rrcAlpha >= 1 {
		return nil, fmt.Errorf("%w: RRC alpha must be in (0, 1), got %v", demoderr.ErrConfigInvalid, rrcAlpha)
	}
	if rrcOrder < 4 {
		return nil, fmt.Errorf("%w: RRC order must be >= 4, got %d", demoderr.ErrConfigInvalid, rrcOrder)
	}
	if costasBW <= 0 {
		return nil, fmt.Errorf("%w: Costas bandwidth must be > 0, got %v", demoderr.ErrConfigInvalid, costasBW)
	}
	if costasBW/symbolRate >= 0.5 {
		return nil, fmt.Errorf("%w: Costas bandwidth/symbol rate must be < 0.5, got %v", demoderr.ErrConfigInvalid, costasBW/symbolRate)
	}
	if sourceRate <= 0 {
		return nil, fmt.Errorf("%w: source sample rate must be > 0, got %v", demoderr.ErrConfigInvalid, sourceRate)
	}

	effectiveBW := costasBW
	if mode == dsp.OQPSK {
		// OQPSK uses one-fifth the bandwidth of QPSK at the same nominal rate (spec.md §4.E).
		effectiveBW = costasBW / 5
	}

	interpRate := sourceRate * float64(interpFactor)
	resyncPeriod := interpRate / symbolRate
	omega := 2 * math.Pi * effectiveBW / symbolRate

	return &Config{
		SymbolRate:   symbolRate,
		InterpFactor: interpFactor,
		RRCAlpha:     rrcAlpha,
		RRCOrder:     rrcOrder,
		CostasBW:     costasBW,
		Mode:         mode,
		AGCTarget:    agcTarget,
		AGCWindow:    agcWindow,
		SourceRate:   sourceRate,
		SamplePeriod: 1.0 / interpRate,
		ResyncPeriod: resyncPeriod,
		CostasOmega:  omega,
	}, nil
}
