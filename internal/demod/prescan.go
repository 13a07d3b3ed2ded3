package demod

import (
	"github.com/dernasherbrezon/lrptdemod/internal/config"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
	"github.com/dernasherbrezon/lrptdemod/internal/source"
)

// prescanSymbols is how many timing-recovered symbols the coarse
// frequency pre-scan collects before estimating.
const prescanSymbols = 8192

// PrescanFreq runs a throwaway interpolator/AGC/timing chain over the
// start of src to estimate the residual carrier offset, for seeding
// the real Costas loop's initial frequency (SPEC_FULL.md §4X's
// supplemented coarse-frequency-scan feature). It consumes samples
// from src; callers that want a fresh run afterward must reopen the
// source.
func PrescanFreq(src source.Source, cfg *config.Config) float64 {
	interp := dsp.NewInterpolator(src, cfg.InterpFactor, cfg.RRCOrder, cfg.RRCAlpha, cfg.SymbolRate)
	agc := dsp.NewAGC(cfg.AGCTarget, cfg.AGCWindow)
	timing := dsp.NewTiming(cfg.ResyncPeriod, cfg.Mode == dsp.OQPSK)

	symbols := make([]complex64, 0, prescanSymbols)
	for len(symbols) < prescanSymbols {
		raw := interp.Read(ChunkSize)
		if len(raw) == 0 {
			break
		}
		for _, s := range raw {
			agcOut := agc.Apply(s)
			if sym, ok := timing.Step(agcOut); ok {
				symbols = append(symbols, sym)
				if len(symbols) >= prescanSymbols {
					break
				}
			}
		}
	}

	return dsp.CoarseFreqEstimate(symbols)
}
