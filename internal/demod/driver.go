// Package demod owns the demodulator worker thread and the stage
// chain, publishing read-only observability state to the controller
// (spec.md §4.F, §5).
package demod

import (
	"log"
	"math"
	"sync"
	"sync/atomic"

	"github.com/dernasherbrezon/lrptdemod/internal/config"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
	"github.com/dernasherbrezon/lrptdemod/internal/source"
	"github.com/dernasherbrezon/lrptdemod/internal/writer"
)

// ChunkSize is how many input samples the worker pulls per iteration
// before publishing updated observability state, matching the
// original demodulator's CHUNKSIZE.
const ChunkSize = 32768

// SymbolSink receives each chunk's encoded soft symbols (I,Q byte
// pairs) as they are written, for optional live streaming.
type SymbolSink func(chunk []byte)

// MonitorSink receives each chunk's AGC-normalized envelope samples
// (real part), for optional live audio monitoring.
type MonitorSink func(chunk []float32)

// Driver owns the worker thread and the full stage chain: A (source)
// -> B (interpolator) -> C (AGC) -> D (timing) -> E (Costas) -> G
// (writer). All stage state is created here, mutated only on the
// worker goroutine, and released by Join (spec.md §5).
type Driver struct {
	src    source.Source
	interp *dsp.Interpolator
	agc    *dsp.AGC
	timing *dsp.Timing
	costas *dsp.Costas
	out    *writer.Writer
	cfg    *config.Config

	symbolSink  SymbolSink
	monitorSink MonitorSink

	done    atomic.Int64
	freq    atomic.Uint64
	gain    atomic.Uint64
	locked  atomic.Bool
	running atomic.Bool
	stop    atomic.Bool

	wg     sync.WaitGroup
	mu     sync.Mutex
	runErr error
}

// New constructs the stage chain but does not start the worker.
func New(src source.Source, cfg *config.Config, out *writer.Writer, initFreq float64) *Driver {
	d := &Driver{
		src:    src,
		interp: dsp.NewInterpolator(src, cfg.InterpFactor, cfg.RRCOrder, cfg.RRCAlpha, cfg.SymbolRate),
		agc:    dsp.NewAGC(cfg.AGCTarget, cfg.AGCWindow),
		timing: dsp.NewTiming(cfg.ResyncPeriod, cfg.Mode == dsp.OQPSK),
		costas: dsp.NewCostas(cfg.CostasOmega, initFreq),
		out:    out,
		cfg:    cfg,
	}
	return d
}

// SetSymbolSink installs an optional live-streaming hook.
func (d *Driver) SetSymbolSink(s SymbolSink) { d.symbolSink = s }

// SetMonitorSink installs an optional live-audio-monitor hook.
func (d *Driver) SetMonitorSink(s MonitorSink) { d.monitorSink = s }

// Start spawns the worker goroutine.
func (d *Driver) Start() {
	d.running.Store(true)
	d.wg.Add(1)
	go d.run()
}

// Stop requests orderly shutdown. The worker checks this flag between
// chunks; it does not cancel an in-flight chunk.
func (d *Driver) Stop() { d.stop.Store(true) }

// Status reports false once the worker has terminated.
func (d *Driver) Status() bool { return d.running.Load() }

// Done returns the number of input units (bytes) consumed so far.
func (d *Driver) Done() int64 { return d.done.Load() }

// Size returns the total number of input units in the source.
func (d *Driver) Size() int64 { return d.src.Size() }

// Freq returns the current Costas NCO frequency in radians/sample.
func (d *Driver) Freq() float64 { return math.Float64frombits(d.freq.Load()) }

// Gain returns the current AGC linear gain.
func (d *Driver) Gain() float64 { return math.Float64frombits(d.gain.Load()) }

// Locked reports whether the Costas loop currently considers itself
// locked.
func (d *Driver) Locked() bool { return d.locked.Load() }

// Join blocks until the worker exits and releases all stage
// resources, on every exit path (EOF, stop, or error).
func (d *Driver) Join() error {
	d.wg.Wait()
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.runErr
}

func (d *Driver) run() {
	defer d.wg.Done()
	defer d.running.Store(false)
	defer d.finish()

	// The Costas loop constants assume unit-amplitude symbols: scale the
	// AGC-normalized symbol down for the loop and back up for quantization.
	scale := float32(d.cfg.AGCTarget)
	if scale == 0 {
		scale = 1
	}

	for !d.stop.Load() {
		raw := d.interp.Read(ChunkSize)
		if len(raw) == 0 {
			break
		}

		symBytes := make([]byte, 0, len(raw)*2)
		monitor := make([]float32, 0, len(raw))

		for _, s := range raw {
			agcOut := d.agc.Apply(s)
			monitor = append(monitor, real(agcOut))

			sym, ok := d.timing.Step(agcOut)
			if !ok {
				continue
			}

			derotated := d.costas.Resync(sym / complex(scale, 0))
			i, q := dsp.ClampSymbol(derotated * complex(scale, 0))

			if err := d.out.WriteSymbol(i, q); err != nil {
				d.setErr(err)
				return
			}
			symBytes = append(symBytes, byte(i), byte(q))
		}

		d.publish()

		if d.symbolSink != nil && len(symBytes) > 0 {
			d.symbolSink(symBytes)
		}
		if d.monitorSink != nil && len(monitor) > 0 {
			d.monitorSink(monitor)
		}
	}
}

// publish updates the atomically-readable observability scalars. Per
// spec.md §5, this happens at most once per output chunk, and readers
// may observe stale but internally consistent values. PLL lock/unlock
// transitions are logged here.
func (d *Driver) publish() {
	locked := d.costas.Locked()
	if locked && !d.locked.Load() {
		log.Printf("PLL locked")
	} else if !locked && d.locked.Load() {
		log.Printf("PLL lock lost")
	}
	d.done.Store(d.src.Done())
	d.freq.Store(math.Float64bits(d.costas.Freq()))
	d.gain.Store(math.Float64bits(d.agc.Gain()))
	d.locked.Store(locked)
}

func (d *Driver) setErr(err error) {
	d.mu.Lock()
	d.runErr = err
	d.mu.Unlock()
	log.Printf("demod worker error: %v", err)
}

func (d *Driver) finish() {
	d.publish()
	if err := d.out.Close(); err != nil {
		d.setErr(err)
	}
	if err := d.src.Close(); err != nil {
		log.Printf("close source: %v", err)
	}
}
