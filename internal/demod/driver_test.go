package demod

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dernasherbrezon/lrptdemod/internal/config"
	"github.com/dernasherbrezon/lrptdemod/internal/dsp"
	"github.com/dernasherbrezon/lrptdemod/internal/testsignal"
	"github.com/dernasherbrezon/lrptdemod/internal/writer"
)

// memSource is an in-memory source.Source used to drive the pipeline
// without file I/O.
type memSource struct {
	samples []complex64
	pos     int
	rate    float64
}

func (m *memSource) Read(n int) []complex64 {
	if m.pos >= len(m.samples) {
		return nil
	}
	end := m.pos + n
	if end > len(m.samples) {
		end = len(m.samples)
	}
	out := m.samples[m.pos:end]
	m.pos = end
	return out
}

func (m *memSource) SampleRate() float64 { return m.rate }
func (m *memSource) Size() int64         { return int64(len(m.samples)) }
func (m *memSource) Done() int64         { return int64(m.pos) }
func (m *memSource) Close() error        { return nil }

func upsampleAndRotate(symbols []complex64, factor int, rotHzPerSymbol float64) []complex64 {
	out := make([]complex64, 0, len(symbols)*factor)
	phase := 0.3
	for _, s := range symbols {
		for k := 0; k < factor; k++ {
			sinP, cosP := math.Sincos(phase)
			re := float64(real(s))*cosP - float64(imag(s))*sinP
			im := float64(real(s))*sinP + float64(imag(s))*cosP
			out = append(out, complex(float32(re), float32(im)))
			phase += rotHzPerSymbol / float64(factor)
		}
	}
	return out
}

func TestDriver_EndToEndQPSKLocks(t *testing.T) {
	const symbolRate = 72000.0
	const factor = 4
	const offsetHz = 200.0
	rotPerSymbol := 2 * math.Pi * offsetHz / symbolRate

	bits := testsignal.PRBSBits(2*12000, 0xACE1)
	symbols := testsignal.ToComplex64(testsignal.Modulate(bits))
	rotated := upsampleAndRotate(symbols, factor, rotPerSymbol)

	src := &memSource{samples: rotated, rate: symbolRate}
	cfg, err := config.New(src.SampleRate(), symbolRate, 1, config.DefaultRRCAlpha, config.DefaultRRCOrder, config.DefaultCostasBW, dsp.QPSK, config.DefaultAGCTarget, config.DefaultAGCWindow)
	if err != nil {
		t.Fatalf("config.New() error: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.s")
	out, err := writer.New(outPath, writer.DefaultChunkSize)
	if err != nil {
		t.Fatalf("writer.New() error: %v", err)
	}

	d := New(src, cfg, out, 0)
	d.Start()
	if err := d.Join(); err != nil {
		t.Fatalf("Join() error: %v", err)
	}

	if !d.Locked() {
		t.Error("driver never reported Costas lock by end of run")
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("no symbols written")
	}
}

func TestDriver_ZeroInputProducesEmptyOutput(t *testing.T) {
	src := &memSource{samples: make([]complex64, 2000), rate: 72000}
	cfg, err := config.New(src.SampleRate(), 72000, 4, config.DefaultRRCAlpha, config.DefaultRRCOrder, config.DefaultCostasBW, dsp.QPSK, config.DefaultAGCTarget, config.DefaultAGCWindow)
	if err != nil {
		t.Fatalf("config.New() error: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.s")
	out, err := writer.New(outPath, writer.DefaultChunkSize)
	if err != nil {
		t.Fatalf("writer.New() error: %v", err)
	}

	d := New(src, cfg, out, 0)
	d.Start()
	if err := d.Join(); err != nil {
		t.Fatalf("Join() error: %v", err)
	}
	if d.Locked() {
		t.Error("zero input should never report lock")
	}
}

func TestDriver_StopTerminatesPromptly(t *testing.T) {
	samples := make([]complex64, 10_000_000)
	for i := range samples {
		samples[i] = complex(1, 1)
	}
	src := &memSource{samples: samples, rate: 72000}
	cfg, err := config.New(src.SampleRate(), 72000, 4, config.DefaultRRCAlpha, config.DefaultRRCOrder, config.DefaultCostasBW, dsp.QPSK, config.DefaultAGCTarget, config.DefaultAGCWindow)
	if err != nil {
		t.Fatalf("config.New() error: %v", err)
	}

	outPath := filepath.Join(t.TempDir(), "out.s")
	out, err := writer.New(outPath, writer.DefaultChunkSize)
	if err != nil {
		t.Fatalf("writer.New() error: %v", err)
	}

	d := New(src, cfg, out, 0)
	d.Start()
	d.Stop()

	done := make(chan error, 1)
	go func() { done <- d.Join() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Join() error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Join() did not return within bounded time after Stop()")
	}
	if d.Status() {
		t.Error("Status() should be false after Join() returns")
	}
}
