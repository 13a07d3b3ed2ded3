package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	// MonitorSampleRate is the playback rate for the envelope monitor.
	// It is independent of the demodulator's source sample rate: the
	// monitor is a listen-for-signal-presence aid, not a faithful
	// reproduction, so samples are played as received, without
	// resampling.
	MonitorSampleRate = 44100
	FramesPerBuf      = 576
	NumChannels       = 1
)

// Monitor wraps a PortAudio output-only stream that plays back the
// AGC-normalized baseband envelope so an operator can listen for
// signal presence/quality during a run. It has no input side: the
// demodulator's sample source is always a file (internal/source),
// never live audio capture.
type Monitor struct {
	stream    *portaudio.Stream
	outputBuf []float32
	mu        sync.Mutex
}

// NewMonitor creates a new output-only Monitor.
func NewMonitor() *Monitor {
	return &Monitor{
		outputBuf: make([]float32, FramesPerBuf),
	}
}

// Open opens the default output stream.
func (m *Monitor) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stream, err := portaudio.OpenDefaultStream(
		0,           // input channels
		NumChannels, // output channels
		float64(MonitorSampleRate),
		FramesPerBuf,
		m.outputBuf,
	)
	if err != nil {
		return fmt.Errorf("open output stream: %w", err)
	}
	m.stream = stream
	return nil
}

// Start starts playback.
func (m *Monitor) Start() error {
	if m.stream == nil {
		return fmt.Errorf("output stream not opened")
	}
	return m.stream.Start()
}

// Stop stops playback. The stream may be reopened with Start.
func (m *Monitor) Stop() error {
	if m.stream == nil {
		return nil
	}
	return m.stream.Stop()
}

// write pushes one FramesPerBuf-sized buffer to the device.
func (m *Monitor) write(samples []float32) error {
	if m.stream == nil {
		return fmt.Errorf("output stream not opened")
	}
	copy(m.outputBuf, samples)
	return m.stream.Write()
}

// WriteChunk plays an arbitrarily-sized chunk of envelope samples,
// feeding the device in FramesPerBuf pieces and zero-padding the
// final, short piece.
func (m *Monitor) WriteChunk(samples []float32) error {
	for i := 0; i < len(samples); i += FramesPerBuf {
		end := i + FramesPerBuf
		if end > len(samples) {
			chunk := make([]float32, FramesPerBuf)
			copy(chunk, samples[i:])
			if err := m.write(chunk); err != nil {
				return err
			}
		} else {
			if err := m.write(samples[i:end]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close closes the output stream.
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.stream == nil {
		return nil
	}
	err := m.stream.Close()
	m.stream = nil
	if err != nil {
		return fmt.Errorf("close monitor stream: %w", err)
	}
	return nil
}
