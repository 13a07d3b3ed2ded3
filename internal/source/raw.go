package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dernasherbrezon/lrptdemod/internal/demoderr"
)

// RawSource reads complex baseband samples from a headerless file of
// interleaved signed PCM I,Q samples, with caller-supplied sample rate
// and bit depth (spec.md §4.A, §6).
type RawSource struct {
	f          *os.File
	sampleRate float64
	bitsPerSmp int
	size       int64
	done       int64
}

// OpenRaw opens path as a raw interleaved I,Q PCM stream.
func OpenRaw(path string, sampleRate float64, bitsPerSmp int) (*RawSource, error) {
	if bitsPerSmp != 8 && bitsPerSmp != 16 {
		return nil, fmt.Errorf("%w: unsupported bits-per-sample %d", demoderr.ErrInputFormat, bitsPerSmp)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", demoderr.ErrInputOpen, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", demoderr.ErrInputOpen, err)
	}

	return &RawSource{
		f:          f,
		sampleRate: sampleRate,
		bitsPerSmp: bitsPerSmp,
		size:       info.Size(),
	}, nil
}

// Read returns up to n complex samples, or fewer at EOF.
func (r *RawSource) Read(n int) []complex64 {
	bytesPerFrame := 2 * (r.bitsPerSmp / 8)
	buf := make([]byte, n*bytesPerFrame)

	read, _ := io.ReadFull(r.f, buf)
	frames := read / bytesPerFrame
	buf = buf[:frames*bytesPerFrame]
	r.done += int64(read)

	out := make([]complex64, frames)
	for i := 0; i < frames; i++ {
		off := i * bytesPerFrame
		if r.bitsPerSmp == 8 {
			re := float32(int8(buf[off]))
			im := float32(int8(buf[off+1]))
			out[i] = complex(re, im)
		} else {
			re := float32(int16(binary.LittleEndian.Uint16(buf[off:])))
			im := float32(int16(binary.LittleEndian.Uint16(buf[off+2:])))
			out[i] = complex(re, im)
		}
	}
	return out
}

// SampleRate returns the caller-supplied sample rate.
func (r *RawSource) SampleRate() float64 { return r.sampleRate }

// Size returns the file size in bytes.
func (r *RawSource) Size() int64 { return r.size }

// Done returns the number of bytes consumed so far.
func (r *RawSource) Done() int64 { return r.done }

// Close closes the underlying file.
func (r *RawSource) Close() error { return r.f.Close() }
