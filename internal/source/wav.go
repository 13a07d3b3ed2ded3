package source

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/dernasherbrezon/lrptdemod/internal/demoderr"
)

// WAVSource reads complex baseband samples from a RIFF/WAVE PCM file.
// Stereo is interpreted as interleaved (I, Q); mono is treated as
// real-valued (Q = 0). 8-bit PCM is unsigned and rebiased by -128;
// 16-bit PCM is little-endian signed (spec.md §6).
type WAVSource struct {
	f          *os.File
	sampleRate float64
	channels   int
	bitsPerSmp int
	dataStart  int64
	dataSize   int64
	done       int64
}

// OpenWAV opens path and parses its RIFF/WAVE header.
func OpenWAV(path string) (*WAVSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", demoderr.ErrInputOpen, err)
	}

	w := &WAVSource{f: f}
	if err := w.parseHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func (w *WAVSource) parseHeader() error {
	var riff [12]byte
	if _, err := io.ReadFull(w.f, riff[:]); err != nil {
		return fmt.Errorf("%w: short RIFF header: %v", demoderr.ErrInputFormat, err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return fmt.Errorf("%w: not a RIFF/WAVE file", demoderr.ErrInputFormat)
	}

	var fmtFound, dataFound bool
	for {
		var hdr [8]byte
		if _, err := io.ReadFull(w.f, hdr[:]); err != nil {
			break
		}
		chunkID := string(hdr[0:4])
		chunkSize := int64(binary.LittleEndian.Uint32(hdr[4:8]))

		switch chunkID {
		case "fmt ":
			body := make([]byte, chunkSize)
			if _, err := io.ReadFull(w.f, body); err != nil {
				return fmt.Errorf("%w: short fmt chunk: %v", demoderr.ErrInputFormat, err)
			}
			if len(body) < 16 {
				return fmt.Errorf("%w: fmt chunk too short", demoderr.ErrInputFormat)
			}
			audioFormat := binary.LittleEndian.Uint16(body[0:2])
			if audioFormat != 1 {
				return fmt.Errorf("%w: only PCM WAV is supported (format=%d)", demoderr.ErrInputFormat, audioFormat)
			}
			w.channels = int(binary.LittleEndian.Uint16(body[2:4]))
			w.sampleRate = float64(binary.LittleEndian.Uint32(body[4:8]))
			w.bitsPerSmp = int(binary.LittleEndian.Uint16(body[14:16]))
			fmtFound = true

		case "data":
			w.dataStart, _ = w.f.Seek(0, io.SeekCurrent)
			w.dataSize = chunkSize
			dataFound = true
			// Stop scanning; samples begin here.
			goto done

		default:
			// Skip unknown chunk, including padding byte for odd sizes.
			skip := chunkSize
			if skip%2 != 0 {
				skip++
			}
			if _, err := w.f.Seek(skip, io.SeekCurrent); err != nil {
				return fmt.Errorf("%w: seeking past chunk %s: %v", demoderr.ErrInputFormat, chunkID, err)
			}
		}
	}

done:
	if !fmtFound || !dataFound {
		return fmt.Errorf("%w: missing fmt or data chunk", demoderr.ErrInputFormat)
	}
	if w.channels != 1 && w.channels != 2 {
		return fmt.Errorf("%w: unsupported channel count %d", demoderr.ErrInputFormat, w.channels)
	}
	if w.bitsPerSmp != 8 && w.bitsPerSmp != 16 {
		return fmt.Errorf("%w: unsupported bits-per-sample %d", demoderr.ErrInputFormat, w.bitsPerSmp)
	}
	return nil
}

// Read returns up to n complex samples, or fewer at EOF.
func (w *WAVSource) Read(n int) []complex64 {
	bytesPerFrame := w.channels * (w.bitsPerSmp / 8)
	buf := make([]byte, n*bytesPerFrame)

	read, _ := io.ReadFull(w.f, buf)
	frames := read / bytesPerFrame
	buf = buf[:frames*bytesPerFrame]
	w.done += int64(read)

	out := make([]complex64, frames)
	for i := 0; i < frames; i++ {
		off := i * bytesPerFrame
		if w.bitsPerSmp == 8 {
			re := float32(int(buf[off]) - 128)
			var im float32
			if w.channels == 2 {
				im = float32(int(buf[off+1]) - 128)
			}
			out[i] = complex(re, im)
		} else {
			re := float32(int16(binary.LittleEndian.Uint16(buf[off:])))
			var im float32
			if w.channels == 2 {
				im = float32(int16(binary.LittleEndian.Uint16(buf[off+2:])))
			}
			out[i] = complex(re, im)
		}
	}
	return out
}

// SampleRate returns the rate read from the fmt chunk.
func (w *WAVSource) SampleRate() float64 { return w.sampleRate }

// Size returns the total byte count of the data chunk.
func (w *WAVSource) Size() int64 { return w.dataSize }

// Done returns the number of data bytes consumed so far.
func (w *WAVSource) Done() int64 { return w.done }

// Close closes the underlying file.
func (w *WAVSource) Close() error { return w.f.Close() }
