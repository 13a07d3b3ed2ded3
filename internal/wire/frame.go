// Package wire implements the framing format for the optional live
// status/symbol stream (spec.md §1's "optional TCP streaming of the
// output", supplemented from original_source's -n/-p networking
// flags). Adapted from the teacher's protocol.Frame, trimmed to the
// two frame kinds this demodulator actually pushes and re-keyed with
// CRC-32 instead of Reed-Solomon (there is nothing here to correct,
// only to detect truncation on disconnect).
package wire

import (
	"encoding/binary"
	"fmt"
)

// Frame kinds.
const (
	KindSymbols byte = 0x01
	KindStatus  byte = 0x02
)

// HeaderSize and CRCSize bound the fixed overhead of an encoded frame.
const (
	HeaderSize = 5 // Kind(1B) + PayloadLen(4B)
	CRCSize    = 4
)

// Frame is one unit of the live stream: either a chunk of soft-symbol
// bytes or a JSON-encoded status snapshot.
type Frame struct {
	Kind    byte
	Payload []byte
}

// Encode serializes the frame with a CRC-32 trailer over header+payload.
func (f *Frame) Encode() []byte {
	total := HeaderSize + len(f.Payload) + CRCSize
	buf := make([]byte, total)

	buf[0] = f.Kind
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(f.Payload)))
	copy(buf[HeaderSize:], f.Payload)

	sum := checksum(buf[:HeaderSize+len(f.Payload)])
	binary.BigEndian.PutUint32(buf[total-CRCSize:], sum)

	return buf
}

// Decode parses a frame previously produced by Encode, verifying its
// CRC-32.
func Decode(data []byte) (*Frame, error) {
	if len(data) < HeaderSize+CRCSize {
		return nil, fmt.Errorf("frame too short: %d bytes", len(data))
	}

	kind := data[0]
	payloadLen := int(binary.BigEndian.Uint32(data[1:5]))
	expected := HeaderSize + payloadLen + CRCSize
	if len(data) < expected {
		return nil, fmt.Errorf("frame truncated: have %d, need %d", len(data), expected)
	}

	want := binary.BigEndian.Uint32(data[expected-CRCSize : expected])
	got := checksum(data[:HeaderSize+payloadLen])
	if want != got {
		return nil, fmt.Errorf("CRC mismatch: want 0x%08x, got 0x%08x", want, got)
	}

	payload := make([]byte, payloadLen)
	copy(payload, data[HeaderSize:HeaderSize+payloadLen])

	return &Frame{Kind: kind, Payload: payload}, nil
}
