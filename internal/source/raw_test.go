package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpenRaw_SignedInterleaved8Bit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.raw")
	data := []byte{0x80, 0x7F, 0x00, 0xFF} // int8: -128, 127, 0, -1
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	src, err := OpenRaw(path, 140000, 8)
	if err != nil {
		t.Fatalf("OpenRaw() error: %v", err)
	}
	defer src.Close()

	samples := src.Read(10)
	if len(samples) != 2 {
		t.Fatalf("len(samples) = %d, want 2", len(samples))
	}
	if real(samples[0]) != -128 || imag(samples[0]) != 127 {
		t.Errorf("samples[0] = %v, want (-128,127)", samples[0])
	}
	if real(samples[1]) != 0 || imag(samples[1]) != -1 {
		t.Errorf("samples[1] = %v, want (0,-1)", samples[1])
	}
	if src.SampleRate() != 140000 {
		t.Errorf("SampleRate() = %v, want 140000", src.SampleRate())
	}
}

func TestOpenRaw_RejectsUnsupportedBitDepth(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.raw")
	os.WriteFile(path, []byte{0, 0}, 0o644)
	if _, err := OpenRaw(path, 140000, 12); err == nil {
		t.Error("OpenRaw() should reject bits-per-sample not in {8,16}")
	}
}

func TestOpenRaw_MissingFile(t *testing.T) {
	if _, err := OpenRaw(filepath.Join(t.TempDir(), "missing.raw"), 140000, 16); err == nil {
		t.Error("OpenRaw() should fail for a missing file")
	}
}
