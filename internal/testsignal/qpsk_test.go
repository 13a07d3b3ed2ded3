package testsignal

import (
	"math"
	"testing"
)

func TestModulate_AllFourPoints(t *testing.T) {
	bits := []byte{0, 0, 0, 1, 1, 1, 1, 0}
	symbols := Modulate(bits)
	if len(symbols) != 4 {
		t.Fatalf("len(symbols) = %d, want 4", len(symbols))
	}
	for i, s := range symbols {
		mag := math.Hypot(real(s), imag(s))
		if math.Abs(mag-1) > 1e-9 {
			t.Errorf("symbol %d magnitude = %v, want 1 (unit average power)", i, mag)
		}
	}
}

func TestModulateOQPSK_DelaysQBranchByOneSample(t *testing.T) {
	bits := []byte{0, 0, 1, 1}
	qpsk := Modulate(bits)
	oqpsk := ModulateOQPSK(bits)

	if len(oqpsk) != len(qpsk)+1 {
		t.Fatalf("len(oqpsk) = %d, want %d", len(oqpsk), len(qpsk)+1)
	}
	if real(oqpsk[0]) != float32(real(qpsk[0])) {
		t.Errorf("oqpsk[0] I = %v, want %v", real(oqpsk[0]), real(qpsk[0]))
	}
	if imag(oqpsk[0]) != 0 {
		t.Errorf("oqpsk[0] Q = %v, want 0 (no prior Q sample yet)", imag(oqpsk[0]))
	}
}

func TestPRBSBits_Deterministic(t *testing.T) {
	a := PRBSBits(100, 42)
	b := PRBSBits(100, 42)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("PRBSBits not deterministic at index %d", i)
		}
	}
}

func TestToComplex64(t *testing.T) {
	in := []complex128{1 + 2i, -1 - 2i}
	out := ToComplex64(in)
	if out[0] != complex64(1+2i) || out[1] != complex64(-1-2i) {
		t.Errorf("ToComplex64 mismatch: %v", out)
	}
}
