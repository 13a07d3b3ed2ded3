package dsp

import "testing"

func TestParseMode(t *testing.T) {
	if ParseMode("oqpsk") != OQPSK {
		t.Errorf("ParseMode(oqpsk) != OQPSK")
	}
	if ParseMode("qpsk") != QPSK {
		t.Errorf("ParseMode(qpsk) != QPSK")
	}
	if ParseMode("garbage") != QPSK {
		t.Errorf("ParseMode(garbage) should default to QPSK")
	}
}

func TestMode_String(t *testing.T) {
	if QPSK.String() != "qpsk" {
		t.Errorf("QPSK.String() = %q, want qpsk", QPSK.String())
	}
	if OQPSK.String() != "oqpsk" {
		t.Errorf("OQPSK.String() = %q, want oqpsk", OQPSK.String())
	}
}
