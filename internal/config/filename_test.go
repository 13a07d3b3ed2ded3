package config

import (
	"testing"
	"time"
)

func TestGenFilename(t *testing.T) {
	ts := time.Date(2026, 7, 31, 14, 5, 0, 0, time.UTC)
	got := GenFilename(ts)
	want := "LRPT_2026_07_31-14_05.s"
	if got != want {
		t.Errorf("GenFilename() = %q, want %q", got, want)
	}
}
