package config

import (
	"fmt"
	"strconv"
)

// Humanize formats a byte count with a k/M/G/... suffix for the
// status printer, matching the original demodulator's humanize().
func Humanize(count int64) string {
	const suffixes = "bkMGTPE"
	if count < 1000 {
		return fmt.Sprintf("%d %c", count, suffixes[0])
	}

	fcount := float64(count)
	exp := 0
	for fcount > 1000 && exp < len(suffixes)-1 {
		fcount /= 1000
		exp++
	}

	switch {
	case fcount > 99.9:
		return fmt.Sprintf("%3.f %c", fcount, suffixes[exp])
	case fcount > 9.99:
		return fmt.Sprintf("%3.1f %c", fcount, suffixes[exp])
	default:
		return fmt.Sprintf("%3.2f %c", fcount, suffixes[exp])
	}
}

// Dehumanize parses a numeric string with an optional k/M suffix, as
// accepted by the -r and -b flags (spec.md §6, §8):
// Dehumanize("1.5M") == 1500000, Dehumanize("72k") == 72000,
// Dehumanize("72") == 72.
func Dehumanize(s string) (float64, error) {
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}

	suffix := s[len(s)-1]
	numPart := s
	multiplier := 1.0

	switch suffix {
	case 'k', 'K':
		multiplier = 1000
		numPart = s[:len(s)-1]
	case 'M':
		multiplier = 1000000
		numPart = s[:len(s)-1]
	}

	val, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return 0, fmt.Errorf("parse numeric value %q: %w", s, err)
	}

	return val * multiplier, nil
}
