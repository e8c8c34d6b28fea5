// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vtt

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{"zero", 0, "00:00:00.0000"},
		{"half second", 0.5, "00:00:00.5000"},
		{"minute and a quarter", 75.25, "00:01:15.2500"},
		{"ten thousandths", 1.0001, "00:00:01.0001"},
		{"rounds to tick", 2.00004, "00:00:02.0000"},
		{"rounds up across second", 59.99996, "00:01:00.0000"},
		{"minutes past an hour", 3725.5, "00:62:05.5000"},
		{"recorder milliseconds", 12.345, "00:00:12.3450"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatTimestamp(Seconds(tt.seconds))
			if got != tt.want {
				t.Errorf("FormatTimestamp(Seconds(%v)) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatTimestamp_Negative(t *testing.T) {
	if got := FormatTimestamp(-time.Second); got != "00:00:00.0000" {
		t.Errorf("got %q, want zero timestamp", got)
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:00:00.0000", 0},
		{"00:01:15.2500", 75*time.Second + 250*time.Millisecond},
		{"01:15.250", 75*time.Second + 250*time.Millisecond},
		{"01:00:00.000", time.Hour},
		{"00:62:05.5000", 62*time.Minute + 5*time.Second + 500*time.Millisecond},
		{"00:00:01.000000001", time.Second + time.Nanosecond},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimestamp(tt.in)
			if err != nil {
				t.Fatalf("ParseTimestamp(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	for _, in := range []string{
		"",
		"00:00:00",
		"00:00:00.",
		"0:00.000",
		"00:0.000",
		"00:00:60.000",
		"aa:00:00.000",
		"00:00:00.0x00",
		"00:00:00:00.000",
		"00:00:00.0000000000",
	} {
		if _, err := ParseTimestamp(in); err == nil {
			t.Errorf("ParseTimestamp(%q): expected error", in)
		}
	}
}

func TestParseTimestamp_InvertsFormat(t *testing.T) {
	for _, s := range []float64{0, 0.0001, 0.5, 9.9999, 75.25, 599.1234, 3725.5, 86400} {
		d := Seconds(s)
		got, err := ParseTimestamp(FormatTimestamp(d))
		if err != nil {
			t.Fatalf("%v: %v", s, err)
		}
		if got != d {
			t.Errorf("round trip of %v: got %v, want %v", s, got, d)
		}
	}
}
