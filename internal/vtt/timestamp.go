// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vtt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Tick is the resolution of cue timestamps: four fractional digits.
const Tick = 100 * time.Microsecond

// Seconds converts an event offset in seconds to a Duration rounded to the
// nearest Tick.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s*float64(time.Second/Tick))) * Tick
}

// FormatTimestamp renders d as 00:MM:SS.ffff. The hour field is always 00
// and minutes keep counting past 59, so a two-hour offset is 00:120:00.0000.
// Negative durations render as zero.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ticks := int64(d.Round(Tick) / Tick)
	perSecond := int64(time.Second / Tick)
	secs := ticks / perSecond
	frac := ticks % perSecond
	return fmt.Sprintf("00:%02d:%02d.%04d", secs/60, secs%60, frac)
}

// ParseTimestamp reads a cue timestamp in either HH:MM:SS.fff or MM:SS.fff
// form. The fraction may have one to nine digits; minutes are not bounded
// so that FormatTimestamp output always parses back.
func ParseTimestamp(s string) (time.Duration, error) {
	whole, fraction, ok := strings.Cut(s, ".")
	if !ok || fraction == "" || len(fraction) > 9 {
		return 0, fmt.Errorf("timestamp %q: want a fractional part of 1-9 digits", s)
	}

	parts := strings.Split(whole, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("timestamp %q: want [HH:]MM:SS.fff", s)
	}

	var hours, minutes, secs int64
	var err error
	if len(parts) == 3 {
		if hours, err = parseField(parts[0], 2); err != nil {
			return 0, fmt.Errorf("timestamp %q: hours: %w", s, err)
		}
		parts = parts[1:]
	}
	if minutes, err = parseField(parts[0], 2); err != nil {
		return 0, fmt.Errorf("timestamp %q: minutes: %w", s, err)
	}
	if len(parts[1]) != 2 {
		return 0, fmt.Errorf("timestamp %q: seconds must have two digits", s)
	}
	if secs, err = parseField(parts[1], 2); err != nil {
		return 0, fmt.Errorf("timestamp %q: seconds: %w", s, err)
	}
	if secs > 59 {
		return 0, fmt.Errorf("timestamp %q: seconds out of range", s)
	}

	nanos, err := parseField(fraction+strings.Repeat("0", 9-len(fraction)), 9)
	if err != nil {
		return 0, fmt.Errorf("timestamp %q: fraction: %w", s, err)
	}

	d := time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(secs)*time.Second +
		time.Duration(nanos)
	return d, nil
}

// parseField parses a run of ASCII digits at least minDigits long.
func parseField(s string, minDigits int) (int64, error) {
	if len(s) < minDigits {
		return 0, fmt.Errorf("%q: want at least %d digits", s, minDigits)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%q: not a number", s)
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
