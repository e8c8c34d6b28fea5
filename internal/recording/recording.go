// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recording decodes presenter recordings: a fixed-length header
// followed by a JSON array of slide-change events.
package recording

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/pdiddy/slidevtt/pkg/types"
)

// Field names every event must carry.
const (
	FieldTime    = "time"
	FieldSlide   = "slide"
	FieldTitle   = "title"
	FieldContent = "content"
)

// MaxTime is the largest event offset, in seconds, that fits in a
// time.Duration.
const MaxTime = float64(math.MaxInt64 / int64(time.Second))

// Options controls how a recording is read.
type Options struct {
	// HeaderBytes is skipped before decoding. The bytes are not inspected.
	HeaderBytes int

	// Strict rejects events whose time is earlier than the previous event.
	Strict bool
}

// DefaultOptions returns the options matching the recorder's file layout.
func DefaultOptions() Options {
	return Options{HeaderBytes: types.DefaultHeaderBytes}
}

// Read consumes the header and the event array from r and returns the
// events in input order. Every event is validated before Read returns, so a
// nil error means all events are usable.
func Read(r io.Reader, opts Options) ([]types.SlideEvent, error) {
	if opts.HeaderBytes < 0 {
		return nil, fmt.Errorf("header length must not be negative, got %d", opts.HeaderBytes)
	}
	header := int64(opts.HeaderBytes)

	n, err := io.CopyN(io.Discard, r, header)
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = fmt.Errorf("%w: read %d of %d bytes", ErrShortHeader, n, header)
		}
		return nil, &ParseError{Offset: n, Err: err}
	}

	dec := json.NewDecoder(r)
	var doc json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return nil, &ParseError{Offset: header + syntaxOffset(err, dec), Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &ParseError{
			Offset: header + dec.InputOffset(),
			Err:    errors.New("unexpected data after event array"),
		}
	}
	if kind(doc) != '[' {
		return nil, &ParseError{Offset: header, Err: errors.New("top-level value is not an array")}
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(doc, &raws); err != nil {
		return nil, &ParseError{Offset: header, Err: err}
	}

	events := make([]types.SlideEvent, 0, len(raws))
	for i, raw := range raws {
		ev, err := decodeEvent(i, raw)
		if err != nil {
			return nil, err
		}
		if opts.Strict && i > 0 && ev.Time < events[i-1].Time {
			return nil, &FieldError{
				Index:  i,
				Field:  FieldTime,
				Reason: fmt.Sprintf("goes backwards (%g after %g)", ev.Time, events[i-1].Time),
			}
		}
		events = append(events, ev)
	}
	return events, nil
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string, opts Options) ([]types.SlideEvent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording %s: %w", path, err)
	}
	defer f.Close()

	events, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

func decodeEvent(i int, raw json.RawMessage) (types.SlideEvent, error) {
	var ev types.SlideEvent
	if kind(raw) != '{' {
		return ev, &FieldError{Index: i, Reason: "event is not an object"}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ev, &FieldError{Index: i, Reason: err.Error()}
	}

	timeRaw, err := requireField(i, fields, FieldTime)
	if err != nil {
		return ev, err
	}
	if !isNumber(timeRaw) {
		return ev, &FieldError{Index: i, Field: FieldTime, Reason: "not a number"}
	}
	if err := json.Unmarshal(timeRaw, &ev.Time); err != nil {
		return ev, &FieldError{Index: i, Field: FieldTime, Reason: err.Error()}
	}
	if ev.Time < 0 {
		return ev, &FieldError{Index: i, Field: FieldTime, Reason: "negative offset"}
	}
	if ev.Time > MaxTime {
		return ev, &FieldError{Index: i, Field: FieldTime, Reason: "out of range"}
	}

	slideRaw, err := requireField(i, fields, FieldSlide)
	if err != nil {
		return ev, err
	}
	if k := kind(slideRaw); k == '{' || k == '[' {
		return ev, &FieldError{Index: i, Field: FieldSlide, Reason: "not a scalar"}
	}
	ev.Slide = json.RawMessage(bytes.TrimSpace(slideRaw))

	titleRaw, err := requireField(i, fields, FieldTitle)
	if err != nil {
		return ev, err
	}
	if kind(titleRaw) != '"' {
		return ev, &FieldError{Index: i, Field: FieldTitle, Reason: "not a string"}
	}
	if err := json.Unmarshal(titleRaw, &ev.Title); err != nil {
		return ev, &FieldError{Index: i, Field: FieldTitle, Reason: err.Error()}
	}

	contentRaw, err := requireField(i, fields, FieldContent)
	if err != nil {
		return ev, err
	}
	ev.Content = json.RawMessage(bytes.TrimSpace(contentRaw))

	return ev, nil
}

func requireField(i int, fields map[string]json.RawMessage, name string) (json.RawMessage, error) {
	v, ok := fields[name]
	if !ok {
		return nil, &FieldError{Index: i, Field: name, Reason: "missing"}
	}
	return v, nil
}

// kind returns the first significant byte of a JSON value, or 0 if empty.
func kind(raw json.RawMessage) byte {
	t := bytes.TrimSpace(raw)
	if len(t) == 0 {
		return 0
	}
	return t[0]
}

func isNumber(raw json.RawMessage) bool {
	k := kind(raw)
	return k == '-' || (k >= '0' && k <= '9')
}

// syntaxOffset extracts the failing position from a decoder error, falling
// back to how far the decoder got.
func syntaxOffset(err error, dec *json.Decoder) int64 {
	var se *json.SyntaxError
	if errors.As(err, &se) {
		return se.Offset
	}
	return dec.InputOffset()
}
