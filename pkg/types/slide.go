// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"time"
)

// SlideEvent is one entry of a presenter recording: the moment a slide was
// shown, measured from the start of the recording.
type SlideEvent struct {
	// Time is the offset in seconds since the recording started.
	Time float64 `json:"time" yaml:"time"`

	// Slide identifies the slide. The recorder writes the slide selector
	// value, which may be a string or a number, so the raw JSON is kept.
	Slide json.RawMessage `json:"slide" yaml:"-"`

	// Title is the slide heading.
	Title string `json:"title" yaml:"title"`

	// Content is the slide body, usually an HTML string, but any JSON value
	// is carried through untouched.
	Content json.RawMessage `json:"content" yaml:"-"`
}

// Cue is a WebVTT cue covering the interval a single slide was on screen.
type Cue struct {
	Start time.Duration `json:"start" yaml:"start"`
	End   time.Duration `json:"end" yaml:"end"`

	// Slide, Title, and Data form the cue payload. Data mirrors the
	// originating event's Content.
	Slide json.RawMessage `json:"slide" yaml:"-"`
	Title string          `json:"title" yaml:"title"`
	Data  json.RawMessage `json:"data" yaml:"-"`
}
