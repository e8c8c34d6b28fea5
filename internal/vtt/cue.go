// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vtt turns slide events into WebVTT cues and reads such tracks
// back. Each cue spans from the previous slide change to the current one
// and carries the slide as a one-line JSON payload.
package vtt

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pdiddy/slidevtt/pkg/types"
)

// BuildCues returns one cue per event, in input order. The first cue starts
// at zero and every later cue starts where the previous one ended.
func BuildCues(events []types.SlideEvent) []types.Cue {
	cues := make([]types.Cue, len(events))
	var prev time.Duration
	for i, ev := range events {
		end := Seconds(ev.Time)
		cues[i] = types.Cue{
			Start: prev,
			End:   end,
			Slide: ev.Slide,
			Title: ev.Title,
			Data:  ev.Content,
		}
		prev = end
	}
	return cues
}

// Duration returns the end of the last cue, or zero for an empty track.
func Duration(cues []types.Cue) time.Duration {
	if len(cues) == 0 {
		return 0
	}
	return cues[len(cues)-1].End
}

// Chapter is a navigation entry derived from a cue, as shown in a player's
// slide menu.
type Chapter struct {
	Title string        `json:"title" yaml:"title"`
	Start time.Duration `json:"start" yaml:"start"`
	End   time.Duration `json:"end" yaml:"end"`
	Slide string        `json:"slide" yaml:"slide"`
}

// String renders the menu label, e.g. "Intro: 12.5s".
func (c Chapter) String() string {
	return c.Title + ": " + strconv.FormatFloat(c.Start.Seconds(), 'f', -1, 64) + "s"
}

// Chapters lists one entry per cue.
func Chapters(cues []types.Cue) []Chapter {
	out := make([]Chapter, len(cues))
	for i, c := range cues {
		out[i] = Chapter{
			Title: c.Title,
			Start: c.Start,
			End:   c.End,
			Slide: slideLabel(c.Slide),
		}
	}
	return out
}

// slideLabel unquotes string slide identifiers and keeps other scalars as
// their JSON text.
func slideLabel(raw []byte) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if raw[0] == '"' && json.Unmarshal(raw, &s) == nil {
		return s
	}
	return string(raw)
}
