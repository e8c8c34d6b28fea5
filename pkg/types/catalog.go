// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Presentation is a slide deck known to the catalogue.
type Presentation struct {
	ID        int64     `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name"`
	Content   string    `json:"content" yaml:"content"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`

	// Recordings is populated by listing and export queries only.
	Recordings []Recording `json:"recordings,omitempty" yaml:"recordings,omitempty"`
}

// Recording describes one recorded delivery of a presentation and the files
// that belong to it. Paths are stored as given; the catalogue never copies
// or moves media.
type Recording struct {
	ID             int64     `json:"id" yaml:"id"`
	PresentationID int64     `json:"presentation_id" yaml:"presentation_id"`
	Name           string    `json:"name" yaml:"name"`
	Start          time.Time `json:"start" yaml:"start"`

	// VTTPath is the slide track produced by the converter.
	VTTPath string `json:"vtt_path" yaml:"vtt_path"`

	// VideoPath and CaptionsPath point at the recorded media and its speech
	// captions, when available.
	VideoPath    string `json:"video_path,omitempty" yaml:"video_path,omitempty"`
	CaptionsPath string `json:"captions_path,omitempty" yaml:"captions_path,omitempty"`

	// CueCount and Duration summarise the slide track at registration time.
	CueCount int           `json:"cue_count" yaml:"cue_count"`
	Duration time.Duration `json:"duration" yaml:"duration"`
}
