// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vtt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pdiddy/slidevtt/pkg/types"
)

func TestWrite_SingleCue(t *testing.T) {
	events := []types.SlideEvent{
		{Time: 0.5, Slide: json.RawMessage(`1`), Title: "Intro", Content: json.RawMessage(`"hello"`)},
	}

	var buf bytes.Buffer
	if err := Write(&buf, BuildCues(events)); err != nil {
		t.Fatal(err)
	}

	want := "WEBVTT\n\n" +
		"00:00:00.0000 --> 00:00:00.5000\n" +
		`{"slide": 1, "title": "Intro", "data": "hello"}` + "\n\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWrite_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "WEBVTT\n\n" {
		t.Errorf("got %q, want header only", buf.String())
	}
}

func TestWrite_ContiguousBlocks(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, BuildCues(sampleEvents())); err != nil {
		t.Fatal(err)
	}

	blocks := strings.Split(strings.TrimSuffix(buf.String(), "\n\n"), "\n\n")
	if blocks[0] != "WEBVTT" {
		t.Fatalf("first block = %q", blocks[0])
	}
	cues := blocks[1:]
	if len(cues) != 3 {
		t.Fatalf("got %d cue blocks, want 3", len(cues))
	}

	wantTimings := []string{
		"00:00:00.0000 --> 00:00:00.5000",
		"00:00:00.5000 --> 00:00:12.2500",
		"00:00:12.2500 --> 00:01:15.2500",
	}
	for i, block := range cues {
		lines := strings.Split(block, "\n")
		if len(lines) != 2 {
			t.Fatalf("cue %d has %d lines, want 2", i, len(lines))
		}
		if lines[0] != wantTimings[i] {
			t.Errorf("cue %d timing = %q, want %q", i, lines[0], wantTimings[i])
		}
	}
}

func TestWrite_EncodingFailureWritesNothing(t *testing.T) {
	cues := []types.Cue{{Slide: json.RawMessage(`1`), Data: json.RawMessage(`{`)}}
	var buf bytes.Buffer
	if err := Write(&buf, cues); err == nil {
		t.Fatal("expected error")
	}
	if buf.Len() != 0 {
		t.Errorf("wrote %d bytes before failing", buf.Len())
	}
}
