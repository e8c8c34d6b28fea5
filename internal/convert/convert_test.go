// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/slidevtt/internal/recording"
)

const (
	header    = "slidedata= "
	validJSON = header + `[{"time":0.5,"slide":1,"title":"Intro","content":"hello"},` +
		`{"time":75.25,"slide":2,"title":"Agenda","content":"<h2>Agenda</h2>"}]`
	wantTrack = "WEBVTT\n\n" +
		"00:00:00.0000 --> 00:00:00.5000\n" +
		`{"slide": 1, "title": "Intro", "data": "hello"}` + "\n\n" +
		"00:00:00.5000 --> 00:01:15.2500\n" +
		`{"slide": 2, "title": "Agenda", "data": "<h2>Agenda</h2>"}` + "\n\n"
)

// setupRecording writes content to dir/name and returns its path.
func setupRecording(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestConvert(t *testing.T) {
	var out bytes.Buffer
	res, err := Convert(context.Background(), strings.NewReader(validJSON), &out, recording.DefaultOptions())
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if out.String() != wantTrack {
		t.Errorf("track:\n%s\nwant:\n%s", out.String(), wantTrack)
	}
	if res.Cues != 2 {
		t.Errorf("cues = %d, want 2", res.Cues)
	}
	if res.Duration != 75250*time.Millisecond {
		t.Errorf("duration = %v, want 1m15.25s", res.Duration)
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short header", "slide", recording.ErrParse},
		{"not json", header + "slides", recording.ErrParse},
		{"missing title", header + `[{"time":1,"slide":1,"content":""}]`, recording.ErrField},
		{"time overflows", header + `[{"time":1e10,"slide":1,"title":"a","content":""},` +
			`{"time":2e10,"slide":2,"title":"b","content":""}]`, recording.ErrField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			_, err := Convert(context.Background(), strings.NewReader(tt.input), &out, recording.DefaultOptions())
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if out.Len() != 0 {
				t.Errorf("wrote %q before failing", out.String())
			}
		})
	}
}

func TestConvert_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	_, err := Convert(ctx, strings.NewReader(validJSON), &out, recording.DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	in := setupRecording(t, dir, "recording.json", validJSON)
	out := filepath.Join(dir, "recording.vtt")

	res, err := ConvertFile(context.Background(), in, out, recording.DefaultOptions())
	if err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}
	if res.Cues != 2 {
		t.Errorf("cues = %d, want 2", res.Cues)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != wantTrack {
		t.Errorf("track:\n%s", data)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}

func TestConvertFile_FailureKeepsExistingTrack(t *testing.T) {
	dir := t.TempDir()
	in := setupRecording(t, dir, "broken.json", header+`[{"time":1}]`)
	out := setupRecording(t, dir, "broken.vtt", "previous track")

	if _, err := ConvertFile(context.Background(), in, out, recording.DefaultOptions()); !errors.Is(err, recording.ErrField) {
		t.Fatalf("err = %v, want ErrField", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "previous track" {
		t.Errorf("existing track was modified: %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestConvertFile_ReplacesExistingTrack(t *testing.T) {
	dir := t.TempDir()
	in := setupRecording(t, dir, "talk.json", validJSON)
	out := setupRecording(t, dir, "talk.vtt", "previous track")
	if err := os.Chmod(out, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := ConvertFile(context.Background(), in, out, recording.DefaultOptions()); err != nil {
		t.Fatalf("ConvertFile: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != wantTrack {
		t.Errorf("track:\n%s", data)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("temporary files left behind: %v", entries)
	}
}

func TestConvertFile_MissingInput(t *testing.T) {
	dir := t.TempDir()
	_, err := ConvertFile(context.Background(), filepath.Join(dir, "nope.json"), filepath.Join(dir, "nope.vtt"), recording.DefaultOptions())
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nope.vtt")); !os.IsNotExist(err) {
		t.Error("output should not be created")
	}
}

func TestOutputPath(t *testing.T) {
	got := OutputPath("/data/recordings/talk.json", "tracks")
	if want := filepath.Join("tracks", "talk.vtt"); got != want {
		t.Errorf("OutputPath = %q, want %q", got, want)
	}
}

func TestConvertTo(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "stdin.vtt")

	res, err := ConvertTo(context.Background(), strings.NewReader(header+"[]"), out, recording.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if res.Cues != 0 {
		t.Errorf("cues = %d, want 0", res.Cues)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "WEBVTT\n\n" {
		t.Errorf("track = %q, want header only", data)
	}
}
