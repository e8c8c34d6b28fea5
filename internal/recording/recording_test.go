// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recording

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header is the 11-byte prefix the recorder writes ahead of the array.
const header = "slidedata= "

func TestRead(t *testing.T) {
	input := header + `[
		{"time": 0.5, "slide": 1, "title": "Intro", "content": "hello"},
		{"time": 75.25, "slide": "2", "title": "Agenda", "content": {"items": [1, 2]}}
	]`

	events, err := Read(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, 0.5, events[0].Time)
	assert.Equal(t, "1", string(events[0].Slide))
	assert.Equal(t, "Intro", events[0].Title)
	assert.Equal(t, `"hello"`, string(events[0].Content))

	assert.Equal(t, 75.25, events[1].Time)
	assert.Equal(t, `"2"`, string(events[1].Slide))
	assert.Equal(t, `{"items": [1, 2]}`, string(events[1].Content))
}

func TestRead_HeaderIsNotInspected(t *testing.T) {
	events, err := Read(strings.NewReader("XXXXXXXXXXX[]"), DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRead_EmptyArray(t *testing.T) {
	events, err := Read(strings.NewReader(header+"[]\n"), DefaultOptions())
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}

func TestRead_CustomHeaderLength(t *testing.T) {
	events, err := Read(strings.NewReader(`[{"time":1,"slide":1,"title":"t","content":null}]`), Options{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "null", string(events[0].Content))

	_, err = Read(strings.NewReader("[]"), Options{HeaderBytes: -1})
	assert.Error(t, err)
}

func TestRead_ParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantShort bool
	}{
		{name: "empty input", input: "", wantShort: true},
		{name: "truncated header", input: "slidedata", wantShort: true},
		{name: "header only", input: header},
		{name: "invalid json", input: header + `[{"time": 1,}]`},
		{name: "unterminated array", input: header + `[{"time": 1`},
		{name: "object instead of array", input: header + `{"time": 1}`},
		{name: "null document", input: header + `null`},
		{name: "trailing data", input: header + `[] []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrParse), "want ErrParse, got %v", err)
			assert.False(t, errors.Is(err, ErrField))

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.wantShort, errors.Is(err, ErrShortHeader))
		})
	}
}

func TestRead_FieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		event     string
		wantField string
	}{
		{name: "missing time", event: `{"slide":1,"title":"t","content":""}`, wantField: "time"},
		{name: "missing slide", event: `{"time":1,"title":"t","content":""}`, wantField: "slide"},
		{name: "missing title", event: `{"time":1,"slide":1,"content":""}`, wantField: "title"},
		{name: "missing content", event: `{"time":1,"slide":1,"title":"t"}`, wantField: "content"},
		{name: "time as string", event: `{"time":"1","slide":1,"title":"t","content":""}`, wantField: "time"},
		{name: "time null", event: `{"time":null,"slide":1,"title":"t","content":""}`, wantField: "time"},
		{name: "negative time", event: `{"time":-0.5,"slide":1,"title":"t","content":""}`, wantField: "time"},
		{name: "time too large", event: `{"time":1e10,"slide":1,"title":"t","content":""}`, wantField: "time"},
		{name: "time far too large", event: `{"time":1e300,"slide":1,"title":"t","content":""}`, wantField: "time"},
		{name: "slide object", event: `{"time":1,"slide":{"n":1},"title":"t","content":""}`, wantField: "slide"},
		{name: "title number", event: `{"time":1,"slide":1,"title":3,"content":""}`, wantField: "title"},
		{name: "event not object", event: `"slide one"`, wantField: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := header + `[{"time":0,"slide":0,"title":"ok","content":""},` + tt.event + `]`
			_, err := Read(strings.NewReader(input), DefaultOptions())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrField), "want ErrField, got %v", err)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, 1, fe.Index)
			assert.Equal(t, tt.wantField, fe.Field)
		})
	}
}

func TestRead_LargestTime(t *testing.T) {
	input := header + `[{"time":9223372036,"slide":1,"title":"t","content":""}]`
	events, err := Read(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, MaxTime, events[0].Time)
}

func TestRead_Strict(t *testing.T) {
	input := header + `[
		{"time": 5, "slide": 1, "title": "a", "content": ""},
		{"time": 2, "slide": 2, "title": "b", "content": ""}
	]`

	events, err := Read(strings.NewReader(input), DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, events, 2)

	opts := DefaultOptions()
	opts.Strict = true
	_, err = Read(strings.NewReader(input), opts)
	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 1, fe.Index)
	assert.Equal(t, FieldTime, fe.Field)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recording.json")
	require.NoError(t, os.WriteFile(path, []byte(header+`[{"time":1,"slide":1,"title":"t","content":""}]`), 0o644))

	events, err := ReadFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, events, 1)

	_, err = ReadFile(filepath.Join(dir, "missing.json"), DefaultOptions())
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
