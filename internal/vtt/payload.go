// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vtt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf16"

	"github.com/pdiddy/slidevtt/pkg/types"
)

// EncodePayload renders the cue text: a single-line JSON object with keys
// slide, title, and data in that order. The layout uses ", " and ": "
// separators, escapes every non-ASCII character as \uXXXX, leaves HTML
// characters literal, and preserves object key order and number literals
// from the source event.
func EncodePayload(c types.Cue) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(`{"slide": `)
	if err := writeValue(&b, c.Slide); err != nil {
		return nil, fmt.Errorf("slide: %w", err)
	}
	b.WriteString(`, "title": `)
	writeString(&b, c.Title)
	b.WriteString(`, "data": `)
	if err := writeValue(&b, c.Data); err != nil {
		return nil, fmt.Errorf("data: %w", err)
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

type frame struct {
	object bool
	n      int // tokens written so far; keys and values both count in objects
}

// writeValue re-serialises one JSON value token by token. An empty value
// is written as null.
func writeValue(b *bytes.Buffer, raw json.RawMessage) error {
	if len(bytes.TrimSpace(raw)) == 0 {
		b.WriteString("null")
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var stack []frame
	done := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if done {
			return errors.New("more than one JSON value")
		}

		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			stack = stack[:len(stack)-1]
			b.WriteByte(byte(d))
			done = len(stack) == 0
			continue
		}

		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			switch {
			case top.object && top.n%2 == 1:
				b.WriteString(": ")
			case top.n > 0:
				b.WriteString(", ")
			}
			top.n++
		}

		switch v := tok.(type) {
		case json.Delim:
			b.WriteByte(byte(v))
			stack = append(stack, frame{object: v == '{'})
		case string:
			writeString(b, v)
		case json.Number:
			b.WriteString(v.String())
		case bool:
			b.WriteString(strconv.FormatBool(v))
		case nil:
			b.WriteString("null")
		}
		if len(stack) == 0 {
			if _, ok := tok.(json.Delim); !ok {
				done = true
			}
		}
	}
	if len(stack) > 0 || !done {
		return io.ErrUnexpectedEOF
	}
	return nil
}

// writeString writes s as a quoted JSON string restricted to printable
// ASCII. Runes outside the BMP become surrogate pairs.
func writeString(b *bytes.Buffer, s string) {
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			switch {
			case r >= 0x20 && r <= 0x7e:
				b.WriteRune(r)
			case r > 0xffff:
				hi, lo := utf16.EncodeRune(r)
				fmt.Fprintf(b, `\u%04x\u%04x`, hi, lo)
			default:
				fmt.Fprintf(b, `\u%04x`, r)
			}
		}
	}
	b.WriteByte('"')
}

type payload struct {
	Slide json.RawMessage `json:"slide"`
	Title *string         `json:"title"`
	Data  json.RawMessage `json:"data"`
}

// decodePayload fills the slide fields of c from cue text.
func decodePayload(text string, c *types.Cue) error {
	var p payload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return err
	}
	if p.Slide == nil {
		return errors.New(`payload has no "slide"`)
	}
	if p.Title == nil {
		return errors.New(`payload has no "title"`)
	}
	if p.Data == nil {
		return errors.New(`payload has no "data"`)
	}
	c.Slide = p.Slide
	c.Title = *p.Title
	c.Data = p.Data
	return nil
}
