// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vtt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/slidevtt/pkg/types"
)

// maxLine bounds a single payload line. Slide content is inlined HTML and
// can be far longer than bufio's default token size.
const maxLine = 16 << 20

// SyntaxError reports a track that cannot be read back into cues.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("vtt line %d: %s", e.Line, e.Msg)
}

// Parse reads a slide track written by Write, or any WebVTT file whose cue
// texts are slide payloads. Cue identifiers, cue settings, and NOTE, STYLE,
// and REGION blocks are accepted and ignored.
func Parse(r io.Reader) ([]types.Cue, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	lineNo := 0
	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		lineNo++
		return strings.TrimSuffix(sc.Text(), "\r"), true
	}

	first, ok := next()
	if !ok {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("reading track: %w", err)
		}
		return nil, &SyntaxError{Line: 1, Msg: "empty input"}
	}
	first = strings.TrimPrefix(first, "\ufeff")
	if first != Signature && !strings.HasPrefix(first, Signature+" ") && !strings.HasPrefix(first, Signature+"\t") {
		return nil, &SyntaxError{Line: 1, Msg: "missing WEBVTT signature"}
	}

	// Skip the header block.
	for {
		line, ok := next()
		if !ok || line == "" {
			break
		}
	}

	cues := []types.Cue{}
	var block []string
	blockStart := 0
	flush := func() error {
		defer func() { block = block[:0] }()
		if len(block) == 0 {
			return nil
		}
		c, skip, err := parseBlock(block, blockStart)
		if err != nil || skip {
			return err
		}
		cues = append(cues, c)
		return nil
	}

	for {
		line, ok := next()
		if !ok {
			break
		}
		if line == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if len(block) == 0 {
			blockStart = lineNo
		}
		block = append(block, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading track: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cues, nil
}

// parseBlock turns the lines of one block into a cue. skip is true for
// blocks that are not cues.
func parseBlock(block []string, start int) (c types.Cue, skip bool, err error) {
	head := block[0]
	if head == "NOTE" || strings.HasPrefix(head, "NOTE ") || strings.HasPrefix(head, "NOTE\t") ||
		head == "STYLE" || head == "REGION" {
		return c, true, nil
	}

	timing := 0
	if !strings.Contains(head, "-->") {
		// First line is a cue identifier.
		if len(block) < 2 || !strings.Contains(block[1], "-->") {
			return c, false, &SyntaxError{Line: start, Msg: "block has no timing line"}
		}
		timing = 1
	}
	line := start + timing

	from, to, _ := strings.Cut(block[timing], "-->")
	fields := strings.Fields(to)
	if len(fields) == 0 {
		return c, false, &SyntaxError{Line: line, Msg: "timing line has no end time"}
	}
	if c.Start, err = ParseTimestamp(strings.TrimSpace(from)); err != nil {
		return c, false, &SyntaxError{Line: line, Msg: err.Error()}
	}
	if c.End, err = ParseTimestamp(fields[0]); err != nil {
		return c, false, &SyntaxError{Line: line, Msg: err.Error()}
	}

	text := strings.Join(block[timing+1:], "\n")
	if strings.TrimSpace(text) == "" {
		return c, false, &SyntaxError{Line: line, Msg: "cue has no payload"}
	}
	if err := decodePayload(text, &c); err != nil {
		return c, false, &SyntaxError{Line: line + 1, Msg: "payload: " + err.Error()}
	}
	return c, false, nil
}
