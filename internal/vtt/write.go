// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package vtt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pdiddy/slidevtt/pkg/types"
)

// Signature is the first line of every WebVTT file.
const Signature = "WEBVTT"

// Write renders a complete track: the signature line, a blank line, then
// one block per cue. All payloads are encoded before anything is written,
// so an encoding failure leaves w untouched.
func Write(w io.Writer, cues []types.Cue) error {
	payloads := make([][]byte, len(cues))
	for i, c := range cues {
		p, err := EncodePayload(c)
		if err != nil {
			return fmt.Errorf("encoding cue %d: %w", i, err)
		}
		payloads[i] = p
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(Signature + "\n\n")
	for i, c := range cues {
		fmt.Fprintf(bw, "%s --> %s\n", FormatTimestamp(c.Start), FormatTimestamp(c.End))
		bw.Write(payloads[i])
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}
