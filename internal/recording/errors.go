// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package recording

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches any *ParseError.
	ErrParse = errors.New("malformed recording")
	// ErrField matches any *FieldError.
	ErrField = errors.New("invalid event field")
	// ErrShortHeader is wrapped by a ParseError when the input ends before
	// the fixed-length header has been consumed.
	ErrShortHeader = errors.New("input shorter than header")
)

// ParseError reports input that is not a readable recording: a truncated
// header, invalid JSON, or a top-level value that is not an array.
type ParseError struct {
	// Offset is the byte position in the input, header included.
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing recording at byte %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrParse) match without callers knowing the cause.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// FieldError reports an event that lacks a required field or carries a
// value of the wrong type.
type FieldError struct {
	// Index is the zero-based position of the event in the array.
	Index  int
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("event %d: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("event %d: field %q: %s", e.Index, e.Field, e.Reason)
}

func (e *FieldError) Is(target error) bool { return target == ErrField }
