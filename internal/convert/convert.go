// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives recording-to-track conversion for streams, single
// files, and batches of files.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"github.com/pdiddy/slidevtt/internal/logger"
	"github.com/pdiddy/slidevtt/internal/recording"
	"github.com/pdiddy/slidevtt/internal/vtt"
)

// trackExt is the extension given to generated tracks in batch mode.
const trackExt = ".vtt"

// Result summarises one conversion.
type Result struct {
	Cues     int
	Duration time.Duration
}

// Convert reads a recording from in and writes its slide track to out. The
// whole recording is decoded and validated first; on error nothing has been
// written to out.
func Convert(ctx context.Context, in io.Reader, out io.Writer, opts recording.Options) (Result, error) {
	events, err := recording.Read(in, opts)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	cues := vtt.BuildCues(events)
	if err := vtt.Write(out, cues); err != nil {
		return Result{}, fmt.Errorf("writing track: %w", err)
	}

	res := Result{Cues: len(cues), Duration: vtt.Duration(cues)}
	logger.Get(ctx).Debugw("converted recording", "cues", res.Cues, "duration", res.Duration)
	return res, nil
}

// ConvertFile converts the recording at inPath into a track at outPath.
func ConvertFile(ctx context.Context, inPath, outPath string, opts recording.Options) (Result, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening recording: %w", err)
	}
	defer in.Close()

	res, err := ConvertTo(ctx, in, outPath, opts)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", inPath, err)
	}
	return res, nil
}

// ConvertTo converts the recording read from in into a track at outPath.
// The track is written to a temporary file in the same directory and
// renamed into place only after a successful conversion, so a failure never
// leaves a partial or clobbered track behind.
func ConvertTo(ctx context.Context, in io.Reader, outPath string, opts recording.Options) (Result, error) {
	var res Result
	err := writeAtomic(outPath, func(w io.Writer) error {
		var err error
		res, err = Convert(ctx, in, w, opts)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// OutputPath returns the track path for a recording in batch mode:
// outDir/<recording name without extension>.vtt.
func OutputPath(inPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(inPath), filepath.Ext(inPath))
	return filepath.Join(outDir, base+trackExt)
}

func writeAtomic(path string, fn func(io.Writer) error) error {
	pending, err := renameio.NewPendingFile(path,
		renameio.WithTempDir(filepath.Dir(path)),
		renameio.WithStaticPermissions(0o644),
	)
	if err != nil {
		return fmt.Errorf("creating temporary track: %w", err)
	}
	defer pending.Cleanup()

	if err := fn(pending); err != nil {
		return err
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("moving track into place: %w", err)
	}
	return nil
}
