// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pdiddy/slidevtt/internal/logger"
	"github.com/pdiddy/slidevtt/internal/recording"
)

// Status is the outcome of converting one recording in a batch.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchOptions controls a batch run.
type BatchOptions struct {
	Recording recording.Options

	// Force regenerates tracks that already exist.
	Force bool
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of recordings processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any recording failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertOne converts a single recording into outDir, printing one status
// line to w. An existing track is left alone unless opts.Force is set.
func ConvertOne(ctx context.Context, inPath, outDir string, opts BatchOptions, w io.Writer) Status {
	outPath := OutputPath(inPath, outDir)

	if !opts.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped:   %s (already exists)\n", outPath)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:    %s (%v)\n", inPath, err)
		return StatusFailed
	}

	res, err := ConvertFile(ctx, inPath, outPath, opts.Recording)
	if err != nil {
		logger.Get(ctx).Warnw("conversion failed", "input", inPath, "error", err)
		fmt.Fprintf(w, "failed:    %s (%v)\n", inPath, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s (%d cues, %s)\n", outPath, res.Cues, res.Duration)
	return StatusConverted
}

// ConvertBatch processes recordings in order, printing per-file status to w
// and a summary at the end. A failing recording does not stop the batch;
// only context cancellation does.
func ConvertBatch(ctx context.Context, paths []string, outDir string, opts BatchOptions, w io.Writer) (BatchResult, error) {
	var result BatchResult
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		switch ConvertOne(ctx, p, outDir, opts, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}
