// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidevtt/internal/convert"
	"github.com/pdiddy/slidevtt/internal/logger"
	"github.com/pdiddy/slidevtt/internal/recording"
	"github.com/pdiddy/slidevtt/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert [recording...]",
	Short: "Convert slide recordings to WebVTT slide tracks",
	Long: `Convert reads a slide recording (an 11-byte header followed by a JSON
array of {time, slide, title, content} events) and writes a WebVTT track with
one cue per slide change. Each cue runs from the previous change to the
current one and carries {"slide", "title", "data"} as JSON.

With no argument the recording is read from recording.json; "-" reads
stdin. The track goes to stdout unless --output is given. Passing several
recordings, or --out-dir, converts them in batch into one .vtt per input.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := appConfig.Convert
	opts := recording.Options{HeaderBytes: cfg.HeaderBytes, Strict: cfg.Strict}

	inputs := args
	if len(inputs) == 0 {
		inputs = []string{cfg.Input}
	}

	if len(inputs) > 1 || cfg.OutDir != "" {
		if cfg.OutDir == "" {
			return fmt.Errorf("converting %d recordings requires --out-dir", len(inputs))
		}
		if cfg.Output != "" {
			return fmt.Errorf("--output cannot be combined with batch conversion")
		}
		force, _ := cmd.Flags().GetBool("force")
		result, err := convert.ConvertBatch(ctx, inputs, cfg.OutDir,
			convert.BatchOptions{Recording: opts, Force: force}, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		if result.HasFailures() {
			return fmt.Errorf("%d recording(s) failed conversion", result.Failed)
		}
		return nil
	}

	input := inputs[0]
	var in io.Reader = cmd.InOrStdin()
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return fmt.Errorf("opening recording: %w", err)
		}
		defer f.Close()
		in = f
	}

	var (
		res convert.Result
		err error
	)
	if cfg.Output == "" || cfg.Output == "-" {
		res, err = convert.Convert(ctx, in, cmd.OutOrStdout(), opts)
	} else {
		res, err = convert.ConvertTo(ctx, in, cfg.Output, opts)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}

	logger.Get(ctx).Infow("converted recording",
		"input", input, "output", cfg.Output, "cues", res.Cues, "duration", res.Duration)
	return nil
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "write the track to this file instead of stdout")
	convertCmd.Flags().String("out-dir", "", "batch mode: directory receiving one .vtt per recording")
	convertCmd.Flags().Int("header-bytes", types.DefaultHeaderBytes, "number of leading bytes to skip before the JSON array")
	convertCmd.Flags().Bool("strict", false, "reject recordings whose slide times go backwards")
	convertCmd.Flags().Bool("force", false, "batch mode: regenerate tracks that already exist")

	viper.BindPFlag("convert.output", convertCmd.Flags().Lookup("output"))
	viper.BindPFlag("convert.out_dir", convertCmd.Flags().Lookup("out-dir"))
	viper.BindPFlag("convert.header_bytes", convertCmd.Flags().Lookup("header-bytes"))
	viper.BindPFlag("convert.strict", convertCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(convertCmd)
}
