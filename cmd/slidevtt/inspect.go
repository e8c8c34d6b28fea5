// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/slidevtt/internal/vtt"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <track.vtt>",
	Short: "List the slides of a WebVTT slide track",
	Long: `Inspect reads a slide track produced by convert ("-" for stdin) and lists
one entry per cue: start and end time, slide identifier, and title. This is
the same slide menu a player builds from the track.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	var in io.Reader = cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening track: %w", err)
		}
		defer f.Close()
		in = f
	}

	cues, err := vtt.Parse(in)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	chapters := vtt.Chapters(cues)
	out := cmd.OutOrStdout()

	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(chapters)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(chapters)
	case "text", "":
		return formatChapters(out, chapters)
	default:
		return fmt.Errorf("unknown format %q: want text, json, or yaml", format)
	}
}

func formatChapters(w io.Writer, chapters []vtt.Chapter) error {
	if len(chapters) == 0 {
		_, err := fmt.Fprintln(w, "No slides found.")
		return err
	}

	fmt.Fprintf(w, "%-4s  %-15s  %-15s  %-8s  %s\n", "#", "Start", "End", "Slide", "Menu")
	fmt.Fprintln(w, strings.Repeat("-", 72))
	for i, c := range chapters {
		fmt.Fprintf(w, "%-4d  %-15s  %-15s  %-8s  %s\n",
			i+1, vtt.FormatTimestamp(c.Start), vtt.FormatTimestamp(c.End), truncate(c.Slide, 8), c)
	}
	_, err := fmt.Fprintf(w, "\n%d slide(s), %s total\n", len(chapters), chapters[len(chapters)-1].End)
	return err
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func init() {
	inspectCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(inspectCmd)
}
