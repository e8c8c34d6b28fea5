// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidevtt/internal/catalog"
	"github.com/pdiddy/slidevtt/internal/logger"
	"github.com/pdiddy/slidevtt/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the local catalogue of presentations and recordings",
	Long: `Catalog keeps a SQLite index of presentations and the recordings made of
them. Each recording points at its slide track and, optionally, the video and
speech captions recorded alongside it.`,
}

// --- add-presentation subcommand ---

var catalogAddPresentationCmd = &cobra.Command{
	Use:   "add-presentation <name>",
	Short: "Register a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogAddPresentation,
}

func runCatalogAddPresentation(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("content")
	content, err := readContent(path)
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	p, err := store.AddPresentation(cmd.Context(), args[0], content)
	if err != nil {
		return err
	}
	logger.Get(cmd.Context()).Infow("added presentation", "id", p.ID, "name", p.Name)
	fmt.Fprintf(cmd.OutOrStdout(), "presentation %d: %s\n", p.ID, p.Name)
	return nil
}

// --- add-recording subcommand ---

var catalogAddRecordingCmd = &cobra.Command{
	Use:   "add-recording <presentation-id> [name]",
	Short: "Register a recording and its slide track",
	Long: `Add-recording attaches a recording to a presentation. The slide track given
with --vtt is read to record its cue count and length; a track that does not
parse is rejected.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCatalogAddRecording,
}

func runCatalogAddRecording(cmd *cobra.Command, args []string) error {
	pid, err := parseID("presentation", args[0])
	if err != nil {
		return err
	}

	rec := types.Recording{PresentationID: pid}
	if len(args) > 1 {
		rec.Name = args[1]
	}
	rec.VTTPath, _ = cmd.Flags().GetString("vtt")
	rec.VideoPath, _ = cmd.Flags().GetString("video")
	rec.CaptionsPath, _ = cmd.Flags().GetString("captions")
	if start, _ := cmd.Flags().GetString("start"); start != "" {
		if rec.Start, err = time.Parse(time.RFC3339, start); err != nil {
			return fmt.Errorf("--start: %w", err)
		}
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err = store.AddRecording(cmd.Context(), rec)
	if err != nil {
		return err
	}
	logger.Get(cmd.Context()).Infow("added recording",
		"id", rec.ID, "presentation", rec.PresentationID, "cues", rec.CueCount)
	fmt.Fprintf(cmd.OutOrStdout(), "recording %d: %s (%d slides, %s)\n",
		rec.ID, rec.Name, rec.CueCount, rec.Duration)
	return nil
}

// --- show subcommand ---

var catalogShowCmd = &cobra.Command{
	Use:   "show <presentation-id>",
	Short: "Show a presentation and its recordings",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogShow,
}

func runCatalogShow(cmd *cobra.Command, args []string) error {
	id, err := parseID("presentation", args[0])
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	withContent, _ := cmd.Flags().GetBool("content")
	return showPresentation(cmd.Context(), cmd.OutOrStdout(), store, id, withContent)
}

func showPresentation(ctx context.Context, w io.Writer, store *catalog.Store, id int64, withContent bool) error {
	p, err := store.GetPresentation(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Presentation %d: %s\n", p.ID, p.Name)
	fmt.Fprintf(w, "Created:       %s\n", p.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(w, "Content:       %d bytes\n", len(p.Content))
	fmt.Fprintf(w, "Recordings:    %d\n", len(p.Recordings))
	for _, r := range p.Recordings {
		fmt.Fprintf(w, "    %-4d  %-30s  %3d slides  %s\n", r.ID, truncate(r.Name, 30), r.CueCount, r.Duration)
	}
	if withContent && p.Content != "" {
		fmt.Fprintln(w, strings.Repeat("-", 72))
		fmt.Fprintln(w, strings.TrimRight(p.Content, "\n"))
	}
	return nil
}

// --- set-content subcommand ---

var catalogSetContentCmd = &cobra.Command{
	Use:   "set-content <presentation-id>",
	Short: "Replace the slide deck source of a presentation",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSetContent,
}

func runCatalogSetContent(cmd *cobra.Command, args []string) error {
	id, err := parseID("presentation", args[0])
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("content")
	content, err := readContent(path)
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.UpdateContent(cmd.Context(), id, content); err != nil {
		return err
	}
	logger.Get(cmd.Context()).Infow("updated presentation content", "id", id, "bytes", len(content))
	fmt.Fprintf(cmd.OutOrStdout(), "presentation %d: content updated (%d bytes)\n", id, len(content))
	return nil
}

// --- recording subcommand ---

var catalogRecordingCmd = &cobra.Command{
	Use:   "recording <recording-id>",
	Short: "Show a recording and the files it points at",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogRecording,
}

func runCatalogRecording(cmd *cobra.Command, args []string) error {
	id, err := parseID("recording", args[0])
	if err != nil {
		return err
	}

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.GetRecording(cmd.Context(), id)
	if err != nil {
		return err
	}
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}
	return formatRecording(cmd.OutOrStdout(), rec)
}

func formatRecording(w io.Writer, r types.Recording) error {
	fmt.Fprintf(w, "Recording %d: %s\n", r.ID, r.Name)
	fmt.Fprintf(w, "Presentation:  %d\n", r.PresentationID)
	if !r.Start.IsZero() {
		fmt.Fprintf(w, "Started:       %s\n", r.Start.Format(time.RFC3339))
	}
	fmt.Fprintf(w, "Slides:        %d (%s)\n", r.CueCount, r.Duration)
	fmt.Fprintf(w, "Slide track:   %s\n", r.VTTPath)
	if r.VideoPath != "" {
		fmt.Fprintf(w, "Video:         %s\n", r.VideoPath)
	}
	if r.CaptionsPath != "" {
		fmt.Fprintf(w, "Captions:      %s\n", r.CaptionsPath)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presentations and their recordings",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.ListPresentations(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	return formatCatalog(cmd.OutOrStdout(), list)
}

func formatCatalog(w io.Writer, list []types.Presentation) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No presentations in the catalogue.")
		return err
	}

	for _, p := range list {
		fmt.Fprintf(w, "%d  %s  (%s)\n", p.ID, p.Name, p.CreatedAt.Format("2006-01-02"))
		for _, r := range p.Recordings {
			fmt.Fprintf(w, "    %-4d  %-30s  %3d slides  %-12s  %s\n",
				r.ID, truncate(r.Name, 30), r.CueCount, r.Duration, r.VTTPath)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 72))
	_, err := fmt.Fprintf(w, "%d presentation(s)\n", len(list))
	return err
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalogue to YAML or JSON",
	RunE:  runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog()
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml":
		path, err = store.ExportYAML(cmd.Context())
	case "json":
		path, err = store.ExportJSON(cmd.Context())
	default:
		return fmt.Errorf("unknown format %q: want yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "exported %s\n", path)
	return nil
}

func openCatalog() (*catalog.Store, error) {
	return catalog.NewStore(appConfig.Catalog)
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s id %q: %w", kind, arg, err)
	}
	return id, nil
}

// readContent returns the slide deck source at path, or "" when path is empty.
func readContent(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading slide content: %w", err)
	}
	return string(data), nil
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "catalog", "directory holding the catalogue database")
	viper.BindPFlag("catalog.dir", catalogCmd.PersistentFlags().Lookup("catalog-dir"))

	catalogAddPresentationCmd.Flags().String("content", "", "file with the slide deck source")

	catalogAddRecordingCmd.Flags().String("vtt", "", "slide track produced by convert (required)")
	catalogAddRecordingCmd.Flags().String("video", "", "recorded video file")
	catalogAddRecordingCmd.Flags().String("captions", "", "speech captions file")
	catalogAddRecordingCmd.Flags().String("start", "", "recording start time (RFC 3339)")
	catalogAddRecordingCmd.MarkFlagRequired("vtt")

	catalogShowCmd.Flags().Bool("content", false, "also print the slide deck source")

	catalogSetContentCmd.Flags().String("content", "", "file with the new slide deck source (required)")
	catalogSetContentCmd.MarkFlagRequired("content")

	catalogRecordingCmd.Flags().Bool("json", false, "output as JSON")

	catalogListCmd.Flags().Bool("json", false, "output as JSON")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogAddPresentationCmd)
	catalogCmd.AddCommand(catalogAddRecordingCmd)
	catalogCmd.AddCommand(catalogShowCmd)
	catalogCmd.AddCommand(catalogSetContentCmd)
	catalogCmd.AddCommand(catalogRecordingCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
