// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps a local SQLite index of presentations and their
// recordings: the slide track, the video, and the speech captions.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/slidevtt/internal/vtt"
	"github.com/pdiddy/slidevtt/pkg/types"
)

const dbFile = "slidevtt.db"

// ErrNotFound is returned when a presentation or recording does not exist.
var ErrNotFound = errors.New("not found")

// Store manages the catalogue database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the catalogue at cfg.Dir/slidevtt.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalogue directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS presentation (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recording (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			presentation_id INTEGER NOT NULL REFERENCES presentation(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			start TEXT NOT NULL DEFAULT '',
			vtt_path TEXT NOT NULL,
			video_path TEXT NOT NULL DEFAULT '',
			captions_path TEXT NOT NULL DEFAULT '',
			cue_count INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recording_presentation ON recording(presentation_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// AddPresentation inserts a presentation and returns it with its new ID.
func (s *Store) AddPresentation(ctx context.Context, name, content string) (types.Presentation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Presentation{}, errors.New("presentation name is required")
	}

	p := types.Presentation{Name: name, Content: content, CreatedAt: time.Now().UTC()}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO presentation (name, content, created_at) VALUES (?, ?, ?)`,
		p.Name, p.Content, p.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return types.Presentation{}, fmt.Errorf("inserting presentation: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return types.Presentation{}, fmt.Errorf("reading presentation id: %w", err)
	}
	return p, nil
}

// GetPresentation returns a presentation and its recordings.
func (s *Store) GetPresentation(ctx context.Context, id int64) (types.Presentation, error) {
	var p types.Presentation
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, content, created_at FROM presentation WHERE id = ?`, id,
	).Scan(&p.ID, &p.Name, &p.Content, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return p, fmt.Errorf("presentation %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return p, fmt.Errorf("querying presentation %d: %w", id, err)
	}
	p.CreatedAt = parseTime(created)

	if p.Recordings, err = s.RecordingsFor(ctx, id); err != nil {
		return p, err
	}
	return p, nil
}

// ListPresentations returns all presentations ordered by ID, each with its
// recordings attached.
func (s *Store) ListPresentations(ctx context.Context) ([]types.Presentation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, content, created_at FROM presentation ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing presentations: %w", err)
	}

	out := []types.Presentation{}
	for rows.Next() {
		var p types.Presentation
		var created string
		if err := rows.Scan(&p.ID, &p.Name, &p.Content, &created); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning presentation: %w", err)
		}
		p.CreatedAt = parseTime(created)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range out {
		if out[i].Recordings, err = s.RecordingsFor(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// UpdateContent replaces the stored slide deck of a presentation.
func (s *Store) UpdateContent(ctx context.Context, id int64, content string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE presentation SET content = ? WHERE id = ?`, content, id)
	if err != nil {
		return fmt.Errorf("updating presentation %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating presentation %d: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("presentation %d: %w", id, ErrNotFound)
	}
	return nil
}

// AddRecording registers a recording under an existing presentation. The
// slide track at rec.VTTPath is read to fill CueCount and Duration; a track
// that cannot be parsed is rejected.
func (s *Store) AddRecording(ctx context.Context, rec types.Recording) (types.Recording, error) {
	if rec.VTTPath == "" {
		return rec, errors.New("recording needs a slide track path")
	}
	if rec.Name = strings.TrimSpace(rec.Name); rec.Name == "" {
		rec.Name = strings.TrimSuffix(filepath.Base(rec.VTTPath), filepath.Ext(rec.VTTPath))
	}

	var exists int
	if err := s.db.QueryRowContext(ctx,
		`SELECT count(*) FROM presentation WHERE id = ?`, rec.PresentationID,
	).Scan(&exists); err != nil {
		return rec, fmt.Errorf("checking presentation: %w", err)
	}
	if exists == 0 {
		return rec, fmt.Errorf("presentation %d: %w", rec.PresentationID, ErrNotFound)
	}

	count, duration, err := describeTrack(rec.VTTPath)
	if err != nil {
		return rec, err
	}
	rec.CueCount, rec.Duration = count, duration

	start := ""
	if !rec.Start.IsZero() {
		start = rec.Start.UTC().Format(time.RFC3339Nano)
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO recording (presentation_id, name, start, vtt_path, video_path, captions_path, cue_count, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.PresentationID, rec.Name, start, rec.VTTPath, rec.VideoPath, rec.CaptionsPath,
		rec.CueCount, rec.Duration.Milliseconds(),
	)
	if err != nil {
		return rec, fmt.Errorf("inserting recording: %w", err)
	}
	if rec.ID, err = res.LastInsertId(); err != nil {
		return rec, fmt.Errorf("reading recording id: %w", err)
	}
	return rec, nil
}

const recordingColumns = `id, presentation_id, name, start, vtt_path, video_path, captions_path, cue_count, duration_ms`

// GetRecording returns a single recording.
func (s *Store) GetRecording(ctx context.Context, id int64) (types.Recording, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordingColumns+` FROM recording WHERE id = ?`, id)
	rec, err := scanRecording(row)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, fmt.Errorf("recording %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return rec, fmt.Errorf("querying recording %d: %w", id, err)
	}
	return rec, nil
}

// RecordingsFor returns the recordings of a presentation ordered by ID.
func (s *Store) RecordingsFor(ctx context.Context, presentationID int64) ([]types.Recording, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordingColumns+` FROM recording WHERE presentation_id = ? ORDER BY id`, presentationID)
	if err != nil {
		return nil, fmt.Errorf("listing recordings: %w", err)
	}
	defer rows.Close()

	var out []types.Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning recording: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecording(row scanner) (types.Recording, error) {
	var rec types.Recording
	var start string
	var durationMS int64
	err := row.Scan(&rec.ID, &rec.PresentationID, &rec.Name, &start, &rec.VTTPath,
		&rec.VideoPath, &rec.CaptionsPath, &rec.CueCount, &durationMS)
	if err != nil {
		return rec, err
	}
	rec.Start = parseTime(start)
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	return rec, nil
}

// describeTrack counts the cues of a slide track and returns its length.
func describeTrack(path string) (int, time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("opening slide track: %w", err)
	}
	defer f.Close()

	cues, err := vtt.Parse(f)
	if err != nil {
		return 0, 0, fmt.Errorf("reading slide track %s: %w", path, err)
	}
	return len(cues), vtt.Duration(cues), nil
}

// parseTime reads a stored timestamp; empty or malformed values yield the
// zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
