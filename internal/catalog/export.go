// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every presentation with its recordings to
// <dir>/export.yaml and returns the path written.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	entries, err := s.ListPresentations(ctx)
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes every presentation with its recordings to
// <dir>/export.json and returns the path written.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	entries, err := s.ListPresentations(ctx)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, append(data, '\n'), 0o644)
}
