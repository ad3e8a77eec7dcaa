// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xmind2md/internal/output"
)

// ExportYAML writes the map list to catalogDir/export.yaml and returns the
// path written.
func (s *Store) ExportYAML(ctx context.Context) (string, error) {
	maps, err := s.Maps(ctx)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(maps)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.catalogDir, "export.yaml")
	return path, output.SaveText(path, string(data))
}

// ExportJSON writes the map list to catalogDir/export.json and returns the
// path written.
func (s *Store) ExportJSON(ctx context.Context) (string, error) {
	maps, err := s.Maps(ctx)
	if err != nil {
		return "", err
	}
	if maps == nil {
		maps = []MapInfo{}
	}
	data, err := json.MarshalIndent(maps, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.catalogDir, "export.json")
	return path, output.SaveText(path, string(data))
}
