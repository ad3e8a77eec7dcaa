// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns .xmind documents into Markdown: a single Convert
// call for interactive use, and file-to-file conversion with batch
// reporting for the CLI.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xmind2md/internal/markdown"
	"github.com/pdiddy/xmind2md/internal/output"
	"github.com/pdiddy/xmind2md/internal/xmind"
	"github.com/pdiddy/xmind2md/pkg/types"
)

// Status is the outcome of converting one file.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Convert reads the .xmind document at path and returns its Markdown.
func Convert(path string) (string, error) {
	root, err := xmind.ReadTopic(path)
	if err != nil {
		return "", err
	}
	return markdown.Render(root), nil
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

var xmindSuffix = regexp.MustCompile(`(?i)\.xmind$`)

// DefaultOutputPath returns the Markdown path for src: its base name with a
// trailing .xmind (any case) replaced by .md, placed in outDir, or next to
// src when outDir is empty.
func DefaultOutputPath(src, outDir string) string {
	base := filepath.Base(src)
	name := xmindSuffix.ReplaceAllString(base, "") + ".md"
	if outDir == "" {
		return filepath.Join(filepath.Dir(src), name)
	}
	return filepath.Join(outDir, name)
}

// ConvertFile converts src and saves the Markdown at DefaultOutputPath. An
// existing destination is skipped unless cfg.Force is set. Per-file status
// is printed to w.
func ConvertFile(src string, cfg types.ConversionConfig, w io.Writer) Status {
	dst := DefaultOutputPath(src, cfg.OutputDir)

	if !cfg.Force {
		if _, err := os.Stat(dst); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", dst)
			return StatusSkipped
		}
	}

	if cfg.OutputDir != "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
			return StatusFailed
		}
	}

	root, err := xmind.ReadTopic(src)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return StatusFailed
	}

	content := markdown.Render(root)
	if cfg.Frontmatter {
		content, err = addFrontmatter(src, root, content, time.Now())
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
			return StatusFailed
		}
	}

	if err := output.SaveText(dst, content); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", src, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", src, dst)
	return StatusConverted
}

// ConvertBatch converts each path with ConvertFile, printing per-file status
// to w and returning a summary.
func ConvertBatch(paths []string, cfg types.ConversionConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range paths {
		switch ConvertFile(p, cfg, w) {
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
	return result
}

// frontmatter is the metadata block prepended when frontmatter is enabled.
type frontmatter struct {
	Source      string `yaml:"source"`
	Title       string `yaml:"title"`
	ConvertedAt string `yaml:"converted_at"`
}

func addFrontmatter(src string, root *types.Topic, body string, now time.Time) (string, error) {
	data, err := yaml.Marshal(frontmatter{
		Source:      src,
		Title:       root.TitleText(),
		ConvertedAt: now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	return "---\n" + string(data) + "---\n\n" + body, nil
}
