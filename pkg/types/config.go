// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionConfig holds settings for converting mind maps to Markdown files.
type ConversionConfig struct {
	// OutputDir is the directory for Markdown output. Empty means the
	// Markdown file is written next to its source.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Frontmatter prepends a YAML frontmatter block with source metadata.
	Frontmatter bool `json:"frontmatter" yaml:"frontmatter" mapstructure:"frontmatter"`

	// Force overwrites existing Markdown files instead of skipping them.
	Force bool `json:"force" yaml:"force" mapstructure:"force"`
}

// CatalogConfig holds settings for the mind-map catalog.
type CatalogConfig struct {
	// CatalogDir is the directory holding catalog.db and exports.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir" mapstructure:"catalog_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// LogConfig holds settings for diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
