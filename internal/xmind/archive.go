// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmind reads XMind documents: it locates content.json inside the
// .xmind ZIP container, parses it into a types.Topic tree, and extracts
// plain-text notes.
package xmind

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"

	"github.com/pdiddy/xmind2md/pkg/types"
)

const (
	// Extension is the file extension of XMind documents.
	Extension = ".xmind"

	// DataEntry is the archive entry holding the topic tree.
	DataEntry = "content.json"

	// LegacyEntry marks the old XML-based XMind 8 layout.
	LegacyEntry = "content.xml"
)

// Archive is an open .xmind container. Close releases the underlying file.
type Archive struct {
	path string
	file *os.File
	zr   *zip.Reader
}

// Open validates the extension of path and opens it as a ZIP container.
func Open(path string) (*Archive, error) {
	if !HasExtension(path) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrFileOpen, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrFileOpen, path, err)
	}

	zr, err := zip.NewReader(f, info.Size())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w %s: %v", ErrCorruptArchive, path, err)
	}

	return &Archive{path: path, file: f, zr: zr}, nil
}

// HasExtension reports whether path names an .xmind file. A bare ".xmind"
// is a hidden file with no extension, not an XMind document.
func HasExtension(path string) bool {
	base := filepath.Base(path)
	return filepath.Ext(base) == Extension && len(base) > len(Extension)
}

// Close releases the archive's file handle.
func (a *Archive) Close() error {
	return a.file.Close()
}

// Names returns the raw entry names in archive order.
func (a *Archive) Names() []string {
	names := make([]string, len(a.zr.File))
	for i, f := range a.zr.File {
		names[i] = f.Name
	}
	return names
}

// ReadContent locates the data entry and returns its contents.
func (a *Archive) ReadContent() ([]byte, error) {
	name, err := FindDataEntry(a.Names())
	if err != nil {
		return nil, err
	}
	slog.Debug("located data entry", "path", a.path, "entry", name)

	f, err := a.entry(name).Open()
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, name, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrCorruptArchive, name, err)
	}
	if !utf8.Valid(data) {
		return nil, malformed("%s is not valid UTF-8", name)
	}
	return data, nil
}

// entry returns the first file whose raw name is name. Raw names are used
// rather than fs.FS paths so that entries with backslashes still resolve.
func (a *Archive) entry(name string) *zip.File {
	for _, f := range a.zr.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// ReadTopic opens the document at path and returns its root topic. The
// archive is closed before ReadTopic returns, on every path.
func ReadTopic(path string) (*types.Topic, error) {
	a, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer a.Close()

	data, err := a.ReadContent()
	if err != nil {
		return nil, err
	}
	return ParseContent(data)
}

// FindDataEntry picks the data entry among names. A root-level content.json
// wins over nested ones; among nested entries the first in archive order
// wins. If none exists, a legacy content.xml yields
// ErrUnsupportedLegacyFormat and anything else an *EntryNotFoundError.
func FindDataEntry(names []string) (string, error) {
	for _, n := range names {
		if NormalizeName(n) == DataEntry {
			return n, nil
		}
	}
	for _, n := range names {
		if strings.HasSuffix(NormalizeName(n), "/"+DataEntry) {
			return n, nil
		}
	}

	for _, n := range names {
		norm := NormalizeName(n)
		if norm == LegacyEntry || strings.HasSuffix(norm, "/"+LegacyEntry) {
			return "", ErrUnsupportedLegacyFormat
		}
	}

	return "", &EntryNotFoundError{Names: names}
}

// NormalizeName converts backslashes to forward slashes and trims enclosing
// slashes so entry names compare uniformly.
func NormalizeName(name string) string {
	return strings.Trim(strings.ReplaceAll(name, `\`, "/"), "/")
}
