// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package xmindtest builds .xmind fixtures for tests.
package xmindtest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// Entry is one file inside a fixture archive.
type Entry struct {
	Name string
	Body string
}

// WriteArchive writes a ZIP with entries, in order, to dir/name and returns
// its path.
func WriteArchive(t *testing.T, dir, name string, entries ...Entry) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.Body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// WriteDocument writes a .xmind archive whose root content.json is content.
func WriteDocument(t *testing.T, dir, name, content string) string {
	t.Helper()
	return WriteArchive(t, dir, name, Entry{Name: "content.json", Body: content})
}

// Sheet wraps a rootTopic JSON object in the sheet-list shape XMind writes.
func Sheet(rootTopic string) string {
	return `[{"id":"sheet-1","class":"sheet","title":"Sheet 1","rootTopic":` + rootTopic + `}]`
}
