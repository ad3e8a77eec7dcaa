// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/xmind2md/internal/xmind/xmindtest"
	"github.com/pdiddy/xmind2md/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	store, err := NewStore(types.CatalogConfig{
		CatalogDir: filepath.Join(tmpDir, "catalog"),
		MaxResults: 20,
	})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	mapsDir := filepath.Join(tmpDir, "maps")
	require.NoError(t, os.MkdirAll(mapsDir, 0o755))
	return store, mapsDir
}

const roadmap = `{"rootTopic":{"title":"Roadmap","children":{"attached":[
	{"title":"Backend","notes":{"plain":{"content":"migrate the <b>database</b>"}},
	 "children":{"attached":[{"title":"API v2"}]}},
	{"title":"Frontend"}
]}}}`

const recipes = `[{"rootTopic":{"title":"Recipes","children":{"attached":[
	{"title":"Soup"},{"title":"Bread 100%_whole"}
]}}}]`

// --- tests ---

func TestIngest(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)
	require.NoError(t, os.MkdirAll(filepath.Join(mapsDir, "food"), 0o755))
	xmindtest.WriteDocument(t, filepath.Join(mapsDir, "food"), "recipes.xmind", recipes)
	xmindtest.WriteArchive(t, mapsDir, "legacy.xmind", xmindtest.Entry{Name: "content.xml", Body: "<x/>"})
	require.NoError(t, os.WriteFile(filepath.Join(mapsDir, "notes.txt"), []byte("ignored"), 0o644))

	var log bytes.Buffer
	summary, err := store.Ingest(ctx, mapsDir, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Indexed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Skipped)
	assert.Equal(t, 3, summary.Total())
	assert.Contains(t, log.String(), "failed  "+filepath.Join(mapsDir, "legacy.xmind"))

	maps, err := store.Maps(ctx)
	require.NoError(t, err)
	require.Len(t, maps, 2)
	assert.Equal(t, filepath.Join(mapsDir, "food", "recipes.xmind"), maps[0].Path)
	assert.Equal(t, "Recipes", maps[0].Title)
	assert.Equal(t, 3, maps[0].TopicCount)
	assert.Equal(t, "Roadmap", maps[1].Title)
	assert.Equal(t, 4, maps[1].TopicCount)
	assert.Equal(t, 3, maps[1].MaxDepth)
}

func TestIngestIncremental(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	path := xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)

	var log bytes.Buffer
	_, err := store.Ingest(ctx, mapsDir, &log)
	require.NoError(t, err)

	// Unchanged file is skipped.
	log.Reset()
	summary, err := store.Ingest(ctx, mapsDir, &log)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Skipped)
	assert.Contains(t, log.String(), "skipped")

	// Rewritten file is updated and its old topics replaced.
	xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", `{"rootTopic":{"title":"Roadmap 2"}}`)
	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))

	log.Reset()
	summary, err = store.Ingest(ctx, mapsDir, &log)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)

	results, err := store.Search(ctx, QueryOptions{MapPath: path})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Roadmap 2", results[0].Title)
}

func TestIngestCatalogReadError(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)
	_, err := store.db.ExecContext(ctx, `ALTER TABLE maps RENAME COLUMN file_mod_time TO mod_time`)
	require.NoError(t, err)

	var log bytes.Buffer
	summary, err := store.Ingest(ctx, mapsDir, &log)
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 0, summary.Indexed)
	assert.Contains(t, log.String(), "reading catalog entry")
	assert.NotContains(t, log.String(), "indexing ")
}

func TestIngestSkipsBareExtensionFile(t *testing.T) {
	store, mapsDir := testSetup(t)

	xmindtest.WriteDocument(t, mapsDir, ".xmind", roadmap)
	xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)

	summary, err := store.Ingest(context.Background(), mapsDir, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Indexed)
	assert.Equal(t, 1, summary.Total())
}

func TestIngestMissingDir(t *testing.T) {
	store, mapsDir := testSetup(t)
	_, err := store.Ingest(context.Background(), filepath.Join(mapsDir, "nope"), &bytes.Buffer{})
	require.Error(t, err)
}

func TestIngestCancelled(t *testing.T) {
	store, mapsDir := testSetup(t)
	xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Ingest(ctx, mapsDir, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearch(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	roadmapPath := xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)
	xmindtest.WriteDocument(t, mapsDir, "recipes.xmind", recipes)
	_, err := store.Ingest(ctx, mapsDir, &bytes.Buffer{})
	require.NoError(t, err)

	tests := []struct {
		name       string
		opts       QueryOptions
		wantTitles []string
	}{
		{"title match", QueryOptions{Query: "api"}, []string{"API v2"}},
		{"notes match with tags stripped", QueryOptions{Query: "the database"}, []string{"Backend"}},
		{"case insensitive", QueryOptions{Query: "FRONTEND"}, []string{"Frontend"}},
		{"percent is literal", QueryOptions{Query: "100%_"}, []string{"Bread 100%_whole"}},
		{"underscore is literal", QueryOptions{Query: "S_up"}, nil},
		{"map filter keeps document order", QueryOptions{MapPath: roadmapPath}, []string{"Roadmap", "Backend", "API v2", "Frontend"}},
		{"limit", QueryOptions{MapPath: roadmapPath, MaxResults: 2}, []string{"Roadmap", "Backend"}},
		{"no match", QueryOptions{Query: "zebra"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Search(ctx, tt.opts)
			require.NoError(t, err)
			var titles []string
			for _, r := range results {
				titles = append(titles, r.Title)
			}
			assert.Equal(t, tt.wantTitles, titles)
		})
	}
}

func TestSearchResultFields(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	path := xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)
	_, err := store.Ingest(ctx, mapsDir, &bytes.Buffer{})
	require.NoError(t, err)

	results, err := store.Search(ctx, QueryOptions{Query: "backend"})
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, path, r.MapPath)
	assert.Equal(t, "Roadmap", r.MapTitle)
	assert.Equal(t, 1, r.Seq)
	assert.Equal(t, 2, r.Depth)
	assert.Equal(t, "migrate the database", r.Notes)
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{MaxResults: 5}.IsEmpty())
	assert.False(t, QueryOptions{Query: "x"}.IsEmpty())
	assert.False(t, QueryOptions{MapPath: "m.xmind"}.IsEmpty())
}

func TestMarkdown(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	path := xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)
	_, err := store.Ingest(ctx, mapsDir, &bytes.Buffer{})
	require.NoError(t, err)

	md, err := store.Markdown(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "# Roadmap\n\n## Backend\n\n> migrate the database\n\n\n### API v2\n\n## Frontend\n", md)

	_, err = store.Markdown(ctx, filepath.Join(mapsDir, "other.xmind"))
	require.ErrorIs(t, err, ErrMapNotFound)
}

func TestExport(t *testing.T) {
	store, mapsDir := testSetup(t)
	ctx := context.Background()

	xmindtest.WriteDocument(t, mapsDir, "roadmap.xmind", roadmap)
	_, err := store.Ingest(ctx, mapsDir, &bytes.Buffer{})
	require.NoError(t, err)

	t.Run("yaml", func(t *testing.T) {
		path, err := store.ExportYAML(ctx)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var maps []MapInfo
		require.NoError(t, yaml.Unmarshal(data, &maps))
		require.Len(t, maps, 1)
		assert.Equal(t, "Roadmap", maps[0].Title)
	})

	t.Run("json", func(t *testing.T) {
		path, err := store.ExportJSON(ctx)
		require.NoError(t, err)
		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var maps []MapInfo
		require.NoError(t, json.Unmarshal(data, &maps))
		require.Len(t, maps, 1)
		assert.Equal(t, 4, maps[0].TopicCount)
	})
}

func TestExportEmptyCatalog(t *testing.T) {
	store, _ := testSetup(t)

	path, err := store.ExportJSON(context.Background())
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
