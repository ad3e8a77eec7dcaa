// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes converted mind maps in a local SQLite database so
// their topics can be searched and their Markdown retrieved without
// re-reading the archives.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/xmind2md/internal/markdown"
	"github.com/pdiddy/xmind2md/internal/xmind"
	"github.com/pdiddy/xmind2md/pkg/types"
)

const (
	dbFile            = "catalog.db"
	defaultMaxResults = 20
)

// Store manages the catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	maxResults int
}

// NewStore opens or creates the catalog at cfg.CatalogDir/catalog.db and
// creates the schema if it does not exist.
func NewStore(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.CatalogDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.CatalogDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.CatalogDir,
		maxResults: maxResults,
	}

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
		`CREATE TABLE IF NOT EXISTS maps (
			path TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			topic_count INTEGER NOT NULL,
			max_depth INTEGER NOT NULL,
			markdown TEXT NOT NULL,
			file_mod_time TEXT NOT NULL,
			indexed_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS topics (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			map_path TEXT NOT NULL REFERENCES maps(path) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			title TEXT NOT NULL,
			notes TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_topics_map_path ON topics(map_path, seq)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest walks dir for .xmind documents and catalogs each one. Documents
// whose modification time matches the stored one are skipped. A failing
// document is reported to w and counted; it does not stop the run.
func (s *Store) Ingest(ctx context.Context, dir string, w io.Writer) (IngestSummary, error) {
	paths, err := findDocuments(dir)
	if err != nil {
		return IngestSummary{}, err
	}

	var summary IngestSummary

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		info, err := os.Stat(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM maps WHERE path = ?`, path,
		).Scan(&storedModTime)

		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintf(w, "failed  %s: reading catalog entry: %v\n", path, err)
			summary.Failed++
			continue
		}
		isUpdate := err == nil

		if isUpdate && storedModTime == modTime {
			slog.Debug("catalog entry unchanged", "path", path)
			fmt.Fprintf(w, "skipped %s\n", path)
			summary.Skipped++
			continue
		}

		root, err := xmind.ReadTopic(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		if err := s.ingestMap(ctx, path, root, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", path, err)
			summary.Failed++
			continue
		}

		count, _ := root.Count()
		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d topics)\n", path, count)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexing %s (%d topics)\n", path, count)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

// findDocuments returns the .xmind files under dir in lexical order.
func findDocuments(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && xmind.HasExtension(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return paths, nil
}

func (s *Store) ingestMap(ctx context.Context, path string, root *types.Topic, modTime string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM topics WHERE map_path = ?`, path); err != nil {
		return fmt.Errorf("deleting old topics: %w", err)
	}

	count, depth := root.Count()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO maps (path, title, topic_count, max_depth, markdown, file_mod_time, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			title=excluded.title, topic_count=excluded.topic_count,
			max_depth=excluded.max_depth, markdown=excluded.markdown,
			file_mod_time=excluded.file_mod_time, indexed_at=excluded.indexed_at`,
		path, root.TitleText(), count, depth, markdown.Render(root),
		modTime, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting map: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO topics (map_path, seq, depth, title, notes) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range flatten(root) {
		var notes sql.NullString
		if text, ok := xmind.PlainNotes(row.topic.Notes); ok {
			notes = sql.NullString{String: text, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, path, i, row.depth, row.topic.TitleText(), notes); err != nil {
			return fmt.Errorf("inserting topic %d: %w", i, err)
		}
	}

	return tx.Commit()
}

type topicRow struct {
	topic *types.Topic
	depth int
}

// flatten lists the tree in the same pre-order the Markdown renderer
// emits, with the root at depth 1.
func flatten(root *types.Topic) []topicRow {
	var rows []topicRow
	stack := []topicRow{{root, 1}}
	for len(stack) > 0 {
		r := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		rows = append(rows, r)
		for i := len(r.topic.Children) - 1; i >= 0; i-- {
			stack = append(stack, topicRow{r.topic.Children[i], r.depth + 1})
		}
	}
	return rows
}
