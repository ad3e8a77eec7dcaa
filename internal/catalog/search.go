// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrMapNotFound is returned when a path is not in the catalog.
var ErrMapNotFound = errors.New("map not in catalog")

// QueryOptions holds parameters for topic searches.
type QueryOptions struct {
	// Query is matched case-insensitively against topic titles and notes.
	Query string

	// MapPath restricts results to one catalogued map.
	MapPath string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search term or filter.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.MapPath == ""
}

// QueryResult is one matching topic with its map's title.
type QueryResult struct {
	MapPath  string `json:"map_path" yaml:"map_path"`
	MapTitle string `json:"map_title" yaml:"map_title"`
	Seq      int    `json:"seq" yaml:"seq"`
	Depth    int    `json:"depth" yaml:"depth"`
	Title    string `json:"title" yaml:"title"`
	Notes    string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// MapInfo summarizes one catalogued map.
type MapInfo struct {
	Path       string `json:"path" yaml:"path"`
	Title      string `json:"title" yaml:"title"`
	TopicCount int    `json:"topic_count" yaml:"topic_count"`
	MaxDepth   int    `json:"max_depth" yaml:"max_depth"`
	ModTime    string `json:"file_mod_time" yaml:"file_mod_time"`
	IndexedAt  string `json:"indexed_at" yaml:"indexed_at"`
}

// Search returns topics whose title or notes contain opts.Query, ordered by
// map path and then document order.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	qb.WriteString(
		`SELECT t.map_path, m.title, t.seq, t.depth, t.title, t.notes
		FROM topics t
		JOIN maps m ON m.path = t.map_path
		WHERE 1=1`)

	if opts.Query != "" {
		qb.WriteString(` AND (t.title LIKE ? ESCAPE '\' OR t.notes LIKE ? ESCAPE '\')`)
		pattern := "%" + escapeLike(opts.Query) + "%"
		args = append(args, pattern, pattern)
	}

	if opts.MapPath != "" {
		qb.WriteString(` AND t.map_path = ?`)
		args = append(args, opts.MapPath)
	}

	qb.WriteString(` ORDER BY t.map_path, t.seq LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			r     QueryResult
			notes sql.NullString
		)
		if err := rows.Scan(&r.MapPath, &r.MapTitle, &r.Seq, &r.Depth, &r.Title, &notes); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.Notes = notes.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// Maps lists the catalogued maps ordered by path.
func (s *Store) Maps(ctx context.Context) ([]MapInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, title, topic_count, max_depth, file_mod_time, indexed_at
		FROM maps ORDER BY path`)
	if err != nil {
		return nil, fmt.Errorf("listing maps: %w", err)
	}
	defer rows.Close()

	var maps []MapInfo
	for rows.Next() {
		var m MapInfo
		if err := rows.Scan(&m.Path, &m.Title, &m.TopicCount, &m.MaxDepth, &m.ModTime, &m.IndexedAt); err != nil {
			return nil, fmt.Errorf("scanning map: %w", err)
		}
		maps = append(maps, m)
	}
	return maps, rows.Err()
}

// Markdown returns the stored Markdown rendering of the map at path.
func (s *Store) Markdown(ctx context.Context, path string) (string, error) {
	var md string
	err := s.db.QueryRowContext(ctx, `SELECT markdown FROM maps WHERE path = ?`, path).Scan(&md)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrMapNotFound, path)
	}
	if err != nil {
		return "", fmt.Errorf("reading markdown for %s: %w", path, err)
	}
	return md, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
