package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/docsearch"
)

// Compile-time interface verification.
var (
	_ docsearch.ArtifactWriter = (*Store)(nil)
	_ docsearch.RecordLoader   = (*Store)(nil)
	_ docsearch.ChunkLoader    = (*Store)(nil)
)

// Store keeps the latest build in SQLite. Each write replaces the previous
// build wholesale, so the store never holds a mix of two builds. Loaders
// ignore their location argument.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// WriteBuild replaces the stored build in a single transaction.
func (s *Store) WriteBuild(ctx context.Context, build *docsearch.Build) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"builds", "records", "chunks"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	meta, err := json.Marshal(build.Metadata)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO builds (id, generated, base_url, metadata) VALUES (?, ?, ?, ?)
	`, build.Metadata.BuildID, build.Metadata.Generated.UTC().Format(time.RFC3339Nano), build.Metadata.BaseURL, string(meta)); err != nil {
		return fmt.Errorf("failed to insert build: %w", err)
	}

	if err := insertRecords(ctx, tx, build.Records); err != nil {
		return err
	}
	if err := insertChunks(ctx, tx, build.Chunks); err != nil {
		return err
	}

	return tx.Commit()
}

func insertRecords(ctx context.Context, tx *sql.Tx, records []*docsearch.SearchRecord) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (position, id, url, title, heading, heading_level, content, full_content,
			category, version, breadcrumb, search_text)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range records {
		breadcrumb := r.Breadcrumb
		if breadcrumb == nil {
			breadcrumb = []string{}
		}
		crumbs, err := json.Marshal(breadcrumb)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.URL, r.Title, r.Heading, r.HeadingLevel, r.Content,
			r.FullContent, r.Category, r.Version, string(crumbs), r.SearchText); err != nil {
			return fmt.Errorf("failed to insert record %s: %w", r.ID, err)
		}
	}
	return nil
}

func insertChunks(ctx context.Context, tx *sql.Tx, chunks []*docsearch.LlmChunk) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (position, id, url, title, category, version, content, token_estimate,
			chunk_index, chunk_total, section_range, section_start, section_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range chunks {
		if _, err := stmt.ExecContext(ctx, i, c.ID, c.URL, c.Title, c.Category, c.Version, c.Content,
			c.TokenEstimate, nullInt(c.ChunkIndex), nullInt(c.ChunkTotal), c.SectionRange,
			nullInt(c.SectionStartIndex), nullInt(c.SectionEndIndex)); err != nil {
			return fmt.Errorf("failed to insert chunk %s: %w", c.ID, err)
		}
	}
	return nil
}

// LoadRecords returns the stored search records in build order.
func (s *Store) LoadRecords(ctx context.Context, _ string) ([]*docsearch.SearchRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, heading, heading_level, content, full_content, category, version,
			breadcrumb, search_text
		FROM records
		ORDER BY position
	`)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to query records: %v", err)
	}
	defer rows.Close()

	records := []*docsearch.SearchRecord{}
	for rows.Next() {
		var r docsearch.SearchRecord
		var crumbs string
		if err := rows.Scan(&r.ID, &r.URL, &r.Title, &r.Heading, &r.HeadingLevel, &r.Content,
			&r.FullContent, &r.Category, &r.Version, &crumbs, &r.SearchText); err != nil {
			return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to scan record: %v", err)
		}
		if err := json.Unmarshal([]byte(crumbs), &r.Breadcrumb); err != nil {
			return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to decode breadcrumb of %s: %v", r.ID, err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to read records: %v", err)
	}
	return records, nil
}

// LoadChunks returns the stored LLM chunks in build order.
func (s *Store) LoadChunks(ctx context.Context, _ string) ([]*docsearch.LlmChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, title, category, version, content, token_estimate,
			chunk_index, chunk_total, section_range, section_start, section_end
		FROM chunks
		ORDER BY position
	`)
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to query chunks: %v", err)
	}
	defer rows.Close()

	chunks := []*docsearch.LlmChunk{}
	for rows.Next() {
		var c docsearch.LlmChunk
		var index, total, start, end sql.NullInt64
		if err := rows.Scan(&c.ID, &c.URL, &c.Title, &c.Category, &c.Version, &c.Content, &c.TokenEstimate,
			&index, &total, &c.SectionRange, &start, &end); err != nil {
			return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to scan chunk: %v", err)
		}
		c.ChunkIndex = intPtr(index)
		c.ChunkTotal = intPtr(total)
		c.SectionStartIndex = intPtr(start)
		c.SectionEndIndex = intPtr(end)
		chunks = append(chunks, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "failed to read chunks: %v", err)
	}
	return chunks, nil
}

// Metadata returns the metadata of the stored build.
func (s *Store) Metadata(ctx context.Context) (*docsearch.BuildMetadata, error) {
	var generated, raw string
	err := s.db.QueryRowContext(ctx, `SELECT generated, metadata FROM builds LIMIT 1`).Scan(&generated, &raw)
	if err == sql.ErrNoRows {
		return nil, docsearch.Errorf(docsearch.ENOTFOUND, "no build stored")
	}
	if err != nil {
		return nil, err
	}

	var meta docsearch.BuildMetadata
	if err := json.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode build metadata: %w", err)
	}
	if meta.Generated, err = parseRFC3339(generated, "generated"); err != nil {
		return nil, err
	}
	return &meta, nil
}
