package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/renix-codex/posts/internal/ingest"
	"github.com/renix-codex/posts/internal/models"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

const schema = `
CREATE TABLE IF NOT EXISTS posts (
  user_id INT NOT NULL,
  id INT NOT NULL,
  title TEXT NOT NULL,
  body TEXT NOT NULL,
  ingested_at TIMESTAMPTZ NOT NULL,
  source TEXT NOT NULL,
  doc JSONB NOT NULL,
  PRIMARY KEY (user_id, id)
);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
CREATE INDEX IF NOT EXISTS idx_posts_doc_gin ON posts USING GIN (doc);
`

const upsertSQL = `
INSERT INTO posts (user_id,id,title,body,ingested_at,source,doc)
VALUES ($1,$2,$3,$4,$5,$6,$7)
ON CONFLICT (user_id,id) DO UPDATE SET
  title=EXCLUDED.title, body=EXCLUDED.body,
  ingested_at=EXCLUDED.ingested_at, source=EXCLUDED.source, doc=EXCLUDED.doc`

// PGStore keeps enriched posts in Postgres, one row per (user_id, id).
type PGStore struct{ pool *pgxpool.Pool }

var _ ingest.StorePort = (*PGStore)(nil)

// New opens a pool and ensures the schema exists.
func New(ctx context.Context, dsn string) (*PGStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *PGStore) Close() { s.pool.Close() }

func (s *PGStore) Upsert(ctx context.Context, items []models.EnrichedPost) error {
	if len(items) == 0 {
		return nil
	}
	b := &pgx.Batch{}
	for _, it := range items {
		raw, err := json.Marshal(it)
		if err != nil {
			return fmt.Errorf("encode post %d: %w", it.ID, err)
		}
		b.Queue(upsertSQL, it.UserID, it.ID, it.Title, it.Body, it.IngestedAt, it.Source, raw)
	}
	br := s.pool.SendBatch(ctx, b)
	defer br.Close()
	for range items {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (s *PGStore) QueryByUser(ctx context.Context, userID int) ([]models.EnrichedPost, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM posts WHERE user_id=$1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	return collectDocs(rows)
}

func (s *PGStore) QueryRecent(ctx context.Context, limit, offset int) ([]models.EnrichedPost, error) {
	limit, offset = ClampPage(limit, offset)
	rows, err := s.pool.Query(ctx, `
SELECT doc
FROM posts
ORDER BY ingested_at DESC, id DESC
LIMIT $1 OFFSET $2
`, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectDocs(rows)
}

// ClampPage bounds limit to [1, 500] (0 or less means 50) and offset to >= 0.
func ClampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	if limit > maxRecentLimit {
		limit = maxRecentLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// collectDocs decodes the JSONB doc column; rows whose doc does not decode
// are skipped.
func collectDocs(rows pgx.Rows) ([]models.EnrichedPost, error) {
	defer rows.Close()
	out := []models.EnrichedPost{}
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var e models.EnrichedPost
		if err := json.Unmarshal(raw, &e); err == nil {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}
