package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/renix-codex/posts/internal/models"
)

type Service struct {
	store     StorePort
	collector CollectorPort
	source    string
	now       func() time.Time
}

func New(store StorePort, collector CollectorPort, source string, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, collector: collector, source: source, now: now}
}

// IngestOnce fetches every upstream post, enriches it and upserts the batch.
// It returns the number of stored posts.
func (s *Service) IngestOnce(ctx context.Context) (int, error) {
	posts, err := s.collector.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	enriched := Enrich(posts, s.source, s.now)
	if err := s.store.Upsert(ctx, enriched); err != nil {
		return 0, fmt.Errorf("store posts: %w", err)
	}
	return len(enriched), nil
}

// QueryByUser retrieves stored posts for a specific user.
func (s *Service) QueryByUser(ctx context.Context, userID int) ([]models.EnrichedPost, error) {
	return s.store.QueryByUser(ctx, userID)
}

func (s *Service) QueryRecent(ctx context.Context, limit, offset int) ([]models.EnrichedPost, error) {
	return s.store.QueryRecent(ctx, limit, offset)
}
