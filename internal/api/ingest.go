package api

import (
	"context"

	"github.com/renix-codex/posts/internal/models"
)

// IngestOnce triggers a single ingestion run.
func (a *API) IngestOnce(ctx context.Context) (int, error) {
	return a.ing.IngestOnce(ctx)
}

// QueryByUser returns stored posts for a user.
func (a *API) QueryByUser(ctx context.Context, userID int) ([]models.EnrichedPost, error) {
	return a.ing.QueryByUser(ctx, userID)
}

// QueryRecent returns the most recently ingested posts.
func (a *API) QueryRecent(ctx context.Context, limit, offset int) ([]models.EnrichedPost, error) {
	return a.ing.QueryRecent(ctx, limit, offset)
}
