package api

import (
	"context"
	"time"

	"github.com/renix-codex/posts/internal/models"
	"github.com/renix-codex/posts/internal/posts"
)

// Ingester is the stored-posts side of the application.
type Ingester interface {
	IngestOnce(ctx context.Context) (int, error)
	QueryByUser(ctx context.Context, userID int) ([]models.EnrichedPost, error)
	QueryRecent(ctx context.Context, limit, offset int) ([]models.EnrichedPost, error)
}

// Upstream is the live side: direct lookups against the posts API.
type Upstream interface {
	GetPostByID(ctx context.Context, postID int) (posts.Post, error)
	GetPostsByUserID(ctx context.Context, userID int) ([]posts.Post, error)
	GetPostByIDWithValidation(ctx context.Context, postID int) (posts.Post, error)
}

// Pinger checks that a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// API is the application-facing facade. All callers (HTTP, CLI) go through it.
type API struct {
	ing       Ingester
	upstream  Upstream
	db        Pinger
	startedAt time.Time
}

// New builds the facade. db may be nil when no store is wired.
func New(ing Ingester, upstream Upstream, db Pinger) *API {
	return &API{ing: ing, upstream: upstream, db: db, startedAt: time.Now().UTC()}
}

// Health reports the process start time and whether the store answers a
// ping. The bool is false when the store is wired but unreachable.
func (a *API) Health(ctx context.Context) (map[string]any, bool) {
	payload := map[string]any{
		"app":       "posts",
		"startedAt": a.startedAt.Format(time.RFC3339),
		"status":    "ok",
	}
	if a.db == nil {
		return payload, true
	}
	if err := a.db.Ping(ctx); err != nil {
		payload["status"] = "degraded"
		payload["db"] = err.Error()
		return payload, false
	}
	payload["db"] = "ok"
	return payload, true
}
