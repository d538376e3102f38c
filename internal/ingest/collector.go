package ingest

import (
	"context"
	"fmt"

	"github.com/renix-codex/posts/internal/models"
	"github.com/renix-codex/posts/internal/posts"
)

// PostLister is the part of the posts client the collector needs.
type PostLister interface {
	ListPosts(ctx context.Context) ([]posts.Post, error)
}

// HTTPCollector pulls the full post collection from the upstream API.
type HTTPCollector struct {
	src PostLister
}

var _ CollectorPort = (*HTTPCollector)(nil)

func NewHTTPCollector(src PostLister) *HTTPCollector {
	return &HTTPCollector{src: src}
}

func (c *HTTPCollector) Fetch(ctx context.Context) ([]models.Post, error) {
	raw, err := c.src.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch posts: %w", err)
	}
	out := make([]models.Post, 0, len(raw))
	for _, p := range raw {
		out = append(out, models.Post{
			UserID: p.UserID(),
			ID:     p.ID(),
			Title:  p.Title(),
			Body:   p.Body(),
		})
	}
	return out, nil
}
