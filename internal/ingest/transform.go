package ingest

import (
	"time"

	"github.com/renix-codex/posts/internal/models"
)

// Enrich stamps each post with the ingest source and a single UTC timestamp
// taken once for the whole batch. The input slice is not modified.
func Enrich(posts []models.Post, source string, now func() time.Time) []models.EnrichedPost {
	out := make([]models.EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return out
	}
	at := now().UTC()
	for _, p := range posts {
		out = append(out, models.EnrichedPost{
			UserID:     p.UserID,
			ID:         p.ID,
			Title:      p.Title,
			Body:       p.Body,
			IngestedAt: at,
			Source:     source,
		})
	}
	return out
}
