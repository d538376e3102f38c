package models

import "time"

// Post is the typed projection of an upstream post kept by the ingestor.
type Post struct {
	UserID int    `json:"userId"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

// EnrichedPost is a Post as stored, stamped with ingest metadata.
type EnrichedPost struct {
	UserID     int       `json:"userId"`
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	IngestedAt time.Time `json:"ingested_at"`
	Source     string    `json:"source"`
}
