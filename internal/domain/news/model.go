package news

import (
	"time"

	"github.com/google/uuid"
)

// Article maps to the article table. URL is unique; the fetch job relies on
// that to stay idempotent across overlapping runs.
type Article struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	Title       string     `db:"title" json:"title"`
	Description *string    `db:"description" json:"description,omitempty"`
	URL         string     `db:"url" json:"url"`
	ImageURL    *string    `db:"image_url" json:"image_url,omitempty"`
	Source      *string    `db:"source" json:"source,omitempty"`
	PublishedAt *time.Time `db:"published_at" json:"published_at,omitempty"`
	FetchedAt   time.Time  `db:"fetched_at" json:"fetched_at"`
}
