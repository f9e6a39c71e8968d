package diary

import (
	"time"

	"github.com/google/uuid"
)

// DiaryEntry maps to the diary_entry table. Summary may come from the user or
// from the summarizer endpoint.
type DiaryEntry struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Date      time.Time `db:"date" json:"date"`
	Content   string    `db:"content" json:"content"`
	Summary   *string   `db:"summary" json:"summary,omitempty"`
	Mood      string    `db:"mood" json:"mood"`
	Tags      []string  `db:"tags" json:"tags,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
