package diary

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for diary entries.
type Repository interface {
	Create(ctx context.Context, d *DiaryEntry) error
	GetByID(ctx context.Context, id uuid.UUID) (*DiaryEntry, error)
	Update(ctx context.Context, d *DiaryEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, mood string, limit, offset int) ([]*DiaryEntry, int, error)
}
