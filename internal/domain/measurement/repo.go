package measurement

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for measurements.
type Repository interface {
	Create(ctx context.Context, m *Measurement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error)
	Update(ctx context.Context, m *Measurement) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*Measurement, int, error)
}
