package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence operations for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*Appointment, int, error)
	FindByProviderAndDate(ctx context.Context, userID uuid.UUID, providerName string, date time.Time) (*Appointment, error)
}
