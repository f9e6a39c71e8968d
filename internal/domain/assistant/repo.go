package assistant

import (
	"context"

	"github.com/google/uuid"
)

// ConsultationRepository is append-only; rows are never updated or deleted.
type ConsultationRepository interface {
	Create(ctx context.Context, c *Consultation) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Consultation, int, error)
}

type PrescriptionScanRepository interface {
	Create(ctx context.Context, s *PrescriptionScan) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*PrescriptionScan, int, error)
}
