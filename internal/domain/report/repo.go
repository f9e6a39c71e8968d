package report

import (
	"context"

	"github.com/google/uuid"
)

// LabReportRepository defines persistence operations for lab reports.
type LabReportRepository interface {
	Create(ctx context.Context, r *LabReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*LabReport, int, error)
}

// DoctorReportRepository defines persistence operations for doctor reports.
type DoctorReportRepository interface {
	Create(ctx context.Context, r *DoctorReport) error
	GetByID(ctx context.Context, id uuid.UUID) (*DoctorReport, error)
	Update(ctx context.Context, r *DoctorReport) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*DoctorReport, int, error)
}
