package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("report not found")
	ErrForbidden = errors.New("report belongs to another user")
)

// AppointmentCompleter marks the matching appointment Completed when a doctor
// report arrives without an explicit appointment reference.
type AppointmentCompleter interface {
	CompleteMatching(ctx context.Context, userID uuid.UUID, providerName string, date time.Time) (*uuid.UUID, error)
}

type Service struct {
	labs         LabReportRepository
	doctors      DoctorReportRepository
	appointments AppointmentCompleter
}

func NewService(labs LabReportRepository, doctors DoctorReportRepository, appointments AppointmentCompleter) *Service {
	return &Service{labs: labs, doctors: doctors, appointments: appointments}
}

// -- LabReport --

func (s *Service) CreateLabReport(ctx context.Context, lr *LabReport) error {
	if lr.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if lr.LabName == "" {
		return fmt.Errorf("lab_name is required")
	}
	if lr.VisitDate.IsZero() {
		return fmt.Errorf("visit_date is required")
	}
	return s.labs.Create(ctx, lr)
}

func (s *Service) GetLabReport(ctx context.Context, userID, id uuid.UUID) (*LabReport, error) {
	lr, err := s.labs.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if lr.UserID != userID {
		return nil, ErrForbidden
	}
	return lr, nil
}

func (s *Service) DeleteLabReport(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetLabReport(ctx, userID, id); err != nil {
		return err
	}
	return s.labs.Delete(ctx, id)
}

func (s *Service) ListLabReports(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*LabReport, int, error) {
	return s.labs.ListByUser(ctx, userID, limit, offset)
}

// -- DoctorReport --

// CreateDoctorReport stores the report. Without an explicit appointment_id it
// tries to link the user's appointment on the same calendar date with the
// same provider name, marking it Completed.
func (s *Service) CreateDoctorReport(ctx context.Context, dr *DoctorReport) error {
	if dr.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if dr.DoctorName == "" {
		return fmt.Errorf("doctor_name is required")
	}
	if dr.VisitDate.IsZero() {
		return fmt.Errorf("visit_date is required")
	}

	if dr.AppointmentID == nil && s.appointments != nil {
		id, err := s.appointments.CompleteMatching(ctx, dr.UserID, dr.DoctorName, dr.VisitDate)
		if err != nil {
			return err
		}
		dr.AppointmentID = id
	}

	return s.doctors.Create(ctx, dr)
}

func (s *Service) GetDoctorReport(ctx context.Context, userID, id uuid.UUID) (*DoctorReport, error) {
	dr, err := s.doctors.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if dr.UserID != userID {
		return nil, ErrForbidden
	}
	return dr, nil
}

func (s *Service) UpdateDoctorReport(ctx context.Context, userID uuid.UUID, dr *DoctorReport) error {
	existing, err := s.GetDoctorReport(ctx, userID, dr.ID)
	if err != nil {
		return err
	}
	if dr.DoctorName == "" {
		dr.DoctorName = existing.DoctorName
	}
	if dr.VisitDate.IsZero() {
		dr.VisitDate = existing.VisitDate
	}
	if dr.AppointmentID == nil {
		dr.AppointmentID = existing.AppointmentID
	}
	dr.UserID = existing.UserID
	return s.doctors.Update(ctx, dr)
}

func (s *Service) DeleteDoctorReport(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.GetDoctorReport(ctx, userID, id); err != nil {
		return err
	}
	return s.doctors.Delete(ctx, id)
}

func (s *Service) ListDoctorReports(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*DoctorReport, int, error) {
	return s.doctors.ListByUser(ctx, userID, limit, offset)
}
