package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("appointment not found")
	ErrForbidden = errors.New("appointment belongs to another user")
)

var validTypes = map[string]bool{
	TypeDoctor: true, TypeLab: true,
}

var validStatuses = map[string]bool{
	StatusScheduled: true, StatusCompleted: true, StatusCancelled: true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, a *Appointment) error {
	if a.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if a.ProviderName == "" {
		return fmt.Errorf("provider_name is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if a.Type == "" {
		a.Type = TypeDoctor
	}
	if !validTypes[a.Type] {
		return fmt.Errorf("invalid type: %s", a.Type)
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	return s.repo.Create(ctx, a)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if a.UserID != userID {
		return nil, ErrForbidden
	}
	return a, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, a *Appointment) error {
	existing, err := s.Get(ctx, userID, a.ID)
	if err != nil {
		return err
	}
	if a.ProviderName == "" {
		a.ProviderName = existing.ProviderName
	}
	if a.Type == "" {
		a.Type = existing.Type
	}
	if !validTypes[a.Type] {
		return fmt.Errorf("invalid type: %s", a.Type)
	}
	if a.Date.IsZero() {
		a.Date = existing.Date
	}
	if a.Time == "" {
		a.Time = existing.Time
	}
	if a.Status == "" {
		a.Status = existing.Status
	}
	if !validStatuses[a.Status] {
		return fmt.Errorf("invalid status: %s", a.Status)
	}
	a.UserID = existing.UserID
	return s.repo.Update(ctx, a)
}

// SetStatus changes an appointment's status. Any status may follow any other.
func (s *Service) SetStatus(ctx context.Context, userID, id uuid.UUID, status string) (*Appointment, error) {
	if !validStatuses[status] {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	if filter.Status != "" && !validStatuses[filter.Status] {
		return nil, 0, fmt.Errorf("invalid status: %s", filter.Status)
	}
	if filter.Type != "" && !validTypes[filter.Type] {
		return nil, 0, fmt.Errorf("invalid type: %s", filter.Type)
	}
	return s.repo.ListByUser(ctx, userID, filter, limit, offset)
}

// CompleteMatching finds the user's appointment on the same calendar date with
// the given provider and marks it Completed. Returns the appointment id, or
// nil when nothing matched.
func (s *Service) CompleteMatching(ctx context.Context, userID uuid.UUID, providerName string, date time.Time) (*uuid.UUID, error) {
	a, err := s.repo.FindByProviderAndDate(ctx, userID, providerName, date)
	if err != nil {
		return nil, nil
	}
	a.Status = StatusCompleted
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return &a.ID, nil
}
