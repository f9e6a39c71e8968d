package measurement

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("measurement not found")
	ErrForbidden = errors.New("measurement belongs to another user")
)

// numericTypes take a single number; blood_pressure takes a systolic/diastolic pair.
var numericTypes = map[string]bool{
	"glucose": true, "weight": true, "heart_rate": true, "spo2": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func validateReadings(readings []Reading) error {
	if len(readings) == 0 {
		return fmt.Errorf("at least one reading is required")
	}
	for i, rd := range readings {
		switch {
		case numericTypes[rd.Type]:
			if rd.Value.Number == nil {
				return fmt.Errorf("reading %d: %s requires a numeric value", i, rd.Type)
			}
		case rd.Type == "blood_pressure":
			if rd.Value.BP == nil {
				return fmt.Errorf("reading %d: blood_pressure requires systolic and diastolic", i)
			}
		default:
			return fmt.Errorf("reading %d: unknown type %q", i, rd.Type)
		}
		if rd.Unit == "" {
			return fmt.Errorf("reading %d: unit is required", i)
		}
	}
	return nil
}

func (s *Service) Create(ctx context.Context, m *Measurement) error {
	if m.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if m.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if err := validateReadings(m.Readings); err != nil {
		return err
	}
	return s.repo.Create(ctx, m)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*Measurement, error) {
	m, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if m.UserID != userID {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, m *Measurement) error {
	existing, err := s.Get(ctx, userID, m.ID)
	if err != nil {
		return err
	}
	if m.Date.IsZero() {
		m.Date = existing.Date
	}
	if err := validateReadings(m.Readings); err != nil {
		return err
	}
	m.UserID = existing.UserID
	return s.repo.Update(ctx, m)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*Measurement, int, error) {
	return s.repo.ListByUser(ctx, userID, filter, limit, offset)
}
