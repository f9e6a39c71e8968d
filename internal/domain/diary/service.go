package diary

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("diary entry not found")
	ErrForbidden = errors.New("diary entry belongs to another user")
)

var validMoods = map[string]bool{
	"great": true, "good": true, "okay": true, "low": true, "bad": true,
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, d *DiaryEntry) error {
	if d.UserID == uuid.Nil {
		return fmt.Errorf("user_id is required")
	}
	if d.Content == "" {
		return fmt.Errorf("content is required")
	}
	if d.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if d.Mood == "" {
		d.Mood = "okay"
	}
	if !validMoods[d.Mood] {
		return fmt.Errorf("invalid mood: %s", d.Mood)
	}
	return s.repo.Create(ctx, d)
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*DiaryEntry, error) {
	d, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	if d.UserID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}

func (s *Service) Update(ctx context.Context, userID uuid.UUID, d *DiaryEntry) error {
	existing, err := s.Get(ctx, userID, d.ID)
	if err != nil {
		return err
	}
	if d.Content == "" {
		return fmt.Errorf("content is required")
	}
	if d.Mood == "" {
		d.Mood = existing.Mood
	}
	if !validMoods[d.Mood] {
		return fmt.Errorf("invalid mood: %s", d.Mood)
	}
	if d.Date.IsZero() {
		d.Date = existing.Date
	}
	d.UserID = existing.UserID
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, mood string, limit, offset int) ([]*DiaryEntry, int, error) {
	if mood != "" && !validMoods[mood] {
		return nil, 0, fmt.Errorf("invalid mood: %s", mood)
	}
	return s.repo.ListByUser(ctx, userID, mood, limit, offset)
}

// SetSummary is used by the summarizer endpoint to store generated summaries.
func (s *Service) SetSummary(ctx context.Context, userID, id uuid.UUID, summary string) (*DiaryEntry, error) {
	d, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	d.Summary = &summary
	if err := s.repo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
