package appointment

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeDoctor = "Doctor"
	TypeLab    = "Lab"

	StatusScheduled = "Scheduled"
	StatusCompleted = "Completed"
	StatusCancelled = "Cancelled"
)

// Appointment maps to the appointment table.
type Appointment struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	ProviderName string    `db:"provider_name" json:"provider_name"`
	Type         string    `db:"type" json:"type"`
	Date         time.Time `db:"date" json:"date"`
	Time         string    `db:"time" json:"time"`
	Location     *string   `db:"location" json:"location,omitempty"`
	Reason       *string   `db:"reason" json:"reason,omitempty"`
	Status       string    `db:"status" json:"status"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ListFilter narrows appointment lists.
type ListFilter struct {
	Status   string
	Type     string
	Upcoming bool
}
