package measurement

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Measurement maps to the measurements table. Readings persist as a JSONB
// array preserving input order.
type Measurement struct {
	ID        uuid.UUID `db:"id" json:"id"`
	UserID    uuid.UUID `db:"user_id" json:"user_id"`
	Date      time.Time `db:"date" json:"date"`
	Readings  []Reading `db:"readings" json:"readings"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Reading is a single vital-sign reading inside a measurement.
type Reading struct {
	Type  string       `json:"type"`
	Value ReadingValue `json:"value"`
	Unit  string       `json:"unit"`
	Note  *string      `json:"note,omitempty"`
}

// BloodPressure is the two-part value used by blood_pressure readings.
type BloodPressure struct {
	Systolic  float64 `json:"systolic"`
	Diastolic float64 `json:"diastolic"`
}

// ReadingValue is either a plain number (glucose, weight, heart_rate, spo2)
// or a systolic/diastolic pair (blood_pressure). The shape is enforced when
// the JSON is decoded.
type ReadingValue struct {
	Number *float64
	BP     *BloodPressure
}

func (v ReadingValue) MarshalJSON() ([]byte, error) {
	if v.BP != nil {
		return json.Marshal(v.BP)
	}
	if v.Number != nil {
		return json.Marshal(v.Number)
	}
	return []byte("null"), nil
}

func (v *ReadingValue) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		v.Number = &num
		v.BP = nil
		return nil
	}

	var bp BloodPressure
	if err := json.Unmarshal(data, &bp); err != nil {
		return fmt.Errorf("reading value must be a number or {systolic, diastolic}")
	}
	if bp.Systolic == 0 || bp.Diastolic == 0 {
		return fmt.Errorf("blood pressure value requires systolic and diastolic")
	}
	v.BP = &bp
	v.Number = nil
	return nil
}

// ListFilter narrows measurement lists.
type ListFilter struct {
	From *time.Time
	To   *time.Time
	Type string
}
