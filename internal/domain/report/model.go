package report

import (
	"time"

	"github.com/google/uuid"
)

// LabReport maps to the lab_report table. ParsedResults is a schema-less blob
// produced by AI extraction and stored verbatim.
type LabReport struct {
	ID            uuid.UUID              `db:"id" json:"id"`
	UserID        uuid.UUID              `db:"user_id" json:"user_id"`
	LabName       string                 `db:"lab_name" json:"lab_name"`
	VisitDate     time.Time              `db:"visit_date" json:"visit_date"`
	TestName      *string                `db:"test_name" json:"test_name,omitempty"`
	ParsedResults map[string]interface{} `db:"parsed_results" json:"parsed_results,omitempty"`
	FileURL       *string                `db:"file_url" json:"file_url,omitempty"`
	Note          *string                `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time              `db:"created_at" json:"created_at"`
}

// DoctorReport maps to the doctor_report table.
type DoctorReport struct {
	ID            uuid.UUID              `db:"id" json:"id"`
	UserID        uuid.UUID              `db:"user_id" json:"user_id"`
	DoctorName    string                 `db:"doctor_name" json:"doctor_name"`
	Specialty     *string                `db:"specialty" json:"specialty,omitempty"`
	VisitDate     time.Time              `db:"visit_date" json:"visit_date"`
	Diagnosis     *string                `db:"diagnosis" json:"diagnosis,omitempty"`
	ParsedResults map[string]interface{} `db:"parsed_results" json:"parsed_results,omitempty"`
	Prescriptions []Prescription         `db:"prescriptions" json:"prescriptions,omitempty"`
	FileURL       *string                `db:"file_url" json:"file_url,omitempty"`
	AppointmentID *uuid.UUID             `db:"appointment_id" json:"appointment_id,omitempty"`
	CreatedAt     time.Time              `db:"created_at" json:"created_at"`
}

// Prescription is stored inside the doctor report's prescriptions JSONB column.
type Prescription struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage,omitempty"`
	Frequency string `json:"frequency,omitempty"`
	Duration  string `json:"duration,omitempty"`
}
