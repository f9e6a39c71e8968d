package assistant

import (
	"time"

	"github.com/google/uuid"
)

// Consultation kinds, one per AI endpoint.
const (
	KindAnalyze      = "analyze"
	KindPrescription = "prescription"
	KindSummary      = "summary"
	KindLabReport    = "lab_report"
	KindQuestions    = "questions"
	KindLifestyle    = "lifestyle"
)

// Consultation is an append-only log row for every AI call: what was sent and
// what the model returned, stored verbatim as JSONB.
type Consultation struct {
	ID        uuid.UUID              `db:"id" json:"id"`
	UserID    uuid.UUID              `db:"user_id" json:"user_id"`
	Kind      string                 `db:"kind" json:"kind"`
	Input     map[string]interface{} `db:"input" json:"input,omitempty"`
	Output    map[string]interface{} `db:"output" json:"output,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
}

// PrescriptionScan maps to the prescription_scan table.
type PrescriptionScan struct {
	ID        uuid.UUID                `db:"id" json:"id"`
	UserID    uuid.UUID                `db:"user_id" json:"user_id"`
	ImageURL  *string                  `db:"image_url" json:"image_url,omitempty"`
	Medicines []map[string]interface{} `db:"medicines" json:"medicines,omitempty"`
	RawText   *string                  `db:"raw_text" json:"raw_text,omitempty"`
	CreatedAt time.Time                `db:"created_at" json:"created_at"`
}

type AnalyzeRequest struct {
	Text string `json:"text"`
}

type PrescriptionRequest struct {
	// Image is a base64 data URL, e.g. "data:image/png;base64,...".
	Image    string  `json:"image"`
	ImageURL *string `json:"image_url,omitempty"`
}

type SummarizeRequest struct {
	Text string `json:"text"`
	// EntryID, when set, stores the generated summary on that diary entry.
	EntryID *uuid.UUID `json:"entry_id,omitempty"`
}

type LabReportRequest struct {
	Image string `json:"image,omitempty"`
	Text  string `json:"text,omitempty"`
}

type QuestionsRequest struct {
	Context string `json:"context"`
}

type LifestyleRequest struct {
	Profile      map[string]interface{}   `json:"profile,omitempty"`
	Measurements []map[string]interface{} `json:"measurements,omitempty"`
}
