package assistant

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/ai"
)

// ErrUpstream covers provider failures and unparseable model output; handlers
// map it to 502.
var ErrUpstream = errors.New("ai provider error")

const analyzePrompt = `You are a medical assistant. Analyze the following symptoms or report text and respond with JSON only, shaped as {"conditions": [...], "severity": "low|medium|high", "recommendations": [...], "see_doctor": true|false}.

Text:
%s`

const prescriptionPrompt = `Extract the medicines from this prescription image. Respond with JSON only, shaped as {"medicines": [{"name": "", "dosage": "", "frequency": "", "duration": ""}], "notes": ""}.`

const summaryPrompt = `Summarize the following diary entry in two sentences and classify the writer's mood as one of great, good, okay, low, bad. Respond with JSON only, shaped as {"summary": "", "mood": ""}.

Entry:
%s`

const labReportPrompt = `Extract the test results from this lab report. Respond with JSON only, shaped as {"tests": [{"name": "", "value": "", "unit": "", "reference_range": "", "flag": "normal|high|low"}], "summary": ""}.`

const questionsPrompt = `A patient is preparing for a doctor visit. Based on the context below, respond with JSON only, shaped as {"questions": ["..."]} listing 5 to 8 questions worth asking.

Context:
%s`

const lifestylePrompt = `You are a preventive-health assistant. Based on the profile and recent measurements below, respond with JSON only, shaped as {"risk_score": 0-100, "risks": [...], "recommendations": [...]}.

%s`

// DiarySummarizer lets the summarize endpoint write the result back onto a
// diary entry without importing the diary package.
type DiarySummarizer interface {
	SetSummary(ctx context.Context, userID, id uuid.UUID, summary string) error
}

type Service struct {
	consultations ConsultationRepository
	scans         PrescriptionScanRepository
	gen           ai.Generator
	diary         DiarySummarizer
	logger        zerolog.Logger
}

func NewService(consultations ConsultationRepository, scans PrescriptionScanRepository, gen ai.Generator, diary DiarySummarizer, logger zerolog.Logger) *Service {
	return &Service{consultations: consultations, scans: scans, gen: gen, diary: diary, logger: logger}
}

func (s *Service) Analyze(ctx context.Context, userID uuid.UUID, req AnalyzeRequest) (map[string]interface{}, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	out, err := s.generate(ctx, fmt.Sprintf(analyzePrompt, req.Text))
	if err != nil {
		return nil, err
	}
	s.logConsultation(ctx, userID, KindAnalyze, map[string]interface{}{"text": req.Text}, out)
	return out, nil
}

func (s *Service) AnalyzePrescription(ctx context.Context, userID uuid.UUID, req PrescriptionRequest) (map[string]interface{}, error) {
	mimeType, data, err := parseDataURL(req.Image)
	if err != nil {
		return nil, err
	}
	text, err := s.gen.GenerateWithImage(ctx, prescriptionPrompt, mimeType, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	out, err := ai.DecodeModelJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	scan := &PrescriptionScan{UserID: userID, ImageURL: req.ImageURL, Medicines: medicinesFrom(out)}
	if raw, ok := out["notes"].(string); ok && raw != "" {
		scan.RawText = &raw
	}
	if err := s.scans.Create(ctx, scan); err != nil {
		s.logger.Error().Err(err).Msg("store prescription scan")
	}
	s.logConsultation(ctx, userID, KindPrescription, map[string]interface{}{"image_url": req.ImageURL}, out)
	return out, nil
}

func (s *Service) Summarize(ctx context.Context, userID uuid.UUID, req SummarizeRequest) (map[string]interface{}, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	out, err := s.generate(ctx, fmt.Sprintf(summaryPrompt, req.Text))
	if err != nil {
		return nil, err
	}
	if req.EntryID != nil && s.diary != nil {
		if summary, ok := out["summary"].(string); ok && summary != "" {
			if err := s.diary.SetSummary(ctx, userID, *req.EntryID, summary); err != nil {
				s.logger.Error().Err(err).Str("entry_id", req.EntryID.String()).Msg("store diary summary")
			}
		}
	}
	s.logConsultation(ctx, userID, KindSummary, map[string]interface{}{"text": req.Text}, out)
	return out, nil
}

func (s *Service) AnalyzeLabReport(ctx context.Context, userID uuid.UUID, req LabReportRequest) (map[string]interface{}, error) {
	var (
		out map[string]interface{}
		err error
	)
	switch {
	case req.Image != "":
		var mimeType string
		var data []byte
		mimeType, data, err = parseDataURL(req.Image)
		if err != nil {
			return nil, err
		}
		var text string
		text, err = s.gen.GenerateWithImage(ctx, labReportPrompt, mimeType, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
		out, err = ai.DecodeModelJSON(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
		}
	case strings.TrimSpace(req.Text) != "":
		out, err = s.generate(ctx, labReportPrompt+"\n\nReport text:\n"+req.Text)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("image or text is required")
	}
	s.logConsultation(ctx, userID, KindLabReport, map[string]interface{}{"text": req.Text}, out)
	return out, nil
}

func (s *Service) GenerateQuestions(ctx context.Context, userID uuid.UUID, req QuestionsRequest) (map[string]interface{}, error) {
	if strings.TrimSpace(req.Context) == "" {
		return nil, fmt.Errorf("context is required")
	}
	out, err := s.generate(ctx, fmt.Sprintf(questionsPrompt, req.Context))
	if err != nil {
		return nil, err
	}
	s.logConsultation(ctx, userID, KindQuestions, map[string]interface{}{"context": req.Context}, out)
	return out, nil
}

func (s *Service) AnalyzeLifestyle(ctx context.Context, userID uuid.UUID, req LifestyleRequest) (map[string]interface{}, error) {
	if len(req.Profile) == 0 && len(req.Measurements) == 0 {
		return nil, fmt.Errorf("profile or measurements are required")
	}
	input := map[string]interface{}{"profile": req.Profile, "measurements": req.Measurements}
	encoded, err := json.Marshal(input)
	if err != nil {
		return nil, err
	}
	out, err := s.generate(ctx, fmt.Sprintf(lifestylePrompt, encoded))
	if err != nil {
		return nil, err
	}
	s.logConsultation(ctx, userID, KindLifestyle, input, out)
	return out, nil
}

func (s *Service) History(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	return s.consultations.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) Scans(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*PrescriptionScan, int, error) {
	return s.scans.ListByUser(ctx, userID, limit, offset)
}

func (s *Service) generate(ctx context.Context, prompt string) (map[string]interface{}, error) {
	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	out, err := ai.DecodeModelJSON(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return out, nil
}

// logConsultation is best effort: a failed insert never fails the AI call.
func (s *Service) logConsultation(ctx context.Context, userID uuid.UUID, kind string, input, output map[string]interface{}) {
	c := &Consultation{UserID: userID, Kind: kind, Input: input, Output: output}
	if err := s.consultations.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Str("kind", kind).Msg("store consultation")
	}
}

func medicinesFrom(out map[string]interface{}) []map[string]interface{} {
	raw, ok := out["medicines"].([]interface{})
	if !ok {
		return nil
	}
	var meds []map[string]interface{}
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			meds = append(meds, m)
		}
	}
	return meds
}

// parseDataURL splits "data:<mime>;base64,<payload>" into its parts.
func parseDataURL(s string) (string, []byte, error) {
	if !strings.HasPrefix(s, "data:") {
		return "", nil, fmt.Errorf("image must be a base64 data URL")
	}
	rest := strings.TrimPrefix(s, "data:")
	meta, payload, found := strings.Cut(rest, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return "", nil, fmt.Errorf("image must be a base64 data URL")
	}
	mimeType := strings.TrimSuffix(meta, ";base64")
	if mimeType == "" {
		mimeType = "image/png"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return mimeType, data, nil
}
