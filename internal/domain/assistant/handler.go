package assistant

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/pkg/pagination"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/ai/analyze", h.Analyze)
	g.POST("/ai/analyze-prescription", h.AnalyzePrescription)
	// Path spelling is kept for client compatibility.
	g.POST("/ai/summerizer", h.Summarize)
	g.POST("/ai/analyze-lab-report", h.AnalyzeLabReport)
	g.POST("/ai/generate-questions", h.GenerateQuestions)
	g.POST("/ai/analyze-lifestyle", h.AnalyzeLifestyle)
	g.GET("/ai/consultations", h.History)
	g.GET("/ai/prescriptions", h.Scans)
}

func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	return h.run(c, &req, func(uid uuid.UUID) (map[string]interface{}, error) {
		return h.svc.Analyze(c.Request().Context(), uid, req)
	})
}

func (h *Handler) AnalyzePrescription(c echo.Context) error {
	var req PrescriptionRequest
	return h.run(c, &req, func(uid uuid.UUID) (map[string]interface{}, error) {
		return h.svc.AnalyzePrescription(c.Request().Context(), uid, req)
	})
}

func (h *Handler) Summarize(c echo.Context) error {
	var req SummarizeRequest
	return h.run(c, &req, func(uid uuid.UUID) (map[string]interface{}, error) {
		return h.svc.Summarize(c.Request().Context(), uid, req)
	})
}

func (h *Handler) AnalyzeLabReport(c echo.Context) error {
	var req LabReportRequest
	return h.run(c, &req, func(uid uuid.UUID) (map[string]interface{}, error) {
		return h.svc.AnalyzeLabReport(c.Request().Context(), uid, req)
	})
}

func (h *Handler) GenerateQuestions(c echo.Context) error {
	var req QuestionsRequest
	return h.run(c, &req, func(uid uuid.UUID) (map[string]interface{}, error) {
		return h.svc.GenerateQuestions(c.Request().Context(), uid, req)
	})
}

func (h *Handler) AnalyzeLifestyle(c echo.Context) error {
	var req LifestyleRequest
	return h.run(c, &req, func(uid uuid.UUID) (map[string]interface{}, error) {
		return h.svc.AnalyzeLifestyle(c.Request().Context(), uid, req)
	})
}

func (h *Handler) History(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.History(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return response.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Scans(c echo.Context) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.Scans(c.Request().Context(), uid, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return response.OK(c, http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

// run binds the request, resolves the caller and maps service errors to
// status codes shared by every AI endpoint.
func (h *Handler) run(c echo.Context, req interface{}, call func(uid uuid.UUID) (map[string]interface{}, error)) error {
	uid, err := callerID(c)
	if err != nil {
		return err
	}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	out, err := call(uid)
	if err != nil {
		if errors.Is(err, ErrUpstream) {
			return echo.NewHTTPError(http.StatusBadGateway, "ai provider error")
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return response.OK(c, http.StatusOK, out)
}

func callerID(c echo.Context) (uuid.UUID, error) {
	uid, err := uuid.Parse(auth.UserIDFromContext(c.Request().Context()))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
	}
	return uid, nil
}
