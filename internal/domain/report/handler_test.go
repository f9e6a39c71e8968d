package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
)

func authedContext(e *echo.Echo, req *http.Request, rec *httptest.ResponseRecorder, uid uuid.UUID) echo.Context {
	req = req.WithContext(context.WithValue(req.Context(), auth.UserIDKey, uid.String()))
	return e.NewContext(req, rec)
}

func TestHandler_CreateLabReport(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	uid := uuid.New()

	body := `{"lab_name":"City Diagnostics","visit_date":"2026-08-20T00:00:00Z","test_name":"CBC"}`
	req := httptest.NewRequest(http.MethodPost, "/lab-reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uid)

	if err := h.CreateLabReport(c); err != nil {
		t.Fatalf("CreateLabReport: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var resp struct {
		Success bool      `json:"success"`
		Data    LabReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Success {
		t.Error("expected success envelope")
	}
	if resp.Data.ID == uuid.Nil {
		t.Error("expected generated id")
	}
	if resp.Data.UserID != uid {
		t.Error("report should belong to the caller")
	}
}

func TestHandler_CreateLabReport_MissingLabName(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodPost, "/lab-reports", strings.NewReader(`{"visit_date":"2026-08-20T00:00:00Z"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uuid.New())

	err := h.CreateLabReport(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_CreateDoctorReport_LinksAppointment(t *testing.T) {
	svc, _, _, completer := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	uid := uuid.New()
	apptID := uuid.New()
	completer.userID = uid
	completer.provider = "Dr. Mehta"
	completer.date = time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	completer.matchID = apptID

	body := `{"doctor_name":"Dr. Mehta","visit_date":"2026-08-20T00:00:00Z","diagnosis":"seasonal flu"}`
	req := httptest.NewRequest(http.MethodPost, "/doctor-reports", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uid)

	if err := h.CreateDoctorReport(c); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	var resp struct {
		Data DoctorReport `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.AppointmentID == nil || *resp.Data.AppointmentID != apptID {
		t.Errorf("appointment_id = %v, want %s", resp.Data.AppointmentID, apptID)
	}
}

func TestHandler_GetDoctorReport_NotOwner(t *testing.T) {
	svc, _, doctors, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	dr := &DoctorReport{UserID: uuid.New(), DoctorName: "Dr. Mehta", VisitDate: visitDate()}
	if err := doctors.Create(context.Background(), dr); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/doctor-reports/"+dr.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uuid.New())
	c.SetParamNames("id")
	c.SetParamValues(dr.ID.String())

	err := h.GetDoctorReport(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestHandler_DeleteLabReport_Missing404(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	id := uuid.New()
	req := httptest.NewRequest(http.MethodDelete, "/lab-reports/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := authedContext(e, req, rec, uuid.New())
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.DeleteLabReport(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestHandler_NoAuth401(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/lab-reports", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.ListLabReports(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRegisterRoutes(t *testing.T) {
	svc, _, _, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	h.RegisterRoutes(e.Group("/api"))

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+":"+r.Path] = true
	}
	expected := []string{
		"GET:/api/lab-reports",
		"GET:/api/lab-reports/:id",
		"POST:/api/lab-reports",
		"DELETE:/api/lab-reports/:id",
		"GET:/api/doctor-reports",
		"GET:/api/doctor-reports/:id",
		"POST:/api/doctor-reports",
		"PUT:/api/doctor-reports/:id",
		"DELETE:/api/doctor-reports/:id",
	}
	for _, route := range expected {
		if !routes[route] {
			t.Errorf("missing route %s", route)
		}
	}
}
