package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
)

func newTestHandler() (*Handler, *Service) {
	svc, _, _ := newTestService()
	return NewHandler(svc), svc
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func TestHandler_Signup(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	req := jsonRequest(http.MethodPost, "/auth/signup",
		`{"name":"Asha","email":"asha@example.com","password":"password123"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Signup(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["success"] != true {
		t.Error("expected success true")
	}
	raw := rec.Body.String()
	if strings.Contains(raw, "password_hash") || strings.Contains(raw, "otp") {
		t.Errorf("credential fields must not serialize: %s", raw)
	}
}

func TestHandler_Signup_DuplicateEmail(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler()
	svc.Signup(context.Background(), signupReq())

	req := jsonRequest(http.MethodPost, "/auth/signup",
		`{"name":"Asha","email":"asha@example.com","password":"password123"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Signup(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", err)
	}
}

func TestHandler_Login_BadCredentials(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	req := jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"ghost@example.com","password":"whatever1"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestHandler_Login_Unverified(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler()
	svc.Signup(context.Background(), signupReq())

	req := jsonRequest(http.MethodPost, "/auth/login",
		`{"email":"asha@example.com","password":"password123"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %v", err)
	}
}

func TestHandler_ForgotPassword_Always200(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	req := jsonRequest(http.MethodPost, "/auth/forgot-password", `{"email":"ghost@example.com"}`)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ForgotPassword(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetProfile(t *testing.T) {
	e := echo.New()
	h, svc := newTestHandler()
	u, _ := svc.Signup(context.Background(), signupReq())

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, u.ID.String())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.GetProfile(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetProfile_BadSubject(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.GetProfile(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	h, _ := newTestHandler()
	h.RegisterPublicRoutes(e.Group("/api"))
	h.RegisterRoutes(e.Group("/api"))

	routes := make(map[string]bool)
	for _, r := range e.Routes() {
		routes[r.Method+":"+r.Path] = true
	}

	expected := []string{
		"POST:/api/auth/signup",
		"POST:/api/auth/verify-otp",
		"POST:/api/auth/login",
		"POST:/api/auth/forgot-password",
		"POST:/api/auth/reset-password",
		"GET:/api/auth/profile",
		"PUT:/api/auth/profile",
	}
	for _, route := range expected {
		if !routes[route] {
			t.Errorf("missing route %s", route)
		}
	}
}
