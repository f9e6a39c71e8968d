package user

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/mailer"
)

type mockRepo struct{ store map[uuid.UUID]*User }

func newMockRepo() *mockRepo { return &mockRepo{store: make(map[uuid.UUID]*User)} }
func (m *mockRepo) Create(_ context.Context, u *User) error {
	u.ID = uuid.New(); u.CreatedAt = time.Now(); m.store[u.ID] = u; return nil
}
func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.store[id]; if !ok { return nil, fmt.Errorf("not found") }; return u, nil
}
func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.store { if strings.EqualFold(u.Email, email) { return u, nil } }; return nil, fmt.Errorf("not found")
}
func (m *mockRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.store[u.ID]; !ok { return fmt.Errorf("not found") }; m.store[u.ID] = u; return nil
}

func newTestService() (*Service, *mockRepo, *mailer.MockEmailSender) {
	repo := newMockRepo()
	mail := &mailer.MockEmailSender{}
	issuer := auth.NewTokenIssuer([]byte("test-secret"), time.Hour)
	svc := NewService(repo, issuer, mail, mailer.NewTemplateEngine(), zerolog.New(os.Stderr))
	return svc, repo, mail
}

func signupReq() SignupRequest {
	return SignupRequest{Name: "Asha", Email: "asha@example.com", Password: "password123"}
}

func TestSignup_Success(t *testing.T) {
	svc, _, mail := newTestService()
	u, err := svc.Signup(context.Background(), signupReq())
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if u.Verified { t.Error("new user must not be verified") }
	if u.Role != "user" { t.Errorf("expected default role 'user', got %q", u.Role) }
	if u.OTPCode == nil || len(*u.OTPCode) != 6 { t.Error("expected a 6-digit OTP") }
	if u.PasswordHash == "password123" { t.Error("password must be hashed") }
	if len(mail.Calls()) != 1 { t.Errorf("expected 1 email, got %d", len(mail.Calls())) }
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	svc.Signup(context.Background(), signupReq())
	_, err := svc.Signup(context.Background(), signupReq())
	if err != ErrEmailTaken { t.Fatalf("expected ErrEmailTaken, got %v", err) }
}

func TestSignup_ShortPassword(t *testing.T) {
	svc, _, _ := newTestService()
	req := signupReq()
	req.Password = "short"
	if _, err := svc.Signup(context.Background(), req); err == nil { t.Fatal("expected error") }
}

func TestSignup_BadEmail(t *testing.T) {
	svc, _, _ := newTestService()
	req := signupReq()
	req.Email = "not-an-email"
	if _, err := svc.Signup(context.Background(), req); err == nil { t.Fatal("expected error") }
}

func TestVerifyOTP_Success(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())

	resp, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: u.Email, Code: *u.OTPCode})
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if resp.Token == "" { t.Error("expected a JWT") }
	if !resp.User.Verified { t.Error("expected user to be verified") }
	if resp.User.OTPCode != nil { t.Error("expected OTP to be cleared") }
}

func TestVerifyOTP_WrongCode(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	if _, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: u.Email, Code: "000000"}); err != ErrBadOTP {
		t.Fatalf("expected ErrBadOTP, got %v", err)
	}
}

func TestVerifyOTP_Expired(t *testing.T) {
	svc, repo, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	past := time.Now().Add(-time.Minute)
	u.OTPExpiresAt = &past
	repo.store[u.ID] = u

	if _, err := svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: u.Email, Code: *u.OTPCode}); err != ErrBadOTP {
		t.Fatalf("expected ErrBadOTP for expired code, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: u.Email, Code: *u.OTPCode})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: u.Email, Password: "password123"})
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if resp.Token == "" { t.Error("expected a JWT") }
}

func TestLogin_BadPassword(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: u.Email, Code: *u.OTPCode})

	if _, err := svc.Login(context.Background(), LoginRequest{Email: u.Email, Password: "wrong-password"}); err != ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever1"}); err != ErrBadCredentials {
		t.Fatalf("expected ErrBadCredentials, got %v", err)
	}
}

func TestLogin_UnverifiedResendsOTP(t *testing.T) {
	svc, _, mail := newTestService()
	svc.Signup(context.Background(), signupReq())

	_, err := svc.Login(context.Background(), LoginRequest{Email: "asha@example.com", Password: "password123"})
	if err != ErrNotVerified { t.Fatalf("expected ErrNotVerified, got %v", err) }
	// Signup email plus the re-sent verification code.
	if len(mail.Calls()) != 2 { t.Errorf("expected 2 emails, got %d", len(mail.Calls())) }
}

func TestForgotPassword_UnknownEmailSilent(t *testing.T) {
	svc, _, mail := newTestService()
	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("forgot-password must not leak account existence: %v", err)
	}
	if len(mail.Calls()) != 0 { t.Error("no email should be sent for unknown accounts") }
}

func TestResetPassword_Success(t *testing.T) {
	svc, repo, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	svc.VerifyOTP(context.Background(), VerifyOTPRequest{Email: u.Email, Code: *u.OTPCode})
	svc.ForgotPassword(context.Background(), u.Email)

	stored := repo.store[u.ID]
	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email: u.Email, Code: *stored.OTPCode, NewPassword: "newpassword1",
	})
	if err != nil { t.Fatalf("unexpected error: %v", err) }

	if _, err := svc.Login(context.Background(), LoginRequest{Email: u.Email, Password: "newpassword1"}); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
}

func TestResetPassword_BadCode(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	svc.ForgotPassword(context.Background(), u.Email)

	err := svc.ResetPassword(context.Background(), ResetPasswordRequest{
		Email: u.Email, Code: "999999", NewPassword: "newpassword1",
	})
	if err != ErrBadOTP { t.Fatalf("expected ErrBadOTP, got %v", err) }
}

func TestUpdateProfile_MergesFields(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())

	age := 34
	group := "O+"
	updated, err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Age: &age, BloodGroup: &group})
	if err != nil { t.Fatalf("unexpected error: %v", err) }
	if updated.Age == nil || *updated.Age != 34 { t.Error("age not updated") }
	if updated.BloodGroup == nil || *updated.BloodGroup != "O+" { t.Error("blood group not updated") }
	if updated.Name != "Asha" { t.Error("untouched fields must survive the merge") }
}

func TestUpdateProfile_EmptyName(t *testing.T) {
	svc, _, _ := newTestService()
	u, _ := svc.Signup(context.Background(), signupReq())
	empty := ""
	if _, err := svc.UpdateProfile(context.Background(), u.ID, ProfileUpdate{Name: &empty}); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.GetProfile(context.Background(), uuid.New()); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
