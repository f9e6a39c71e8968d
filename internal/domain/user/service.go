package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/auth"
	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/mailer"
)

var (
	ErrEmailTaken     = errors.New("email is already registered")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrNotVerified    = errors.New("account is not verified")
	ErrBadOTP         = errors.New("invalid or expired code")
	ErrNotFound       = errors.New("user not found")
)

const otpTTL = 10 * time.Minute

type Service struct {
	repo      Repository
	issuer    *auth.TokenIssuer
	mail      mailer.EmailSender
	templates *mailer.TemplateEngine
	logger    zerolog.Logger
}

func NewService(repo Repository, issuer *auth.TokenIssuer, mail mailer.EmailSender, templates *mailer.TemplateEngine, logger zerolog.Logger) *Service {
	return &Service{repo: repo, issuer: issuer, mail: mail, templates: templates, logger: logger}
}

func (s *Service) Signup(ctx context.Context, req SignupRequest) (*User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	if existing, err := s.repo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         "user",
		Verified:     false,
	}
	if err := s.setOTP(u); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.sendOTPEmail(ctx, u, "verify-otp")
	return u, nil
}

func (s *Service) VerifyOTP(ctx context.Context, req VerifyOTPRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, ErrBadOTP
	}
	if !s.otpValid(u, req.Code) {
		return nil, ErrBadOTP
	}

	u.Verified = true
	u.OTPCode = nil
	u.OTPExpiresAt = nil
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return nil, ErrBadCredentials
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrBadCredentials
	}
	if !u.Verified {
		// Re-send a fresh code so the user can finish verification.
		if err := s.setOTP(u); err == nil {
			if err := s.repo.Update(ctx, u); err == nil {
				s.sendOTPEmail(ctx, u, "verify-otp")
			}
		}
		return nil, ErrNotVerified
	}

	token, err := s.issuer.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{Token: token, User: u}, nil
}

// ForgotPassword never reports whether the account exists.
func (s *Service) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		return nil
	}
	if err := s.setOTP(u); err != nil {
		return nil
	}
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.Error().Err(err).Msg("failed to store reset code")
		return nil
	}
	s.sendOTPEmail(ctx, u, "password-reset")
	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if len(req.NewPassword) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		return ErrBadOTP
	}
	if !s.otpValid(u, req.Code) {
		return ErrBadOTP
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.OTPCode = nil
	u.OTPExpiresAt = nil
	return s.repo.Update(ctx, u)
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateProfile merges the supplied fields into the stored profile.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, upd ProfileUpdate) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrNotFound
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		u.Name = *upd.Name
	}
	if upd.Age != nil {
		u.Age = upd.Age
	}
	if upd.Gender != nil {
		u.Gender = upd.Gender
	}
	if upd.HeightCm != nil {
		u.HeightCm = upd.HeightCm
	}
	if upd.WeightKg != nil {
		u.WeightKg = upd.WeightKg
	}
	if upd.BloodGroup != nil {
		u.BloodGroup = upd.BloodGroup
	}
	if upd.ChronicConditions != nil {
		u.ChronicConditions = *upd.ChronicConditions
	}
	if upd.Story != nil {
		u.Story = upd.Story
	}
	if upd.EmergencyContacts != nil {
		u.EmergencyContacts = *upd.EmergencyContacts
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) setOTP(u *User) error {
	code, err := auth.GenerateOTP()
	if err != nil {
		return err
	}
	expires := time.Now().Add(otpTTL)
	u.OTPCode = &code
	u.OTPExpiresAt = &expires
	return nil
}

func (s *Service) otpValid(u *User, code string) bool {
	if u.OTPCode == nil || u.OTPExpiresAt == nil {
		return false
	}
	if code == "" || *u.OTPCode != code {
		return false
	}
	return time.Now().Before(*u.OTPExpiresAt)
}

// sendOTPEmail delivers the code; a mail failure must not fail the request.
func (s *Service) sendOTPEmail(ctx context.Context, u *User, templateID string) {
	subject, body, err := s.templates.Render(templateID, map[string]string{
		"name": u.Name,
		"otp":  derefOTP(u.OTPCode),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("template", templateID).Msg("render email")
		return
	}
	if err := s.mail.SendEmail(ctx, u.Email, subject, body); err != nil {
		s.logger.Error().Err(err).Str("email", u.Email).Msg("send email")
	}
}

func derefOTP(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
