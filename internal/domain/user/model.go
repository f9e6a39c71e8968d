package user

import (
	"time"

	"github.com/google/uuid"
)

// User maps to the users table. Credential and OTP fields never serialize.
type User struct {
	ID                uuid.UUID          `db:"id" json:"id"`
	Name              string             `db:"name" json:"name"`
	Email             string             `db:"email" json:"email"`
	PasswordHash      string             `db:"password_hash" json:"-"`
	Role              string             `db:"role" json:"role"`
	Verified          bool               `db:"verified" json:"verified"`
	OTPCode           *string            `db:"otp_code" json:"-"`
	OTPExpiresAt      *time.Time         `db:"otp_expires_at" json:"-"`
	Age               *int               `db:"age" json:"age,omitempty"`
	Gender            *string            `db:"gender" json:"gender,omitempty"`
	HeightCm          *float64           `db:"height_cm" json:"height_cm,omitempty"`
	WeightKg          *float64           `db:"weight_kg" json:"weight_kg,omitempty"`
	BloodGroup        *string            `db:"blood_group" json:"blood_group,omitempty"`
	ChronicConditions []string           `db:"chronic_conditions" json:"chronic_conditions,omitempty"`
	Story             *string            `db:"story" json:"story,omitempty"`
	EmergencyContacts []EmergencyContact `db:"emergency_contacts" json:"emergency_contacts,omitempty"`
	CreatedAt         time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `db:"updated_at" json:"updated_at"`
}

// EmergencyContact is stored inside the user's emergency_contacts JSONB column.
type EmergencyContact struct {
	Name     string `json:"name"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone"`
}

// SignupRequest is the payload for POST /api/auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// VerifyOTPRequest is the payload for POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the payload for POST /api/auth/forgot-password.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest is the payload for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ProfileUpdate carries the mutable profile fields for PUT /api/auth/profile.
// Pointer fields distinguish "not sent" from zero values.
type ProfileUpdate struct {
	Name              *string             `json:"name,omitempty"`
	Age               *int                `json:"age,omitempty"`
	Gender            *string             `json:"gender,omitempty"`
	HeightCm          *float64            `json:"height_cm,omitempty"`
	WeightKg          *float64            `json:"weight_kg,omitempty"`
	BloodGroup        *string             `json:"blood_group,omitempty"`
	ChronicConditions *[]string           `json:"chronic_conditions,omitempty"`
	Story             *string             `json:"story,omitempty"`
	EmergencyContacts *[]EmergencyContact `json:"emergency_contacts,omitempty"`
}

// AuthResponse is returned by verify-otp and login.
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
