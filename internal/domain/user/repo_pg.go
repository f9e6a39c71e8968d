package user

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const userCols = `id, name, email, password_hash, role, verified, otp_code, otp_expires_at,
	age, gender, height_cm, weight_kg, blood_group, chronic_conditions, story,
	emergency_contacts, created_at, updated_at`

func (r *repoPG) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Verified,
		&u.OTPCode, &u.OTPExpiresAt, &u.Age, &u.Gender, &u.HeightCm, &u.WeightKg,
		&u.BloodGroup, &u.ChronicConditions, &u.Story, &u.EmergencyContacts,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repoPG) Create(ctx context.Context, u *User) error {
	u.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, role, verified, otp_code, otp_expires_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Verified, u.OTPCode, u.OTPExpiresAt)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id))
}

func (r *repoPG) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE lower(email) = lower($1)`, email))
}

func (r *repoPG) Update(ctx context.Context, u *User) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET name=$2, password_hash=$3, verified=$4, otp_code=$5, otp_expires_at=$6,
			age=$7, gender=$8, height_cm=$9, weight_kg=$10, blood_group=$11,
			chronic_conditions=$12, story=$13, emergency_contacts=$14, updated_at=NOW()
		WHERE id = $1`,
		u.ID, u.Name, u.PasswordHash, u.Verified, u.OTPCode, u.OTPExpiresAt,
		u.Age, u.Gender, u.HeightCm, u.WeightKg, u.BloodGroup,
		u.ChronicConditions, u.Story, u.EmergencyContacts)
	return err
}
