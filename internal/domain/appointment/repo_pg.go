package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const apptCols = `id, user_id, provider_name, type, date, time, location, reason, status, notes, created_at, updated_at`

func (r *repoPG) scanAppt(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.ProviderName, &a.Type, &a.Date, &a.Time,
		&a.Location, &a.Reason, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointment (id, user_id, provider_name, type, date, time, location, reason, status, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.UserID, a.ProviderName, a.Type, a.Date, a.Time, a.Location, a.Reason, a.Status, a.Notes)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return r.scanAppt(r.pool.QueryRow(ctx, `SELECT `+apptCols+` FROM appointment WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE appointment SET provider_name=$2, type=$3, date=$4, time=$5, location=$6,
			reason=$7, status=$8, notes=$9, updated_at=NOW()
		WHERE id = $1`,
		a.ID, a.ProviderName, a.Type, a.Date, a.Time, a.Location, a.Reason, a.Status, a.Notes)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*Appointment, int, error) {
	query := `SELECT ` + apptCols + ` FROM appointment WHERE user_id = $1`
	countQuery := `SELECT COUNT(*) FROM appointment WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2

	if filter.Status != "" {
		query += fmt.Sprintf(` AND status = $%d`, idx)
		countQuery += fmt.Sprintf(` AND status = $%d`, idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(` AND type = $%d`, idx)
		countQuery += fmt.Sprintf(` AND type = $%d`, idx)
		args = append(args, filter.Type)
		idx++
	}
	if filter.Upcoming {
		query += ` AND date >= CURRENT_DATE`
		countQuery += ` AND date >= CURRENT_DATE`
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY date ASC, time ASC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Appointment
	for rows.Next() {
		a, err := r.scanAppt(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, a)
	}
	return items, total, nil
}

// FindByProviderAndDate matches on calendar date and case-insensitive provider
// name; used to link doctor reports to the visit they describe.
func (r *repoPG) FindByProviderAndDate(ctx context.Context, userID uuid.UUID, providerName string, date time.Time) (*Appointment, error) {
	return r.scanAppt(r.pool.QueryRow(ctx, `
		SELECT `+apptCols+` FROM appointment
		WHERE user_id = $1 AND lower(provider_name) = lower($2) AND date::date = $3::date
		ORDER BY created_at DESC LIMIT 1`,
		userID, providerName, date))
}
