package measurement

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const measurementCols = `id, user_id, date, readings, note, created_at, updated_at`

func (r *repoPG) scanMeasurement(row pgx.Row) (*Measurement, error) {
	var m Measurement
	err := row.Scan(&m.ID, &m.UserID, &m.Date, &m.Readings, &m.Note, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repoPG) Create(ctx context.Context, m *Measurement) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO measurements (id, user_id, date, readings, note)
		VALUES ($1,$2,$3,$4,$5)`,
		m.ID, m.UserID, m.Date, m.Readings, m.Note)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Measurement, error) {
	return r.scanMeasurement(r.pool.QueryRow(ctx, `SELECT `+measurementCols+` FROM measurements WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, m *Measurement) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE measurements SET date=$2, readings=$3, note=$4, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Date, m.Readings, m.Note)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM measurements WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter, limit, offset int) ([]*Measurement, int, error) {
	query := `SELECT ` + measurementCols + ` FROM measurements WHERE user_id = $1`
	countQuery := `SELECT COUNT(*) FROM measurements WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2

	if filter.From != nil {
		query += fmt.Sprintf(` AND date >= $%d`, idx)
		countQuery += fmt.Sprintf(` AND date >= $%d`, idx)
		args = append(args, *filter.From)
		idx++
	}
	if filter.To != nil {
		query += fmt.Sprintf(` AND date <= $%d`, idx)
		countQuery += fmt.Sprintf(` AND date <= $%d`, idx)
		args = append(args, *filter.To)
		idx++
	}
	if filter.Type != "" {
		// JSONB containment against the readings array.
		needle, _ := json.Marshal([]map[string]string{{"type": filter.Type}})
		query += fmt.Sprintf(` AND readings @> $%d`, idx)
		countQuery += fmt.Sprintf(` AND readings @> $%d`, idx)
		args = append(args, string(needle))
		idx++
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Measurement
	for rows.Next() {
		m, err := r.scanMeasurement(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, m)
	}
	return items, total, nil
}
