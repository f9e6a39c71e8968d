package diary

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

const diaryCols = `id, user_id, date, content, summary, mood, tags, created_at, updated_at`

func (r *repoPG) scanEntry(row pgx.Row) (*DiaryEntry, error) {
	var d DiaryEntry
	err := row.Scan(&d.ID, &d.UserID, &d.Date, &d.Content, &d.Summary, &d.Mood,
		&d.Tags, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *repoPG) Create(ctx context.Context, d *DiaryEntry) error {
	d.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO diary_entry (id, user_id, date, content, summary, mood, tags)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		d.ID, d.UserID, d.Date, d.Content, d.Summary, d.Mood, d.Tags)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*DiaryEntry, error) {
	return r.scanEntry(r.pool.QueryRow(ctx, `SELECT `+diaryCols+` FROM diary_entry WHERE id = $1`, id))
}

func (r *repoPG) Update(ctx context.Context, d *DiaryEntry) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE diary_entry SET date=$2, content=$3, summary=$4, mood=$5, tags=$6, updated_at=NOW()
		WHERE id = $1`,
		d.ID, d.Date, d.Content, d.Summary, d.Mood, d.Tags)
	return err
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM diary_entry WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListByUser(ctx context.Context, userID uuid.UUID, mood string, limit, offset int) ([]*DiaryEntry, int, error) {
	query := `SELECT ` + diaryCols + ` FROM diary_entry WHERE user_id = $1`
	countQuery := `SELECT COUNT(*) FROM diary_entry WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2

	if mood != "" {
		query += fmt.Sprintf(` AND mood = $%d`, idx)
		countQuery += fmt.Sprintf(` AND mood = $%d`, idx)
		args = append(args, mood)
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
	var items []*DiaryEntry
	for rows.Next() {
		d, err := r.scanEntry(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, d)
	}
	return items, total, nil
}
