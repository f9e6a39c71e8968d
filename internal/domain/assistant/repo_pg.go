package assistant

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== Consultation Repository ===========

type consultationRepoPG struct{ pool *pgxpool.Pool }

func NewConsultationRepoPG(pool *pgxpool.Pool) ConsultationRepository {
	return &consultationRepoPG{pool: pool}
}

const consultationCols = `id, user_id, kind, input, output, created_at`

func (r *consultationRepoPG) scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation
	if err := row.Scan(&c.ID, &c.UserID, &c.Kind, &c.Input, &c.Output, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *consultationRepoPG) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO consultation (id, user_id, kind, input, output)
		VALUES ($1,$2,$3,$4,$5)`,
		c.ID, c.UserID, c.Kind, c.Input, c.Output)
	return err
}

func (r *consultationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM consultation WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+consultationCols+` FROM consultation WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Consultation
	for rows.Next() {
		c, err := r.scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, nil
}

// =========== PrescriptionScan Repository ===========

type scanRepoPG struct{ pool *pgxpool.Pool }

func NewPrescriptionScanRepoPG(pool *pgxpool.Pool) PrescriptionScanRepository {
	return &scanRepoPG{pool: pool}
}

const scanCols = `id, user_id, image_url, medicines, raw_text, created_at`

func (r *scanRepoPG) scanScan(row pgx.Row) (*PrescriptionScan, error) {
	var s PrescriptionScan
	if err := row.Scan(&s.ID, &s.UserID, &s.ImageURL, &s.Medicines, &s.RawText, &s.CreatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *scanRepoPG) Create(ctx context.Context, s *PrescriptionScan) error {
	s.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO prescription_scan (id, user_id, image_url, medicines, raw_text)
		VALUES ($1,$2,$3,$4,$5)`,
		s.ID, s.UserID, s.ImageURL, s.Medicines, s.RawText)
	return err
}

func (r *scanRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*PrescriptionScan, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM prescription_scan WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+scanCols+` FROM prescription_scan WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*PrescriptionScan
	for rows.Next() {
		s, err := r.scanScan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, s)
	}
	return items, total, nil
}
