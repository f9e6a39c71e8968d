package report

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// =========== LabReport Repository ===========

type labRepoPG struct{ pool *pgxpool.Pool }

func NewLabReportRepoPG(pool *pgxpool.Pool) LabReportRepository {
	return &labRepoPG{pool: pool}
}

const labCols = `id, user_id, lab_name, visit_date, test_name, parsed_results, file_url, note, created_at`

func (r *labRepoPG) scanLab(row pgx.Row) (*LabReport, error) {
	var lr LabReport
	err := row.Scan(&lr.ID, &lr.UserID, &lr.LabName, &lr.VisitDate, &lr.TestName,
		&lr.ParsedResults, &lr.FileURL, &lr.Note, &lr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (r *labRepoPG) Create(ctx context.Context, lr *LabReport) error {
	lr.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lab_report (id, user_id, lab_name, visit_date, test_name, parsed_results, file_url, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		lr.ID, lr.UserID, lr.LabName, lr.VisitDate, lr.TestName, lr.ParsedResults, lr.FileURL, lr.Note)
	return err
}

func (r *labRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	return r.scanLab(r.pool.QueryRow(ctx, `SELECT `+labCols+` FROM lab_report WHERE id = $1`, id))
}

func (r *labRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lab_report WHERE id = $1`, id)
	return err
}

func (r *labRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*LabReport, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_report WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+labCols+` FROM lab_report WHERE user_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*LabReport
	for rows.Next() {
		lr, err := r.scanLab(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, lr)
	}
	return items, total, nil
}

// =========== DoctorReport Repository ===========

type doctorRepoPG struct{ pool *pgxpool.Pool }

func NewDoctorReportRepoPG(pool *pgxpool.Pool) DoctorReportRepository {
	return &doctorRepoPG{pool: pool}
}

const doctorCols = `id, user_id, doctor_name, specialty, visit_date, diagnosis, parsed_results,
	prescriptions, file_url, appointment_id, created_at`

func (r *doctorRepoPG) scanDoctor(row pgx.Row) (*DoctorReport, error) {
	var dr DoctorReport
	err := row.Scan(&dr.ID, &dr.UserID, &dr.DoctorName, &dr.Specialty, &dr.VisitDate,
		&dr.Diagnosis, &dr.ParsedResults, &dr.Prescriptions, &dr.FileURL,
		&dr.AppointmentID, &dr.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &dr, nil
}

func (r *doctorRepoPG) Create(ctx context.Context, dr *DoctorReport) error {
	dr.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO doctor_report (id, user_id, doctor_name, specialty, visit_date, diagnosis,
			parsed_results, prescriptions, file_url, appointment_id)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		dr.ID, dr.UserID, dr.DoctorName, dr.Specialty, dr.VisitDate, dr.Diagnosis,
		dr.ParsedResults, dr.Prescriptions, dr.FileURL, dr.AppointmentID)
	return err
}

func (r *doctorRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*DoctorReport, error) {
	return r.scanDoctor(r.pool.QueryRow(ctx, `SELECT `+doctorCols+` FROM doctor_report WHERE id = $1`, id))
}

func (r *doctorRepoPG) Update(ctx context.Context, dr *DoctorReport) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE doctor_report SET doctor_name=$2, specialty=$3, visit_date=$4, diagnosis=$5,
			parsed_results=$6, prescriptions=$7, file_url=$8, appointment_id=$9
		WHERE id = $1`,
		dr.ID, dr.DoctorName, dr.Specialty, dr.VisitDate, dr.Diagnosis,
		dr.ParsedResults, dr.Prescriptions, dr.FileURL, dr.AppointmentID)
	return err
}

func (r *doctorRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM doctor_report WHERE id = $1`, id)
	return err
}

func (r *doctorRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*DoctorReport, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM doctor_report WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, `SELECT `+doctorCols+` FROM doctor_report WHERE user_id = $1 ORDER BY visit_date DESC LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*DoctorReport
	for rows.Next() {
		dr, err := r.scanDoctor(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, dr)
	}
	return items, total, nil
}
