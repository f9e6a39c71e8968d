package family

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

// =========== Family ===========

const familyCols = `id, admin_id, name, created_at`

func (r *repoPG) scanFamily(row pgx.Row) (*Family, error) {
	var f Family
	if err := row.Scan(&f.ID, &f.AdminID, &f.Name, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repoPG) CreateFamily(ctx context.Context, f *Family) error {
	f.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO family (id, admin_id, name) VALUES ($1,$2,$3)`,
		f.ID, f.AdminID, f.Name)
	return err
}

func (r *repoPG) GetFamilyByAdmin(ctx context.Context, adminID uuid.UUID) (*Family, error) {
	return r.scanFamily(r.pool.QueryRow(ctx, `SELECT `+familyCols+` FROM family WHERE admin_id = $1`, adminID))
}

// =========== Member ===========

const memberCols = `id, family_id, name, relation, kind, email, user_id, status, profile, created_at, updated_at`

func (r *repoPG) scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.FamilyID, &m.Name, &m.Relation, &m.Kind, &m.Email,
		&m.UserID, &m.Status, &m.Profile, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *repoPG) CreateMember(ctx context.Context, m *Member) error {
	m.ID = uuid.New()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO family_member (id, family_id, name, relation, kind, email, user_id, status, profile)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		m.ID, m.FamilyID, m.Name, m.Relation, m.Kind, m.Email, m.UserID, m.Status, m.Profile)
	return err
}

func (r *repoPG) GetMemberByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	return r.scanMember(r.pool.QueryRow(ctx, `SELECT `+memberCols+` FROM family_member WHERE id = $1`, id))
}

func (r *repoPG) UpdateMember(ctx context.Context, m *Member) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE family_member SET name=$2, relation=$3, email=$4, user_id=$5, status=$6,
			profile=$7, updated_at=NOW()
		WHERE id = $1`,
		m.ID, m.Name, m.Relation, m.Email, m.UserID, m.Status, m.Profile)
	return err
}

func (r *repoPG) DeleteMember(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM family_member WHERE id = $1`, id)
	return err
}

func (r *repoPG) ListMembers(ctx context.Context, familyID uuid.UUID) ([]*Member, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+memberCols+` FROM family_member WHERE family_id = $1 ORDER BY created_at ASC`, familyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, nil
}

func (r *repoPG) ListPendingByEmail(ctx context.Context, email string) ([]*Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberCols+` FROM family_member
		WHERE lower(email) = lower($1) AND status = $2
		ORDER BY created_at DESC`, email, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Member
	for rows.Next() {
		m, err := r.scanMember(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, nil
}
