package family

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for families and their members.
type Repository interface {
	CreateFamily(ctx context.Context, f *Family) error
	GetFamilyByAdmin(ctx context.Context, adminID uuid.UUID) (*Family, error)

	CreateMember(ctx context.Context, m *Member) error
	GetMemberByID(ctx context.Context, id uuid.UUID) (*Member, error)
	UpdateMember(ctx context.Context, m *Member) error
	DeleteMember(ctx context.Context, id uuid.UUID) error
	ListMembers(ctx context.Context, familyID uuid.UUID) ([]*Member, error)
	ListPendingByEmail(ctx context.Context, email string) ([]*Member, error)
}
