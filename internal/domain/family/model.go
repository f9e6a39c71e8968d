package family

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindManaged = "managed"
	KindLinked  = "linked"
)

const (
	StatusActive  = "active"
	StatusPending = "pending"
)

// Family maps to the family table. One family per admin user, created lazily
// on the first member operation.
type Family struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AdminID   uuid.UUID `db:"admin_id" json:"admin_id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Member maps to the family_member table. Managed members carry no UserID;
// linked members bind one after the invite is accepted.
type Member struct {
	ID        uuid.UUID              `db:"id" json:"id"`
	FamilyID  uuid.UUID              `db:"family_id" json:"family_id"`
	Name      string                 `db:"name" json:"name"`
	Relation  *string                `db:"relation" json:"relation,omitempty"`
	Kind      string                 `db:"kind" json:"kind"`
	Email     *string                `db:"email" json:"email,omitempty"`
	UserID    *uuid.UUID             `db:"user_id" json:"user_id,omitempty"`
	Status    string                 `db:"status" json:"status"`
	Profile   map[string]interface{} `db:"profile" json:"profile,omitempty"`
	CreatedAt time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt time.Time              `db:"updated_at" json:"updated_at"`
}

// InviteRequest is the payload for inviting a linked member.
type InviteRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Relation string `json:"relation"`
}

// MemberUpdate carries the admin-editable member fields.
type MemberUpdate struct {
	Name     *string                 `json:"name,omitempty"`
	Relation *string                 `json:"relation,omitempty"`
	Profile  *map[string]interface{} `json:"profile,omitempty"`
}

// FamilyView is the aggregate returned by the family listing endpoint.
type FamilyView struct {
	Family  *Family   `json:"family"`
	Members []*Member `json:"members"`
}
