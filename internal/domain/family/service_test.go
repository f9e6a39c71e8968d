package family

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/mailer"
)

type mockRepo struct {
	families map[uuid.UUID]*Family
	members  map[uuid.UUID]*Member
}

func newMockRepo() *mockRepo {
	return &mockRepo{families: map[uuid.UUID]*Family{}, members: map[uuid.UUID]*Member{}}
}

func (m *mockRepo) CreateFamily(ctx context.Context, f *Family) error {
	f.ID = uuid.New()
	f.CreatedAt = time.Now()
	m.families[f.ID] = f
	return nil
}
func (m *mockRepo) GetFamilyByAdmin(ctx context.Context, adminID uuid.UUID) (*Family, error) {
	for _, f := range m.families {
		if f.AdminID == adminID {
			return f, nil
		}
	}
	return nil, errors.New("no rows")
}
func (m *mockRepo) CreateMember(ctx context.Context, mem *Member) error {
	mem.ID = uuid.New()
	mem.CreatedAt = time.Now()
	m.members[mem.ID] = mem
	return nil
}
func (m *mockRepo) GetMemberByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return mem, nil
}
func (m *mockRepo) UpdateMember(ctx context.Context, mem *Member) error {
	m.members[mem.ID] = mem
	return nil
}
func (m *mockRepo) DeleteMember(ctx context.Context, id uuid.UUID) error {
	delete(m.members, id)
	return nil
}
func (m *mockRepo) ListMembers(ctx context.Context, familyID uuid.UUID) ([]*Member, error) {
	var items []*Member
	for _, mem := range m.members {
		if mem.FamilyID == familyID {
			items = append(items, mem)
		}
	}
	return items, nil
}
func (m *mockRepo) ListPendingByEmail(ctx context.Context, email string) ([]*Member, error) {
	var items []*Member
	for _, mem := range m.members {
		if mem.Email != nil && *mem.Email == email && mem.Status == StatusPending {
			items = append(items, mem)
		}
	}
	return items, nil
}

func newTestService() (*Service, *mockRepo, *mailer.MockEmailSender) {
	repo := newMockRepo()
	mail := &mailer.MockEmailSender{}
	svc := NewService(repo, mail, mailer.NewTemplateEngine(), zerolog.Nop())
	return svc, repo, mail
}

func TestGetFamily_CreatesLazily(t *testing.T) {
	svc, repo, _ := newTestService()
	admin := uuid.New()

	view, err := svc.GetFamily(context.Background(), admin)
	if err != nil {
		t.Fatalf("GetFamily: %v", err)
	}
	if view.Family.AdminID != admin {
		t.Error("family should belong to the caller")
	}
	if len(repo.families) != 1 {
		t.Errorf("families = %d, want 1", len(repo.families))
	}

	again, err := svc.GetFamily(context.Background(), admin)
	if err != nil {
		t.Fatalf("GetFamily second call: %v", err)
	}
	if again.Family.ID != view.Family.ID {
		t.Error("second call should reuse the existing family")
	}
}

func TestAddManagedMember(t *testing.T) {
	svc, _, _ := newTestService()
	admin := uuid.New()

	m := &Member{Name: "Aarav", Profile: map[string]interface{}{"age": 7}}
	if err := svc.AddManagedMember(context.Background(), admin, m); err != nil {
		t.Fatalf("AddManagedMember: %v", err)
	}
	if m.Kind != KindManaged || m.Status != StatusActive {
		t.Errorf("kind=%s status=%s, want managed/active", m.Kind, m.Status)
	}
	if m.UserID != nil {
		t.Error("managed member must not carry a user id")
	}

	if err := svc.AddManagedMember(context.Background(), admin, &Member{}); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestInvite_Success(t *testing.T) {
	svc, _, mail := newTestService()
	admin := uuid.New()

	m, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{
		Email: "sister@example.com", Name: "Priya", Relation: "sister",
	})
	if err != nil {
		t.Fatalf("Invite: %v", err)
	}
	if m.Kind != KindLinked || m.Status != StatusPending {
		t.Errorf("kind=%s status=%s, want linked/pending", m.Kind, m.Status)
	}
	calls := mail.Calls()
	if len(calls) != 1 {
		t.Fatalf("emails sent = %d, want 1", len(calls))
	}
	if calls[0].To != "sister@example.com" {
		t.Errorf("email to = %s", calls[0].To)
	}
}

func TestInvite_DuplicatePendingRejected(t *testing.T) {
	svc, _, _ := newTestService()
	admin := uuid.New()
	req := InviteRequest{Email: "sister@example.com", Name: "Priya"}

	if _, err := svc.Invite(context.Background(), admin, "admin@example.com", req); err != nil {
		t.Fatalf("first invite: %v", err)
	}
	if _, err := svc.Invite(context.Background(), admin, "admin@example.com", req); !errors.Is(err, ErrDuplicateInvite) {
		t.Errorf("second invite = %v, want ErrDuplicateInvite", err)
	}
	req.Email = "SISTER@example.com"
	if _, err := svc.Invite(context.Background(), admin, "admin@example.com", req); !errors.Is(err, ErrDuplicateInvite) {
		t.Errorf("case-variant invite = %v, want ErrDuplicateInvite", err)
	}
}

func TestInvite_DuplicateActiveRejected(t *testing.T) {
	svc, _, _ := newTestService()
	admin := uuid.New()
	invitee := uuid.New()

	m, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "sister@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := svc.AcceptInvite(context.Background(), invitee, "sister@example.com", m.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "sister@example.com"}); !errors.Is(err, ErrDuplicateInvite) {
		t.Errorf("re-invite of active member = %v, want ErrDuplicateInvite", err)
	}
}

func TestInvite_SelfInviteRejected(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.Invite(context.Background(), uuid.New(), "admin@example.com", InviteRequest{Email: "Admin@Example.com"}); err == nil {
		t.Error("expected error for self-invite")
	}
}

func TestAcceptInvite_FlipsOnlyThatMember(t *testing.T) {
	svc, repo, _ := newTestService()
	admin := uuid.New()
	invitee := uuid.New()

	first, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "sister@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	second, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "brother@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}

	got, err := svc.AcceptInvite(context.Background(), invitee, "sister@example.com", first.ID)
	if err != nil {
		t.Fatalf("AcceptInvite: %v", err)
	}
	if got.Status != StatusActive {
		t.Errorf("status = %s, want active", got.Status)
	}
	if got.UserID == nil || *got.UserID != invitee {
		t.Error("accept should bind the caller's user id")
	}
	if repo.members[second.ID].Status != StatusPending {
		t.Error("other invites must stay pending")
	}
}

func TestAcceptInvite_WrongEmailForbidden(t *testing.T) {
	svc, _, _ := newTestService()
	m, err := svc.Invite(context.Background(), uuid.New(), "admin@example.com", InviteRequest{Email: "sister@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := svc.AcceptInvite(context.Background(), uuid.New(), "stranger@example.com", m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("accept by stranger = %v, want ErrForbidden", err)
	}
}

func TestRejectInvite_RemovesRow(t *testing.T) {
	svc, repo, _ := newTestService()
	m, err := svc.Invite(context.Background(), uuid.New(), "admin@example.com", InviteRequest{Email: "sister@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if err := svc.RejectInvite(context.Background(), "sister@example.com", m.ID); err != nil {
		t.Fatalf("RejectInvite: %v", err)
	}
	if _, ok := repo.members[m.ID]; ok {
		t.Error("rejected invite should be deleted")
	}
}

func TestListInvites_ByEmail(t *testing.T) {
	svc, _, _ := newTestService()
	admin := uuid.New()
	if _, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "sister@example.com"}); err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "brother@example.com"}); err != nil {
		t.Fatalf("invite: %v", err)
	}

	invites, err := svc.ListInvites(context.Background(), "sister@example.com")
	if err != nil {
		t.Fatalf("ListInvites: %v", err)
	}
	if len(invites) != 1 {
		t.Errorf("invites = %d, want 1", len(invites))
	}
}

func TestUpdateMember_AdminOnly(t *testing.T) {
	svc, _, _ := newTestService()
	admin := uuid.New()
	m := &Member{Name: "Aarav"}
	if err := svc.AddManagedMember(context.Background(), admin, m); err != nil {
		t.Fatalf("AddManagedMember: %v", err)
	}

	name := "Aarav S."
	got, err := svc.UpdateMember(context.Background(), admin, m.ID, MemberUpdate{Name: &name})
	if err != nil {
		t.Fatalf("UpdateMember: %v", err)
	}
	if got.Name != "Aarav S." {
		t.Errorf("name = %q", got.Name)
	}

	stranger := uuid.New()
	if _, err := svc.UpdateMember(context.Background(), stranger, m.ID, MemberUpdate{Name: &name}); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger update = %v, want ErrNotFound", err)
	}
}

func TestRemoveMember(t *testing.T) {
	svc, repo, _ := newTestService()
	admin := uuid.New()
	m := &Member{Name: "Aarav"}
	if err := svc.AddManagedMember(context.Background(), admin, m); err != nil {
		t.Fatalf("AddManagedMember: %v", err)
	}
	if err := svc.RemoveMember(context.Background(), admin, m.ID); err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if _, ok := repo.members[m.ID]; ok {
		t.Error("member should be deleted")
	}
}

func TestLeave_LinkedMemberOnly(t *testing.T) {
	svc, repo, _ := newTestService()
	admin := uuid.New()
	invitee := uuid.New()

	m, err := svc.Invite(context.Background(), admin, "admin@example.com", InviteRequest{Email: "sister@example.com"})
	if err != nil {
		t.Fatalf("invite: %v", err)
	}
	if _, err := svc.AcceptInvite(context.Background(), invitee, "sister@example.com", m.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if err := svc.Leave(context.Background(), uuid.New(), m.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger leave = %v, want ErrForbidden", err)
	}
	if err := svc.Leave(context.Background(), invitee, m.ID); err != nil {
		t.Fatalf("Leave: %v", err)
	}
	if _, ok := repo.members[m.ID]; ok {
		t.Error("membership should be deleted after leaving")
	}
}
