package family

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ishitatrivedi-dell/lifedoc-sub000/internal/platform/mailer"
)

var (
	ErrNotFound        = errors.New("member not found")
	ErrForbidden       = errors.New("member belongs to another family")
	ErrDuplicateInvite = errors.New("email already invited to this family")
)

type Service struct {
	repo      Repository
	mail      mailer.EmailSender
	templates *mailer.TemplateEngine
	logger    zerolog.Logger
}

func NewService(repo Repository, mail mailer.EmailSender, templates *mailer.TemplateEngine, logger zerolog.Logger) *Service {
	return &Service{repo: repo, mail: mail, templates: templates, logger: logger}
}

// GetFamily returns the caller's family and its members, creating the family
// on first access.
func (s *Service) GetFamily(ctx context.Context, adminID uuid.UUID) (*FamilyView, error) {
	f, err := s.getOrCreateFamily(ctx, adminID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	return &FamilyView{Family: f, Members: members}, nil
}

// AddManagedMember creates a sub-profile with no login of its own. Managed
// members are active immediately.
func (s *Service) AddManagedMember(ctx context.Context, adminID uuid.UUID, m *Member) error {
	if m.Name == "" {
		return fmt.Errorf("name is required")
	}
	f, err := s.getOrCreateFamily(ctx, adminID)
	if err != nil {
		return err
	}
	m.FamilyID = f.ID
	m.Kind = KindManaged
	m.Status = StatusActive
	m.UserID = nil
	return s.repo.CreateMember(ctx, m)
}

// Invite adds a pending linked member and emails the invitee. The same email
// cannot be invited twice while a pending or active entry exists.
func (s *Service) Invite(ctx context.Context, adminID uuid.UUID, adminEmail string, req InviteRequest) (*Member, error) {
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if strings.EqualFold(req.Email, adminEmail) {
		return nil, fmt.Errorf("you cannot invite yourself")
	}
	f, err := s.getOrCreateFamily(ctx, adminID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.ListMembers(ctx, f.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.Email != nil && strings.EqualFold(*m.Email, req.Email) &&
			(m.Status == StatusPending || m.Status == StatusActive) {
			return nil, ErrDuplicateInvite
		}
	}

	email := req.Email
	m := &Member{
		FamilyID: f.ID,
		Name:     req.Name,
		Kind:     KindLinked,
		Email:    &email,
		Status:   StatusPending,
	}
	if req.Relation != "" {
		relation := req.Relation
		m.Relation = &relation
	}
	if m.Name == "" {
		m.Name = req.Email
	}
	if err := s.repo.CreateMember(ctx, m); err != nil {
		return nil, err
	}

	s.sendInviteEmail(ctx, req.Email, adminEmail, req.Relation)
	return m, nil
}

// ListInvites returns pending invites addressed to the given email.
func (s *Service) ListInvites(ctx context.Context, email string) ([]*Member, error) {
	return s.repo.ListPendingByEmail(ctx, email)
}

// AcceptInvite flips the pending member to active and binds the caller's
// user id. Only the invitee may accept.
func (s *Service) AcceptInvite(ctx context.Context, userID uuid.UUID, email string, memberID uuid.UUID) (*Member, error) {
	m, err := s.pendingInviteFor(ctx, email, memberID)
	if err != nil {
		return nil, err
	}
	m.Status = StatusActive
	m.UserID = &userID
	if err := s.repo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RejectInvite removes the pending member row. Only the invitee may reject.
func (s *Service) RejectInvite(ctx context.Context, email string, memberID uuid.UUID) error {
	m, err := s.pendingInviteFor(ctx, email, memberID)
	if err != nil {
		return err
	}
	return s.repo.DeleteMember(ctx, m.ID)
}

// UpdateMember applies admin edits to a member of the caller's family.
func (s *Service) UpdateMember(ctx context.Context, adminID, memberID uuid.UUID, upd MemberUpdate) (*Member, error) {
	m, err := s.adminMember(ctx, adminID, memberID)
	if err != nil {
		return nil, err
	}
	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("name cannot be empty")
		}
		m.Name = *upd.Name
	}
	if upd.Relation != nil {
		m.Relation = upd.Relation
	}
	if upd.Profile != nil {
		m.Profile = *upd.Profile
	}
	if err := s.repo.UpdateMember(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMember deletes a member of the caller's family.
func (s *Service) RemoveMember(ctx context.Context, adminID, memberID uuid.UUID) error {
	m, err := s.adminMember(ctx, adminID, memberID)
	if err != nil {
		return err
	}
	return s.repo.DeleteMember(ctx, m.ID)
}

// Leave removes the caller's own linked membership in someone else's family.
func (s *Service) Leave(ctx context.Context, userID, memberID uuid.UUID) error {
	m, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return ErrNotFound
	}
	if m.UserID == nil || *m.UserID != userID {
		return ErrForbidden
	}
	return s.repo.DeleteMember(ctx, m.ID)
}

func (s *Service) getOrCreateFamily(ctx context.Context, adminID uuid.UUID) (*Family, error) {
	f, err := s.repo.GetFamilyByAdmin(ctx, adminID)
	if err == nil {
		return f, nil
	}
	f = &Family{AdminID: adminID, Name: "My Family"}
	if err := s.repo.CreateFamily(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) pendingInviteFor(ctx context.Context, email string, memberID uuid.UUID) (*Member, error) {
	m, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, ErrNotFound
	}
	if m.Email == nil || !strings.EqualFold(*m.Email, email) {
		return nil, ErrForbidden
	}
	if m.Status != StatusPending {
		return nil, fmt.Errorf("invite is not pending")
	}
	return m, nil
}

func (s *Service) adminMember(ctx context.Context, adminID, memberID uuid.UUID) (*Member, error) {
	f, err := s.repo.GetFamilyByAdmin(ctx, adminID)
	if err != nil {
		return nil, ErrNotFound
	}
	m, err := s.repo.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, ErrNotFound
	}
	if m.FamilyID != f.ID {
		return nil, ErrForbidden
	}
	return m, nil
}

func (s *Service) sendInviteEmail(ctx context.Context, to, inviter, relation string) {
	if relation == "" {
		relation = "a family member"
	}
	subject, body, err := s.templates.Render("family-invite", map[string]string{
		"inviter":  inviter,
		"relation": relation,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("render invite email")
		return
	}
	if err := s.mail.SendEmail(ctx, to, subject, body); err != nil {
		s.logger.Error().Err(err).Str("to", to).Msg("send invite email")
	}
}
