package report

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

type mockLabRepo struct {
	store map[uuid.UUID]*LabReport
}

func newMockLabRepo() *mockLabRepo { return &mockLabRepo{store: map[uuid.UUID]*LabReport{}} }

func (m *mockLabRepo) Create(ctx context.Context, r *LabReport) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	m.store[r.ID] = r
	return nil
}
func (m *mockLabRepo) GetByID(ctx context.Context, id uuid.UUID) (*LabReport, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return r, nil
}
func (m *mockLabRepo) Delete(ctx context.Context, id uuid.UUID) error { delete(m.store, id); return nil }
func (m *mockLabRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*LabReport, int, error) {
	var items []*LabReport
	for _, r := range m.store {
		if r.UserID == userID {
			items = append(items, r)
		}
	}
	return items, len(items), nil
}

type mockDoctorRepo struct {
	store map[uuid.UUID]*DoctorReport
}

func newMockDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{store: map[uuid.UUID]*DoctorReport{}}
}

func (m *mockDoctorRepo) Create(ctx context.Context, r *DoctorReport) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	m.store[r.ID] = r
	return nil
}
func (m *mockDoctorRepo) GetByID(ctx context.Context, id uuid.UUID) (*DoctorReport, error) {
	r, ok := m.store[id]
	if !ok {
		return nil, errors.New("no rows")
	}
	return r, nil
}
func (m *mockDoctorRepo) Update(ctx context.Context, r *DoctorReport) error {
	m.store[r.ID] = r
	return nil
}
func (m *mockDoctorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.store, id)
	return nil
}
func (m *mockDoctorRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*DoctorReport, int, error) {
	var items []*DoctorReport
	for _, r := range m.store {
		if r.UserID == userID {
			items = append(items, r)
		}
	}
	return items, len(items), nil
}

// mockCompleter matches on case-insensitive provider name and calendar date,
// the same contract the appointment service implements.
type mockCompleter struct {
	userID   uuid.UUID
	provider string
	date     time.Time
	matchID  uuid.UUID
	calls    int
}

func (m *mockCompleter) CompleteMatching(ctx context.Context, userID uuid.UUID, providerName string, date time.Time) (*uuid.UUID, error) {
	m.calls++
	if userID == m.userID && strings.EqualFold(providerName, m.provider) &&
		date.Format("2006-01-02") == m.date.Format("2006-01-02") {
		id := m.matchID
		return &id, nil
	}
	return nil, nil
}

func newTestService() (*Service, *mockLabRepo, *mockDoctorRepo, *mockCompleter) {
	labs := newMockLabRepo()
	doctors := newMockDoctorRepo()
	completer := &mockCompleter{}
	return NewService(labs, doctors, completer), labs, doctors, completer
}

func visitDate() time.Time {
	return time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
}

func TestCreateLabReport_Success(t *testing.T) {
	svc, labs, _, _ := newTestService()
	uid := uuid.New()
	lr := &LabReport{UserID: uid, LabName: "City Diagnostics", VisitDate: visitDate()}
	if err := svc.CreateLabReport(context.Background(), lr); err != nil {
		t.Fatalf("CreateLabReport: %v", err)
	}
	if lr.ID == uuid.Nil {
		t.Error("expected id to be assigned")
	}
	if len(labs.store) != 1 {
		t.Errorf("store size = %d, want 1", len(labs.store))
	}
}

func TestCreateLabReport_MissingFields(t *testing.T) {
	svc, _, _, _ := newTestService()
	uid := uuid.New()

	if err := svc.CreateLabReport(context.Background(), &LabReport{UserID: uid, VisitDate: visitDate()}); err == nil {
		t.Error("expected error for missing lab_name")
	}
	if err := svc.CreateLabReport(context.Background(), &LabReport{UserID: uid, LabName: "City Diagnostics"}); err == nil {
		t.Error("expected error for missing visit_date")
	}
}

func TestGetLabReport_Ownership(t *testing.T) {
	svc, _, _, _ := newTestService()
	owner := uuid.New()
	lr := &LabReport{UserID: owner, LabName: "City Diagnostics", VisitDate: visitDate()}
	if err := svc.CreateLabReport(context.Background(), lr); err != nil {
		t.Fatalf("CreateLabReport: %v", err)
	}

	if _, err := svc.GetLabReport(context.Background(), owner, lr.ID); err != nil {
		t.Errorf("owner get: %v", err)
	}
	if _, err := svc.GetLabReport(context.Background(), uuid.New(), lr.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger get = %v, want ErrForbidden", err)
	}
	if _, err := svc.GetLabReport(context.Background(), owner, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing get = %v, want ErrNotFound", err)
	}
}

func TestDeleteLabReport_NotOwner(t *testing.T) {
	svc, labs, _, _ := newTestService()
	owner := uuid.New()
	lr := &LabReport{UserID: owner, LabName: "City Diagnostics", VisitDate: visitDate()}
	if err := svc.CreateLabReport(context.Background(), lr); err != nil {
		t.Fatalf("CreateLabReport: %v", err)
	}

	if err := svc.DeleteLabReport(context.Background(), uuid.New(), lr.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger delete = %v, want ErrForbidden", err)
	}
	if len(labs.store) != 1 {
		t.Error("report should survive a forbidden delete")
	}
	if err := svc.DeleteLabReport(context.Background(), owner, lr.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}

func TestCreateDoctorReport_LinksMatchingAppointment(t *testing.T) {
	svc, _, _, completer := newTestService()
	uid := uuid.New()
	apptID := uuid.New()
	completer.userID = uid
	completer.provider = "Dr. Mehta"
	completer.date = visitDate()
	completer.matchID = apptID

	dr := &DoctorReport{UserID: uid, DoctorName: "dr. mehta", VisitDate: visitDate()}
	if err := svc.CreateDoctorReport(context.Background(), dr); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}
	if dr.AppointmentID == nil || *dr.AppointmentID != apptID {
		t.Errorf("appointment_id = %v, want %s", dr.AppointmentID, apptID)
	}
}

func TestCreateDoctorReport_NoMatchLeavesNil(t *testing.T) {
	svc, _, _, completer := newTestService()
	completer.userID = uuid.New()
	completer.provider = "Dr. Mehta"
	completer.date = visitDate()

	dr := &DoctorReport{UserID: uuid.New(), DoctorName: "Dr. Rao", VisitDate: visitDate()}
	if err := svc.CreateDoctorReport(context.Background(), dr); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}
	if dr.AppointmentID != nil {
		t.Errorf("appointment_id = %v, want nil", dr.AppointmentID)
	}
}

func TestCreateDoctorReport_ExplicitAppointmentWins(t *testing.T) {
	svc, _, _, completer := newTestService()
	uid := uuid.New()
	explicit := uuid.New()
	completer.userID = uid
	completer.provider = "Dr. Mehta"
	completer.date = visitDate()
	completer.matchID = uuid.New()

	dr := &DoctorReport{UserID: uid, DoctorName: "Dr. Mehta", VisitDate: visitDate(), AppointmentID: &explicit}
	if err := svc.CreateDoctorReport(context.Background(), dr); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}
	if completer.calls != 0 {
		t.Errorf("completer calls = %d, want 0", completer.calls)
	}
	if *dr.AppointmentID != explicit {
		t.Errorf("appointment_id = %s, want %s", dr.AppointmentID, explicit)
	}
}

func TestUpdateDoctorReport_InheritsFields(t *testing.T) {
	svc, _, _, _ := newTestService()
	uid := uuid.New()
	apptID := uuid.New()
	dr := &DoctorReport{UserID: uid, DoctorName: "Dr. Mehta", VisitDate: visitDate(), AppointmentID: &apptID}
	if err := svc.CreateDoctorReport(context.Background(), dr); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}

	diag := "seasonal flu"
	patch := &DoctorReport{ID: dr.ID, Diagnosis: &diag}
	if err := svc.UpdateDoctorReport(context.Background(), uid, patch); err != nil {
		t.Fatalf("UpdateDoctorReport: %v", err)
	}
	if patch.DoctorName != "Dr. Mehta" {
		t.Errorf("doctor_name = %q, want inherited", patch.DoctorName)
	}
	if patch.VisitDate.IsZero() {
		t.Error("visit_date should be inherited")
	}
	if patch.AppointmentID == nil || *patch.AppointmentID != apptID {
		t.Error("appointment_id should be inherited")
	}
	if patch.UserID != uid {
		t.Error("owner must not change on update")
	}
}

func TestUpdateDoctorReport_NotOwner(t *testing.T) {
	svc, _, _, _ := newTestService()
	dr := &DoctorReport{UserID: uuid.New(), DoctorName: "Dr. Mehta", VisitDate: visitDate()}
	if err := svc.CreateDoctorReport(context.Background(), dr); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}
	patch := &DoctorReport{ID: dr.ID, DoctorName: "Dr. Rao"}
	if err := svc.UpdateDoctorReport(context.Background(), uuid.New(), patch); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger update = %v, want ErrForbidden", err)
	}
}

func TestCreateDoctorReport_NilCompleter(t *testing.T) {
	labs := newMockLabRepo()
	doctors := newMockDoctorRepo()
	svc := NewService(labs, doctors, nil)

	dr := &DoctorReport{UserID: uuid.New(), DoctorName: "Dr. Mehta", VisitDate: visitDate()}
	if err := svc.CreateDoctorReport(context.Background(), dr); err != nil {
		t.Fatalf("CreateDoctorReport: %v", err)
	}
	if dr.AppointmentID != nil {
		t.Error("appointment_id should stay nil without a completer")
	}
}
