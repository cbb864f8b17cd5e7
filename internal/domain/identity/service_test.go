package identity

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/workflow"
)

type mockPatientRepo struct {
	items map[uuid.UUID]*Patient
}

func (m *mockPatientRepo) Create(_ context.Context, p *Patient) error {
	p.ID = uuid.New()
	m.items[p.ID] = p
	return nil
}

func (m *mockPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*Patient, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return p, nil
}

func (m *mockPatientRepo) GetByMRN(_ context.Context, mrn string) (*Patient, error) {
	for _, p := range m.items {
		if p.MRN == mrn {
			return p, nil
		}
	}
	return nil, workflow.ErrNotFound
}

func (m *mockPatientRepo) Update(_ context.Context, p *Patient) error {
	m.items[p.ID] = p
	return nil
}

func (m *mockPatientRepo) List(_ context.Context, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.items {
		items = append(items, p)
	}
	return items, len(items), nil
}

func (m *mockPatientRepo) Search(_ context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	q := strings.ToLower(query)
	var items []*Patient
	for _, p := range m.items {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.MRN), q) {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

type mockStaffRepo struct {
	items map[uuid.UUID]*Staff
}

func (m *mockStaffRepo) Create(_ context.Context, s *Staff) error {
	s.ID = uuid.New()
	m.items[s.ID] = s
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id uuid.UUID) (*Staff, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return s, nil
}

func (m *mockStaffRepo) Update(_ context.Context, s *Staff) error {
	m.items[s.ID] = s
	return nil
}

func (m *mockStaffRepo) List(_ context.Context, limit, offset int) ([]*Staff, int, error) {
	var items []*Staff
	for _, s := range m.items {
		items = append(items, s)
	}
	return items, len(items), nil
}

func (m *mockStaffRepo) ListByRole(_ context.Context, role string, limit, offset int) ([]*Staff, int, error) {
	var items []*Staff
	for _, s := range m.items {
		if s.Role == role {
			items = append(items, s)
		}
	}
	return items, len(items), nil
}

func newTestService() *Service {
	svc := NewService(
		&mockPatientRepo{items: make(map[uuid.UUID]*Patient)},
		&mockStaffRepo{items: make(map[uuid.UUID]*Staff)},
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestRegisterPatientIssuesMRN(t *testing.T) {
	svc := newTestService()
	p := &Patient{Name: "Ada Okafor"}
	if err := svc.RegisterPatient(context.Background(), p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(p.MRN, "MRN-2025-") {
		t.Errorf("expected issued MRN, got %q", p.MRN)
	}
	if !p.Active {
		t.Error("expected new patient active")
	}
}

func TestRegisterPatientRejectsDuplicateMRN(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.RegisterPatient(ctx, &Patient{Name: "Ada Okafor", MRN: "MRN-2025-AAAA0001"}); err != nil {
		t.Fatal(err)
	}
	err := svc.RegisterPatient(ctx, &Patient{Name: "Ben Okafor", MRN: "MRN-2025-AAAA0001"})
	if !workflow.IsValidation(err) {
		t.Errorf("expected validation error for duplicate mrn, got %v", err)
	}
}

func TestRegisterPatientRequiresName(t *testing.T) {
	svc := newTestService()
	if err := svc.RegisterPatient(context.Background(), &Patient{}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdatePatientMergesFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p := &Patient{Name: "Ada Okafor"}
	if err := svc.RegisterPatient(ctx, p); err != nil {
		t.Fatal(err)
	}

	phone := "+233200000000"
	got, err := svc.UpdatePatient(ctx, p.ID, &Patient{Phone: &phone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Ada Okafor" {
		t.Errorf("name should be unchanged, got %q", got.Name)
	}
	if got.Phone == nil || *got.Phone != phone {
		t.Error("expected phone updated")
	}
}

func TestDeactivatePatient(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	p := &Patient{Name: "Ada Okafor"}
	if err := svc.RegisterPatient(ctx, p); err != nil {
		t.Fatal(err)
	}

	got, err := svc.DeactivatePatient(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Active {
		t.Error("expected patient deactivated")
	}
}

func TestListPatientsSearch(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	for _, name := range []string{"Ada Okafor", "Ben Mensah", "Adaeze Eze"} {
		if err := svc.RegisterPatient(ctx, &Patient{Name: name}); err != nil {
			t.Fatal(err)
		}
	}

	items, total, err := svc.ListPatients(ctx, "ada", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 || len(items) != 2 {
		t.Errorf("expected 2 matches, got %d", total)
	}
}

func TestCreateStaffValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.CreateStaff(ctx, &Staff{Name: "x", Role: "nurse"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for employee_id, got %v", err)
	}
	if err := svc.CreateStaff(ctx, &Staff{EmployeeID: "E1", Name: "x", Role: "janitor"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for role, got %v", err)
	}

	s := &Staff{EmployeeID: "E1", Name: "Sam Ito", Role: "therapist"}
	if err := svc.CreateStaff(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != StaffActive {
		t.Errorf("expected active default, got %s", s.Status)
	}
}

func TestUpdateStaffStatus(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	s := &Staff{EmployeeID: "E1", Name: "Sam Ito", Role: "nurse"}
	if err := svc.CreateStaff(ctx, s); err != nil {
		t.Fatal(err)
	}

	got, err := svc.UpdateStaffStatus(ctx, s.ID, StaffOnLeave)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StaffOnLeave {
		t.Errorf("expected on_leave, got %s", got.Status)
	}

	if _, err := svc.UpdateStaffStatus(ctx, s.ID, "gone"); !workflow.IsValidation(err) {
		t.Errorf("expected validation error, got %v", err)
	}
	if _, err := svc.UpdateStaffStatus(ctx, uuid.New(), StaffActive); workflow.HTTPStatus(err) != 404 {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestListStaffByRole(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	for i, role := range []string{"nurse", "nurse", "physician"} {
		s := &Staff{EmployeeID: string(rune('A' + i)), Name: "Staff", Role: role}
		if err := svc.CreateStaff(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	_, total, err := svc.ListStaff(ctx, "nurse", 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	if total != 2 {
		t.Errorf("expected 2 nurses, got %d", total)
	}
}
