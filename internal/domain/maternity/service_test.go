package maternity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
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

func (m *mockPatientRepo) ListByStatus(_ context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	var items []*Patient
	for _, p := range m.items {
		if p.Status == status {
			items = append(items, p)
		}
	}
	return items, len(items), nil
}

type mockVisitRepo struct{ items []*PrenatalVisit }

func (m *mockVisitRepo) Create(_ context.Context, v *PrenatalVisit) error {
	v.ID = uuid.New()
	m.items = append(m.items, v)
	return nil
}

func (m *mockVisitRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*PrenatalVisit, error) {
	var items []*PrenatalVisit
	for _, v := range m.items {
		if v.PatientID == patientID {
			items = append(items, v)
		}
	}
	return items, nil
}

type mockLaborRepo struct{ items []*LaborProgress }

func (m *mockLaborRepo) Create(_ context.Context, l *LaborProgress) error {
	l.ID = uuid.New()
	m.items = append(m.items, l)
	return nil
}

func (m *mockLaborRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*LaborProgress, error) {
	var items []*LaborProgress
	for _, l := range m.items {
		if l.PatientID == patientID {
			items = append(items, l)
		}
	}
	return items, nil
}

type mockDeliveryRepo struct {
	items map[uuid.UUID]*Delivery
}

func (m *mockDeliveryRepo) Create(_ context.Context, d *Delivery) error {
	d.ID = uuid.New()
	m.items[d.ID] = d
	return nil
}

func (m *mockDeliveryRepo) GetByID(_ context.Context, id uuid.UUID) (*Delivery, error) {
	d, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return d, nil
}

func (m *mockDeliveryRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Delivery, error) {
	var items []*Delivery
	for _, d := range m.items {
		if d.PatientID == patientID {
			items = append(items, d)
		}
	}
	return items, nil
}

type mockNewbornRepo struct {
	items map[uuid.UUID]*Newborn
}

func (m *mockNewbornRepo) Create(_ context.Context, n *Newborn) error {
	n.ID = uuid.New()
	m.items[n.ID] = n
	return nil
}

func (m *mockNewbornRepo) GetByID(_ context.Context, id uuid.UUID) (*Newborn, error) {
	n, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return n, nil
}

func (m *mockNewbornRepo) Update(_ context.Context, n *Newborn) error {
	m.items[n.ID] = n
	return nil
}

func (m *mockNewbornRepo) ListByDelivery(_ context.Context, deliveryID uuid.UUID) ([]*Newborn, error) {
	var items []*Newborn
	for _, n := range m.items {
		if n.DeliveryID == deliveryID {
			items = append(items, n)
		}
	}
	return items, nil
}

func (m *mockNewbornRepo) ListByMother(_ context.Context, motherID uuid.UUID) ([]*Newborn, error) {
	var items []*Newborn
	for _, n := range m.items {
		if n.MotherID == motherID {
			items = append(items, n)
		}
	}
	return items, nil
}

type mockCheckupRepo struct{ items []*PostpartumCheckup }

func (m *mockCheckupRepo) Create(_ context.Context, c *PostpartumCheckup) error {
	c.ID = uuid.New()
	m.items = append(m.items, c)
	return nil
}

func (m *mockCheckupRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*PostpartumCheckup, error) {
	var items []*PostpartumCheckup
	for _, c := range m.items {
		if c.PatientID == patientID {
			items = append(items, c)
		}
	}
	return items, nil
}

func newTestService() *Service {
	svc := NewService(
		&mockPatientRepo{items: make(map[uuid.UUID]*Patient)},
		&mockVisitRepo{},
		&mockLaborRepo{},
		&mockDeliveryRepo{items: make(map[uuid.UUID]*Delivery)},
		&mockNewbornRepo{items: make(map[uuid.UUID]*Newborn)},
		&mockCheckupRepo{},
		db.PassthroughTxRunner{},
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func registerPatient(t *testing.T, svc *Service) *Patient {
	t.Helper()
	p := &Patient{MRN: "MRN-1", Name: "Maya Patel", Gravida: 2, Para: 1}
	if err := svc.RegisterPatient(context.Background(), p); err != nil {
		t.Fatalf("register patient: %v", err)
	}
	return p
}

func admitPatient(t *testing.T, svc *Service, p *Patient) {
	t.Helper()
	if _, err := svc.AdmitForLabor(context.Background(), p.ID, AdmissionRequest{
		AdmittedBy: "Nurse Kay", AttendingPhysician: "Dr. Osei",
	}); err != nil {
		t.Fatalf("admit: %v", err)
	}
}

func deliverPatient(t *testing.T, svc *Service, p *Patient) *Delivery {
	t.Helper()
	d := &Delivery{Method: "vaginal", AttendingPhysician: "Dr. Osei"}
	if _, err := svc.RecordDelivery(context.Background(), p.ID, d); err != nil {
		t.Fatalf("delivery: %v", err)
	}
	return d
}

func TestRegisterPatientDefaults(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	if p.Status != StatusPrenatal {
		t.Errorf("expected prenatal, got %s", p.Status)
	}
}

func TestRegisterPatientValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.RegisterPatient(ctx, &Patient{Name: "x", Gravida: 1}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for mrn, got %v", err)
	}
	if err := svc.RegisterPatient(ctx, &Patient{MRN: "1", Name: "x", Gravida: 0}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for gravida, got %v", err)
	}
	if err := svc.RegisterPatient(ctx, &Patient{MRN: "1", Name: "x", Gravida: 2, Para: 2}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for para, got %v", err)
	}
}

func TestAdmitForLabor(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)

	got, err := svc.AdmitForLabor(context.Background(), p.ID, AdmissionRequest{
		AdmittedBy: "Nurse Kay", AttendingPhysician: "Dr. Osei",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusLabor {
		t.Errorf("expected labor, got %s", got.Status)
	}
	if got.AdmissionTime == nil || got.AdmittedBy == nil || got.AttendingPhysician == nil {
		t.Error("expected admission details recorded")
	}
}

func TestAdmitForLaborRequiresDetails(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)

	if _, err := svc.AdmitForLabor(context.Background(), p.ID, AdmissionRequest{AttendingPhysician: "Dr. Osei"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for admitted_by, got %v", err)
	}
	if _, err := svc.AdmitForLabor(context.Background(), p.ID, AdmissionRequest{AdmittedBy: "Nurse Kay"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for physician, got %v", err)
	}
}

func TestAdmitForLaborTwiceRejected(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)

	if _, err := svc.AdmitForLabor(context.Background(), p.ID, AdmissionRequest{
		AdmittedBy: "Nurse Kay", AttendingPhysician: "Dr. Osei",
	}); !workflow.IsInvalidTransition(err) {
		t.Errorf("expected invalid transition, got %v", err)
	}
}

func TestPrenatalVisitOnlyBeforeAdmission(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)

	if err := svc.AddPrenatalVisit(context.Background(), p.ID, &PrenatalVisit{Provider: "Dr. Osei"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	admitPatient(t, svc, p)
	if err := svc.AddPrenatalVisit(context.Background(), p.ID, &PrenatalVisit{Provider: "Dr. Osei"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error after admission, got %v", err)
	}
}

func TestRecordLaborProgressOnlyInLabor(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)

	if err := svc.RecordLaborProgress(context.Background(), p.ID, &LaborProgress{RecordedBy: "Nurse Kay"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error before labor, got %v", err)
	}

	admitPatient(t, svc, p)
	dilation := 4
	if err := svc.RecordLaborProgress(context.Background(), p.ID, &LaborProgress{RecordedBy: "Nurse Kay", CervicalDilation: &dilation}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecordDeliveryTransitionsPatient(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)

	d := deliverPatient(t, svc, p)
	if p.Status != StatusDelivered {
		t.Errorf("expected delivered, got %s", p.Status)
	}
	if d.DeliveredAt.IsZero() {
		t.Error("expected delivery time defaulted")
	}

	deliveries, _ := svc.ListDeliveries(context.Background(), p.ID)
	if len(deliveries) != 1 {
		t.Errorf("expected 1 delivery, got %d", len(deliveries))
	}
}

func TestRecordDeliveryRequiresLabor(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)

	_, err := svc.RecordDelivery(context.Background(), p.ID, &Delivery{Method: "vaginal", AttendingPhysician: "Dr. Osei"})
	if !workflow.IsInvalidTransition(err) {
		t.Errorf("expected invalid transition from prenatal, got %v", err)
	}
}

func TestRecordDeliveryValidation(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)

	if _, err := svc.RecordDelivery(context.Background(), p.ID, &Delivery{Method: "teleport", AttendingPhysician: "x"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for method, got %v", err)
	}
	if _, err := svc.RecordDelivery(context.Background(), p.ID, &Delivery{Method: "vaginal"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for physician, got %v", err)
	}
}

func TestAddNewborn(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)
	d := deliverPatient(t, svc, p)

	n := &Newborn{Sex: "female", WeightG: 3200}
	if err := svc.AddNewborn(context.Background(), d.ID, n); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Status != NewbornHealthy {
		t.Errorf("expected healthy default, got %s", n.Status)
	}
	if n.MotherID != p.ID {
		t.Error("expected mother resolved from delivery")
	}
	if n.BirthTime.IsZero() {
		t.Error("expected birth time defaulted from delivery")
	}
}

func TestAddNewbornValidation(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)
	d := deliverPatient(t, svc, p)
	ctx := context.Background()

	if err := svc.AddNewborn(ctx, d.ID, &Newborn{Sex: "other", WeightG: 3000}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for sex, got %v", err)
	}
	if err := svc.AddNewborn(ctx, d.ID, &Newborn{Sex: "male"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for weight, got %v", err)
	}
	if err := svc.AddNewborn(ctx, d.ID, &Newborn{Sex: "male", WeightG: 2100, Status: NewbornNICU}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for missing nicu reason, got %v", err)
	}
	if err := svc.AddNewborn(ctx, uuid.New(), &Newborn{Sex: "male", WeightG: 3000}); !errors.Is(err, workflow.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestUpdateNewbornStatus(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)
	d := deliverPatient(t, svc, p)
	ctx := context.Background()

	n := &Newborn{Sex: "male", WeightG: 2400}
	if err := svc.AddNewborn(ctx, d.ID, n); err != nil {
		t.Fatal(err)
	}

	reason := "respiratory distress"
	got, err := svc.UpdateNewbornStatus(ctx, n.ID, NewbornNICU, &reason)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != NewbornNICU || got.NICUReason == nil {
		t.Error("expected nicu status with reason")
	}

	if _, err := svc.UpdateNewbornStatus(ctx, n.ID, NewbornHealthy, nil); err != nil {
		t.Fatalf("nicu -> healthy should be allowed: %v", err)
	}
	if _, err := svc.UpdateNewbornStatus(ctx, n.ID, NewbornDeceased, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateNewbornStatus(ctx, n.ID, NewbornHealthy, nil); !workflow.IsInvalidTransition(err) {
		t.Errorf("deceased must be terminal, got %v", err)
	}
}

func TestPostpartumCheckupPromotesPatient(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)
	deliverPatient(t, svc, p)
	ctx := context.Background()

	got, err := svc.RecordPostpartumCheckup(ctx, p.ID, &PostpartumCheckup{Provider: "Nurse Kay"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusPostpartum {
		t.Errorf("first checkup should promote to postpartum, got %s", got.Status)
	}

	// Second checkup leaves the status alone.
	got, err = svc.RecordPostpartumCheckup(ctx, p.ID, &PostpartumCheckup{Provider: "Nurse Kay"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusPostpartum {
		t.Errorf("expected postpartum, got %s", got.Status)
	}

	checkups, _ := svc.ListPostpartumCheckups(ctx, p.ID)
	if len(checkups) != 2 {
		t.Errorf("expected 2 checkups, got %d", len(checkups))
	}
}

func TestPostpartumCheckupRequiresDelivery(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)

	if _, err := svc.RecordPostpartumCheckup(context.Background(), p.ID, &PostpartumCheckup{Provider: "x"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error before delivery, got %v", err)
	}
}

func TestDischargeOnlyFromPostpartum(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	admitPatient(t, svc, p)
	deliverPatient(t, svc, p)
	ctx := context.Background()

	if _, err := svc.DischargePatient(ctx, p.ID, nil); !workflow.IsInvalidTransition(err) {
		t.Errorf("expected invalid transition from delivered, got %v", err)
	}

	if _, err := svc.RecordPostpartumCheckup(ctx, p.ID, &PostpartumCheckup{Provider: "Nurse Kay"}); err != nil {
		t.Fatal(err)
	}
	note := "routine follow-up in two weeks"
	got, err := svc.DischargePatient(ctx, p.ID, &note)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusDischarged || got.DischargeTime == nil {
		t.Error("expected discharged with timestamp")
	}
}
