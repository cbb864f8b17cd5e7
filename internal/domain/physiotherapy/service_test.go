package physiotherapy

import (
	"context"
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

type mockAssessmentRepo struct{ items []*Assessment }

func (m *mockAssessmentRepo) Create(_ context.Context, a *Assessment) error {
	a.ID = uuid.New()
	m.items = append(m.items, a)
	return nil
}

func (m *mockAssessmentRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	var items []*Assessment
	for _, a := range m.items {
		if a.PatientID == patientID {
			items = append(items, a)
		}
	}
	return items, nil
}

type mockSessionRepo struct {
	items map[uuid.UUID]*Session
}

func (m *mockSessionRepo) Create(_ context.Context, s *Session) error {
	s.ID = uuid.New()
	m.items[s.ID] = s
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*Session, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) Update(_ context.Context, s *Session) error {
	m.items[s.ID] = s
	return nil
}

func (m *mockSessionRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*Session, error) {
	var items []*Session
	for _, s := range m.items {
		if s.PatientID == patientID {
			items = append(items, s)
		}
	}
	return items, nil
}

func (m *mockSessionRepo) ListByTherapistAndDate(_ context.Context, therapistID uuid.UUID, date string) ([]*Session, error) {
	var items []*Session
	for _, s := range m.items {
		if s.TherapistID == therapistID && s.ScheduledDate == date {
			items = append(items, s)
		}
	}
	return items, nil
}

func (m *mockSessionRepo) ListByDate(_ context.Context, date string) ([]*Session, error) {
	var items []*Session
	for _, s := range m.items {
		if s.ScheduledDate == date {
			items = append(items, s)
		}
	}
	return items, nil
}

func (m *mockSessionRepo) CountByPatient(_ context.Context, patientID uuid.UUID) (int, error) {
	count := 0
	for _, s := range m.items {
		if s.PatientID == patientID {
			count++
		}
	}
	return count, nil
}

type mockTherapistRepo struct {
	items map[uuid.UUID]*Therapist
}

func (m *mockTherapistRepo) Create(_ context.Context, t *Therapist) error {
	t.ID = uuid.New()
	m.items[t.ID] = t
	return nil
}

func (m *mockTherapistRepo) GetByID(_ context.Context, id uuid.UUID) (*Therapist, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return t, nil
}

func (m *mockTherapistRepo) Update(_ context.Context, t *Therapist) error {
	m.items[t.ID] = t
	return nil
}

func (m *mockTherapistRepo) List(_ context.Context) ([]*Therapist, error) {
	var items []*Therapist
	for _, t := range m.items {
		items = append(items, t)
	}
	return items, nil
}

type mockEquipmentRepo struct {
	items map[uuid.UUID]*Equipment
}

func (m *mockEquipmentRepo) Create(_ context.Context, e *Equipment) error {
	e.ID = uuid.New()
	m.items[e.ID] = e
	return nil
}

func (m *mockEquipmentRepo) GetByID(_ context.Context, id uuid.UUID) (*Equipment, error) {
	e, ok := m.items[id]
	if !ok {
		return nil, workflow.ErrNotFound
	}
	return e, nil
}

func (m *mockEquipmentRepo) Update(_ context.Context, e *Equipment) error {
	m.items[e.ID] = e
	return nil
}

func (m *mockEquipmentRepo) List(_ context.Context) ([]*Equipment, error) {
	var items []*Equipment
	for _, e := range m.items {
		items = append(items, e)
	}
	return items, nil
}

func newTestService() *Service {
	svc := NewService(
		&mockPatientRepo{items: make(map[uuid.UUID]*Patient)},
		&mockAssessmentRepo{},
		&mockSessionRepo{items: make(map[uuid.UUID]*Session)},
		&mockTherapistRepo{items: make(map[uuid.UUID]*Therapist)},
		&mockEquipmentRepo{items: make(map[uuid.UUID]*Equipment)},
		db.PassthroughTxRunner{},
	)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }
	return svc
}

func registerPatient(t *testing.T, svc *Service) *Patient {
	t.Helper()
	p := &Patient{MRN: "MRN-1", Name: "Jonas Lind", Condition: "rotator cuff strain"}
	if err := svc.RegisterPatient(context.Background(), p); err != nil {
		t.Fatalf("register patient: %v", err)
	}
	return p
}

func createTherapist(t *testing.T, svc *Service) *Therapist {
	t.Helper()
	th := &Therapist{Name: "Sam Ito"}
	if err := svc.CreateTherapist(context.Background(), th); err != nil {
		t.Fatalf("create therapist: %v", err)
	}
	return th
}

func scheduleSession(t *testing.T, svc *Service, p *Patient, th *Therapist, timeOfDay string, duration int) *Session {
	t.Helper()
	s := &Session{
		PatientID:       p.ID,
		TherapistID:     th.ID,
		ScheduledDate:   "2025-03-12",
		ScheduledTime:   timeOfDay,
		DurationMinutes: duration,
	}
	if err := svc.ScheduleSession(context.Background(), s); err != nil {
		t.Fatalf("schedule session: %v", err)
	}
	return s
}

func TestRegisterPatientDefaults(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	if p.Status != StatusActive {
		t.Errorf("expected active, got %s", p.Status)
	}
	if p.StartDate.IsZero() {
		t.Error("expected start date defaulted")
	}
}

func TestRegisterPatientValidation(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if err := svc.RegisterPatient(ctx, &Patient{Name: "x", Condition: "y"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for mrn, got %v", err)
	}
	if err := svc.RegisterPatient(ctx, &Patient{MRN: "1", Name: "x"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for condition, got %v", err)
	}
}

func TestPatientStatusTransitions(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	ctx := context.Background()

	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusOnHold); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusCompleted); !workflow.IsInvalidTransition(err) {
		t.Errorf("on_hold -> completed must be rejected, got %v", err)
	}
	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusActive); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusCompleted); err != nil {
		t.Fatal(err)
	}
	// Reactivation after completion is allowed.
	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusActive); err != nil {
		t.Fatal(err)
	}
}

func TestDischargeIsTerminal(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	ctx := context.Background()

	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusDischarged); !workflow.IsValidation(err) {
		t.Errorf("direct status update to discharged must be rejected, got %v", err)
	}

	got, err := svc.DischargePatient(ctx, p.ID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != StatusDischarged || got.DischargeTime == nil {
		t.Error("expected discharged with timestamp")
	}
	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusActive); !workflow.IsInvalidTransition(err) {
		t.Errorf("discharged must be terminal, got %v", err)
	}
}

func TestRecordAssessment(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	ctx := context.Background()

	pain := 6
	a := &Assessment{AssessedBy: "Sam Ito", PainScore: &pain}
	if err := svc.RecordAssessment(ctx, p.ID, a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.AssessedAt.IsZero() {
		t.Error("expected assessed_at defaulted")
	}

	bad := 11
	if err := svc.RecordAssessment(ctx, p.ID, &Assessment{AssessedBy: "x", PainScore: &bad}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for pain score, got %v", err)
	}

	if _, err := svc.DischargePatient(ctx, p.ID, nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.RecordAssessment(ctx, p.ID, &Assessment{AssessedBy: "x"}); !workflow.IsValidation(err) {
		t.Errorf("expected validation error after discharge, got %v", err)
	}
}

func TestScheduleSessionAssignsSequenceNumbers(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)

	first := scheduleSession(t, svc, p, th, "09:00", 60)
	second := scheduleSession(t, svc, p, th, "11:00", 60)

	if first.SessionNumber != 1 || second.SessionNumber != 2 {
		t.Errorf("expected session numbers 1 and 2, got %d and %d", first.SessionNumber, second.SessionNumber)
	}
	if first.Status != SessionScheduled {
		t.Errorf("expected scheduled, got %s", first.Status)
	}
}

func TestScheduleSessionRejectsOverlap(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	scheduleSession(t, svc, p, th, "09:00", 60)

	overlap := &Session{
		PatientID: p.ID, TherapistID: th.ID,
		ScheduledDate: "2025-03-12", ScheduledTime: "09:30", DurationMinutes: 30,
	}
	if err := svc.ScheduleSession(context.Background(), overlap); !workflow.IsUnavailable(err) {
		t.Errorf("expected unavailable for overlapping slot, got %v", err)
	}
}

func TestScheduleSessionAllowsBackToBack(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	scheduleSession(t, svc, p, th, "09:00", 60)

	// Starts exactly when the previous one ends.
	scheduleSession(t, svc, p, th, "10:00", 30)
}

func TestScheduleSessionOtherDateOrTherapist(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	other := createTherapist(t, svc)
	scheduleSession(t, svc, p, th, "09:00", 60)

	sameSlotOtherTherapist := &Session{
		PatientID: p.ID, TherapistID: other.ID,
		ScheduledDate: "2025-03-12", ScheduledTime: "09:00", DurationMinutes: 60,
	}
	if err := svc.ScheduleSession(context.Background(), sameSlotOtherTherapist); err != nil {
		t.Fatalf("other therapist should be free: %v", err)
	}

	sameSlotOtherDate := &Session{
		PatientID: p.ID, TherapistID: th.ID,
		ScheduledDate: "2025-03-13", ScheduledTime: "09:00", DurationMinutes: 60,
	}
	if err := svc.ScheduleSession(context.Background(), sameSlotOtherDate); err != nil {
		t.Fatalf("other date should be free: %v", err)
	}
}

func TestScheduleSessionValidation(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	ctx := context.Background()

	bad := &Session{PatientID: p.ID, TherapistID: th.ID, ScheduledDate: "12/03/2025", ScheduledTime: "09:00", DurationMinutes: 30}
	if err := svc.ScheduleSession(ctx, bad); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for date, got %v", err)
	}
	bad = &Session{PatientID: p.ID, TherapistID: th.ID, ScheduledDate: "2025-03-12", ScheduledTime: "9am", DurationMinutes: 30}
	if err := svc.ScheduleSession(ctx, bad); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for time, got %v", err)
	}
	bad = &Session{PatientID: p.ID, TherapistID: th.ID, ScheduledDate: "2025-03-12", ScheduledTime: "09:00"}
	if err := svc.ScheduleSession(ctx, bad); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for duration, got %v", err)
	}
}

func TestScheduleSessionRequiresActivePlanAndTherapist(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	ctx := context.Background()

	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusOnHold); err != nil {
		t.Fatal(err)
	}
	s := &Session{PatientID: p.ID, TherapistID: th.ID, ScheduledDate: "2025-03-12", ScheduledTime: "09:00", DurationMinutes: 30}
	if err := svc.ScheduleSession(ctx, s); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for on_hold patient, got %v", err)
	}
	if _, err := svc.UpdatePatientStatus(ctx, p.ID, StatusActive); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateTherapistStatus(ctx, th.ID, TherapistOnLeave); err != nil {
		t.Fatal(err)
	}
	if err := svc.ScheduleSession(ctx, s); !workflow.IsUnavailable(err) {
		t.Errorf("expected unavailable for therapist on leave, got %v", err)
	}
}

func TestCheckAvailability(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	ctx := context.Background()
	scheduleSession(t, svc, p, th, "09:00", 60)

	free, err := svc.CheckAvailability(ctx, th.ID, "2025-03-12", "09:30", 30)
	if err != nil {
		t.Fatal(err)
	}
	if free {
		t.Error("09:30 should conflict with the 09:00-10:00 session")
	}

	free, err = svc.CheckAvailability(ctx, th.ID, "2025-03-12", "10:00", 30)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("10:00 is back-to-back and should be free")
	}
}

func TestCancelledSessionFreesSlot(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	ctx := context.Background()
	s := scheduleSession(t, svc, p, th, "09:00", 60)

	if _, err := svc.UpdateSessionStatus(ctx, s.ID, SessionCancelled, nil); err != nil {
		t.Fatal(err)
	}

	free, err := svc.CheckAvailability(ctx, th.ID, "2025-03-12", "09:00", 60)
	if err != nil {
		t.Fatal(err)
	}
	if !free {
		t.Error("cancelled session should free the slot")
	}
}

func TestSessionStatusTransitions(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	ctx := context.Background()
	s := scheduleSession(t, svc, p, th, "09:00", 60)

	if _, err := svc.UpdateSessionStatus(ctx, s.ID, SessionCompleted, nil); !workflow.IsInvalidTransition(err) {
		t.Errorf("scheduled -> completed must pass through in_progress, got %v", err)
	}
	if _, err := svc.UpdateSessionStatus(ctx, s.ID, SessionInProgress, nil); err != nil {
		t.Fatal(err)
	}
	note := "full range of motion recovered"
	got, err := svc.UpdateSessionStatus(ctx, s.ID, SessionCompleted, &note)
	if err != nil {
		t.Fatal(err)
	}
	if got.TreatmentNote == nil {
		t.Error("expected treatment note recorded")
	}
	if _, err := svc.UpdateSessionStatus(ctx, s.ID, SessionCancelled, nil); !workflow.IsInvalidTransition(err) {
		t.Errorf("completed must be terminal, got %v", err)
	}
}

func TestTherapistAndEquipmentRegistries(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	th := createTherapist(t, svc)
	if th.Status != TherapistActive {
		t.Errorf("expected active default, got %s", th.Status)
	}
	if _, err := svc.UpdateTherapistStatus(ctx, th.ID, "retired"); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}

	e := &Equipment{Name: "Treadmill A"}
	if err := svc.CreateEquipment(ctx, e); err != nil {
		t.Fatal(err)
	}
	if e.Status != EquipmentAvailable {
		t.Errorf("expected available default, got %s", e.Status)
	}
	if _, err := svc.UpdateEquipmentStatus(ctx, e.ID, EquipmentOutOfOrder); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateEquipmentStatus(ctx, e.ID, "broken"); !workflow.IsValidation(err) {
		t.Errorf("expected validation error for unknown status, got %v", err)
	}
}

func TestScheduleSessionEquipmentChecks(t *testing.T) {
	svc := newTestService()
	p := registerPatient(t, svc)
	th := createTherapist(t, svc)
	ctx := context.Background()

	e := &Equipment{Name: "Ultrasound"}
	if err := svc.CreateEquipment(ctx, e); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateEquipmentStatus(ctx, e.ID, EquipmentMaintenance); err != nil {
		t.Fatal(err)
	}

	s := &Session{
		PatientID: p.ID, TherapistID: th.ID, EquipmentID: &e.ID,
		ScheduledDate: "2025-03-12", ScheduledTime: "09:00", DurationMinutes: 30,
	}
	if err := svc.ScheduleSession(ctx, s); !workflow.IsUnavailable(err) {
		t.Errorf("expected unavailable for equipment in maintenance, got %v", err)
	}

	if _, err := svc.UpdateEquipmentStatus(ctx, e.ID, EquipmentAvailable); err != nil {
		t.Fatal(err)
	}
	if err := svc.ScheduleSession(ctx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
