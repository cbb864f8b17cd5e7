package physiotherapy

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/workflow"
)

// Service implements the physiotherapy workflows: treatment-plan patients,
// assessments, therapist scheduling and the equipment registry.
type Service struct {
	patients   PatientRepository
	assessment AssessmentRepository
	sessions   SessionRepository
	therapists TherapistRepository
	equipment  EquipmentRepository
	txr        db.TxRunner

	mu  sync.Mutex
	now func() time.Time
}

func NewService(patients PatientRepository, assessment AssessmentRepository, sessions SessionRepository, therapists TherapistRepository, equipment EquipmentRepository, txr db.TxRunner) *Service {
	return &Service{
		patients:   patients,
		assessment: assessment,
		sessions:   sessions,
		therapists: therapists,
		equipment:  equipment,
		txr:        txr,
		now:        time.Now,
	}
}

// -- Patients --

func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if p.MRN == "" {
		return workflow.Required("mrn")
	}
	if p.Name == "" {
		return workflow.Required("name")
	}
	if p.Condition == "" {
		return workflow.Required("condition")
	}
	p.Status = StatusActive
	if p.StartDate.IsZero() {
		p.StartDate = s.now()
	}
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	if status != "" {
		return s.patients.ListByStatus(ctx, status, limit, offset)
	}
	return s.patients.List(ctx, limit, offset)
}

// UpdatePatientStatus moves a patient between active, on_hold and completed.
// Discharge goes through DischargePatient so the timestamp is recorded.
func (s *Service) UpdatePatientStatus(ctx context.Context, id uuid.UUID, status string) (*Patient, error) {
	if status == StatusDischarged {
		return nil, workflow.Invalid("status", "use the discharge operation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("patient", id.String())
	}
	if err := patientTransitions.Check("physiotherapy patient", p.Status, status); err != nil {
		return nil, err
	}
	p.Status = status
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DischargePatient(ctx context.Context, id uuid.UUID, note *string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("patient", id.String())
	}
	if err := patientTransitions.Check("physiotherapy patient", p.Status, StatusDischarged); err != nil {
		return nil, err
	}

	now := s.now()
	p.Status = StatusDischarged
	p.DischargeTime = &now
	if note != nil {
		p.Note = note
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// -- Assessments --

func (s *Service) RecordAssessment(ctx context.Context, patientID uuid.UUID, a *Assessment) error {
	if a.AssessedBy == "" {
		return workflow.Required("assessed_by")
	}
	if a.PainScore != nil && (*a.PainScore < 0 || *a.PainScore > 10) {
		return workflow.Invalid("pain_score", "must be between 0 and 10")
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return workflow.NotFound("patient", patientID.String())
	}
	if p.Status == StatusDischarged {
		return workflow.Invalid("status", "patient has been discharged")
	}

	a.PatientID = p.ID
	if a.AssessedAt.IsZero() {
		a.AssessedAt = s.now()
	}
	return s.assessment.Create(ctx, a)
}

func (s *Service) ListAssessments(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	return s.assessment.ListByPatient(ctx, patientID)
}

// -- Scheduling --

// CheckAvailability reports whether the therapist is free for the whole of
// [startTime, startTime+duration) on the given date. Only scheduled and
// in-progress sessions block the slot.
func (s *Service) CheckAvailability(ctx context.Context, therapistID uuid.UUID, date, startTime string, duration int) (bool, error) {
	if err := workflow.ParseDate(date); err != nil {
		return false, err
	}
	start, err := workflow.ParseClock(startTime)
	if err != nil {
		return false, err
	}
	if duration <= 0 {
		return false, workflow.Invalid("duration_minutes", "must be positive")
	}

	existing, err := s.sessions.ListByTherapistAndDate(ctx, therapistID, date)
	if err != nil {
		return false, err
	}
	return conflict(existing, start, duration) == nil, nil
}

// ScheduleSession books a therapist slot for a patient. The availability
// check runs again under the service lock so two concurrent requests for
// the same slot cannot both commit.
func (s *Service) ScheduleSession(ctx context.Context, sess *Session) error {
	if err := workflow.ParseDate(sess.ScheduledDate); err != nil {
		return err
	}
	start, err := workflow.ParseClock(sess.ScheduledTime)
	if err != nil {
		return err
	}
	if sess.DurationMinutes <= 0 {
		return workflow.Invalid("duration_minutes", "must be positive")
	}

	p, err := s.patients.GetByID(ctx, sess.PatientID)
	if err != nil {
		return workflow.NotFound("patient", sess.PatientID.String())
	}
	if p.Status != StatusActive {
		return workflow.Invalid("status", "patient is not on an active plan")
	}

	t, err := s.therapists.GetByID(ctx, sess.TherapistID)
	if err != nil {
		return workflow.NotFound("therapist", sess.TherapistID.String())
	}
	if t.Status != TherapistActive {
		return &workflow.UnavailableError{Resource: "therapist " + t.Name, Reason: t.Status}
	}

	if sess.EquipmentID != nil {
		e, err := s.equipment.GetByID(ctx, *sess.EquipmentID)
		if err != nil {
			return workflow.NotFound("equipment", sess.EquipmentID.String())
		}
		if e.Status != EquipmentAvailable && e.Status != EquipmentInUse {
			return &workflow.UnavailableError{Resource: "equipment " + e.Name, Reason: e.Status}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.sessions.ListByTherapistAndDate(ctx, sess.TherapistID, sess.ScheduledDate)
	if err != nil {
		return err
	}
	if c := conflict(existing, start, sess.DurationMinutes); c != nil {
		return &workflow.UnavailableError{
			Resource: "therapist " + t.Name,
			Reason:   "booked at " + c.ScheduledTime + " on " + c.ScheduledDate,
		}
	}

	count, err := s.sessions.CountByPatient(ctx, sess.PatientID)
	if err != nil {
		return err
	}
	sess.SessionNumber = count + 1
	sess.Status = SessionScheduled
	return s.sessions.Create(ctx, sess)
}

func (s *Service) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.sessions.GetByID(ctx, id)
}

func (s *Service) ListSessionsByPatient(ctx context.Context, patientID uuid.UUID) ([]*Session, error) {
	return s.sessions.ListByPatient(ctx, patientID)
}

func (s *Service) ListSessionsByDate(ctx context.Context, date string) ([]*Session, error) {
	if err := workflow.ParseDate(date); err != nil {
		return nil, err
	}
	return s.sessions.ListByDate(ctx, date)
}

// UpdateSessionStatus drives the session state machine. A treatment note may
// accompany completion.
func (s *Service) UpdateSessionStatus(ctx context.Context, id uuid.UUID, status string, note *string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("session", id.String())
	}
	if err := sessionTransitions.Check("session", sess.Status, status); err != nil {
		return nil, err
	}
	sess.Status = status
	if note != nil {
		sess.TreatmentNote = note
	}
	if err := s.sessions.Update(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// -- Therapists --

func (s *Service) CreateTherapist(ctx context.Context, t *Therapist) error {
	if t.Name == "" {
		return workflow.Required("name")
	}
	if t.Status == "" {
		t.Status = TherapistActive
	}
	if !validTherapistStatuses[t.Status] {
		return workflow.Invalid("status", "must be active, inactive or on_leave")
	}
	return s.therapists.Create(ctx, t)
}

func (s *Service) UpdateTherapistStatus(ctx context.Context, id uuid.UUID, status string) (*Therapist, error) {
	if !validTherapistStatuses[status] {
		return nil, workflow.Invalid("status", "must be active, inactive or on_leave")
	}
	t, err := s.therapists.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("therapist", id.String())
	}
	t.Status = status
	if err := s.therapists.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) ListTherapists(ctx context.Context) ([]*Therapist, error) {
	return s.therapists.List(ctx)
}

// -- Equipment --

func (s *Service) CreateEquipment(ctx context.Context, e *Equipment) error {
	if e.Name == "" {
		return workflow.Required("name")
	}
	if e.Status == "" {
		e.Status = EquipmentAvailable
	}
	if !validEquipmentStatuses[e.Status] {
		return workflow.Invalid("status", "must be available, in_use, maintenance or out_of_order")
	}
	return s.equipment.Create(ctx, e)
}

func (s *Service) UpdateEquipmentStatus(ctx context.Context, id uuid.UUID, status string) (*Equipment, error) {
	if !validEquipmentStatuses[status] {
		return nil, workflow.Invalid("status", "must be available, in_use, maintenance or out_of_order")
	}
	e, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("equipment", id.String())
	}
	e.Status = status
	if err := s.equipment.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) ListEquipment(ctx context.Context) ([]*Equipment, error) {
	return s.equipment.List(ctx)
}
