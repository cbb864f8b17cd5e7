package emergency

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/workflow"
)

// Service implements the emergency department workflows: registration,
// triage, the priority queue, bed allocation, clinical orders and
// disposition. Check-then-act operations (triage, bed moves, disposition)
// serialize through mu so concurrent calls cannot interleave between the
// read and the write.
type Service struct {
	patients PatientRepository
	triage   TriageRepository
	beds     BedRepository
	orders   OrderRepository
	txr      db.TxRunner

	mu  sync.Mutex
	now func() time.Time
}

func NewService(patients PatientRepository, triage TriageRepository, beds BedRepository, orders OrderRepository, txr db.TxRunner) *Service {
	return &Service{
		patients: patients,
		triage:   triage,
		beds:     beds,
		orders:   orders,
		txr:      txr,
		now:      time.Now,
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
	if p.ChiefComplaint == "" {
		return workflow.Required("chief_complaint")
	}
	if !validArrivalModes[p.ArrivalMode] {
		return workflow.Invalid("arrival_mode", "must be ambulance, walk_in or transfer")
	}
	if p.ArrivalTime.IsZero() {
		p.ArrivalTime = s.now()
	}
	p.Status = StatusWaitingTriage
	return s.patients.Create(ctx, p)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, status, triageLevel string, limit, offset int) ([]*Patient, int, error) {
	if triageLevel != "" {
		if _, ok := triageRank[triageLevel]; !ok {
			return nil, 0, workflow.Invalid("triage_level", "must be red, orange, yellow, green or blue")
		}
		return s.patients.ListByTriageLevel(ctx, triageLevel, limit, offset)
	}
	if status != "" {
		return s.patients.ListByStatus(ctx, status, limit, offset)
	}
	return s.patients.List(ctx, limit, offset)
}

// Queue returns the waiting queue: every active patient ordered by triage
// rank, then arrival time. The order is recomputed on every call from the
// patients' current assessments.
func (s *Service) Queue(ctx context.Context) ([]*Patient, error) {
	patients, err := s.patients.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	SortByPriority(patients)
	return patients, nil
}

// UpdatePatientStatus moves a patient along the non-terminal part of the
// visit lifecycle. Terminal statuses are reached through RecordDisposition,
// except "left", which covers patients who leave before treatment. Leaving
// releases a held bed to cleaning, the same as a disposition.
func (s *Service) UpdatePatientStatus(ctx context.Context, id uuid.UUID, status string) (*Patient, error) {
	if _, terminal := dispositionStatus[statusDecision(status)]; terminal {
		return nil, workflow.Invalid("status", "terminal statuses are set by recording a disposition")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("patient", id.String())
	}
	if err := patientTransitions.Check("patient", p.Status, status); err != nil {
		return nil, err
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if status == StatusLeft {
			if err := s.releaseBed(ctx, p); err != nil {
				return err
			}
		}
		p.Status = status
		return s.patients.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// releaseBed frees the patient's held bed to cleaning, if any. Callers run
// it inside a transaction together with the patient update.
func (s *Service) releaseBed(ctx context.Context, p *Patient) error {
	if p.BedID == nil {
		return nil
	}
	b, err := s.beds.GetByID(ctx, *p.BedID)
	if err != nil {
		return err
	}
	b.Status = BedCleaning
	b.PatientID = nil
	if err := s.beds.Update(ctx, b); err != nil {
		return err
	}
	p.BedID = nil
	return nil
}

// statusDecision maps a terminal status back to its disposition decision,
// or returns "" for non-terminal statuses.
func statusDecision(status string) string {
	for decision, st := range dispositionStatus {
		if st == status {
			return decision
		}
	}
	return ""
}

// AssignStaff sets the attending doctor and/or assigned nurse for a patient.
func (s *Service) AssignStaff(ctx context.Context, id uuid.UUID, doctor, nurse *string) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("patient", id.String())
	}
	if !activeStatuses[p.Status] {
		return nil, workflow.Invalid("status", "patient is no longer in the department")
	}
	if doctor != nil {
		p.AttendingDoctor = doctor
	}
	if nurse != nil {
		p.AssignedNurse = nurse
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// -- Triage --

// PerformTriage records an assessment for a patient and attaches it as the
// patient's current triage. A patient still waiting for triage is promoted
// to triaged in the same step; a re-triage replaces the assessment without
// touching the status.
func (s *Service) PerformTriage(ctx context.Context, patientID uuid.UUID, a *TriageAssessment) (*Patient, error) {
	if _, ok := triageRank[a.Level]; !ok {
		return nil, workflow.Invalid("level", "must be red, orange, yellow, green or blue")
	}
	if a.AssessedBy == "" {
		return nil, workflow.Required("assessed_by")
	}
	if a.PainScore != nil && (*a.PainScore < 0 || *a.PainScore > 10) {
		return nil, workflow.Invalid("pain_score", "must be between 0 and 10")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if !activeStatuses[p.Status] {
		return nil, workflow.Invalid("status", "patient is no longer in the department")
	}

	a.PatientID = p.ID
	if a.AssessedAt.IsZero() {
		a.AssessedAt = s.now()
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if err := s.triage.Create(ctx, a); err != nil {
			return err
		}
		level := a.Level
		p.TriageLevel = &level
		p.TriageID = &a.ID
		if p.Status == StatusWaitingTriage {
			p.Status = StatusTriaged
		}
		return s.patients.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListTriageAssessments(ctx context.Context, patientID uuid.UUID) ([]*TriageAssessment, error) {
	return s.triage.ListByPatient(ctx, patientID)
}

// -- Beds --

func (s *Service) CreateBed(ctx context.Context, b *Bed) error {
	if b.Name == "" {
		return workflow.Required("name")
	}
	if b.Kind == "" {
		b.Kind = "regular"
	}
	if !validBedKinds[b.Kind] {
		return workflow.Invalid("kind", "must be regular, trauma, isolation, pediatric or resuscitation")
	}
	if b.Status == "" {
		b.Status = BedAvailable
	}
	if _, known := bedTransitions[b.Status]; !known {
		return workflow.Invalid("status", "unknown bed status")
	}
	return s.beds.Create(ctx, b)
}

func (s *Service) ListBeds(ctx context.Context, status string, limit, offset int) ([]*Bed, int, error) {
	if status != "" {
		return s.beds.ListByStatus(ctx, status, limit, offset)
	}
	return s.beds.List(ctx, limit, offset)
}

// AssignBed places a patient in a bed. The bed must be available and the
// patient must not already hold one; both records are updated in the same
// transaction.
func (s *Service) AssignBed(ctx context.Context, patientID, bedID uuid.UUID) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if !activeStatuses[p.Status] {
		return nil, workflow.Invalid("status", "patient is no longer in the department")
	}
	if p.BedID != nil {
		return nil, &workflow.UnavailableError{Resource: "patient", Reason: "already assigned to a bed"}
	}

	b, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, workflow.NotFound("bed", bedID.String())
	}
	if b.Status != BedAvailable {
		return nil, &workflow.UnavailableError{Resource: "bed " + b.Name, Reason: "status is " + b.Status}
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		b.Status = BedOccupied
		b.PatientID = &p.ID
		if err := s.beds.Update(ctx, b); err != nil {
			return err
		}
		p.BedID = &b.ID
		return s.patients.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// UpdateBedStatus moves a bed through its lifecycle. Occupied is reached
// only through AssignBed; moving a bed out of occupied clears the occupant
// on both sides.
func (s *Service) UpdateBedStatus(ctx context.Context, bedID uuid.UUID, status string) (*Bed, error) {
	if status == BedOccupied {
		return nil, workflow.Invalid("status", "beds become occupied by assigning a patient")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.beds.GetByID(ctx, bedID)
	if err != nil {
		return nil, workflow.NotFound("bed", bedID.String())
	}
	if err := bedTransitions.Check("bed", b.Status, status); err != nil {
		return nil, err
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if b.PatientID != nil {
			p, err := s.patients.GetByID(ctx, *b.PatientID)
			if err == nil && p.BedID != nil && *p.BedID == b.ID {
				p.BedID = nil
				if err := s.patients.Update(ctx, p); err != nil {
					return err
				}
			}
			b.PatientID = nil
		}
		b.Status = status
		return s.beds.Update(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// -- Disposition --

// RecordDisposition closes a patient's visit with a decision (admit,
// discharge, transfer or deceased). A held bed is released to cleaning in
// the same transaction. Calling it again on a closed visit is rejected
// without touching the bed.
func (s *Service) RecordDisposition(ctx context.Context, patientID uuid.UUID, decision, by string, note *string) (*Patient, error) {
	target, ok := dispositionStatus[decision]
	if !ok {
		return nil, workflow.Invalid("decision", "must be admit, discharge, transfer or deceased")
	}
	if by == "" {
		return nil, workflow.Required("decided_by")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if err := patientTransitions.Check("patient", p.Status, target); err != nil {
		return nil, err
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if err := s.releaseBed(ctx, p); err != nil {
			return err
		}

		now := s.now()
		p.Status = target
		p.Disposition = &decision
		p.DispositionTime = &now
		p.DispositionBy = &by
		p.DispositionNote = note
		return s.patients.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// -- Clinical orders --

func (s *Service) CreateOrder(ctx context.Context, o *ClinicalOrder) error {
	if !validOrderKinds[o.Kind] {
		return workflow.Invalid("kind", "must be test or treatment")
	}
	if o.Name == "" {
		return workflow.Required("name")
	}
	if o.OrderedBy == "" {
		return workflow.Required("ordered_by")
	}

	p, err := s.patients.GetByID(ctx, o.PatientID)
	if err != nil {
		return workflow.NotFound("patient", o.PatientID.String())
	}
	if !activeStatuses[p.Status] {
		return workflow.Invalid("status", "patient is no longer in the department")
	}

	if o.OrderedAt.IsZero() {
		o.OrderedAt = s.now()
	}
	o.Status = OrderOrdered
	return s.orders.Create(ctx, o)
}

func (s *Service) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string, result *string) (*ClinicalOrder, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("order", id.String())
	}
	if err := orderTransitions.Check("order", o.Status, status); err != nil {
		return nil, err
	}
	o.Status = status
	if result != nil {
		o.Result = result
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *Service) ListOrders(ctx context.Context, patientID uuid.UUID) ([]*ClinicalOrder, error) {
	return s.orders.ListByPatient(ctx, patientID)
}
