package maternity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/workflow"
)

// Service implements the maternity ward workflows: prenatal care, labor
// admission, deliveries, newborn tracking and postpartum follow-up.
type Service struct {
	patients   PatientRepository
	visits     VisitRepository
	labor      LaborRepository
	deliveries DeliveryRepository
	newborns   NewbornRepository
	checkups   CheckupRepository
	txr        db.TxRunner

	mu  sync.Mutex
	now func() time.Time
}

func NewService(patients PatientRepository, visits VisitRepository, labor LaborRepository, deliveries DeliveryRepository, newborns NewbornRepository, checkups CheckupRepository, txr db.TxRunner) *Service {
	return &Service{
		patients:   patients,
		visits:     visits,
		labor:      labor,
		deliveries: deliveries,
		newborns:   newborns,
		checkups:   checkups,
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
	if p.Gravida < 1 {
		return workflow.Invalid("gravida", "must be at least 1")
	}
	if p.Para < 0 || p.Para >= p.Gravida {
		return workflow.Invalid("para", "must be between 0 and gravida-1")
	}
	p.Status = StatusPrenatal
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

// -- Prenatal care --

func (s *Service) AddPrenatalVisit(ctx context.Context, patientID uuid.UUID, v *PrenatalVisit) error {
	if v.Provider == "" {
		return workflow.Required("provider")
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return workflow.NotFound("patient", patientID.String())
	}
	if p.Status != StatusPrenatal {
		return workflow.Invalid("status", "prenatal visits are recorded before admission")
	}

	v.PatientID = p.ID
	if v.VisitDate.IsZero() {
		v.VisitDate = s.now()
	}
	return s.visits.Create(ctx, v)
}

func (s *Service) ListPrenatalVisits(ctx context.Context, patientID uuid.UUID) ([]*PrenatalVisit, error) {
	return s.visits.ListByPatient(ctx, patientID)
}

// -- Labor --

// AdmissionRequest carries the fields required to admit a patient for labor.
type AdmissionRequest struct {
	AdmittedBy         string     `json:"admitted_by"`
	AttendingPhysician string     `json:"attending_physician"`
	Midwife            *string    `json:"midwife"`
	Room               *string    `json:"room"`
	AdmissionTime      *time.Time `json:"admission_time"`
}

// AdmitForLabor moves a prenatal patient into labor and records the
// admission details.
func (s *Service) AdmitForLabor(ctx context.Context, patientID uuid.UUID, req AdmissionRequest) (*Patient, error) {
	if req.AdmittedBy == "" {
		return nil, workflow.Required("admitted_by")
	}
	if req.AttendingPhysician == "" {
		return nil, workflow.Required("attending_physician")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if err := patientTransitions.Check("maternity patient", p.Status, StatusLabor); err != nil {
		return nil, err
	}

	admitted := s.now()
	if req.AdmissionTime != nil {
		admitted = *req.AdmissionTime
	}
	p.Status = StatusLabor
	p.AdmissionTime = &admitted
	p.AdmittedBy = &req.AdmittedBy
	p.AttendingPhysician = &req.AttendingPhysician
	if req.Midwife != nil {
		p.Midwife = req.Midwife
	}
	if req.Room != nil {
		p.Room = req.Room
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) RecordLaborProgress(ctx context.Context, patientID uuid.UUID, l *LaborProgress) error {
	if l.RecordedBy == "" {
		return workflow.Required("recorded_by")
	}
	if l.CervicalDilation != nil && (*l.CervicalDilation < 0 || *l.CervicalDilation > 10) {
		return workflow.Invalid("cervical_dilation", "must be between 0 and 10")
	}

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return workflow.NotFound("patient", patientID.String())
	}
	if p.Status != StatusLabor {
		return workflow.Invalid("status", "patient is not in labor")
	}

	l.PatientID = p.ID
	if l.RecordedAt.IsZero() {
		l.RecordedAt = s.now()
	}
	return s.labor.Create(ctx, l)
}

func (s *Service) ListLaborProgress(ctx context.Context, patientID uuid.UUID) ([]*LaborProgress, error) {
	return s.labor.ListByPatient(ctx, patientID)
}

// -- Delivery --

// RecordDelivery closes the labor phase: the delivery record is created and
// the patient moves to delivered in the same transaction.
func (s *Service) RecordDelivery(ctx context.Context, patientID uuid.UUID, d *Delivery) (*Patient, error) {
	if !validDeliveryMethods[d.Method] {
		return nil, workflow.Invalid("method", "must be vaginal, cesarean or assisted")
	}
	if d.AttendingPhysician == "" {
		return nil, workflow.Required("attending_physician")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if err := patientTransitions.Check("maternity patient", p.Status, StatusDelivered); err != nil {
		return nil, err
	}

	d.PatientID = p.ID
	if d.DeliveredAt.IsZero() {
		d.DeliveredAt = s.now()
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if err := s.deliveries.Create(ctx, d); err != nil {
			return err
		}
		p.Status = StatusDelivered
		return s.patients.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListDeliveries(ctx context.Context, patientID uuid.UUID) ([]*Delivery, error) {
	return s.deliveries.ListByPatient(ctx, patientID)
}

// -- Newborns --

func (s *Service) AddNewborn(ctx context.Context, deliveryID uuid.UUID, n *Newborn) error {
	if !validNewbornSexes[n.Sex] {
		return workflow.Invalid("sex", "must be male or female")
	}
	if n.WeightG <= 0 {
		return workflow.Invalid("weight_g", "must be positive")
	}
	if n.Status == "" {
		n.Status = NewbornHealthy
	}
	if _, known := newbornTransitions[n.Status]; !known {
		return workflow.Invalid("status", "must be healthy, observation or nicu")
	}
	if n.Status == NewbornNICU && n.NICUReason == nil {
		return workflow.Required("nicu_reason")
	}

	d, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return workflow.NotFound("delivery", deliveryID.String())
	}

	n.DeliveryID = d.ID
	n.MotherID = d.PatientID
	if n.BirthTime.IsZero() {
		n.BirthTime = d.DeliveredAt
	}
	return s.newborns.Create(ctx, n)
}

func (s *Service) UpdateNewbornStatus(ctx context.Context, id uuid.UUID, status string, nicuReason *string) (*Newborn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.newborns.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("newborn", id.String())
	}
	if err := newbornTransitions.Check("newborn", n.Status, status); err != nil {
		return nil, err
	}
	if status == NewbornNICU && nicuReason == nil && n.NICUReason == nil {
		return nil, workflow.Required("nicu_reason")
	}

	n.Status = status
	if nicuReason != nil {
		n.NICUReason = nicuReason
	}
	if err := s.newborns.Update(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *Service) ListNewbornsByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]*Newborn, error) {
	return s.newborns.ListByDelivery(ctx, deliveryID)
}

func (s *Service) ListNewbornsByMother(ctx context.Context, motherID uuid.UUID) ([]*Newborn, error) {
	return s.newborns.ListByMother(ctx, motherID)
}

// -- Postpartum --

// RecordPostpartumCheckup stores a checkup. The first checkup after a
// delivery promotes the patient from delivered to postpartum.
func (s *Service) RecordPostpartumCheckup(ctx context.Context, patientID uuid.UUID, c *PostpartumCheckup) (*Patient, error) {
	if c.Provider == "" {
		return nil, workflow.Required("provider")
	}
	if c.PainLevel != nil && (*c.PainLevel < 0 || *c.PainLevel > 10) {
		return nil, workflow.Invalid("pain_level", "must be between 0 and 10")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if p.Status != StatusDelivered && p.Status != StatusPostpartum {
		return nil, workflow.Invalid("status", "postpartum checkups follow a delivery")
	}

	c.PatientID = p.ID
	if c.CheckedAt.IsZero() {
		c.CheckedAt = s.now()
	}

	err = s.txr.InTx(ctx, func(ctx context.Context) error {
		if err := s.checkups.Create(ctx, c); err != nil {
			return err
		}
		if p.Status == StatusDelivered {
			p.Status = StatusPostpartum
			return s.patients.Update(ctx, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListPostpartumCheckups(ctx context.Context, patientID uuid.UUID) ([]*PostpartumCheckup, error) {
	return s.checkups.ListByPatient(ctx, patientID)
}

// -- Discharge --

func (s *Service) DischargePatient(ctx context.Context, patientID uuid.UUID, note *string) (*Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.patients.GetByID(ctx, patientID)
	if err != nil {
		return nil, workflow.NotFound("patient", patientID.String())
	}
	if err := patientTransitions.Check("maternity patient", p.Status, StatusDischarged); err != nil {
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
