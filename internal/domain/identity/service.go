package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/workflow"
)

// Service implements the hospital-wide patient and staff registries. The
// clinical modules denormalize the MRN issued here onto their own records.
type Service struct {
	patients PatientRepository
	staff    StaffRepository

	now func() time.Time
}

func NewService(patients PatientRepository, staff StaffRepository) *Service {
	return &Service{patients: patients, staff: staff, now: time.Now}
}

// -- Patients --

// RegisterPatient creates a registry record. An MRN is issued when the
// caller does not supply one; a supplied MRN must not already be in use.
func (s *Service) RegisterPatient(ctx context.Context, p *Patient) error {
	if p.Name == "" {
		return workflow.Required("name")
	}
	if p.MRN == "" {
		p.MRN = newMRN(s.now())
	} else if existing, err := s.patients.GetByMRN(ctx, p.MRN); err == nil && existing != nil {
		return workflow.Invalid("mrn", "already registered")
	}
	p.Active = true
	return s.patients.Create(ctx, p)
}

// newMRN issues a medical record number of the form MRN-YYYY-XXXXXXXX, the
// suffix taken from a fresh uuid.
func newMRN(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("MRN-%d-%s", now.Year(), suffix)
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.patients.GetByID(ctx, id)
}

func (s *Service) GetPatientByMRN(ctx context.Context, mrn string) (*Patient, error) {
	return s.patients.GetByMRN(ctx, mrn)
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, updated *Patient) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("patient", id.String())
	}
	if updated.Name != "" {
		p.Name = updated.Name
	}
	if updated.DateOfBirth != nil {
		p.DateOfBirth = updated.DateOfBirth
	}
	if updated.Gender != nil {
		p.Gender = updated.Gender
	}
	if updated.Phone != nil {
		p.Phone = updated.Phone
	}
	if updated.Email != nil {
		p.Email = updated.Email
	}
	if updated.Address != nil {
		p.Address = updated.Address
	}
	if updated.BloodType != nil {
		p.BloodType = updated.BloodType
	}
	if updated.Allergies != nil {
		p.Allergies = updated.Allergies
	}
	if updated.EmergencyContact != nil {
		p.EmergencyContact = updated.EmergencyContact
	}
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeactivatePatient marks a registry record inactive. Records are never
// deleted.
func (s *Service) DeactivatePatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	p, err := s.patients.GetByID(ctx, id)
	if err != nil {
		return nil, workflow.NotFound("patient", id.String())
	}
	p.Active = false
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPatients searches by name or MRN substring when query is non-empty.
func (s *Service) ListPatients(ctx context.Context, query string, limit, offset int) ([]*Patient, int, error) {
	if query != "" {
		return s.patients.Search(ctx, query, limit, offset)
	}
	return s.patients.List(ctx, limit, offset)
}

// -- Staff --

func (s *Service) CreateStaff(ctx context.Context, m *Staff) error {
	if m.EmployeeID == "" {
		return workflow.Required("employee_id")
	}
	if m.Name == "" {
		return workflow.Required("name")
	}
	if !validStaffRoles[m.Role] {
		return workflow.Invalid("role", "unknown role")
	}
	if m.Status == "" {
		m.Status = StaffActive
	}
	if !validStaffStatuses[m.Status] {
		return workflow.Invalid("status", "must be active, inactive or on_leave")
	}
	return s.staff.Create(ctx, m)
}

func (s *Service) GetStaff(ctx context.Context, id uuid.UUID) (*Staff, error) {
	return s.staff.GetByID(ctx, id)
}

func (s *Service) UpdateStaffStatus(ctx context.Context, id uuid.UUID, status string) (*Staff, error) {
	if !validStaffStatuses[status] {
		return nil, workflow.Invalid("status", "must be active, inactive or on_leave")
	}
	m, err := s.staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return nil, workflow.NotFound("staff", id.String())
		}
		return nil, err
	}
	m.Status = status
	if err := s.staff.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) ListStaff(ctx context.Context, role string, limit, offset int) ([]*Staff, int, error) {
	if role != "" {
		return s.staff.ListByRole(ctx, role, limit, offset)
	}
	return s.staff.List(ctx, limit, offset)
}
