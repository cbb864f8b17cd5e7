package physiotherapy

import (
	"context"

	"github.com/google/uuid"
)

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error)
}

type AssessmentRepository interface {
	Create(ctx context.Context, a *Assessment) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error)
}

type SessionRepository interface {
	Create(ctx context.Context, s *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Session, error)
	ListByTherapistAndDate(ctx context.Context, therapistID uuid.UUID, date string) ([]*Session, error)
	ListByDate(ctx context.Context, date string) ([]*Session, error)
	CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error)
}

type TherapistRepository interface {
	Create(ctx context.Context, t *Therapist) error
	GetByID(ctx context.Context, id uuid.UUID) (*Therapist, error)
	Update(ctx context.Context, t *Therapist) error
	List(ctx context.Context) ([]*Therapist, error)
}

type EquipmentRepository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Equipment, error)
	Update(ctx context.Context, e *Equipment) error
	List(ctx context.Context) ([]*Equipment, error)
}
