package emergency

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
	ListByTriageLevel(ctx context.Context, level string, limit, offset int) ([]*Patient, int, error)
	// ListActive returns every patient still in the department, unordered.
	ListActive(ctx context.Context) ([]*Patient, error)
}

type TriageRepository interface {
	Create(ctx context.Context, a *TriageAssessment) error
	GetByID(ctx context.Context, id uuid.UUID) (*TriageAssessment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*TriageAssessment, error)
}

type BedRepository interface {
	Create(ctx context.Context, b *Bed) error
	GetByID(ctx context.Context, id uuid.UUID) (*Bed, error)
	Update(ctx context.Context, b *Bed) error
	List(ctx context.Context, limit, offset int) ([]*Bed, int, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Bed, int, error)
}

type OrderRepository interface {
	Create(ctx context.Context, o *ClinicalOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalOrder, error)
	Update(ctx context.Context, o *ClinicalOrder) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*ClinicalOrder, error)
}
