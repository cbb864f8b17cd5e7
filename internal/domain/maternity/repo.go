package maternity

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

type VisitRepository interface {
	Create(ctx context.Context, v *PrenatalVisit) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*PrenatalVisit, error)
}

type LaborRepository interface {
	Create(ctx context.Context, l *LaborProgress) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LaborProgress, error)
}

type DeliveryRepository interface {
	Create(ctx context.Context, d *Delivery) error
	GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Delivery, error)
}

type NewbornRepository interface {
	Create(ctx context.Context, n *Newborn) error
	GetByID(ctx context.Context, id uuid.UUID) (*Newborn, error)
	Update(ctx context.Context, n *Newborn) error
	ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]*Newborn, error)
	ListByMother(ctx context.Context, motherID uuid.UUID) ([]*Newborn, error)
}

type CheckupRepository interface {
	Create(ctx context.Context, c *PostpartumCheckup) error
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*PostpartumCheckup, error)
}
