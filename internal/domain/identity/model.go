package identity

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the patient table: the hospital-wide registry record a
// clinical module refers to by MRN.
type Patient struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	MRN              string     `db:"mrn" json:"mrn"`
	Name             string     `db:"name" json:"name"`
	DateOfBirth      *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender           *string    `db:"gender" json:"gender,omitempty"`
	Phone            *string    `db:"phone" json:"phone,omitempty"`
	Email            *string    `db:"email" json:"email,omitempty"`
	Address          *string    `db:"address" json:"address,omitempty"`
	BloodType        *string    `db:"blood_type" json:"blood_type,omitempty"`
	Allergies        *string    `db:"allergies" json:"allergies,omitempty"`
	EmergencyContact *string    `db:"emergency_contact" json:"emergency_contact,omitempty"`
	Active           bool       `db:"active" json:"active"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}

// Staff maps to the staff table.
type Staff struct {
	ID         uuid.UUID `db:"id" json:"id"`
	EmployeeID string    `db:"employee_id" json:"employee_id"`
	Name       string    `db:"name" json:"name"`
	Role       string    `db:"role" json:"role"`
	Department *string   `db:"department" json:"department,omitempty"`
	Phone      *string   `db:"phone" json:"phone,omitempty"`
	Email      *string   `db:"email" json:"email,omitempty"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Staff statuses.
const (
	StaffActive   = "active"
	StaffInactive = "inactive"
	StaffOnLeave  = "on_leave"
)

var validStaffStatuses = map[string]bool{
	StaffActive:   true,
	StaffInactive: true,
	StaffOnLeave:  true,
}

var validStaffRoles = map[string]bool{
	"admin":        true,
	"physician":    true,
	"nurse":        true,
	"midwife":      true,
	"therapist":    true,
	"receptionist": true,
}
