package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/hms/hms/internal/workflow"
)

// Appointment maps to the appointment table. ScheduledDate and ScheduledTime
// use the same YYYY-MM-DD / HH:MM split as physiotherapy sessions.
type Appointment struct {
	ID              uuid.UUID `db:"id" json:"id"`
	PatientID       uuid.UUID `db:"patient_id" json:"patient_id"`
	PatientName     string    `db:"patient_name" json:"patient_name"`
	ContactPhone    *string   `db:"contact_phone" json:"contact_phone,omitempty"`
	ContactEmail    *string   `db:"contact_email" json:"contact_email,omitempty"`
	Provider        string    `db:"provider" json:"provider"`
	Department      *string   `db:"department" json:"department,omitempty"`
	ScheduledDate   string    `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime   string    `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Reason          *string   `db:"reason" json:"reason,omitempty"`
	Status          string    `db:"status" json:"status"`
	Note            *string   `db:"note" json:"note,omitempty"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// Appointment statuses.
const (
	StatusScheduled = "scheduled"
	StatusCheckedIn = "checked_in"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

var appointmentTransitions = workflow.Transitions{
	StatusScheduled: {StatusCheckedIn, StatusCancelled, StatusNoShow},
	StatusCheckedIn: {StatusCompleted},
}
