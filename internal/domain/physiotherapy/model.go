package physiotherapy

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the physio_patient table. One row per treatment plan
// enrolment; a reactivated plan reuses the same row.
type Patient struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	MRN           string     `db:"mrn" json:"mrn"`
	Name          string     `db:"name" json:"name"`
	Age           *int       `db:"age" json:"age,omitempty"`
	Condition     string     `db:"condition" json:"condition"`
	ReferredBy    *string    `db:"referred_by" json:"referred_by,omitempty"`
	Status        string     `db:"status" json:"status"`
	TreatmentPlan *string    `db:"treatment_plan" json:"treatment_plan,omitempty"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	DischargeTime *time.Time `db:"discharge_time" json:"discharge_time,omitempty"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}

// Assessment maps to the physio_assessment table. Assessments are immutable
// once recorded.
type Assessment struct {
	ID             uuid.UUID `db:"id" json:"id"`
	PatientID      uuid.UUID `db:"patient_id" json:"patient_id"`
	AssessedBy     string    `db:"assessed_by" json:"assessed_by"`
	AssessedAt     time.Time `db:"assessed_at" json:"assessed_at"`
	PainScore      *int      `db:"pain_score" json:"pain_score,omitempty"`
	RangeOfMotion  *string   `db:"range_of_motion" json:"range_of_motion,omitempty"`
	MuscleStrength *string   `db:"muscle_strength" json:"muscle_strength,omitempty"`
	Findings       *string   `db:"findings" json:"findings,omitempty"`
	Goals          *string   `db:"goals" json:"goals,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Session maps to the physio_session table. ScheduledDate is a calendar day
// in YYYY-MM-DD form and ScheduledTime a clock time in HH:MM form; keeping
// them split makes the per-therapist per-day overlap query a plain equality
// filter.
type Session struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientID       uuid.UUID  `db:"patient_id" json:"patient_id"`
	TherapistID     uuid.UUID  `db:"therapist_id" json:"therapist_id"`
	EquipmentID     *uuid.UUID `db:"equipment_id" json:"equipment_id,omitempty"`
	SessionNumber   int        `db:"session_number" json:"session_number"`
	ScheduledDate   string     `db:"scheduled_date" json:"scheduled_date"`
	ScheduledTime   string     `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes int        `db:"duration_minutes" json:"duration_minutes"`
	Status          string     `db:"status" json:"status"`
	TreatmentNote   *string    `db:"treatment_note" json:"treatment_note,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// Therapist maps to the therapist table.
type Therapist struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Specialty *string   `db:"specialty" json:"specialty,omitempty"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Equipment maps to the physio_equipment table.
type Equipment struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Kind      *string   `db:"kind" json:"kind,omitempty"`
	Status    string    `db:"status" json:"status"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
