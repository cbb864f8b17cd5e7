package emergency

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the ed_patient table. It tracks one emergency department
// visit from arrival through disposition.
type Patient struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	MRN             string     `db:"mrn" json:"mrn"`
	Name            string     `db:"name" json:"name"`
	Age             *int       `db:"age" json:"age,omitempty"`
	Gender          *string    `db:"gender" json:"gender,omitempty"`
	ChiefComplaint  string     `db:"chief_complaint" json:"chief_complaint"`
	ArrivalMode     string     `db:"arrival_mode" json:"arrival_mode"`
	ArrivalTime     time.Time  `db:"arrival_time" json:"arrival_time"`
	Status          string     `db:"status" json:"status"`
	TriageLevel     *string    `db:"triage_level" json:"triage_level,omitempty"`
	TriageID        *uuid.UUID `db:"triage_id" json:"triage_id,omitempty"`
	BedID           *uuid.UUID `db:"bed_id" json:"bed_id,omitempty"`
	AttendingDoctor *string    `db:"attending_doctor" json:"attending_doctor,omitempty"`
	AssignedNurse   *string    `db:"assigned_nurse" json:"assigned_nurse,omitempty"`
	Disposition     *string    `db:"disposition" json:"disposition,omitempty"`
	DispositionTime *time.Time `db:"disposition_time" json:"disposition_time,omitempty"`
	DispositionBy   *string    `db:"disposition_by" json:"disposition_by,omitempty"`
	DispositionNote *string    `db:"disposition_note" json:"disposition_note,omitempty"`
	Note            *string    `db:"note" json:"note,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// TriageAssessment maps to the triage_assessment table. Assessments are
// immutable once recorded; a re-triage adds a new row and repoints the
// patient at it.
type TriageAssessment struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PatientID        uuid.UUID `db:"patient_id" json:"patient_id"`
	Level            string    `db:"level" json:"level"`
	AssessedBy       string    `db:"assessed_by" json:"assessed_by"`
	AssessedAt       time.Time `db:"assessed_at" json:"assessed_at"`
	HeartRate        *int      `db:"heart_rate" json:"heart_rate,omitempty"`
	BloodPressure    *string   `db:"blood_pressure" json:"blood_pressure,omitempty"`
	Temperature      *float64  `db:"temperature" json:"temperature,omitempty"`
	RespiratoryRate  *int      `db:"respiratory_rate" json:"respiratory_rate,omitempty"`
	OxygenSaturation *int      `db:"oxygen_saturation" json:"oxygen_saturation,omitempty"`
	PainScore        *int      `db:"pain_score" json:"pain_score,omitempty"`
	Note             *string   `db:"note" json:"note,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Bed maps to the ed_bed table.
type Bed struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Kind      string     `db:"kind" json:"kind"`
	Zone      *string    `db:"zone" json:"zone,omitempty"`
	Status    string     `db:"status" json:"status"`
	PatientID *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// ClinicalOrder maps to the ed_order table: a test or treatment ordered for
// an emergency patient.
type ClinicalOrder struct {
	ID        uuid.UUID `db:"id" json:"id"`
	PatientID uuid.UUID `db:"patient_id" json:"patient_id"`
	Kind      string    `db:"kind" json:"kind"`
	Name      string    `db:"name" json:"name"`
	OrderedBy string    `db:"ordered_by" json:"ordered_by"`
	OrderedAt time.Time `db:"ordered_at" json:"ordered_at"`
	Status    string    `db:"status" json:"status"`
	Result    *string   `db:"result" json:"result,omitempty"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
