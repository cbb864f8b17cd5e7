package maternity

import (
	"time"

	"github.com/google/uuid"
)

// Patient maps to the maternity_patient table. It follows one pregnancy
// from prenatal care through discharge.
type Patient struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	MRN                string     `db:"mrn" json:"mrn"`
	Name               string     `db:"name" json:"name"`
	Age                *int       `db:"age" json:"age,omitempty"`
	BloodType          *string    `db:"blood_type" json:"blood_type,omitempty"`
	Status             string     `db:"status" json:"status"`
	Gravida            int        `db:"gravida" json:"gravida"`
	Para               int        `db:"para" json:"para"`
	LMP                *time.Time `db:"lmp" json:"lmp,omitempty"`
	EDD                *time.Time `db:"edd" json:"edd,omitempty"`
	AttendingPhysician *string    `db:"attending_physician" json:"attending_physician,omitempty"`
	Midwife            *string    `db:"midwife" json:"midwife,omitempty"`
	AdmissionTime      *time.Time `db:"admission_time" json:"admission_time,omitempty"`
	AdmittedBy         *string    `db:"admitted_by" json:"admitted_by,omitempty"`
	Room               *string    `db:"room" json:"room,omitempty"`
	DischargeTime      *time.Time `db:"discharge_time" json:"discharge_time,omitempty"`
	Note               *string    `db:"note" json:"note,omitempty"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
}

// PrenatalVisit maps to the prenatal_visit table.
type PrenatalVisit struct {
	ID               uuid.UUID  `db:"id" json:"id"`
	PatientID        uuid.UUID  `db:"patient_id" json:"patient_id"`
	VisitDate        time.Time  `db:"visit_date" json:"visit_date"`
	GestationalWeeks *int       `db:"gestational_weeks" json:"gestational_weeks,omitempty"`
	WeightKg         *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	BloodPressure    *string    `db:"blood_pressure" json:"blood_pressure,omitempty"`
	FetalHeartRate   *int       `db:"fetal_heart_rate" json:"fetal_heart_rate,omitempty"`
	Provider         string     `db:"provider" json:"provider"`
	NextVisit        *time.Time `db:"next_visit" json:"next_visit,omitempty"`
	Note             *string    `db:"note" json:"note,omitempty"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// LaborProgress maps to the labor_progress table: periodic observations
// while the patient is in labor.
type LaborProgress struct {
	ID               uuid.UUID `db:"id" json:"id"`
	PatientID        uuid.UUID `db:"patient_id" json:"patient_id"`
	RecordedAt       time.Time `db:"recorded_at" json:"recorded_at"`
	CervicalDilation *int      `db:"cervical_dilation" json:"cervical_dilation,omitempty"`
	Contractions     *string   `db:"contractions" json:"contractions,omitempty"`
	FetalHeartRate   *int      `db:"fetal_heart_rate" json:"fetal_heart_rate,omitempty"`
	RecordedBy       string    `db:"recorded_by" json:"recorded_by"`
	Note             *string   `db:"note" json:"note,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Delivery maps to the delivery table.
type Delivery struct {
	ID                 uuid.UUID `db:"id" json:"id"`
	PatientID          uuid.UUID `db:"patient_id" json:"patient_id"`
	DeliveredAt        time.Time `db:"delivered_at" json:"delivered_at"`
	Method             string    `db:"method" json:"method"`
	GestationalWeeks   *int      `db:"gestational_weeks" json:"gestational_weeks,omitempty"`
	AttendingPhysician string    `db:"attending_physician" json:"attending_physician"`
	Midwife            *string   `db:"midwife" json:"midwife,omitempty"`
	BloodLossML        *int      `db:"blood_loss_ml" json:"blood_loss_ml,omitempty"`
	Anesthesia         *string   `db:"anesthesia" json:"anesthesia,omitempty"`
	Note               *string   `db:"note" json:"note,omitempty"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// Newborn maps to the newborn table.
type Newborn struct {
	ID         uuid.UUID `db:"id" json:"id"`
	DeliveryID uuid.UUID `db:"delivery_id" json:"delivery_id"`
	MotherID   uuid.UUID `db:"mother_id" json:"mother_id"`
	Sex        string    `db:"sex" json:"sex"`
	BirthTime  time.Time `db:"birth_time" json:"birth_time"`
	WeightG    int       `db:"weight_g" json:"weight_g"`
	LengthCM   *float64  `db:"length_cm" json:"length_cm,omitempty"`
	Apgar1     *int      `db:"apgar_1" json:"apgar_1,omitempty"`
	Apgar5     *int      `db:"apgar_5" json:"apgar_5,omitempty"`
	Status     string    `db:"status" json:"status"`
	NICUReason *string   `db:"nicu_reason" json:"nicu_reason,omitempty"`
	Note       *string   `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// PostpartumCheckup maps to the postpartum_checkup table.
type PostpartumCheckup struct {
	ID            uuid.UUID  `db:"id" json:"id"`
	PatientID     uuid.UUID  `db:"patient_id" json:"patient_id"`
	DeliveryID    *uuid.UUID `db:"delivery_id" json:"delivery_id,omitempty"`
	CheckedAt     time.Time  `db:"checked_at" json:"checked_at"`
	Temperature   *float64   `db:"temperature" json:"temperature,omitempty"`
	BloodPressure *string    `db:"blood_pressure" json:"blood_pressure,omitempty"`
	Pulse         *int       `db:"pulse" json:"pulse,omitempty"`
	Lochia        *string    `db:"lochia" json:"lochia,omitempty"`
	UterineTone   *string    `db:"uterine_tone" json:"uterine_tone,omitempty"`
	PainLevel     *int       `db:"pain_level" json:"pain_level,omitempty"`
	Provider      string     `db:"provider" json:"provider"`
	Note          *string    `db:"note" json:"note,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}
