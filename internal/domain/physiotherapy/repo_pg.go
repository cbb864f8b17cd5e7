package physiotherapy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/workflow"
)

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

func (r *patientRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const patientCols = `id, mrn, name, age, condition, referred_by, status, treatment_plan,
	start_date, discharge_time, note, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MRN, &p.Name, &p.Age, &p.Condition, &p.ReferredBy, &p.Status, &p.TreatmentPlan,
		&p.StartDate, &p.DischargeTime, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO physio_patient (id, mrn, name, age, condition, referred_by, status, treatment_plan, start_date, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		p.ID, p.MRN, p.Name, p.Age, p.Condition, p.ReferredBy, p.Status, p.TreatmentPlan, p.StartDate, p.Note)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM physio_patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE physio_patient SET status=$2, treatment_plan=$3, discharge_time=$4, note=$5, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Status, p.TreatmentPlan, p.DischargeTime, p.Note)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM physio_patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM physio_patient ORDER BY start_date DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *patientRepoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM physio_patient WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM physio_patient WHERE status = $1 ORDER BY start_date DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

// =========== Assessment Repository ===========

type assessmentRepoPG struct{ pool *pgxpool.Pool }

func NewAssessmentRepoPG(pool *pgxpool.Pool) AssessmentRepository {
	return &assessmentRepoPG{pool: pool}
}

func (r *assessmentRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const assessmentCols = `id, patient_id, assessed_by, assessed_at, pain_score, range_of_motion,
	muscle_strength, findings, goals, created_at`

func (r *assessmentRepoPG) Create(ctx context.Context, a *Assessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO physio_assessment (id, patient_id, assessed_by, assessed_at, pain_score, range_of_motion, muscle_strength, findings, goals)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.PatientID, a.AssessedBy, a.AssessedAt, a.PainScore, a.RangeOfMotion, a.MuscleStrength, a.Findings, a.Goals)
	return err
}

func (r *assessmentRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Assessment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+assessmentCols+` FROM physio_assessment WHERE patient_id = $1 ORDER BY assessed_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.PatientID, &a.AssessedBy, &a.AssessedAt, &a.PainScore, &a.RangeOfMotion,
			&a.MuscleStrength, &a.Findings, &a.Goals, &a.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, nil
}

// =========== Session Repository ===========

type sessionRepoPG struct{ pool *pgxpool.Pool }

func NewSessionRepoPG(pool *pgxpool.Pool) SessionRepository { return &sessionRepoPG{pool: pool} }

func (r *sessionRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const sessionCols = `id, patient_id, therapist_id, equipment_id, session_number, scheduled_date,
	scheduled_time, duration_minutes, status, treatment_note, created_at, updated_at`

func (r *sessionRepoPG) scanSession(row pgx.Row) (*Session, error) {
	var s Session
	err := row.Scan(&s.ID, &s.PatientID, &s.TherapistID, &s.EquipmentID, &s.SessionNumber, &s.ScheduledDate,
		&s.ScheduledTime, &s.DurationMinutes, &s.Status, &s.TreatmentNote, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &s, err
}

func (r *sessionRepoPG) Create(ctx context.Context, s *Session) error {
	s.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO physio_session (id, patient_id, therapist_id, equipment_id, session_number, scheduled_date, scheduled_time, duration_minutes, status, treatment_note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		s.ID, s.PatientID, s.TherapistID, s.EquipmentID, s.SessionNumber, s.ScheduledDate, s.ScheduledTime, s.DurationMinutes, s.Status, s.TreatmentNote)
	return err
}

func (r *sessionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Session, error) {
	return r.scanSession(r.conn(ctx).QueryRow(ctx, `SELECT `+sessionCols+` FROM physio_session WHERE id = $1`, id))
}

func (r *sessionRepoPG) Update(ctx context.Context, s *Session) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE physio_session SET status=$2, treatment_note=$3, updated_at=NOW()
		WHERE id = $1`,
		s.ID, s.Status, s.TreatmentNote)
	return err
}

func (r *sessionRepoPG) list(ctx context.Context, where string, args ...interface{}) ([]*Session, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+sessionCols+` FROM physio_session WHERE `+where+` ORDER BY scheduled_date, scheduled_time`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Session
	for rows.Next() {
		s, err := r.scanSession(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, s)
	}
	return items, nil
}

func (r *sessionRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Session, error) {
	return r.list(ctx, `patient_id = $1`, patientID)
}

func (r *sessionRepoPG) ListByTherapistAndDate(ctx context.Context, therapistID uuid.UUID, date string) ([]*Session, error) {
	return r.list(ctx, `therapist_id = $1 AND scheduled_date = $2`, therapistID, date)
}

func (r *sessionRepoPG) ListByDate(ctx context.Context, date string) ([]*Session, error) {
	return r.list(ctx, `scheduled_date = $1`, date)
}

func (r *sessionRepoPG) CountByPatient(ctx context.Context, patientID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM physio_session WHERE patient_id = $1`, patientID).Scan(&count)
	return count, err
}

// =========== Therapist Repository ===========

type therapistRepoPG struct{ pool *pgxpool.Pool }

func NewTherapistRepoPG(pool *pgxpool.Pool) TherapistRepository { return &therapistRepoPG{pool: pool} }

func (r *therapistRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const therapistCols = `id, name, specialty, status, created_at, updated_at`

func (r *therapistRepoPG) scanTherapist(row pgx.Row) (*Therapist, error) {
	var t Therapist
	err := row.Scan(&t.ID, &t.Name, &t.Specialty, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &t, err
}

func (r *therapistRepoPG) Create(ctx context.Context, t *Therapist) error {
	t.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO therapist (id, name, specialty, status) VALUES ($1,$2,$3,$4)`,
		t.ID, t.Name, t.Specialty, t.Status)
	return err
}

func (r *therapistRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Therapist, error) {
	return r.scanTherapist(r.conn(ctx).QueryRow(ctx, `SELECT `+therapistCols+` FROM therapist WHERE id = $1`, id))
}

func (r *therapistRepoPG) Update(ctx context.Context, t *Therapist) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE therapist SET specialty=$2, status=$3, updated_at=NOW() WHERE id = $1`,
		t.ID, t.Specialty, t.Status)
	return err
}

func (r *therapistRepoPG) List(ctx context.Context) ([]*Therapist, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+therapistCols+` FROM therapist ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Therapist
	for rows.Next() {
		t, err := r.scanTherapist(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, t)
	}
	return items, nil
}

// =========== Equipment Repository ===========

type equipmentRepoPG struct{ pool *pgxpool.Pool }

func NewEquipmentRepoPG(pool *pgxpool.Pool) EquipmentRepository { return &equipmentRepoPG{pool: pool} }

func (r *equipmentRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const equipmentCols = `id, name, kind, status, note, created_at, updated_at`

func (r *equipmentRepoPG) scanEquipment(row pgx.Row) (*Equipment, error) {
	var e Equipment
	err := row.Scan(&e.ID, &e.Name, &e.Kind, &e.Status, &e.Note, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &e, err
}

func (r *equipmentRepoPG) Create(ctx context.Context, e *Equipment) error {
	e.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO physio_equipment (id, name, kind, status, note) VALUES ($1,$2,$3,$4,$5)`,
		e.ID, e.Name, e.Kind, e.Status, e.Note)
	return err
}

func (r *equipmentRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Equipment, error) {
	return r.scanEquipment(r.conn(ctx).QueryRow(ctx, `SELECT `+equipmentCols+` FROM physio_equipment WHERE id = $1`, id))
}

func (r *equipmentRepoPG) Update(ctx context.Context, e *Equipment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE physio_equipment SET status=$2, note=$3, updated_at=NOW() WHERE id = $1`,
		e.ID, e.Status, e.Note)
	return err
}

func (r *equipmentRepoPG) List(ctx context.Context) ([]*Equipment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+equipmentCols+` FROM physio_equipment ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Equipment
	for rows.Next() {
		e, err := r.scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}
