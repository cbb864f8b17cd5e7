package emergency

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

const patientCols = `id, mrn, name, age, gender, chief_complaint, arrival_mode, arrival_time,
	status, triage_level, triage_id, bed_id, attending_doctor, assigned_nurse,
	disposition, disposition_time, disposition_by, disposition_note, note, created_at, updated_at`

func (r *patientRepoPG) scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MRN, &p.Name, &p.Age, &p.Gender, &p.ChiefComplaint, &p.ArrivalMode, &p.ArrivalTime,
		&p.Status, &p.TriageLevel, &p.TriageID, &p.BedID, &p.AttendingDoctor, &p.AssignedNurse,
		&p.Disposition, &p.DispositionTime, &p.DispositionBy, &p.DispositionNote, &p.Note, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ed_patient (id, mrn, name, age, gender, chief_complaint, arrival_mode, arrival_time,
			status, triage_level, triage_id, bed_id, attending_doctor, assigned_nurse, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		p.ID, p.MRN, p.Name, p.Age, p.Gender, p.ChiefComplaint, p.ArrivalMode, p.ArrivalTime,
		p.Status, p.TriageLevel, p.TriageID, p.BedID, p.AttendingDoctor, p.AssignedNurse, p.Note)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return r.scanPatient(r.conn(ctx).QueryRow(ctx, `SELECT `+patientCols+` FROM ed_patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ed_patient SET status=$2, triage_level=$3, triage_id=$4, bed_id=$5,
			attending_doctor=$6, assigned_nurse=$7, disposition=$8, disposition_time=$9,
			disposition_by=$10, disposition_note=$11, note=$12, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Status, p.TriageLevel, p.TriageID, p.BedID,
		p.AttendingDoctor, p.AssignedNurse, p.Disposition, p.DispositionTime,
		p.DispositionBy, p.DispositionNote, p.Note)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ed_patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM ed_patient ORDER BY arrival_time DESC LIMIT $1 OFFSET $2`, limit, offset)
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
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ed_patient WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM ed_patient WHERE status = $1 ORDER BY arrival_time DESC LIMIT $2 OFFSET $3`, status, limit, offset)
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

func (r *patientRepoPG) ListByTriageLevel(ctx context.Context, level string, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ed_patient WHERE triage_level = $1`, level).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM ed_patient WHERE triage_level = $1 ORDER BY arrival_time LIMIT $2 OFFSET $3`, level, limit, offset)
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

func (r *patientRepoPG) ListActive(ctx context.Context) ([]*Patient, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+patientCols+` FROM ed_patient
		WHERE status IN ('waiting_triage','triaged','in_treatment','awaiting_results','awaiting_decision')
		ORDER BY arrival_time`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := r.scanPatient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, nil
}

// =========== Triage Repository ===========

type triageRepoPG struct{ pool *pgxpool.Pool }

func NewTriageRepoPG(pool *pgxpool.Pool) TriageRepository { return &triageRepoPG{pool: pool} }

func (r *triageRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const triageCols = `id, patient_id, level, assessed_by, assessed_at, heart_rate, blood_pressure,
	temperature, respiratory_rate, oxygen_saturation, pain_score, note, created_at`

func (r *triageRepoPG) scanAssessment(row pgx.Row) (*TriageAssessment, error) {
	var a TriageAssessment
	err := row.Scan(&a.ID, &a.PatientID, &a.Level, &a.AssessedBy, &a.AssessedAt, &a.HeartRate, &a.BloodPressure,
		&a.Temperature, &a.RespiratoryRate, &a.OxygenSaturation, &a.PainScore, &a.Note, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &a, err
}

func (r *triageRepoPG) Create(ctx context.Context, a *TriageAssessment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO triage_assessment (id, patient_id, level, assessed_by, assessed_at, heart_rate,
			blood_pressure, temperature, respiratory_rate, oxygen_saturation, pain_score, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		a.ID, a.PatientID, a.Level, a.AssessedBy, a.AssessedAt, a.HeartRate,
		a.BloodPressure, a.Temperature, a.RespiratoryRate, a.OxygenSaturation, a.PainScore, a.Note)
	return err
}

func (r *triageRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*TriageAssessment, error) {
	return r.scanAssessment(r.conn(ctx).QueryRow(ctx, `SELECT `+triageCols+` FROM triage_assessment WHERE id = $1`, id))
}

func (r *triageRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*TriageAssessment, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+triageCols+` FROM triage_assessment WHERE patient_id = $1 ORDER BY assessed_at DESC`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*TriageAssessment
	for rows.Next() {
		a, err := r.scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, nil
}

// =========== Bed Repository ===========

type bedRepoPG struct{ pool *pgxpool.Pool }

func NewBedRepoPG(pool *pgxpool.Pool) BedRepository { return &bedRepoPG{pool: pool} }

func (r *bedRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const bedCols = `id, name, kind, zone, status, patient_id, created_at, updated_at`

func (r *bedRepoPG) scanBed(row pgx.Row) (*Bed, error) {
	var b Bed
	err := row.Scan(&b.ID, &b.Name, &b.Kind, &b.Zone, &b.Status, &b.PatientID, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &b, err
}

func (r *bedRepoPG) Create(ctx context.Context, b *Bed) error {
	b.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ed_bed (id, name, kind, zone, status, patient_id)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		b.ID, b.Name, b.Kind, b.Zone, b.Status, b.PatientID)
	return err
}

func (r *bedRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Bed, error) {
	return r.scanBed(r.conn(ctx).QueryRow(ctx, `SELECT `+bedCols+` FROM ed_bed WHERE id = $1`, id))
}

func (r *bedRepoPG) Update(ctx context.Context, b *Bed) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ed_bed SET status=$2, patient_id=$3, updated_at=NOW() WHERE id = $1`,
		b.ID, b.Status, b.PatientID)
	return err
}

func (r *bedRepoPG) List(ctx context.Context, limit, offset int) ([]*Bed, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ed_bed`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bedCols+` FROM ed_bed ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Bed
	for rows.Next() {
		b, err := r.scanBed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, nil
}

func (r *bedRepoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Bed, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM ed_bed WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+bedCols+` FROM ed_bed WHERE status = $1 ORDER BY name LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Bed
	for rows.Next() {
		b, err := r.scanBed(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, b)
	}
	return items, total, nil
}

// =========== Order Repository ===========

type orderRepoPG struct{ pool *pgxpool.Pool }

func NewOrderRepoPG(pool *pgxpool.Pool) OrderRepository { return &orderRepoPG{pool: pool} }

func (r *orderRepoPG) conn(ctx context.Context) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const orderCols = `id, patient_id, kind, name, ordered_by, ordered_at, status, result, note, created_at, updated_at`

func (r *orderRepoPG) scanOrder(row pgx.Row) (*ClinicalOrder, error) {
	var o ClinicalOrder
	err := row.Scan(&o.ID, &o.PatientID, &o.Kind, &o.Name, &o.OrderedBy, &o.OrderedAt, &o.Status, &o.Result, &o.Note, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &o, err
}

func (r *orderRepoPG) Create(ctx context.Context, o *ClinicalOrder) error {
	o.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO ed_order (id, patient_id, kind, name, ordered_by, ordered_at, status, result, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		o.ID, o.PatientID, o.Kind, o.Name, o.OrderedBy, o.OrderedAt, o.Status, o.Result, o.Note)
	return err
}

func (r *orderRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalOrder, error) {
	return r.scanOrder(r.conn(ctx).QueryRow(ctx, `SELECT `+orderCols+` FROM ed_order WHERE id = $1`, id))
}

func (r *orderRepoPG) Update(ctx context.Context, o *ClinicalOrder) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE ed_order SET status=$2, result=$3, note=$4, updated_at=NOW() WHERE id = $1`,
		o.ID, o.Status, o.Result, o.Note)
	return err
}

func (r *orderRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*ClinicalOrder, error) {
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+orderCols+` FROM ed_order WHERE patient_id = $1 ORDER BY ordered_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*ClinicalOrder
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, nil
}
