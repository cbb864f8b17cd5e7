package maternity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hms/hms/internal/platform/db"
	"github.com/hms/hms/internal/workflow"
)

func conn(ctx context.Context, pool *pgxpool.Pool) db.Queryable {
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// =========== Patient Repository ===========

type patientRepoPG struct{ pool *pgxpool.Pool }

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository { return &patientRepoPG{pool: pool} }

const patientCols = `id, mrn, name, age, blood_type, status, gravida, para, lmp, edd,
	attending_physician, midwife, admission_time, admitted_by, room, discharge_time,
	note, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.MRN, &p.Name, &p.Age, &p.BloodType, &p.Status, &p.Gravida, &p.Para, &p.LMP, &p.EDD,
		&p.AttendingPhysician, &p.Midwife, &p.AdmissionTime, &p.AdmittedBy, &p.Room, &p.DischargeTime,
		&p.Note, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &p, err
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	p.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO maternity_patient (id, mrn, name, age, blood_type, status, gravida, para, lmp, edd,
			attending_physician, midwife, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		p.ID, p.MRN, p.Name, p.Age, p.BloodType, p.Status, p.Gravida, p.Para, p.LMP, p.EDD,
		p.AttendingPhysician, p.Midwife, p.Note)
	return err
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return scanPatient(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+patientCols+` FROM maternity_patient WHERE id = $1`, id))
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE maternity_patient SET status=$2, attending_physician=$3, midwife=$4, admission_time=$5,
			admitted_by=$6, room=$7, discharge_time=$8, edd=$9, note=$10, updated_at=NOW()
		WHERE id = $1`,
		p.ID, p.Status, p.AttendingPhysician, p.Midwife, p.AdmissionTime,
		p.AdmittedBy, p.Room, p.DischargeTime, p.EDD, p.Note)
	return err
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM maternity_patient`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+patientCols+` FROM maternity_patient ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

func (r *patientRepoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Patient, int, error) {
	var total int
	if err := conn(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM maternity_patient WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+patientCols+` FROM maternity_patient WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, p)
	}
	return items, total, nil
}

// =========== Visit Repository ===========

type visitRepoPG struct{ pool *pgxpool.Pool }

func NewVisitRepoPG(pool *pgxpool.Pool) VisitRepository { return &visitRepoPG{pool: pool} }

const visitCols = `id, patient_id, visit_date, gestational_weeks, weight_kg, blood_pressure,
	fetal_heart_rate, provider, next_visit, note, created_at`

func (r *visitRepoPG) Create(ctx context.Context, v *PrenatalVisit) error {
	v.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO prenatal_visit (id, patient_id, visit_date, gestational_weeks, weight_kg,
			blood_pressure, fetal_heart_rate, provider, next_visit, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		v.ID, v.PatientID, v.VisitDate, v.GestationalWeeks, v.WeightKg,
		v.BloodPressure, v.FetalHeartRate, v.Provider, v.NextVisit, v.Note)
	return err
}

func (r *visitRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*PrenatalVisit, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+visitCols+` FROM prenatal_visit WHERE patient_id = $1 ORDER BY visit_date`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PrenatalVisit
	for rows.Next() {
		var v PrenatalVisit
		if err := rows.Scan(&v.ID, &v.PatientID, &v.VisitDate, &v.GestationalWeeks, &v.WeightKg, &v.BloodPressure,
			&v.FetalHeartRate, &v.Provider, &v.NextVisit, &v.Note, &v.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &v)
	}
	return items, nil
}

// =========== Labor Repository ===========

type laborRepoPG struct{ pool *pgxpool.Pool }

func NewLaborRepoPG(pool *pgxpool.Pool) LaborRepository { return &laborRepoPG{pool: pool} }

func (r *laborRepoPG) Create(ctx context.Context, l *LaborProgress) error {
	l.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO labor_progress (id, patient_id, recorded_at, cervical_dilation, contractions,
			fetal_heart_rate, recorded_by, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		l.ID, l.PatientID, l.RecordedAt, l.CervicalDilation, l.Contractions,
		l.FetalHeartRate, l.RecordedBy, l.Note)
	return err
}

func (r *laborRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*LaborProgress, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, patient_id, recorded_at, cervical_dilation, contractions, fetal_heart_rate,
			recorded_by, note, created_at
		FROM labor_progress WHERE patient_id = $1 ORDER BY recorded_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*LaborProgress
	for rows.Next() {
		var l LaborProgress
		if err := rows.Scan(&l.ID, &l.PatientID, &l.RecordedAt, &l.CervicalDilation, &l.Contractions,
			&l.FetalHeartRate, &l.RecordedBy, &l.Note, &l.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &l)
	}
	return items, nil
}

// =========== Delivery Repository ===========

type deliveryRepoPG struct{ pool *pgxpool.Pool }

func NewDeliveryRepoPG(pool *pgxpool.Pool) DeliveryRepository { return &deliveryRepoPG{pool: pool} }

const deliveryCols = `id, patient_id, delivered_at, method, gestational_weeks, attending_physician,
	midwife, blood_loss_ml, anesthesia, note, created_at`

func scanDelivery(row pgx.Row) (*Delivery, error) {
	var d Delivery
	err := row.Scan(&d.ID, &d.PatientID, &d.DeliveredAt, &d.Method, &d.GestationalWeeks, &d.AttendingPhysician,
		&d.Midwife, &d.BloodLossML, &d.Anesthesia, &d.Note, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &d, err
}

func (r *deliveryRepoPG) Create(ctx context.Context, d *Delivery) error {
	d.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO delivery (id, patient_id, delivered_at, method, gestational_weeks,
			attending_physician, midwife, blood_loss_ml, anesthesia, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		d.ID, d.PatientID, d.DeliveredAt, d.Method, d.GestationalWeeks,
		d.AttendingPhysician, d.Midwife, d.BloodLossML, d.Anesthesia, d.Note)
	return err
}

func (r *deliveryRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Delivery, error) {
	return scanDelivery(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+deliveryCols+` FROM delivery WHERE id = $1`, id))
}

func (r *deliveryRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Delivery, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+deliveryCols+` FROM delivery WHERE patient_id = $1 ORDER BY delivered_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, nil
}

// =========== Newborn Repository ===========

type newbornRepoPG struct{ pool *pgxpool.Pool }

func NewNewbornRepoPG(pool *pgxpool.Pool) NewbornRepository { return &newbornRepoPG{pool: pool} }

const newbornCols = `id, delivery_id, mother_id, sex, birth_time, weight_g, length_cm,
	apgar_1, apgar_5, status, nicu_reason, note, created_at, updated_at`

func scanNewborn(row pgx.Row) (*Newborn, error) {
	var n Newborn
	err := row.Scan(&n.ID, &n.DeliveryID, &n.MotherID, &n.Sex, &n.BirthTime, &n.WeightG, &n.LengthCM,
		&n.Apgar1, &n.Apgar5, &n.Status, &n.NICUReason, &n.Note, &n.CreatedAt, &n.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, workflow.ErrNotFound
	}
	return &n, err
}

func (r *newbornRepoPG) Create(ctx context.Context, n *Newborn) error {
	n.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO newborn (id, delivery_id, mother_id, sex, birth_time, weight_g, length_cm,
			apgar_1, apgar_5, status, nicu_reason, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		n.ID, n.DeliveryID, n.MotherID, n.Sex, n.BirthTime, n.WeightG, n.LengthCM,
		n.Apgar1, n.Apgar5, n.Status, n.NICUReason, n.Note)
	return err
}

func (r *newbornRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Newborn, error) {
	return scanNewborn(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+newbornCols+` FROM newborn WHERE id = $1`, id))
}

func (r *newbornRepoPG) Update(ctx context.Context, n *Newborn) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE newborn SET status=$2, nicu_reason=$3, note=$4, updated_at=NOW() WHERE id = $1`,
		n.ID, n.Status, n.NICUReason, n.Note)
	return err
}

func (r *newbornRepoPG) ListByDelivery(ctx context.Context, deliveryID uuid.UUID) ([]*Newborn, error) {
	return r.list(ctx, `delivery_id`, deliveryID)
}

func (r *newbornRepoPG) ListByMother(ctx context.Context, motherID uuid.UUID) ([]*Newborn, error) {
	return r.list(ctx, `mother_id`, motherID)
}

func (r *newbornRepoPG) list(ctx context.Context, col string, id uuid.UUID) ([]*Newborn, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+newbornCols+` FROM newborn WHERE `+col+` = $1 ORDER BY birth_time`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*Newborn
	for rows.Next() {
		n, err := scanNewborn(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, nil
}

// =========== Checkup Repository ===========

type checkupRepoPG struct{ pool *pgxpool.Pool }

func NewCheckupRepoPG(pool *pgxpool.Pool) CheckupRepository { return &checkupRepoPG{pool: pool} }

func (r *checkupRepoPG) Create(ctx context.Context, c *PostpartumCheckup) error {
	c.ID = uuid.New()
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO postpartum_checkup (id, patient_id, delivery_id, checked_at, temperature,
			blood_pressure, pulse, lochia, uterine_tone, pain_level, provider, note)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		c.ID, c.PatientID, c.DeliveryID, c.CheckedAt, c.Temperature,
		c.BloodPressure, c.Pulse, c.Lochia, c.UterineTone, c.PainLevel, c.Provider, c.Note)
	return err
}

func (r *checkupRepoPG) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*PostpartumCheckup, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, patient_id, delivery_id, checked_at, temperature, blood_pressure, pulse,
			lochia, uterine_tone, pain_level, provider, note, created_at
		FROM postpartum_checkup WHERE patient_id = $1 ORDER BY checked_at`, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []*PostpartumCheckup
	for rows.Next() {
		var c PostpartumCheckup
		if err := rows.Scan(&c.ID, &c.PatientID, &c.DeliveryID, &c.CheckedAt, &c.Temperature, &c.BloodPressure,
			&c.Pulse, &c.Lochia, &c.UterineTone, &c.PainLevel, &c.Provider, &c.Note, &c.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, &c)
	}
	return items, nil
}
