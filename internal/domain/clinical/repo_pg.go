package clinical

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/healthnet/healthnet/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func conn(ctx context.Context, pool *pgxpool.Pool) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return pool
}

// ── Prescription ──

type prescriptionRepoPG struct {
	pool *pgxpool.Pool
}

func NewPrescriptionRepoPG(pool *pgxpool.Pool) PrescriptionRepository {
	return &prescriptionRepoPG{pool: pool}
}

const prescriptionCols = `id, patient_username, medication_category, medication,
	dosage, frequency, directions, comments, created_at, updated_at`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.PatientUsername, &p.MedicationCategory, &p.Medication,
		&p.Dosage, &p.Frequency, &p.Directions, &p.Comments, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *prescriptionRepoPG) Create(ctx context.Context, p *Prescription) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO prescription (id, patient_username, medication_category,
			medication, dosage, frequency, directions, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.PatientUsername, p.MedicationCategory, p.Medication, p.Dosage,
		p.Frequency, p.Directions, p.Comments)
	if err != nil {
		return fmt.Errorf("insert prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+prescriptionCols+` FROM prescription WHERE id = $1`, id)
	return scanPrescription(row)
}

func (r *prescriptionRepoPG) Update(ctx context.Context, p *Prescription) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE prescription
		SET medication_category = $2, medication = $3, dosage = $4, frequency = $5,
			directions = $6, comments = $7, updated_at = now()
		WHERE id = $1`,
		p.ID, p.MedicationCategory, p.Medication, p.Dosage, p.Frequency,
		p.Directions, p.Comments)
	if err != nil {
		return fmt.Errorf("update prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM prescription WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepoPG) ListByUsername(ctx context.Context, username string) ([]*Prescription, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+prescriptionCols+` FROM prescription WHERE patient_username = $1 ORDER BY created_at DESC`,
		username)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	defer rows.Close()

	var prescriptions []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan prescription: %w", err)
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, rows.Err()
}

// ── MedTest ──

type medTestRepoPG struct {
	pool *pgxpool.Pool
}

func NewMedTestRepoPG(pool *pgxpool.Pool) MedTestRepository {
	return &medTestRepoPG{pool: pool}
}

const medTestCols = `id, patient_username, name, doctor_name, released,
	date_issued, result, created_at, updated_at`

func scanMedTest(row pgx.Row) (*MedTest, error) {
	var t MedTest
	err := row.Scan(&t.ID, &t.PatientUsername, &t.Name, &t.DoctorName, &t.Released,
		&t.DateIssued, &t.Result, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *medTestRepoPG) Create(ctx context.Context, t *MedTest) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO med_test (id, patient_username, name, doctor_name, released,
			date_issued, result)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.PatientUsername, t.Name, t.DoctorName, t.Released, t.DateIssued, t.Result)
	if err != nil {
		return fmt.Errorf("insert med_test: %w", err)
	}
	return nil
}

func (r *medTestRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedTest, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+medTestCols+` FROM med_test WHERE id = $1`, id)
	return scanMedTest(row)
}

func (r *medTestRepoPG) Update(ctx context.Context, t *MedTest) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE med_test
		SET name = $2, doctor_name = $3, released = $4, date_issued = $5,
			result = $6, updated_at = now()
		WHERE id = $1`,
		t.ID, t.Name, t.DoctorName, t.Released, t.DateIssued, t.Result)
	if err != nil {
		return fmt.Errorf("update med_test: %w", err)
	}
	return nil
}

func (r *medTestRepoPG) ListByUsername(ctx context.Context, username string) ([]*MedTest, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+medTestCols+` FROM med_test WHERE patient_username = $1 ORDER BY date_issued DESC`,
		username)
	if err != nil {
		return nil, fmt.Errorf("query med_tests: %w", err)
	}
	defer rows.Close()

	var tests []*MedTest
	for rows.Next() {
		t, err := scanMedTest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan med_test: %w", err)
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}
