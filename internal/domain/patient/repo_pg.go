package patient

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

// ── Insurance ──

type insuranceRepoPG struct {
	pool *pgxpool.Pool
}

func NewInsuranceRepoPG(pool *pgxpool.Pool) InsuranceRepository {
	return &insuranceRepoPG{pool: pool}
}

const insuranceCols = `id, policy_number, provider, group_number, created_at, updated_at`

func scanInsurance(row pgx.Row) (*InsuranceInfo, error) {
	var info InsuranceInfo
	err := row.Scan(&info.ID, &info.PolicyNumber, &info.Provider, &info.GroupNumber,
		&info.CreatedAt, &info.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *insuranceRepoPG) Create(ctx context.Context, info *InsuranceInfo) error {
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO insurance_info (id, policy_number, provider, group_number)
		VALUES ($1, $2, $3, $4)`,
		info.ID, info.PolicyNumber, info.Provider, info.GroupNumber)
	if err != nil {
		return fmt.Errorf("insert insurance_info: %w", err)
	}
	return nil
}

func (r *insuranceRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*InsuranceInfo, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+insuranceCols+` FROM insurance_info WHERE id = $1`, id)
	return scanInsurance(row)
}

func (r *insuranceRepoPG) Update(ctx context.Context, info *InsuranceInfo) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE insurance_info
		SET policy_number = $2, provider = $3, group_number = $4, updated_at = now()
		WHERE id = $1`,
		info.ID, info.PolicyNumber, info.Provider, info.GroupNumber)
	if err != nil {
		return fmt.Errorf("update insurance_info: %w", err)
	}
	return nil
}

// ── Profile ──

type profileRepoPG struct {
	pool *pgxpool.Pool
}

func NewProfileRepoPG(pool *pgxpool.Pool) ProfileRepository {
	return &profileRepoPG{pool: pool}
}

const profileCols = `id, first_name, middle_name, last_name, address, city, state,
	date_of_birth, zipcode, phone_number, email, emergency_contact_name,
	emergency_contact_phone, created_at, updated_at`

func scanProfile(row pgx.Row) (*ProfileInfo, error) {
	var info ProfileInfo
	err := row.Scan(&info.ID, &info.FirstName, &info.MiddleName, &info.LastName,
		&info.Address, &info.City, &info.State, &info.DateOfBirth, &info.Zipcode,
		&info.PhoneNumber, &info.Email, &info.EmergencyContactName,
		&info.EmergencyContactPhone, &info.CreatedAt, &info.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *profileRepoPG) Create(ctx context.Context, info *ProfileInfo) error {
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO profile_info (id, first_name, middle_name, last_name, address,
			city, state, date_of_birth, zipcode, phone_number, email,
			emergency_contact_name, emergency_contact_phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		info.ID, info.FirstName, info.MiddleName, info.LastName, info.Address,
		info.City, info.State, info.DateOfBirth, info.Zipcode, info.PhoneNumber,
		info.Email, info.EmergencyContactName, info.EmergencyContactPhone)
	if err != nil {
		return fmt.Errorf("insert profile_info: %w", err)
	}
	return nil
}

func (r *profileRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*ProfileInfo, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+profileCols+` FROM profile_info WHERE id = $1`, id)
	return scanProfile(row)
}

func (r *profileRepoPG) Update(ctx context.Context, info *ProfileInfo) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE profile_info
		SET first_name = $2, middle_name = $3, last_name = $4, address = $5,
			city = $6, state = $7, date_of_birth = $8, zipcode = $9,
			phone_number = $10, email = $11, emergency_contact_name = $12,
			emergency_contact_phone = $13, updated_at = now()
		WHERE id = $1`,
		info.ID, info.FirstName, info.MiddleName, info.LastName, info.Address,
		info.City, info.State, info.DateOfBirth, info.Zipcode, info.PhoneNumber,
		info.Email, info.EmergencyContactName, info.EmergencyContactPhone)
	if err != nil {
		return fmt.Errorf("update profile_info: %w", err)
	}
	return nil
}

// ── Medical ──

type medicalRepoPG struct {
	pool *pgxpool.Pool
}

func NewMedicalRepoPG(pool *pgxpool.Pool) MedicalRepository {
	return &medicalRepoPG{pool: pool}
}

const medicalCols = `id, allergies, anemia, arthritis, chickenpox, coxsackie,
	diphtheria, epilepsy, frequent_colds, german_measles, high_blood_pressure,
	influenza, kidney_disease, measles, migraines, mumps, obesity, pneumonia,
	polio, rheumatic_fever, scarlatina, scarlet_fever, strokes, syphilis,
	tonsillitis, tuberculosis, whooping_cough, other_text, created_at, updated_at`

func scanMedical(row pgx.Row) (*MedicalInfo, error) {
	var info MedicalInfo
	err := row.Scan(&info.ID, &info.Allergies, &info.Anemia, &info.Arthritis,
		&info.Chickenpox, &info.Coxsackie, &info.Diphtheria, &info.Epilepsy,
		&info.FrequentColds, &info.GermanMeasles, &info.HighBloodPressure,
		&info.Influenza, &info.KidneyDisease, &info.Measles, &info.Migraines,
		&info.Mumps, &info.Obesity, &info.Pneumonia, &info.Polio,
		&info.RheumaticFever, &info.Scarlatina, &info.ScarletFever, &info.Strokes,
		&info.Syphilis, &info.Tonsillitis, &info.Tuberculosis, &info.WhoopingCough,
		&info.OtherText, &info.CreatedAt, &info.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *medicalRepoPG) Create(ctx context.Context, info *MedicalInfo) error {
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO medical_info (id, allergies, anemia, arthritis, chickenpox,
			coxsackie, diphtheria, epilepsy, frequent_colds, german_measles,
			high_blood_pressure, influenza, kidney_disease, measles, migraines,
			mumps, obesity, pneumonia, polio, rheumatic_fever, scarlatina,
			scarlet_fever, strokes, syphilis, tonsillitis, tuberculosis,
			whooping_cough, other_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)`,
		info.ID, info.Allergies, info.Anemia, info.Arthritis, info.Chickenpox,
		info.Coxsackie, info.Diphtheria, info.Epilepsy, info.FrequentColds,
		info.GermanMeasles, info.HighBloodPressure, info.Influenza,
		info.KidneyDisease, info.Measles, info.Migraines, info.Mumps, info.Obesity,
		info.Pneumonia, info.Polio, info.RheumaticFever, info.Scarlatina,
		info.ScarletFever, info.Strokes, info.Syphilis, info.Tonsillitis,
		info.Tuberculosis, info.WhoopingCough, info.OtherText)
	if err != nil {
		return fmt.Errorf("insert medical_info: %w", err)
	}
	return nil
}

func (r *medicalRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*MedicalInfo, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+medicalCols+` FROM medical_info WHERE id = $1`, id)
	return scanMedical(row)
}

func (r *medicalRepoPG) Update(ctx context.Context, info *MedicalInfo) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE medical_info
		SET allergies = $2, anemia = $3, arthritis = $4, chickenpox = $5,
			coxsackie = $6, diphtheria = $7, epilepsy = $8, frequent_colds = $9,
			german_measles = $10, high_blood_pressure = $11, influenza = $12,
			kidney_disease = $13, measles = $14, migraines = $15, mumps = $16,
			obesity = $17, pneumonia = $18, polio = $19, rheumatic_fever = $20,
			scarlatina = $21, scarlet_fever = $22, strokes = $23, syphilis = $24,
			tonsillitis = $25, tuberculosis = $26, whooping_cough = $27,
			other_text = $28, updated_at = now()
		WHERE id = $1`,
		info.ID, info.Allergies, info.Anemia, info.Arthritis, info.Chickenpox,
		info.Coxsackie, info.Diphtheria, info.Epilepsy, info.FrequentColds,
		info.GermanMeasles, info.HighBloodPressure, info.Influenza,
		info.KidneyDisease, info.Measles, info.Migraines, info.Mumps, info.Obesity,
		info.Pneumonia, info.Polio, info.RheumaticFever, info.Scarlatina,
		info.ScarletFever, info.Strokes, info.Syphilis, info.Tonsillitis,
		info.Tuberculosis, info.WhoopingCough, info.OtherText)
	if err != nil {
		return fmt.Errorf("update medical_info: %w", err)
	}
	return nil
}

// ── Patient ──

type patientRepoPG struct {
	pool *pgxpool.Pool
}

func NewPatientRepoPG(pool *pgxpool.Pool) PatientRepository {
	return &patientRepoPG{pool: pool}
}

const patientCols = `p.id, p.account_id, a.username, p.insurance_id, p.profile_id,
	p.medical_id, p.hospital_id, p.doctor_id, p.created_at, p.updated_at`

const patientFrom = ` FROM patient p JOIN account a ON a.id = p.account_id`

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.AccountID, &p.Username, &p.InsurID, &p.ProfileID,
		&p.MedicalID, &p.HospitalID, &p.DoctorID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *patientRepoPG) Create(ctx context.Context, p *Patient) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO patient (id, account_id, insurance_id, profile_id, medical_id,
			hospital_id, doctor_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.AccountID, p.InsurID, p.ProfileID, p.MedicalID, p.HospitalID, p.DoctorID)
	if err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

func (r *patientRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientCols+patientFrom+` WHERE p.id = $1`, id)
	return scanPatient(row)
}

func (r *patientRepoPG) GetByUsername(ctx context.Context, username string) (*Patient, error) {
	row := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT `+patientCols+patientFrom+` WHERE a.username = $1`, username)
	return scanPatient(row)
}

func (r *patientRepoPG) Update(ctx context.Context, p *Patient) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE patient
		SET hospital_id = $2, doctor_id = $3, updated_at = now()
		WHERE id = $1`,
		p.ID, p.HospitalID, p.DoctorID)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

func (r *patientRepoPG) listWhere(ctx context.Context, where string, arg any, limit, offset int) ([]*Patient, int, error) {
	q := conn(ctx, r.pool)

	var total int
	countSQL := `SELECT COUNT(*)` + patientFrom
	var err error
	if where != "" {
		err = q.QueryRow(ctx, countSQL+` WHERE `+where, arg).Scan(&total)
	} else {
		err = q.QueryRow(ctx, countSQL).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	listSQL := `SELECT ` + patientCols + patientFrom
	var rows pgx.Rows
	if where != "" {
		rows, err = q.Query(ctx, listSQL+` WHERE `+where+` ORDER BY a.username LIMIT $2 OFFSET $3`, arg, limit, offset)
	} else {
		rows, err = q.Query(ctx, listSQL+` ORDER BY a.username LIMIT $1 OFFSET $2`, limit, offset)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}

func (r *patientRepoPG) ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return r.listWhere(ctx, `p.doctor_id = $1`, doctorID, limit, offset)
}

func (r *patientRepoPG) ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Patient, int, error) {
	return r.listWhere(ctx, `p.hospital_id = $1`, hospitalID, limit, offset)
}

func (r *patientRepoPG) List(ctx context.Context, limit, offset int) ([]*Patient, int, error) {
	q := conn(ctx, r.pool)

	var total int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM patient`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count patients: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT `+patientCols+patientFrom+` ORDER BY a.username LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query patients: %w", err)
	}
	defer rows.Close()

	var patients []*Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, p)
	}
	return patients, total, rows.Err()
}
