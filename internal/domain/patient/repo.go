package patient

import (
	"context"

	"github.com/google/uuid"
)

type InsuranceRepository interface {
	Create(ctx context.Context, info *InsuranceInfo) error
	GetByID(ctx context.Context, id uuid.UUID) (*InsuranceInfo, error)
	Update(ctx context.Context, info *InsuranceInfo) error
}

type ProfileRepository interface {
	Create(ctx context.Context, info *ProfileInfo) error
	GetByID(ctx context.Context, id uuid.UUID) (*ProfileInfo, error)
	Update(ctx context.Context, info *ProfileInfo) error
}

type MedicalRepository interface {
	Create(ctx context.Context, info *MedicalInfo) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedicalInfo, error)
	Update(ctx context.Context, info *MedicalInfo) error
}

type PatientRepository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	GetByUsername(ctx context.Context, username string) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	ListByHospital(ctx context.Context, hospitalID uuid.UUID, limit, offset int) ([]*Patient, int, error)
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
}
