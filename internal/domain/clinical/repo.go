package clinical

import (
	"context"

	"github.com/google/uuid"
)

type PrescriptionRepository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id uuid.UUID) (*Prescription, error)
	Update(ctx context.Context, p *Prescription) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUsername(ctx context.Context, username string) ([]*Prescription, error)
}

type MedTestRepository interface {
	Create(ctx context.Context, t *MedTest) error
	GetByID(ctx context.Context, id uuid.UUID) (*MedTest, error)
	Update(ctx context.Context, t *MedTest) error
	ListByUsername(ctx context.Context, username string) ([]*MedTest, error)
}
