package repository

import (
	"context"

	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
)

// UniversityRepository defines the persistence operations for universities.
type UniversityRepository interface {
	Create(ctx context.Context, u *entity.University) error
	GetByID(ctx context.Context, id string) (*entity.University, error)
	List(ctx context.Context) ([]*entity.University, error)
	Update(ctx context.Context, u *entity.University) error
	Delete(ctx context.Context, id string) error
}
