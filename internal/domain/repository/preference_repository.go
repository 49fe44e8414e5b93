package repository

import (
	"context"

	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
)

// PreferenceRepository defines the persistence operations for like relations.
// Add and Remove are atomic: Add reports false when the pair already exists,
// Remove reports false when it does not.
type PreferenceRepository interface {
	Add(ctx context.Context, userID, universityID string) (bool, error)
	Remove(ctx context.Context, userID, universityID string) (bool, error)
	Exists(ctx context.Context, userID, universityID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Preference, error)
}
