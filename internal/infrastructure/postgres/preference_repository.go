package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/domain/repository"
)

type PreferenceRepository struct {
	db DB
}

func NewPreferenceRepository(db DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// Add inserts the (user, university) pair. ON CONFLICT DO NOTHING makes the
// duplicate case a single atomic no-op rather than a check-then-insert race.
func (r *PreferenceRepository) Add(ctx context.Context, userID, universityID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		INSERT INTO preferences (id, user_id, university_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, university_id) DO NOTHING
	`, uuid.NewString(), userID, universityID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *PreferenceRepository) Remove(ctx context.Context, userID, universityID string) (bool, error) {
	res, err := r.db.Exec(ctx, `
		DELETE FROM preferences WHERE user_id = $1 AND university_id = $2
	`, userID, universityID)
	if err != nil {
		return false, err
	}
	return res.RowsAffected() > 0, nil
}

func (r *PreferenceRepository) Exists(ctx context.Context, userID, universityID string) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM preferences WHERE user_id = $1 AND university_id = $2)
	`, userID, universityID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PreferenceRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Preference, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, university_id, created_at
		FROM preferences
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.Preference, 0)
	for rows.Next() {
		p := &entity.Preference{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.UniversityID, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var _ repository.PreferenceRepository = (*PreferenceRepository)(nil)
