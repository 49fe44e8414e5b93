package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
	"github.com/RangiraDave/Test-copilot/internal/domain/repository"
)

const universityColumns = `id, name, location, website, status, created_at, updated_at`

type UniversityRepository struct {
	db DB
}

func NewUniversityRepository(db DB) *UniversityRepository {
	return &UniversityRepository{db: db}
}

func (r *UniversityRepository) Create(ctx context.Context, u *entity.University) error {
	if u.Status == "" {
		u.Status = entity.StatusClosed
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO universities (id, name, location, website, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`, u.ID, u.Name, u.Location, u.Website, u.Status)
	return row.Scan(&u.CreatedAt, &u.UpdatedAt)
}

func (r *UniversityRepository) GetByID(ctx context.Context, id string) (*entity.University, error) {
	u := &entity.University{}
	row := r.db.QueryRow(ctx, `SELECT `+universityColumns+` FROM universities WHERE id = $1`, id)
	if err := row.Scan(&u.ID, &u.Name, &u.Location, &u.Website, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UniversityRepository) List(ctx context.Context) ([]*entity.University, error) {
	rows, err := r.db.Query(ctx, `SELECT `+universityColumns+` FROM universities ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*entity.University, 0)
	for rows.Next() {
		u := &entity.University{}
		if err := rows.Scan(&u.ID, &u.Name, &u.Location, &u.Website, &u.Status, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UniversityRepository) Update(ctx context.Context, u *entity.University) error {
	u.UpdatedAt = time.Now().UTC()
	res, err := r.db.Exec(ctx, `
		UPDATE universities
		SET name = $1, location = $2, website = $3, status = $4, updated_at = $5
		WHERE id = $6
	`, u.Name, u.Location, u.Website, u.Status, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UniversityRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM universities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ repository.UniversityRepository = (*UniversityRepository)(nil)
