package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepositoryAdd(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPreferenceRepository(mock)

	mock.ExpectExec(`INSERT INTO preferences`).
		WithArgs(pgxmock.AnyArg(), "u1", "uni1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	liked, err := repo.Add(context.Background(), "u1", "uni1")
	require.NoError(t, err)
	assert.True(t, liked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreferenceRepositoryAddDuplicate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPreferenceRepository(mock)

	// ON CONFLICT DO NOTHING: the insert affects zero rows.
	mock.ExpectExec(`INSERT INTO preferences`).
		WithArgs(pgxmock.AnyArg(), "u1", "uni1").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	liked, err := repo.Add(context.Background(), "u1", "uni1")
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestPreferenceRepositoryRemove(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPreferenceRepository(mock)

	mock.ExpectExec(`DELETE FROM preferences WHERE user_id = \$1 AND university_id = \$2`).
		WithArgs("u1", "uni1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	removed, err := repo.Remove(context.Background(), "u1", "uni1")
	require.NoError(t, err)
	assert.True(t, removed)
}

func TestPreferenceRepositoryRemoveAbsent(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPreferenceRepository(mock)

	mock.ExpectExec(`DELETE FROM preferences WHERE user_id = \$1 AND university_id = \$2`).
		WithArgs("u1", "uni1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	removed, err := repo.Remove(context.Background(), "u1", "uni1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestPreferenceRepositoryListByUser(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPreferenceRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT id, user_id, university_id, created_at`).
		WithArgs("u1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "university_id", "created_at"}).
			AddRow("p1", "u1", "uni1", now).
			AddRow("p2", "u1", "uni2", now.Add(-time.Hour)))

	prefs, err := repo.ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "uni1", prefs[0].UniversityID)
	require.NoError(t, mock.ExpectationsWereMet())
}
