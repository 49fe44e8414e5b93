package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RangiraDave/Test-copilot/internal/domain/entity"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestUserRepositoryCreate(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "dave", "dave@example.com", "hash", "Dave", "R", "", "", "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	u := &entity.User{ID: "u1", Username: "dave", Email: "dave@example.com", PasswordHash: "hash", FirstName: "Dave", LastName: "R"}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, now, u.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateUniqueViolation(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u1", "dave", "dave@example.com", "hash", "Dave", "R", "", "", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	u := &entity.User{ID: "u1", Username: "dave", Email: "dave@example.com", PasswordHash: "hash", FirstName: "Dave", LastName: "R"}
	err := repo.Create(context.Background(), u)
	require.Error(t, err)
	constraint, ok := UniqueViolation(err)
	require.True(t, ok)
	assert.Equal(t, "users_email_key", constraint)
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email = \$1`).
		WithArgs("dave@example.com").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "username", "email", "password_hash", "first_name", "last_name",
			"gender", "phone_number", "location", "created_at", "updated_at",
		}).AddRow("u1", "dave", "dave@example.com", "hash", "Dave", "R", "", "", "Kigali", now, now))

	u, err := repo.GetByEmail(context.Background(), "dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, "Kigali", u.Location)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET password_hash = \$1`).
		WithArgs("newhash", "u1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	require.NoError(t, repo.UpdatePassword(context.Background(), "u1", "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdatePasswordNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`UPDATE users SET password_hash = \$1`).
		WithArgs("newhash", "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, repo.UpdatePassword(context.Background(), "missing", "newhash"), ErrNotFound)
}

func TestUserRepositoryDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock)

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs("u1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), "u1"))
	require.NoError(t, mock.ExpectationsWereMet())
}
