package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant-inventory/backend/internal/session/domain"
)

func TestPostgresRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	s := &domain.Session{
		ID:           "sess-1",
		UserID:       "user-1",
		RefreshToken: "token-abc",
		ExpiresAt:    now.Add(168 * time.Hour),
		CreatedAt:    now,
	}

	mock.ExpectExec("INSERT INTO user_sessions").
		WithArgs(s.ID, s.UserID, s.RefreshToken, s.ExpiresAt, s.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Create(context.Background(), s))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "user_id", "refresh_token", "expires_at", "created_at"}).
		AddRow("sess-1", "user-1", "token-abc", now.Add(time.Hour), now)

	mock.ExpectQuery("SELECT id, user_id, refresh_token, expires_at, created_at").
		WithArgs("token-abc").
		WillReturnRows(rows)

	repo := NewPostgresRepository(db)
	s, err := repo.GetByToken(context.Background(), "token-abc")
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "sess-1", s.ID)
	assert.Equal(t, "user-1", s.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_GetByTokenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, user_id, refresh_token, expires_at, created_at").
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "refresh_token", "expires_at", "created_at"}))

	repo := NewPostgresRepository(db)
	s, err := repo.GetByToken(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// Zero affected rows must not surface as an error.
	mock.ExpectExec("DELETE FROM user_sessions WHERE id").
		WithArgs("sess-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresRepository(db)
	require.NoError(t, repo.Delete(context.Background(), "sess-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteAllByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM user_sessions WHERE user_id").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	repo := NewPostgresRepository(db)
	n, err := repo.DeleteAllByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectExec("DELETE FROM user_sessions WHERE expires_at").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 2))

	repo := NewPostgresRepository(db)
	n, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
