package repository

import (
	"context"
	"errors"
	"testing"

	"nexum/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, true},
		{"postgres foreign key violation", &pgconn.PgError{Code: "23503"}, false},
		{"wrapped postgres unique violation", errors.Join(errors.New("create failed"), &pgconn.PgError{Code: "23505"}), true},
		{"sqlite unique message", errors.New("UNIQUE constraint failed: profiles.username"), true},
		{"duplicate key message", errors.New(`duplicate key value violates unique constraint "idx_profiles_username"`), true},
		{"unrelated error", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}

// Driver failures that are not constraint violations must surface as internal
// errors, never as conflicts.
func TestProfileRepository_DriverErrorMapsToInternal(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection reset by peer"))

	repo := NewProfileRepository(gdb)
	_, err = repo.GetByUserID(context.Background(), "user_123")
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInternal, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
