package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/hotel_ops_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), apperrors.ErrNotFound},
		{"serialization", &pgconn.PgError{Code: "40001"}, apperrors.ErrConcurrencyConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, apperrors.ErrConcurrencyConflict},
		{"unique", &pgconn.PgError{Code: "23505"}, apperrors.ErrDuplicate},
		{"foreign key", &pgconn.PgError{Code: "23503"}, apperrors.ErrNotFound},
		{"check", &pgconn.PgError{Code: "23514"}, apperrors.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, mapError(tt.in, "boom"), tt.want)
		})
	}
}

func TestMapError_Unknown(t *testing.T) {
	cause := errors.New("connection reset")
	err := mapError(cause, "failed to query")

	var appErr *apperrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, mapError(nil, "unused"))
}
