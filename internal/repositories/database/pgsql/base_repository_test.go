package pgsql

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopkhata/shopkhata_backend/internal/apperrors"
)

func TestMapDBError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "client deadline maps to storage timeout",
			err:  context.DeadlineExceeded,
			want: apperrors.ErrStorageTimeout,
		},
		{
			name: "wrapped deadline maps to storage timeout",
			err:  fmt.Errorf("query: %w", context.DeadlineExceeded),
			want: apperrors.ErrStorageTimeout,
		},
		{
			name: "server statement timeout maps to storage timeout",
			err:  &pgconn.PgError{Code: "57014"},
			want: apperrors.ErrStorageTimeout,
		},
		{
			name: "serialization failure maps to storage conflict",
			err:  &pgconn.PgError{Code: "40001"},
			want: apperrors.ErrStorageConflict,
		},
		{
			name: "deadlock maps to storage conflict",
			err:  &pgconn.PgError{Code: "40P01"},
			want: apperrors.ErrStorageConflict,
		},
		{
			name: "unique violation maps to duplicate",
			err:  &pgconn.PgError{Code: "23505"},
			want: apperrors.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapDBError("op failed", tt.err)
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapDBError_UnclassifiedIsInternal(t *testing.T) {
	got := mapDBError("op failed", &pgconn.PgError{Code: "42703"})

	var appErr *apperrors.AppError
	require.ErrorAs(t, got, &appErr)
	assert.Equal(t, 500, appErr.Code)
	assert.NotErrorIs(t, got, apperrors.ErrStorageTimeout)
	assert.NotErrorIs(t, got, apperrors.ErrStorageConflict)
}

func TestMapDBError_NilStaysNil(t *testing.T) {
	assert.NoError(t, mapDBError("op failed", nil))
}

func TestMapDBError_GenericErrorIsNotRetryable(t *testing.T) {
	got := mapDBError("op failed", errors.New("driver closed"))
	assert.NotErrorIs(t, got, apperrors.ErrStorageTimeout)
	assert.NotErrorIs(t, got, apperrors.ErrStorageConflict)
}
