package dberrs_test

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"servicedesk/internal/adapters/out/postgres/dberrs"
	"servicedesk/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	plain := errors.New("syntax error")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil", err: nil, want: nil},
		{name: "lock not available", err: &pgconn.PgError{Code: "55P03"}, want: errs.ErrConflict},
		{name: "serialization failure", err: &pgconn.PgError{Code: "40001"}, want: errs.ErrConflict},
		{name: "deadlock", err: fmt.Errorf("update: %w", &pgconn.PgError{Code: "40P01"}), want: errs.ErrConflict},
		{name: "statement timeout", err: &pgconn.PgError{Code: "57014"}, want: errs.ErrUnavailable},
		{name: "connection failure", err: &pgconn.PgError{Code: "08006"}, want: errs.ErrUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: errs.ErrUnavailable},
		{name: "bad connection", err: driver.ErrBadConn, want: errs.ErrUnavailable},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: nil},
		{name: "other", err: plain, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := dberrs.Classify(tt.err)
			if tt.want == nil {
				assert.Equal(t, tt.err, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
			if tt.want == errs.ErrUnavailable {
				assert.ErrorIs(t, got, tt.err)
			}
		})
	}
}
