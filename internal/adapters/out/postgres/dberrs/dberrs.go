// Package dberrs translates store failures into the error kinds of the
// service. Repositories and queries pass every gorm error through Classify
// before returning it.
package dberrs

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"servicedesk/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const resource = "database"

// SQLSTATE codes that mean another transaction got in the way.
const (
	codeLockNotAvailable     = "55P03"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeQueryCanceled        = "57014"
	classConnectionException = "08"
)

// Classify maps timeouts and connection failures to errs.UnavailableError and
// lock, serialization and deadlock failures to errs.ConflictError. Other
// errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeLockNotAvailable,
			pgErr.Code == codeSerializationFailure,
			pgErr.Code == codeDeadlockDetected:
			return errs.NewConflictErrorWithCause("concurrent update", err)
		case pgErr.Code == codeQueryCanceled,
			strings.HasPrefix(pgErr.Code, classConnectionException):
			return errs.NewUnavailableErrorWithCause(resource, err)
		}
		return err
	}

	if isTransient(err) {
		return errs.NewUnavailableErrorWithCause(resource, err)
	}
	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, driver.ErrBadConn) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
