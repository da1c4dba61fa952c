package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"dashboard-backend/internal/errs"
)

// MySQL server error numbers.
const (
	mysqlDuplicateEntry  = 1062
	mysqlBadNull         = 1048
	mysqlRowIsReferenced = 1451
	mysqlNoReferencedRow = 1452
	mysqlTooManyConns    = 1040
	mysqlServerShutdown  = 1053
	mysqlAccessDenied    = 1045
	mysqlUnknownDatabase = 1049
	mysqlCheckConstraint = 3819
)

// Postgres SQLSTATE classes and codes.
const (
	pgClassIntegrity      = "23"
	pgClassConnection     = "08"
	pgClassInsufficient   = "53"
	pgClassOperatorAction = "57"
	pgInvalidPassword     = "28P01"
)

func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Classify reduces a driver error to an errs.Reason.
func Classify(err error) errs.Reason {
	if err == nil {
		return errs.ReasonUnknown
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errs.ReasonCanceled
	}

	if pe, ok := AsPgError(err); ok {
		switch {
		case strings.HasPrefix(pe.Code, pgClassIntegrity):
			return errs.ReasonConstraint
		case strings.HasPrefix(pe.Code, pgClassConnection),
			strings.HasPrefix(pe.Code, pgClassInsufficient),
			strings.HasPrefix(pe.Code, pgClassOperatorAction),
			pe.Code == pgInvalidPassword:
			return errs.ReasonUnavailable
		}
		return errs.ReasonUnknown
	}

	var me *mysqldrv.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlDuplicateEntry, mysqlBadNull, mysqlRowIsReferenced, mysqlNoReferencedRow, mysqlCheckConstraint:
			return errs.ReasonConstraint
		case mysqlTooManyConns, mysqlServerShutdown, mysqlAccessDenied, mysqlUnknownDatabase:
			return errs.ReasonUnavailable
		}
		return errs.ReasonUnknown
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, mysqldrv.ErrInvalidConn) {
		return errs.ReasonUnavailable
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return errs.ReasonUnavailable
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return errs.ReasonUnavailable
	}
	return errs.ReasonUnknown
}
