package database

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"testing"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"

	"dashboard-backend/internal/errs"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Reason
	}{
		{"nil", nil, errs.ReasonUnknown},
		{"canceled", fmt.Errorf("acquire: %w", context.Canceled), errs.ReasonCanceled},
		{"pg unique", &pgconn.PgError{Code: "23505"}, errs.ReasonConstraint},
		{"pg foreign key", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), errs.ReasonConstraint},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, errs.ReasonUnavailable},
		{"pg too many connections", &pgconn.PgError{Code: "53300"}, errs.ReasonUnavailable},
		{"pg undefined table", &pgconn.PgError{Code: "42P01"}, errs.ReasonUnknown},
		{"mysql duplicate", &mysqldrv.MySQLError{Number: 1062}, errs.ReasonConstraint},
		{"mysql too many conns", &mysqldrv.MySQLError{Number: 1040}, errs.ReasonUnavailable},
		{"mysql syntax", &mysqldrv.MySQLError{Number: 1064}, errs.ReasonUnknown},
		{"bad conn", driver.ErrBadConn, errs.ReasonUnavailable},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, errs.ReasonUnavailable},
		{"other", errors.New("something else"), errs.ReasonUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}

func TestDialectFragments(t *testing.T) {
	pg := dialectFor("postgres")
	my := dialectFor("mysql")

	if got := pg.AsText("invoices.amount"); got != "CAST(invoices.amount AS TEXT)" {
		t.Errorf("postgres AsText = %q", got)
	}
	if got := my.AsText("invoices.amount"); got != "CAST(invoices.amount AS CHAR)" {
		t.Errorf("mysql AsText = %q", got)
	}
	if got := pg.DateAsText("invoices.date"); got != "TO_CHAR(invoices.date, 'YYYY-MM-DD')" {
		t.Errorf("postgres DateAsText = %q", got)
	}
	if got := my.DateAsText("invoices.date"); got != "DATE_FORMAT(invoices.date, '%Y-%m-%d')" {
		t.Errorf("mysql DateAsText = %q", got)
	}
}
