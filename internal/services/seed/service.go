// Package seed creates the dashboard tables and fills them with
// placeholder rows.
//
// Seeding is idempotent: tables are created only when absent and every row
// is inserted with insert-if-absent semantics, so a second run inserts
// nothing. Statements run one by one on a single borrowed connection
// without a surrounding transaction.
package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"dashboard-backend/internal/database"
	"dashboard-backend/internal/errs"
	"dashboard-backend/internal/models"
)

type Group string

const (
	GroupUsers     Group = "users"
	GroupCustomers Group = "customers"
	GroupInvoices  Group = "invoices"
	GroupRevenue   Group = "revenue"
)

// AllGroups lists the groups in the order they are seeded. Invoices
// reference customers, so customers come first.
var AllGroups = []Group{GroupUsers, GroupCustomers, GroupInvoices, GroupRevenue}

// ParseGroups validates names and returns them in seeding order without
// duplicates. An empty input selects every group.
func ParseGroups(names []string) ([]Group, error) {
	if len(names) == 0 {
		return AllGroups, nil
	}

	wanted := make(map[Group]bool, len(names))
	for _, name := range names {
		g := Group(strings.ToLower(strings.TrimSpace(name)))
		if !isGroup(g) {
			return nil, errs.InvalidInput("ParseGroups", fmt.Sprintf("unknown seed group %q", name))
		}
		wanted[g] = true
	}

	groups := make([]Group, 0, len(wanted))
	for _, g := range AllGroups {
		if wanted[g] {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

func isGroup(g Group) bool {
	for _, known := range AllGroups {
		if g == known {
			return true
		}
	}
	return false
}

// Executor is the part of a borrowed connection seeding needs.
type Executor interface {
	Exec(query string, args ...any) (int64, error)
	InsertIgnore(row any) (int64, error)
}

// Result counts the rows inserted per group. Skipped duplicates are not
// counted.
type Result map[Group]int64

type Service struct {
	pool     *database.Pool
	data     Dataset
	hashCost int
}

func NewService(pool *database.Pool, data Dataset) *Service {
	return &Service{pool: pool, data: data, hashCost: bcrypt.DefaultCost}
}

// Seed runs the given groups on one connection.
func (s *Service) Seed(ctx context.Context, groups []Group) (Result, error) {
	var result Result
	err := s.pool.WithConn(ctx, func(c *database.Conn) error {
		var err error
		result, err = s.run(c, groups)
		return err
	})
	if err != nil {
		reason := database.Classify(err)
		log.Error().Err(err).Str("reason", string(reason)).Msg("Seeding failed")
		return result, errs.SeedFailed("Seed", reason, err)
	}

	log.Info().
		Int64("users", result[GroupUsers]).
		Int64("customers", result[GroupCustomers]).
		Int64("invoices", result[GroupInvoices]).
		Int64("revenue", result[GroupRevenue]).
		Msg("Database seeded")
	return result, nil
}

func (s *Service) run(x Executor, groups []Group) (Result, error) {
	result := make(Result, len(groups))
	for _, g := range groups {
		var (
			n   int64
			err error
		)
		switch g {
		case GroupUsers:
			n, err = s.seedUsers(x)
		case GroupCustomers:
			n, err = s.seedCustomers(x)
		case GroupInvoices:
			n, err = s.seedInvoices(x)
		case GroupRevenue:
			n, err = s.seedRevenue(x)
		default:
			err = fmt.Errorf("unknown group %q", g)
		}
		if err != nil {
			return result, fmt.Errorf("seed %s: %w", g, err)
		}
		result[g] = n
	}
	return result, nil
}

const createUsers = `
	CREATE TABLE IF NOT EXISTS users (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		password TEXT NOT NULL
	)`

const createCustomers = `
	CREATE TABLE IF NOT EXISTS customers (
		id CHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL,
		image_url VARCHAR(255) NOT NULL
	)`

const createInvoices = `
	CREATE TABLE IF NOT EXISTS invoices (
		id CHAR(36) NOT NULL PRIMARY KEY,
		customer_id CHAR(36) NOT NULL,
		amount INT NOT NULL,
		status VARCHAR(255) NOT NULL,
		date DATE NOT NULL,
		FOREIGN KEY (customer_id) REFERENCES customers (id)
	)`

const createRevenue = `
	CREATE TABLE IF NOT EXISTS revenue (
		month VARCHAR(4) NOT NULL UNIQUE,
		revenue INT NOT NULL
	)`

func (s *Service) seedUsers(x Executor) (int64, error) {
	if _, err := x.Exec(createUsers); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	var inserted int64
	for _, u := range s.data.Users {
		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), s.hashCost)
		if err != nil {
			return inserted, fmt.Errorf("hash password for %s: %w", u.Email, err)
		}
		n, err := x.InsertIgnore(&models.User{
			ID:       u.ID,
			Name:     u.Name,
			Email:    u.Email,
			Password: string(hashed),
		})
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (s *Service) seedCustomers(x Executor) (int64, error) {
	if _, err := x.Exec(createCustomers); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	return insertEach(x, s.data.Customers)
}

func (s *Service) seedInvoices(x Executor) (int64, error) {
	if _, err := x.Exec(createInvoices); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	return insertEach(x, s.data.Invoices)
}

func (s *Service) seedRevenue(x Executor) (int64, error) {
	if _, err := x.Exec(createRevenue); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}
	return insertEach(x, s.data.Revenue)
}

func insertEach[T any](x Executor, rows []T) (int64, error) {
	var inserted int64
	for _, row := range rows {
		n, err := x.InsertIgnore(&row)
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}
