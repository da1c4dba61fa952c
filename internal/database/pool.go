// Package database owns the process-wide connection pool.
//
// A Pool is built once at startup from config and closed at shutdown.
// Every operation borrows a Conn for its duration and gives it back with
// Release, or uses WithConn which does both.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"dashboard-backend/internal/config"
)

type Pool struct {
	db      *gorm.DB
	sqlDB   *sql.DB
	size    int
	dialect Dialect
}

// PoolOptions sizes the pool. MaxOpenConns bounds concurrent borrowers;
// once reached, Acquire waits for a Release.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

func OptionsFromConfig(cfg config.DatabaseConfig) PoolOptions {
	return PoolOptions{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Second,
	}
}

// NewPool connects to the configured database and verifies it with a ping.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "postgres", "":
		dialector = postgres.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               newGormLogger(200 * time.Millisecond),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	p, err := Wrap(db, OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	if err := p.sqlDB.PingContext(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}

	log.Info().
		Str("driver", cfg.Driver).
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Int("max_conns", p.size).
		Msg("Database pool ready")

	return p, nil
}

// Wrap builds a Pool around an already opened gorm handle.
func Wrap(db *gorm.DB, opts PoolOptions) (*Pool, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	size := opts.MaxOpenConns
	if size <= 0 {
		size = 10
	}
	idle := opts.MaxIdleConns
	if idle <= 0 || idle > size {
		idle = size
	}
	sqlDB.SetMaxOpenConns(size)
	sqlDB.SetMaxIdleConns(idle)
	sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(opts.ConnMaxIdleTime)

	return &Pool{
		db:      db,
		sqlDB:   sqlDB,
		size:    size,
		dialect: dialectFor(db.Dialector.Name()),
	}, nil
}

// Acquire borrows a connection, waiting while all of them are in use.
// Only ctx ends the wait. The returned Conn must be released.
func (p *Pool) Acquire(ctx context.Context) (*Conn, error) {
	conn, err := p.sqlDB.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	// Same binding gorm's DB.Connection uses: a fresh session whose
	// statements all run on the borrowed conn.
	tx := p.db.Session(&gorm.Session{NewDB: true, Context: ctx})
	tx.Statement.ConnPool = conn

	return &Conn{conn: conn, db: tx, dialect: p.dialect}, nil
}

// WithConn acquires a connection, runs fn and releases the connection on
// every exit path, panics included.
func (p *Pool) WithConn(ctx context.Context, fn func(c *Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	return fn(conn)
}

func (p *Pool) Size() int {
	return p.size
}

func (p *Pool) Dialect() Dialect {
	return p.dialect
}

// Close stops new acquisitions, waits for running statements and closes
// every connection.
func (p *Pool) Close() {
	if err := p.sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close database pool")
		return
	}
	log.Info().Msg("Database pool closed")
}
