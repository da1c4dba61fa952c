package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dashboard-backend/internal/errs"
)

// stubDriver hands out connections that cannot run statements. It is
// enough to exercise database/sql's pool accounting without a server.
type stubDriver struct{}

func (stubDriver) Open(string) (driver.Conn, error) { return stubConn{}, nil }

type stubConn struct{}

func (stubConn) Prepare(string) (driver.Stmt, error) { return nil, errors.New("stub: prepare") }
func (stubConn) Close() error                        { return nil }
func (stubConn) Begin() (driver.Tx, error)           { return nil, errors.New("stub: begin") }

func init() {
	sql.Register("dashboard-stub", stubDriver{})
}

func newStubPool(t *testing.T, size int) *Pool {
	t.Helper()

	sqlDB, err := sql.Open("dashboard-stub", "")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Discard,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	pool, err := Wrap(db, PoolOptions{MaxOpenConns: size})
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func acquireAsync(pool *Pool) <-chan *Conn {
	ch := make(chan *Conn, 1)
	go func() {
		conn, err := pool.Acquire(context.Background())
		if err != nil {
			close(ch)
			return
		}
		ch <- conn
	}()
	return ch
}

func TestAcquireBlocksWhenExhausted(t *testing.T) {
	pool := newStubPool(t, 2)
	ctx := context.Background()

	first, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire #1: %v", err)
	}
	second, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire #2: %v", err)
	}
	defer second.Release()

	waiting := acquireAsync(pool)
	select {
	case <-waiting:
		t.Fatal("third Acquire returned while the pool was exhausted")
	case <-time.After(100 * time.Millisecond):
	}

	first.Release()

	select {
	case conn, ok := <-waiting:
		if !ok {
			t.Fatal("third Acquire failed after a release")
		}
		conn.Release()
	case <-time.After(2 * time.Second):
		t.Fatal("third Acquire still blocked after a release")
	}
}

func TestAcquireHonoursContext(t *testing.T) {
	pool := newStubPool(t, 1)

	held, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer held.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Acquire on exhausted pool = %v, want deadline exceeded", err)
	}
	if got := Classify(err); got != errs.ReasonCanceled {
		t.Errorf("Classify() = %q, want %q", got, errs.ReasonCanceled)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	pool := newStubPool(t, 1)

	conn, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	conn.Release()
	conn.Release()

	held, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	defer held.Release()

	// A double release must not have freed a second slot.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if extra, err := pool.Acquire(ctx); err == nil {
		extra.Release()
		t.Fatal("pool of size 1 handed out two connections")
	}
}

func TestWithConnReleasesOnError(t *testing.T) {
	pool := newStubPool(t, 1)
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		err := pool.WithConn(context.Background(), func(c *Conn) error {
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("WithConn #%d = %v, want boom", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after failing WithConn: %v", err)
	}
	conn.Release()
}

func TestWithConnReleasesOnPanic(t *testing.T) {
	pool := newStubPool(t, 1)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_ = pool.WithConn(context.Background(), func(c *Conn) error {
			panic("query mapper exploded")
		})
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	conn, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire after panic: %v", err)
	}
	conn.Release()
}

func TestStatementErrorsSurface(t *testing.T) {
	pool := newStubPool(t, 1)

	err := pool.WithConn(context.Background(), func(c *Conn) error {
		var n int64
		return c.Get(&n, "SELECT COUNT(*) FROM invoices")
	})
	if err == nil {
		t.Fatal("expected the stub driver error to surface")
	}
}

func TestWrapDefaults(t *testing.T) {
	pool := newStubPool(t, 0)

	if pool.Size() != 10 {
		t.Errorf("Size() = %d, want 10", pool.Size())
	}
	if pool.Dialect().Name != "postgres" {
		t.Errorf("Dialect().Name = %q, want postgres", pool.Dialect().Name)
	}
}
