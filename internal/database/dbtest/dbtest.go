// Package dbtest starts a throwaway PostgreSQL for integration tests.
//
// Tests using it are skipped unless TEST_INTEGRATION is set, since they
// need a Docker daemon.
package dbtest

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"dashboard-backend/internal/config"
	"dashboard-backend/internal/database"
)

const (
	dbName     = "dashboard_test"
	dbUser     = "dashboard"
	dbPassword = "test-password"
)

// NewPool returns a pool connected to a fresh database. The container and
// the pool are torn down when the test ends.
func NewPool(t *testing.T, maxConns int) *database.Pool {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION is not set")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("container port: %v", err)
	}
	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		t.Fatalf("container port %q: %v", port.Port(), err)
	}

	cfg := config.Default().Database
	cfg.Host = host
	cfg.Port = portNum
	cfg.User = dbUser
	cfg.Password = dbPassword
	cfg.Name = dbName
	cfg.MaxOpenConns = maxConns
	cfg.MaxIdleConns = maxConns

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)

	return pool
}
