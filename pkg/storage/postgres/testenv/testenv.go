package testenv

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/opst/hbnb/pkg/conn/db/postgres/pool"
	"github.com/opst/hbnb/pkg/storage/postgres/schema"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// EnvDatabaseURL names an environment variable holding a connection string of
// a database for tests. When it is set, no container is started.
//
// Tables in the database are dropped by tests.
const EnvDatabaseURL = "HBNB_TEST_DB_URL"

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "test-user"
	postgresPassword = "test-pass"
	postgresDB       = "hbnb"
)

var (
	mux      sync.Mutex
	started  string
	startErr error
)

// URL returns a connection string to a database for tests.
//
// When EnvDatabaseURL is not set, a postgres container is started at the first call
// and shared by the test process. The container is reaped by testcontainers after the process ends.
//
// Tests are skipped with -short, or when no database is available.
func URL(ctx context.Context, t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("database tests are skipped in short mode")
	}
	if url := os.Getenv(EnvDatabaseURL); url != "" {
		return url
	}

	mux.Lock()
	defer mux.Unlock()
	if started == "" && startErr == nil {
		started, startErr = recovered(func() (string, error) {
			return start(context.WithoutCancel(ctx))
		})
	}
	if startErr != nil {
		t.Skipf("postgres is not available (set %s to use one): %v", EnvDatabaseURL, startErr)
	}
	return started
}

// recovered calls f, turning its panic into an error.
//
// testcontainers panics when no container runtime is found.
func recovered(f func() (string, error)) (url string, err error) {
	defer func() {
		if r := recover(); r != nil {
			url, err = "", fmt.Errorf("container runtime is not available: %v", r)
		}
	}()
	return f()
}

func start(ctx context.Context) (string, error) {
	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(postgresDB),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start postgres container: %w", err)
	}
	return container.ConnectionString(ctx, "sslmode=disable")
}

// GetPool returns a pool to an empty database.
//
// Tables are dropped before returning and after t.
func GetPool(ctx context.Context, t *testing.T) pool.Pool {
	t.Helper()

	p, err := pool.Connect(ctx, URL(ctx, t))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(p.Close)

	ClearTables(ctx, t, p)
	t.Cleanup(func() { ClearTables(context.WithoutCancel(ctx), t, p) })
	return p
}

func ClearTables(ctx context.Context, t *testing.T, p pool.Pool) {
	t.Helper()
	if err := schema.New(p, schema.Embedded()).Drop(ctx); err != nil {
		t.Errorf("fail to clean-up tables.: %v", err)
	}
}
