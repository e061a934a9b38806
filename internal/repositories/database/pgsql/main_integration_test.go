package pgsql_test

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/bilgisen/bookshall-sub000/migrations"
	"github.com/bilgisen/bookshall-sub000/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	testPostgresTag  = "16-alpine"
	testDBName       = "bookshall_test"
	testUserName     = "test"
	testUserPassword = "test"
)

var (
	testPool   *pgxpool.Pool
	testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	code, err := runMain(m)
	if err != nil {
		log.Printf("integration database unavailable, ledger tests will be skipped: %v", err)
		os.Exit(m.Run())
	}
	os.Exit(code)
}

func runMain(m *testing.M) (int, error) {
	dockerPool, err := dockertest.NewPool("")
	if err != nil {
		return 1, fmt.Errorf("failed to initialize a docker pool: %w", err)
	}
	if err := dockerPool.Client.Ping(); err != nil {
		return 1, fmt.Errorf("failed to reach docker: %w", err)
	}

	const pgPort = "5432/tcp"
	pgContainer, err := dockerPool.RunWithOptions(
		&dockertest.RunOptions{
			Repository: "postgres",
			Tag:        testPostgresTag,
			Env: []string{
				"POSTGRES_USER=" + testUserName,
				"POSTGRES_PASSWORD=" + testUserPassword,
				"POSTGRES_DB=" + testDBName,
			},
			ExposedPorts: []string{pgPort},
		},
		func(config *docker.HostConfig) {
			config.AutoRemove = true
			config.RestartPolicy = docker.RestartPolicy{Name: "no"}
		},
	)
	if err != nil {
		return 1, fmt.Errorf("failed to run postgres container: %w", err)
	}
	defer func() {
		if err := dockerPool.Purge(pgContainer); err != nil {
			log.Printf("failed to purge the postgres container: %v", err)
		}
	}()

	dsn := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		testUserName, testUserPassword, pgContainer.GetHostPort(pgPort), testDBName)

	dockerPool.MaxWait = 30 * time.Second
	if err := dockerPool.Retry(func() error {
		testPool, err = database.NewPgxPool(context.Background(), dsn, database.PoolOptions{MaxConns: 20, Ping: true}, testLogger)
		return err
	}); err != nil {
		return 1, fmt.Errorf("retry failed: %w", err)
	}
	defer testPool.Close()

	if err := database.Migrate(dsn, migrations.FS, database.MigrateUp, testLogger); err != nil {
		return 1, err
	}

	return m.Run(), nil
}

// requireDB skips the calling test when no database container could be started.
func requireDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testPool == nil {
		t.Skip("postgres container not available")
	}
	return testPool
}
