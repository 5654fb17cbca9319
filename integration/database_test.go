//go:build database

package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/qixiboss/gaitscore/internal/synth"
)

// exerciseBackend runs the storage commands against one server backend.
func exerciseBackend(t *testing.T, backend, connStr string) {
	t.Helper()
	env := []string{
		"GAITSCORE_CACHE_BACKEND=" + backend,
		"GAITSCORE_CACHE_DB_CONNECT=" + connStr,
		"GAITSCORE_HISTORY_BACKEND=" + backend,
		"GAITSCORE_HISTORY_DB_CONNECT=" + connStr,
	}
	logPath := writeWalk(t, synth.DefaultWalk())

	_, err := runGaitscore(t, env, "cache", "clear")
	require.NoError(t, err)

	_, err = runGaitscore(t, env, "history", "clear")
	require.NoError(t, err)

	_, err = runGaitscore(t, env, "history", "migrate")
	require.NoError(t, err)

	_, err = runGaitscore(t, env, "analyze", logPath, "--subject", "container")
	require.NoError(t, err)

	output, err := runGaitscore(t, env, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, string(output), "Connected: true")

	output, err = runGaitscore(t, env, "history", "status")
	require.NoError(t, err)
	assert.Contains(t, string(output), "Total Sessions: 1")

	output, err = runGaitscore(t, env, "history", "list")
	require.NoError(t, err)
	assert.Contains(t, string(output), "container")
}

// TestGaitscoreWithMySQL tests the gaitscore CLI with a MySQL backend.
func TestGaitscoreWithMySQL(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "gaitscore",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/gaitscore?parseTime=true&multiStatements=true", host, port.Port())
	exerciseBackend(t, "mysql", connStr)
}

// TestGaitscoreWithPostgres tests the gaitscore CLI with a PostgreSQL backend.
func TestGaitscoreWithPostgres(t *testing.T) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres sslmode=disable", host, port.Port())
	exerciseBackend(t, "postgresql", connStr)
}
