package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(files, "sql/*.sql")
	require.NoError(t, err)
	require.Len(t, names, 2)

	for _, name := range names {
		body, err := fs.ReadFile(files, name)
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", name)
		assert.Contains(t, string(body), "-- +goose Down", name)
	}

	jobs, err := fs.ReadFile(files, "sql/00002_create_print_jobs.sql")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(jobs), "print_jobs_completion_check"))
}

func TestNew_RequiresDSN(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)

	r, err := New("postgres://localhost/printshop")
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/printshop", r.dsn)
}
