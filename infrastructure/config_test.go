package infrastructure

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnvDSN(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_USER", "scalper")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_NAME", "jobs")
	t.Setenv("DB_SSLMODE", "")

	cfg := LoadConfigFromEnv()
	assert.Equal(t, "host=db.internal port=6543 user=scalper dbname=jobs sslmode=disable", cfg.DSN())

	cfg.Password = "secret"
	assert.Contains(t, cfg.DSN(), " password=secret")
}

func TestMigrationsAreEmbedded(t *testing.T) {
	ups, err := fs.Glob(migrationFiles, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationFiles, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.Len(t, ups, 2)
	assert.Len(t, downs, len(ups))
}
