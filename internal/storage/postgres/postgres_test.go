package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/storage/postgres"
	"github.com/cory-johannsen/arena/internal/testutil"
)

func TestPool_HealthRequiresBattleSchema(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)
	ctx := context.Background()

	err := pc.Pool.Health(ctx, 5*time.Second)
	assert.ErrorIs(t, err, postgres.ErrSchemaMissing)

	pc.ApplyMigrations(t)
	require.NoError(t, pc.Pool.Health(ctx, 5*time.Second))
}

func TestPool_SetsApplicationName(t *testing.T) {
	pc := testutil.NewPostgresContainer(t)

	var name string
	require.NoError(t, pc.RawPool.QueryRow(context.Background(), `SHOW application_name`).Scan(&name))
	assert.Equal(t, postgres.ApplicationName, name)
}
