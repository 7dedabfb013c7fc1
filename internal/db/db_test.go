package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/nihaocards/internal/db"
)

func TestOpen_AppliesMigrationsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nihao.db")

	first, err := db.Open(path)
	require.NoError(t, err)
	versions, err := first.AppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_init.sql", "0002_score_rank_index.sql"}, versions)
	require.NoError(t, first.Close())

	second, err := db.Open(path)
	require.NoError(t, err)
	defer second.Close()
	again, err := second.AppliedMigrations(context.Background())
	require.NoError(t, err)
	assert.Equal(t, versions, again)
}
