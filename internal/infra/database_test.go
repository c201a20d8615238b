package infra

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase_SQLiteMemory(t *testing.T) {
	db, err := NewDatabase("sqlite", ":memory:")
	require.NoError(t, err)

	for _, table := range []string{"products", "shopping_lists", "shopping_list_items", "recipes", "recipe_ingredients"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex("shopping_list_items", "idx_list_product"))

	// Patches are idempotent.
	require.NoError(t, RunMigrations(db))
}

func TestNewDatabase_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "cookncart.db")
	db, err := NewDatabase("sqlite", path)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
	assert.FileExists(t, path)
}

func TestNewDatabase_UnknownDriver(t *testing.T) {
	_, err := NewDatabase("oracle", "whatever")
	assert.ErrorContains(t, err, "unsupported database driver")
}
