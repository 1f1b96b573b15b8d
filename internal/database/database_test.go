package database

import (
	"testing"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMigrate_CreatesTablesAndIndexes(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, Migrate(db))

	m := db.Migrator()
	assert.True(t, m.HasTable(&models.User{}))
	assert.True(t, m.HasTable(&models.Puzzle{}))
	assert.True(t, m.HasTable(&models.MovieResponse{}))
	assert.True(t, m.HasTable(&models.Image{}))

	for _, idx := range indexes {
		assert.True(t, m.HasIndex(idx.model, idx.name), idx.name)
	}

	// Running again must not fail on the existing indexes.
	require.NoError(t, Migrate(db))
}
