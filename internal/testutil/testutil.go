// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"

	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/database"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory SQLite database that is closed
// when the test ends.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

// CreateUser stores a user with the given plaintext password.
func CreateUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Username: username, PasswordHash: hash}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePuzzle stores a puzzle owned by ownerID.
func CreatePuzzle(t *testing.T, db *gorm.DB, ownerID, title string, private bool) *models.Puzzle {
	t.Helper()

	puzzle := &models.Puzzle{
		Title:       title,
		OwnerID:     ownerID,
		IsPrivate:   private,
		PrivateNote: "only for the owner",
		SharedNote:  "for everyone",
	}
	require.NoError(t, db.Create(puzzle).Error)
	return puzzle
}

// CreateMovieResponse stores a response pairing user1ID and user2ID.
func CreateMovieResponse(t *testing.T, db *gorm.DB, movieID, user1ID, user2ID string) *models.MovieResponse {
	t.Helper()

	response := &models.MovieResponse{
		MovieID:          movieID,
		User1ID:          user1ID,
		User1Answered:    true,
		User1AnsweredYes: true,
		User2ID:          user2ID,
		User2Answered:    true,
		User2AnsweredYes: true,
	}
	require.NoError(t, db.Create(response).Error)
	return response
}

// ReloadMovieResponse fetches the current state of a response.
func ReloadMovieResponse(t *testing.T, db *gorm.DB, id string) models.MovieResponse {
	t.Helper()

	var response models.MovieResponse
	require.NoError(t, db.Where("id = ?", id).First(&response).Error)
	return response
}
