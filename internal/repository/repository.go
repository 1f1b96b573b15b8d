package repository

import (
	"context"
	"errors"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/utils"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a write violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository is the credential store.
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// DeleteByID removes a user and reports how many rows were deleted
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// MovieResponseRepository is the relation store for pairwise movie answers.
type MovieResponseRepository interface {
	// Create creates a new movie response
	Create(ctx context.Context, response *models.MovieResponse) error

	// FindByID finds a movie response by ID
	FindByID(ctx context.Context, id string) (*models.MovieResponse, error)

	// ListByUser lists the responses where the user holds either slot
	ListByUser(ctx context.Context, userID string) ([]models.MovieResponse, error)

	// SetAnswer records the answer of the user in the given slot
	SetAnswer(ctx context.Context, id string, slot models.Slot, answeredYes bool) error

	// ClearUser resets the given slot on every response that references
	// userID and reports how many records were matched
	ClearUser(ctx context.Context, slot models.Slot, userID string) (int64, error)
}

// PuzzleRepository is the store for puzzles.
type PuzzleRepository interface {
	// Create creates a new puzzle
	Create(ctx context.Context, puzzle *models.Puzzle) error

	// FindByID finds a puzzle by ID
	FindByID(ctx context.Context, id string) (*models.Puzzle, error)

	// ListByOwner lists the owner's puzzles, newest first
	ListByOwner(ctx context.Context, ownerID string, params utils.PaginationParams) ([]models.Puzzle, int64, error)

	// Update saves all fields of the puzzle
	Update(ctx context.Context, puzzle *models.Puzzle) error

	// Delete removes a puzzle
	Delete(ctx context.Context, id string) error
}
