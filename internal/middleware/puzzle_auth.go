package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
)

// LoadPuzzle loads the puzzle named by the :id parameter into the context.
func LoadPuzzle(puzzles *services.PuzzleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		puzzle, err := puzzles.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, services.ErrPuzzleNotFound) {
				apierrors.Abort(c, apierrors.NotFound("Puzzle not found."))
				return
			}
			apierrors.Abort(c, apierrors.Internal(err))
			return
		}

		c.Set(constants.ContextKeyPuzzle, puzzle)
		c.Next()
	}
}

// RequirePuzzleOwner only lets the owner of the loaded puzzle through.
// It must run after RequireToken and LoadPuzzle.
func RequirePuzzleOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			apierrors.Abort(c, apierrors.Unauthorized(apierrors.MsgNoToken))
			return
		}
		puzzle, ok := CurrentPuzzle(c)
		if !ok {
			apierrors.Abort(c, apierrors.NotFound("Puzzle not found."))
			return
		}

		if puzzle.OwnerID != identity.ID {
			apierrors.Abort(c, apierrors.Forbidden("Only the owner can change this puzzle."))
			return
		}
		c.Next()
	}
}

// CurrentPuzzle retrieves the puzzle stored by LoadPuzzle.
func CurrentPuzzle(c *gin.Context) (*models.Puzzle, bool) {
	value, exists := c.Get(constants.ContextKeyPuzzle)
	if !exists {
		return nil, false
	}
	puzzle, ok := value.(*models.Puzzle)
	return puzzle, ok
}
