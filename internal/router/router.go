// Package router wires the HTTP routes of the puzzle API.
package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/config"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/handlers"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/middleware"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
	"github.com/puzzlekeeper/puzzle-api/internal/session"
)

// Dependencies are the collaborators the routes are built from.
type Dependencies struct {
	Config         *config.Config
	Logger         logging.Logger
	SessionStore   sessions.Store
	Tokens         *auth.TokenService
	Accounts       *services.AccountService
	Puzzles        *services.PuzzleService
	MovieResponses *services.MovieResponseService
}

// NewRouter builds the gin engine with every route of the API.
func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	r := gin.New()
	r.MaxMultipartMemory = constants.MaxImageSize + 1<<20
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.SecurityHeaders(), middleware.CORS(cfg.AllowedOrigins()))
	r.Use(session.Middleware(cfg.SessionName, deps.SessionStore))
	r.Use(middleware.ErrorResponder(cfg.Production(), deps.Logger))

	accountHandler := handlers.NewAccountHandler(deps.Accounts, cfg.Production(), deps.Logger)
	puzzleHandler := handlers.NewPuzzleHandler(deps.Puzzles)
	movieResponseHandler := handlers.NewMovieResponseHandler(deps.MovieResponses)

	requireToken := middleware.RequireToken(deps.Tokens)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Puzzle API is running",
		})
	})

	// Account routes
	r.POST("/users", accountHandler.Register)
	r.POST("/login", accountHandler.Login)
	r.GET("/logout", accountHandler.Logout)
	r.GET("/users/me", requireToken, accountHandler.Me)
	r.DELETE("/users", requireToken, accountHandler.Delete)

	// Puzzle routes (protected)
	puzzles := r.Group("/puzzles")
	puzzles.Use(requireToken)
	{
		loadPuzzle := middleware.LoadPuzzle(deps.Puzzles)

		puzzles.POST("", puzzleHandler.CreatePuzzle)
		puzzles.GET("", puzzleHandler.ListPuzzles)
		puzzles.GET("/:id", loadPuzzle, puzzleHandler.GetPuzzle)
		puzzles.PUT("/:id", loadPuzzle, middleware.RequirePuzzleOwner(), puzzleHandler.UpdatePuzzle)
		puzzles.DELETE("/:id", loadPuzzle, middleware.RequirePuzzleOwner(), puzzleHandler.DeletePuzzle)
		puzzles.GET("/:id/image", loadPuzzle, puzzleHandler.GetPuzzleImage)
	}

	// Movie response routes (protected)
	responses := r.Group("/movie-responses")
	responses.Use(requireToken)
	{
		responses.POST("", movieResponseHandler.CreateMovieResponse)
		responses.GET("", movieResponseHandler.ListMovieResponses)
		responses.PUT("/:id/answer", movieResponseHandler.AnswerMovieResponse)
	}

	return r
}
