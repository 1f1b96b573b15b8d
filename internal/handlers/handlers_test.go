package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/middleware"
	"github.com/puzzlekeeper/puzzle-api/internal/repository"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
	"github.com/puzzlekeeper/puzzle-api/internal/session"
	"github.com/puzzlekeeper/puzzle-api/internal/storage"
	"github.com/puzzlekeeper/puzzle-api/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSessionName = "puzzle_session"

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db       *gorm.DB
	tokens   *auth.TokenService
	accounts *services.AccountService
	puzzles  *services.PuzzleService
	router   *gin.Engine
}

// setupTestEnv mounts the handlers on a router backed by an in-memory
// database and a cookie session store.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	logger := logging.Discard()
	tokens := auth.NewTokenService([]byte("test-secret"), time.Hour)

	users := repository.NewUserRepository(db)
	responses := repository.NewMovieResponseRepository(db)
	env := &testEnv{
		db:       db,
		tokens:   tokens,
		accounts: services.NewAccountService(users, responses, tokens, logger),
		puzzles:  services.NewPuzzleService(repository.NewPuzzleRepository(db), storage.NewDBImageStore(db), logger),
	}
	env.router = newTestRouter(env.accounts, env.puzzles, services.NewMovieResponseService(responses, users, logger), tokens)
	return env
}

func newTestRouter(accounts *services.AccountService, puzzles *services.PuzzleService, responses *services.MovieResponseService, tokens *auth.TokenService) *gin.Engine {
	logger := logging.Discard()
	store := cookie.NewStore([]byte("secret"))
	store.Options(session.Options(false))

	r := gin.New()
	r.Use(sessions.Sessions(testSessionName, store))
	r.Use(middleware.ErrorResponder(false, logger))

	accountHandler := NewAccountHandler(accounts, false, logger)
	puzzleHandler := NewPuzzleHandler(puzzles)
	responseHandler := NewMovieResponseHandler(responses)
	requireToken := middleware.RequireToken(tokens)
	loadPuzzle := middleware.LoadPuzzle(puzzles)

	r.POST("/users", accountHandler.Register)
	r.POST("/login", accountHandler.Login)
	r.GET("/logout", accountHandler.Logout)
	r.GET("/users/me", requireToken, accountHandler.Me)
	r.DELETE("/users", requireToken, accountHandler.Delete)

	p := r.Group("/puzzles", requireToken)
	p.POST("", puzzleHandler.CreatePuzzle)
	p.GET("", puzzleHandler.ListPuzzles)
	p.GET("/:id", loadPuzzle, puzzleHandler.GetPuzzle)
	p.PUT("/:id", loadPuzzle, middleware.RequirePuzzleOwner(), puzzleHandler.UpdatePuzzle)
	p.DELETE("/:id", loadPuzzle, middleware.RequirePuzzleOwner(), puzzleHandler.DeletePuzzle)
	p.GET("/:id/image", loadPuzzle, puzzleHandler.GetPuzzleImage)

	m := r.Group("/movie-responses", requireToken)
	m.POST("", responseHandler.CreateMovieResponse)
	m.GET("", responseHandler.ListMovieResponses)
	m.PUT("/:id/answer", responseHandler.AnswerMovieResponse)

	return r
}

func (e *testEnv) bearer(t *testing.T, userID, username string) string {
	t.Helper()
	token, err := e.tokens.Issue(userID, username)
	require.NoError(t, err)
	return "Bearer " + token
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func jsonRequest(t *testing.T, method, url string, payload any, authorization string) *http.Request {
	t.Helper()

	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == testSessionName {
			return c
		}
	}
	return nil
}
