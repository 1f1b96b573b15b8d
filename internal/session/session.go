// Package session keeps the per-browser login state in a server-side
// session referenced by a cookie.
package session

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/config"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
)

// NewStore builds the session store selected by cfg.SessionStore.
func NewStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			redisAddr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}
		store = rs
	}

	store.Options(Options(cfg.Production()))
	return store, nil
}

// Options returns the cookie settings for login sessions.
func Options(production bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   constants.SessionMaxAge,
		HttpOnly: true,
		Secure:   production,
		SameSite: http.SameSiteStrictMode,
	}
}

// Middleware attaches the named session to every request.
func Middleware(name string, store sessions.Store) gin.HandlerFunc {
	return sessions.Sessions(name, store)
}

// Regenerate replaces whatever the session held with the new login.
func Regenerate(c *gin.Context, username, token string) error {
	s := sessions.Default(c)
	s.Clear()
	s.Set(constants.SessionKeyUsername, username)
	s.Set(constants.SessionKeyToken, token)
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Destroy clears the session and expires its cookie. Destroying an empty
// session is not an error.
func Destroy(c *gin.Context, production bool) error {
	s := sessions.Default(c)
	s.Clear()
	opts := Options(production)
	opts.MaxAge = -1
	s.Options(opts)
	if err := s.Save(); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// Username returns the username stored by the last login, if any.
func Username(c *gin.Context) (string, bool) {
	v, ok := sessions.Default(c).Get(constants.SessionKeyUsername).(string)
	return v, ok && v != ""
}
