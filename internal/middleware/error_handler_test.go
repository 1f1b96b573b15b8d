package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/stretchr/testify/assert"
)

func serveError(production bool, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.Use(ErrorResponder(production, logging.Discard()))
	router.GET("/", handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	return w
}

func TestErrorResponder(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		err        error
		wantStatus int
		wantBody   map[string]string
	}{
		{
			name:       "unauthorized",
			err:        apierrors.Unauthorized("Wrong username or password."),
			wantStatus: http.StatusUnauthorized,
			wantBody:   map[string]string{"error": "Wrong username or password."},
		},
		{
			name:       "validation",
			err:        apierrors.Validation("The username is required."),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"code": apierrors.ErrCodeInvalidInput, "message": "The username is required."},
		},
		{
			name:       "conflict",
			err:        apierrors.Conflict("The username is not available."),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]string{"code": apierrors.ErrCodeConflict, "message": "The username is not available."},
		},
		{
			name:       "not found",
			err:        apierrors.NotFound("Puzzle not found."),
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]string{"code": apierrors.ErrCodeNotFound, "message": "Puzzle not found."},
		},
		{
			name:       "internal in development",
			err:        errors.New("table missing"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"code": apierrors.ErrCodeInternalError, "message": apierrors.MsgUnknown},
		},
		{
			name:       "internal in production",
			production: true,
			err:        apierrors.Internal(errors.New("table missing")),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]string{"code": apierrors.ErrCodeInternalError, "message": apierrors.MsgInternalError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serveError(tt.production, func(c *gin.Context) {
				_ = c.Error(tt.err)
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantBody, decodeError(t, w))
		})
	}
}

func TestErrorResponder_LeavesWrittenResponses(t *testing.T) {
	w := serveError(false, func(c *gin.Context) {
		c.String(http.StatusOK, "done")
		_ = c.Error(errors.New("late failure"))
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "done", w.Body.String())
}
