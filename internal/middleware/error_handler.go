package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
)

// ErrorResponder renders the last error attached to the request. It is the
// only place that decides the wire format of failures.
func ErrorResponder(production bool, logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		apiErr := apierrors.From(c.Errors.Last().Err)
		ctx := c.Request.Context()

		switch {
		case apiErr.Status == http.StatusUnauthorized:
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		case apiErr.Status >= http.StatusInternalServerError:
			logger.Error(ctx, "request failed",
				"method", c.Request.Method,
				"path", c.FullPath(),
				"error", apiErr.Error(),
			)
			message := apiErr.Message
			if production {
				message = apierrors.MsgInternalError
			}
			c.JSON(apiErr.Status, apierrors.APIError{Code: apiErr.Code, Message: message})
		default:
			logger.Debug(ctx, "request rejected", "status", apiErr.Status, "error", apiErr.Error())
			c.JSON(apiErr.Status, apiErr)
		}
	}
}
