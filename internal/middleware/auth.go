package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
)

// RequireToken checks the bearer token and stores the caller's identity in
// the context. Handlers behind it read the identity with CurrentIdentity
// and never verify the token again.
func RequireToken(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := tokens.Verify(bearerToken(c))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				apierrors.Abort(c, apierrors.Unauthorized(apierrors.MsgNoToken).Wrap(err))
				return
			}
			apierrors.Abort(c, apierrors.Unauthorized(apierrors.MsgInvalidToken).Wrap(err))
			return
		}

		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" || header == "Bearer" {
		return ""
	}
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		// a bare token is treated as malformed, not missing
		return header
	}
	return strings.TrimSpace(token)
}

// CurrentIdentity retrieves the authenticated caller from context
func CurrentIdentity(c *gin.Context) (auth.Identity, bool) {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return auth.Identity{}, false
	}
	identity, ok := value.(auth.Identity)
	return identity, ok
}
