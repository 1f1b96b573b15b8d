package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/dto"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/middleware"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
	"github.com/puzzlekeeper/puzzle-api/internal/session"
)

const (
	msgRegistered     = "Your account was created successfully. Please log in."
	msgWrongLogin     = "Wrong username or password."
	msgLoggedOut      = "You are now logged out."
	msgAccountDeleted = "Account was deleted successfully. "
)

// AccountHandler coordinates registration, login, logout and account
// deletion.
type AccountHandler struct {
	accounts   *services.AccountService
	production bool
	logger     logging.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts *services.AccountService, production bool, logger logging.Logger) *AccountHandler {
	return &AccountHandler{
		accounts:   accounts,
		production: production,
		logger:     logger.With("handler", "account"),
	}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new account.
func (h *AccountHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Abort(c, apierrors.Validation(apierrors.MsgUnknown).Wrap(err))
		return
	}

	_, err := h.accounts.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondRegisterError(c, err)
		return
	}

	c.String(http.StatusCreated, msgRegistered)
}

// Login authenticates the user, issues a token and starts a new session.
func (h *AccountHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Abort(c, apierrors.Unauthorized(msgWrongLogin).Wrap(err))
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			apierrors.Abort(c, apierrors.Unauthorized(msgWrongLogin))
			return
		}
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}

	if err := session.Regenerate(c, result.User.Username, result.Token); err != nil {
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Message: fmt.Sprintf("Welcome %s! You are now logged in.", result.User.Username),
		Token:   result.Token,
	})
}

// Logout ends the session. Logging out without a session succeeds too.
func (h *AccountHandler) Logout(c *gin.Context) {
	h.logout(c, "")
}

func (h *AccountHandler) logout(c *gin.Context, prefix string) {
	username, loggedIn := session.Username(c)
	if err := session.Destroy(c, h.production); err != nil {
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}
	if loggedIn {
		h.logger.Info(c.Request.Context(), "user logged out", "username", username)
	}
	c.String(http.StatusOK, prefix+msgLoggedOut)
}

// Me returns the authenticated user.
func (h *AccountHandler) Me(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		apierrors.Abort(c, apierrors.Unauthorized(apierrors.MsgNoToken))
		return
	}

	user, err := h.accounts.GetUser(c.Request.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			apierrors.Abort(c, apierrors.NotFound("User not found."))
			return
		}
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// Delete removes the caller's account and then logs them out.
func (h *AccountHandler) Delete(c *gin.Context) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		apierrors.Abort(c, apierrors.Unauthorized(apierrors.MsgNoToken))
		return
	}

	if _, err := h.accounts.Delete(c.Request.Context(), identity); err != nil {
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}

	h.logout(c, msgAccountDeleted)
}

// respondRegisterError maps registration failures. Anything unexpected is
// reported as a bad request with a generic message.
func respondRegisterError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		apierrors.Abort(c, apierrors.Conflict("The username is not available."))
	case errors.Is(err, services.ErrUsernameRequired):
		apierrors.Abort(c, apierrors.Validation("The username is required."))
	case errors.Is(err, services.ErrUsernameTooLong):
		apierrors.Abort(c, apierrors.Validation(fmt.Sprintf("The username must not contain more than %d characters.", constants.MaxUsernameLength)))
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.Abort(c, apierrors.Validation(fmt.Sprintf("The password must contain at least %d characters.", constants.MinPasswordLength)))
	case errors.Is(err, services.ErrPasswordTooLong):
		apierrors.Abort(c, apierrors.Validation(fmt.Sprintf("The password must not contain more than %d characters.", constants.MaxPasswordLength)))
	default:
		apierrors.Abort(c, apierrors.Validation(apierrors.MsgUnknown).Wrap(err))
	}
}
