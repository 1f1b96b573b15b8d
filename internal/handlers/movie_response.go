package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/puzzlekeeper/puzzle-api/internal/dto"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
)

// MovieResponseHandler serves pairwise movie answers.
type MovieResponseHandler struct {
	responses *services.MovieResponseService
}

// NewMovieResponseHandler creates a new MovieResponseHandler.
func NewMovieResponseHandler(responses *services.MovieResponseService) *MovieResponseHandler {
	return &MovieResponseHandler{responses: responses}
}

// CreateMovieResponse pairs the caller with a partner for a movie.
func (h *MovieResponseHandler) CreateMovieResponse(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	type CreateRequest struct {
		MovieID   string `json:"movieId" binding:"required"`
		PartnerID string `json:"partnerId" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Abort(c, apierrors.Validation("Invalid request body").Wrap(err))
		return
	}

	response, err := h.responses.Create(c.Request.Context(), identity.ID, req.MovieID, req.PartnerID)
	if err != nil {
		respondMovieResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMovieResponseDTO(*response))
}

// ListMovieResponses returns the responses the caller takes part in.
func (h *MovieResponseHandler) ListMovieResponses(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	responses, err := h.responses.List(c.Request.Context(), identity.ID)
	if err != nil {
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToMovieResponseList(responses))
}

// AnswerMovieResponse stores the caller's answer.
func (h *MovieResponseHandler) AnswerMovieResponse(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	type AnswerRequest struct {
		AnsweredYes *bool `json:"answeredYes" binding:"required"`
	}

	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Abort(c, apierrors.Validation("Invalid request body").Wrap(err))
		return
	}

	response, err := h.responses.Answer(c.Request.Context(), identity.ID, c.Param("id"), *req.AnsweredYes)
	if err != nil {
		respondMovieResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMovieResponseDTO(*response))
}

func respondMovieResponseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMovieIDRequired):
		apierrors.Abort(c, apierrors.Validation("The movie is required."))
	case errors.Is(err, services.ErrPartnerIsSelf):
		apierrors.Abort(c, apierrors.Validation("The partner must be another user."))
	case errors.Is(err, services.ErrPartnerNotFound):
		apierrors.Abort(c, apierrors.NotFound("Partner not found."))
	case errors.Is(err, services.ErrMovieResponseNotFound):
		apierrors.Abort(c, apierrors.NotFound("Movie response not found."))
	case errors.Is(err, services.ErrMovieResponseForbidden):
		apierrors.Abort(c, apierrors.Forbidden("You are not part of this movie response."))
	default:
		apierrors.Abort(c, apierrors.Internal(err))
	}
}
