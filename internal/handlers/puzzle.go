package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/dto"
	apierrors "github.com/puzzlekeeper/puzzle-api/internal/errors"
	"github.com/puzzlekeeper/puzzle-api/internal/middleware"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/services"
	"github.com/puzzlekeeper/puzzle-api/internal/utils"
)

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidDate = errors.New("invalid lastPlayed date")
)

// PuzzleHandler serves the puzzle collection.
type PuzzleHandler struct {
	puzzles *services.PuzzleService
}

// NewPuzzleHandler creates a new PuzzleHandler.
func NewPuzzleHandler(puzzles *services.PuzzleService) *PuzzleHandler {
	return &PuzzleHandler{puzzles: puzzles}
}

// puzzleForm is accepted as multipart form or JSON. Absent fields stay nil.
type puzzleForm struct {
	Title               *string `form:"title" json:"title"`
	PiecesNumber        *int    `form:"piecesNumber" json:"piecesNumber"`
	Size                *string `form:"size" json:"size"`
	Manufacturer        *string `form:"manufacturer" json:"manufacturer"`
	LastPlayed          *string `form:"lastPlayed" json:"lastPlayed"`
	Location            *string `form:"location" json:"location"`
	Complete            *bool   `form:"complete" json:"complete"`
	MissingPiecesNumber *int    `form:"missingPiecesNumber" json:"missingPiecesNumber"`
	PrivateNote         *string `form:"privateNote" json:"privateNote"`
	SharedNote          *string `form:"sharedNote" json:"sharedNote"`
	IsPrivate           *bool   `form:"isPrivate" json:"isPrivate"`
	IsLentOut           *bool   `form:"isLentOut" json:"isLentOut"`
	LentOutTo           *string `form:"lentOutTo" json:"lentOutTo"`
}

func (f puzzleForm) input() (services.PuzzleInput, error) {
	in := services.PuzzleInput{
		Title:               f.Title,
		PiecesNumber:        f.PiecesNumber,
		Size:                f.Size,
		Manufacturer:        f.Manufacturer,
		Location:            f.Location,
		Complete:            f.Complete,
		MissingPiecesNumber: f.MissingPiecesNumber,
		PrivateNote:         f.PrivateNote,
		SharedNote:          f.SharedNote,
		IsPrivate:           f.IsPrivate,
		IsLentOut:           f.IsLentOut,
		LentOutTo:           f.LentOutTo,
	}
	if f.LastPlayed != nil && strings.TrimSpace(*f.LastPlayed) != "" {
		t, err := parseDate(strings.TrimSpace(*f.LastPlayed))
		if err != nil {
			return in, err
		}
		in.LastPlayed = &t
	}
	return in, nil
}

func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}
	return t, nil
}

// bindPuzzle reads the request fields and the optional image upload.
func bindPuzzle(c *gin.Context) (services.PuzzleInput, error) {
	var form puzzleForm
	if err := c.ShouldBind(&form); err != nil {
		return services.PuzzleInput{}, fmt.Errorf("%w: %v", errInvalidBody, err)
	}
	in, err := form.input()
	if err != nil {
		return in, err
	}

	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return in, nil
	}
	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return in, nil
	}
	if err != nil {
		return in, fmt.Errorf("%w: %v", errInvalidBody, err)
	}

	file, err := header.Open()
	if err != nil {
		return in, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, constants.MaxImageSize+1))
	if err != nil {
		return in, err
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	in.Image = &services.ImageUpload{ContentType: contentType, Data: data}
	return in, nil
}

func currentIdentity(c *gin.Context) (auth.Identity, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		apierrors.Abort(c, apierrors.Unauthorized(apierrors.MsgNoToken))
	}
	return identity, ok
}

func currentPuzzle(c *gin.Context) (*models.Puzzle, bool) {
	puzzle, ok := middleware.CurrentPuzzle(c)
	if !ok {
		apierrors.Abort(c, apierrors.NotFound("Puzzle not found."))
	}
	return puzzle, ok
}

// CreatePuzzle adds a puzzle to the caller's collection.
func (h *PuzzleHandler) CreatePuzzle(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	input, err := bindPuzzle(c)
	if err != nil {
		respondPuzzleError(c, err)
		return
	}

	puzzle, err := h.puzzles.Create(c.Request.Context(), identity.ID, input)
	if err != nil {
		respondPuzzleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPuzzleDTO(*puzzle))
}

// ListPuzzles returns one page of the caller's puzzles.
func (h *PuzzleHandler) ListPuzzles(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)
	puzzles, total, err := h.puzzles.List(c.Request.Context(), identity.ID, params)
	if err != nil {
		apierrors.Abort(c, apierrors.Internal(err))
		return
	}

	c.JSON(http.StatusOK, dto.ToPuzzleListResponse(puzzles, params, total))
}

// GetPuzzle returns a puzzle as the caller is allowed to see it.
func (h *PuzzleHandler) GetPuzzle(c *gin.Context) {
	puzzle, ok := h.visiblePuzzle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToPuzzleDTO(*puzzle))
}

// UpdatePuzzle changes the fields present in the request.
func (h *PuzzleHandler) UpdatePuzzle(c *gin.Context) {
	puzzle, ok := currentPuzzle(c)
	if !ok {
		return
	}

	input, err := bindPuzzle(c)
	if err != nil {
		respondPuzzleError(c, err)
		return
	}

	updated, err := h.puzzles.Update(c.Request.Context(), puzzle, input)
	if err != nil {
		respondPuzzleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPuzzleDTO(*updated))
}

// DeletePuzzle removes a puzzle and its image.
func (h *PuzzleHandler) DeletePuzzle(c *gin.Context) {
	puzzle, ok := currentPuzzle(c)
	if !ok {
		return
	}

	if err := h.puzzles.Delete(c.Request.Context(), puzzle); err != nil {
		respondPuzzleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetPuzzleImage streams the puzzle image.
func (h *PuzzleHandler) GetPuzzleImage(c *gin.Context) {
	puzzle, ok := h.visiblePuzzle(c)
	if !ok {
		return
	}

	data, contentType, err := h.puzzles.Image(c.Request.Context(), puzzle)
	if err != nil {
		respondPuzzleError(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

func (h *PuzzleHandler) visiblePuzzle(c *gin.Context) (*models.Puzzle, bool) {
	identity, ok := currentIdentity(c)
	if !ok {
		return nil, false
	}
	puzzle, ok := currentPuzzle(c)
	if !ok {
		return nil, false
	}

	visible, err := h.puzzles.View(puzzle, identity.ID)
	if err != nil {
		respondPuzzleError(c, err)
		return nil, false
	}
	return visible, true
}

func respondPuzzleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired):
		apierrors.Abort(c, apierrors.Validation("The title is required."))
	case errors.Is(err, services.ErrTitleTooLong):
		apierrors.Abort(c, apierrors.Validation(fmt.Sprintf("The title must not contain more than %d characters.", constants.MaxPuzzleTitleLength)))
	case errors.Is(err, services.ErrTitleInvalid):
		apierrors.Abort(c, apierrors.Validation("The title may only contain letters, digits and spaces."))
	case errors.Is(err, services.ErrNegativePieces):
		apierrors.Abort(c, apierrors.Validation("The number of pieces must not be negative."))
	case errors.Is(err, services.ErrImageTooLarge):
		apierrors.Abort(c, apierrors.Validation("The image must not be larger than 10 MB."))
	case errors.Is(err, services.ErrImageInvalidType):
		apierrors.Abort(c, apierrors.Validation("The file must be an image."))
	case errors.Is(err, errInvalidDate):
		apierrors.Abort(c, apierrors.Validation("The date of the last play is not valid."))
	case errors.Is(err, services.ErrPuzzleForbidden):
		apierrors.Abort(c, apierrors.Forbidden("This puzzle is private."))
	case errors.Is(err, services.ErrPuzzleNotFound):
		apierrors.Abort(c, apierrors.NotFound("Puzzle not found."))
	case errors.Is(err, services.ErrPuzzleImageNotFound):
		apierrors.Abort(c, apierrors.NotFound("Image not found."))
	case errors.Is(err, errInvalidBody):
		apierrors.Abort(c, apierrors.Validation("Invalid request body").Wrap(err))
	default:
		apierrors.Abort(c, apierrors.Internal(err))
	}
}
