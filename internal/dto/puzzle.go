package dto

import (
	"time"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/utils"
)

// PuzzleDTO represents a puzzle in API responses
type PuzzleDTO struct {
	ID                  string     `json:"id"`
	Title               string     `json:"title"`
	PiecesNumber        *int       `json:"piecesNumber,omitempty"`
	Size                string     `json:"size,omitempty"`
	Manufacturer        string     `json:"manufacturer,omitempty"`
	LastPlayed          *time.Time `json:"lastPlayed,omitempty"`
	Location            string     `json:"location,omitempty"`
	Complete            *bool      `json:"complete,omitempty"`
	MissingPiecesNumber *int       `json:"missingPiecesNumber,omitempty"`
	PrivateNote         string     `json:"privateNote,omitempty"`
	SharedNote          string     `json:"sharedNote,omitempty"`
	IsPrivate           bool       `json:"isPrivate"`
	IsLentOut           bool       `json:"isLentOut"`
	LentOutTo           string     `json:"lentOutTo,omitempty"`
	Image               string     `json:"image,omitempty"`
	Owner               string     `json:"owner"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// PuzzleListResponse represents a paginated list of puzzles
type PuzzleListResponse struct {
	Puzzles    []PuzzleDTO `json:"puzzles"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalCount int64       `json:"totalCount"`
	TotalPages int         `json:"totalPages"`
}

// ToPuzzleDTO converts a Puzzle model to PuzzleDTO. Image holds the path
// the image is served from.
func ToPuzzleDTO(puzzle models.Puzzle) PuzzleDTO {
	dto := PuzzleDTO{
		ID:                  puzzle.ID,
		Title:               puzzle.Title,
		PiecesNumber:        puzzle.PiecesNumber,
		Size:                puzzle.Size,
		Manufacturer:        puzzle.Manufacturer,
		LastPlayed:          puzzle.LastPlayed,
		Location:            puzzle.Location,
		Complete:            puzzle.Complete,
		MissingPiecesNumber: puzzle.MissingPiecesNumber,
		PrivateNote:         puzzle.PrivateNote,
		SharedNote:          puzzle.SharedNote,
		IsPrivate:           puzzle.IsPrivate,
		IsLentOut:           puzzle.IsLentOut,
		LentOutTo:           puzzle.LentOutTo,
		Owner:               puzzle.OwnerID,
		CreatedAt:           puzzle.CreatedAt,
		UpdatedAt:           puzzle.UpdatedAt,
	}
	if puzzle.HasImage() {
		dto.Image = "/puzzles/" + puzzle.ID + "/image"
	}
	return dto
}

// ToPuzzleListResponse converts one page of puzzles.
func ToPuzzleListResponse(puzzles []models.Puzzle, params utils.PaginationParams, total int64) PuzzleListResponse {
	items := make([]PuzzleDTO, len(puzzles))
	for i, p := range puzzles {
		items[i] = ToPuzzleDTO(p)
	}

	return PuzzleListResponse{
		Puzzles:    items,
		Page:       params.Page,
		PageSize:   params.Limit,
		TotalCount: total,
		TotalPages: params.TotalPages(total),
	}
}
