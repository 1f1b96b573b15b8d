package dto

import (
	"time"

	"github.com/puzzlekeeper/puzzle-api/internal/models"
)

// MovieResponseDTO represents a movie response in API responses
type MovieResponseDTO struct {
	ID               string    `json:"id"`
	MovieID          string    `json:"movieId"`
	User1ID          string    `json:"user1Id"`
	User1Answered    bool      `json:"user1Answered"`
	User1AnsweredYes bool      `json:"user1AnsweredYes"`
	User2ID          string    `json:"user2Id"`
	User2Answered    bool      `json:"user2Answered"`
	User2AnsweredYes bool      `json:"user2AnsweredYes"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func ToMovieResponseDTO(r models.MovieResponse) MovieResponseDTO {
	return MovieResponseDTO{
		ID:               r.ID,
		MovieID:          r.MovieID,
		User1ID:          r.User1ID,
		User1Answered:    r.User1Answered,
		User1AnsweredYes: r.User1AnsweredYes,
		User2ID:          r.User2ID,
		User2Answered:    r.User2Answered,
		User2AnsweredYes: r.User2AnsweredYes,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func ToMovieResponseList(responses []models.MovieResponse) []MovieResponseDTO {
	items := make([]MovieResponseDTO, len(responses))
	for i, r := range responses {
		items[i] = ToMovieResponseDTO(r)
	}
	return items
}
