package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/repository"
)

var (
	ErrMovieIDRequired        = errors.New("movie id is required")
	ErrPartnerNotFound        = errors.New("partner not found")
	ErrPartnerIsSelf          = errors.New("partner must be another user")
	ErrMovieResponseNotFound  = errors.New("movie response not found")
	ErrMovieResponseForbidden = errors.New("user is not part of the movie response")
)

// MovieResponseService manages pairwise movie answers.
type MovieResponseService struct {
	responses repository.MovieResponseRepository
	users     repository.UserRepository
	logger    logging.Logger
}

// NewMovieResponseService creates a new MovieResponseService.
func NewMovieResponseService(responses repository.MovieResponseRepository, users repository.UserRepository, logger logging.Logger) *MovieResponseService {
	return &MovieResponseService{
		responses: responses,
		users:     users,
		logger:    logger.With("service", "movie_response"),
	}
}

// Create pairs the caller, as user1, with partnerID for a movie.
func (s *MovieResponseService) Create(ctx context.Context, userID, movieID, partnerID string) (*models.MovieResponse, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, ErrMovieIDRequired
	}
	if partnerID == userID {
		return nil, ErrPartnerIsSelf
	}

	if _, err := s.users.FindByID(ctx, partnerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPartnerNotFound
		}
		return nil, fmt.Errorf("failed to find partner: %w", err)
	}

	response := &models.MovieResponse{
		MovieID: movieID,
		User1ID: userID,
		User2ID: partnerID,
	}
	if err := s.responses.Create(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to create movie response: %w", err)
	}

	s.logger.Info(ctx, "movie response created", "response_id", response.ID, "user_id", userID)
	return response, nil
}

// List returns the responses the user takes part in.
func (s *MovieResponseService) List(ctx context.Context, userID string) ([]models.MovieResponse, error) {
	responses, err := s.responses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list movie responses: %w", err)
	}
	return responses, nil
}

// Answer records the caller's answer in their own slot.
func (s *MovieResponseService) Answer(ctx context.Context, userID, id string, answeredYes bool) (*models.MovieResponse, error) {
	response, err := s.responses.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMovieResponseNotFound
		}
		return nil, fmt.Errorf("failed to find movie response: %w", err)
	}

	slot := response.SlotOf(userID)
	if slot == 0 {
		return nil, ErrMovieResponseForbidden
	}

	if err := s.responses.SetAnswer(ctx, id, slot, answeredYes); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	if slot == models.SlotUser1 {
		response.User1Answered = true
		response.User1AnsweredYes = answeredYes
	} else {
		response.User2Answered = true
		response.User2AnsweredYes = answeredYes
	}
	return response, nil
}
