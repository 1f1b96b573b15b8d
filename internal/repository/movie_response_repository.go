package repository

import (
	"context"

	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"gorm.io/gorm"
)

// GormMovieResponseRepository is a GORM implementation of MovieResponseRepository
type GormMovieResponseRepository struct {
	db *gorm.DB
}

// NewMovieResponseRepository creates a new MovieResponseRepository
func NewMovieResponseRepository(db *gorm.DB) MovieResponseRepository {
	return &GormMovieResponseRepository{db: db}
}

// Create creates a new movie response
func (r *GormMovieResponseRepository) Create(ctx context.Context, response *models.MovieResponse) error {
	return translate(r.db.WithContext(ctx).Create(response).Error)
}

// FindByID finds a movie response by ID
func (r *GormMovieResponseRepository) FindByID(ctx context.Context, id string) (*models.MovieResponse, error) {
	var response models.MovieResponse
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&response).Error; err != nil {
		return nil, translate(err)
	}
	return &response, nil
}

// ListByUser lists the responses where the user holds either slot
func (r *GormMovieResponseRepository) ListByUser(ctx context.Context, userID string) ([]models.MovieResponse, error) {
	var responses []models.MovieResponse
	err := r.db.WithContext(ctx).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&responses).Error
	if err != nil {
		return nil, translate(err)
	}
	return responses, nil
}

// SetAnswer records the answer of the user in the given slot
func (r *GormMovieResponseRepository) SetAnswer(ctx context.Context, id string, slot models.Slot, answeredYes bool) error {
	_, answered, answeredYesCol := slot.Columns()
	result := r.db.WithContext(ctx).
		Model(&models.MovieResponse{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			answered:       true,
			answeredYesCol: answeredYes,
		})
	return translate(result.Error)
}

// ClearUser replaces userID in the slot with the removed-user marker and
// resets the slot's answer flags.
func (r *GormMovieResponseRepository) ClearUser(ctx context.Context, slot models.Slot, userID string) (int64, error) {
	userCol, answered, answeredYes := slot.Columns()
	result := r.db.WithContext(ctx).
		Model(&models.MovieResponse{}).
		Where(userCol+" = ?", userID).
		Updates(map[string]interface{}{
			userCol:     constants.RemovedUserID,
			answered:    false,
			answeredYes: false,
		})
	if result.Error != nil {
		return 0, translate(result.Error)
	}
	return result.RowsAffected, nil
}
