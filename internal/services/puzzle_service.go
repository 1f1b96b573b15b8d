package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/repository"
	"github.com/puzzlekeeper/puzzle-api/internal/storage"
	"github.com/puzzlekeeper/puzzle-api/internal/utils"
)

var (
	ErrPuzzleNotFound      = errors.New("puzzle not found")
	ErrPuzzleForbidden     = errors.New("puzzle belongs to another user")
	ErrTitleRequired       = errors.New("title is required")
	ErrTitleTooLong        = errors.New("title too long")
	ErrTitleInvalid        = errors.New("title contains invalid characters")
	ErrNegativePieces      = errors.New("number of pieces must not be negative")
	ErrImageTooLarge       = errors.New("image too large")
	ErrImageInvalidType    = errors.New("image has an unsupported content type")
	ErrPuzzleImageNotFound = errors.New("puzzle has no image")
)

var titlePattern = regexp.MustCompile(`^[a-zA-Z0-9åäöÅÄÖ ]+$`)

// PuzzleService provides business logic for puzzle records.
type PuzzleService struct {
	puzzles repository.PuzzleRepository
	images  storage.ImageStore
	logger  logging.Logger
}

// NewPuzzleService creates a new PuzzleService.
func NewPuzzleService(puzzles repository.PuzzleRepository, images storage.ImageStore, logger logging.Logger) *PuzzleService {
	return &PuzzleService{
		puzzles: puzzles,
		images:  images,
		logger:  logger.With("service", "puzzle"),
	}
}

// ImageUpload is an uploaded image file.
type ImageUpload struct {
	ContentType string
	Data        []byte
}

// PuzzleInput carries the fields of a create or update request. Nil
// fields are left unchanged on update.
type PuzzleInput struct {
	Title               *string
	PiecesNumber        *int
	Size                *string
	Manufacturer        *string
	LastPlayed          *time.Time
	Location            *string
	Complete            *bool
	MissingPiecesNumber *int
	PrivateNote         *string
	SharedNote          *string
	IsPrivate           *bool
	IsLentOut           *bool
	LentOutTo           *string
	Image               *ImageUpload
}

func validateTitle(title string) error {
	if title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.MaxPuzzleTitleLength {
		return ErrTitleTooLong
	}
	if !titlePattern.MatchString(title) {
		return ErrTitleInvalid
	}
	return nil
}

func validateImage(image *ImageUpload) error {
	if image == nil {
		return nil
	}
	if len(image.Data) > constants.MaxImageSize {
		return ErrImageTooLarge
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return ErrImageInvalidType
	}
	return nil
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// apply copies the set fields of in onto p.
func (in PuzzleInput) apply(p *models.Puzzle) error {
	if in.Title != nil {
		title := trimmed(in.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		p.Title = title
	}
	if in.PiecesNumber != nil {
		if *in.PiecesNumber < 0 {
			return ErrNegativePieces
		}
		p.PiecesNumber = in.PiecesNumber
	}
	if in.MissingPiecesNumber != nil {
		if *in.MissingPiecesNumber < 0 {
			return ErrNegativePieces
		}
		p.MissingPiecesNumber = in.MissingPiecesNumber
	}
	if in.Size != nil {
		p.Size = trimmed(in.Size)
	}
	if in.Manufacturer != nil {
		p.Manufacturer = trimmed(in.Manufacturer)
	}
	if in.LastPlayed != nil {
		p.LastPlayed = in.LastPlayed
	}
	if in.Location != nil {
		p.Location = trimmed(in.Location)
	}
	if in.Complete != nil {
		p.Complete = in.Complete
	}
	if in.PrivateNote != nil {
		p.PrivateNote = trimmed(in.PrivateNote)
	}
	if in.SharedNote != nil {
		p.SharedNote = trimmed(in.SharedNote)
	}
	if in.IsPrivate != nil {
		p.IsPrivate = *in.IsPrivate
	}
	if in.IsLentOut != nil {
		p.IsLentOut = *in.IsLentOut
	}
	if in.LentOutTo != nil {
		p.LentOutTo = trimmed(in.LentOutTo)
	}
	return validateImage(in.Image)
}

// Create stores a new puzzle owned by ownerID. Puzzles are private and not
// lent out unless the input says otherwise.
func (s *PuzzleService) Create(ctx context.Context, ownerID string, input PuzzleInput) (*models.Puzzle, error) {
	puzzle := &models.Puzzle{
		OwnerID:   ownerID,
		IsPrivate: true,
	}
	if input.Title == nil {
		return nil, ErrTitleRequired
	}
	if err := input.apply(puzzle); err != nil {
		return nil, err
	}

	if input.Image != nil {
		key := storage.NewImageKey(ownerID)
		if err := s.images.Put(ctx, key, input.Image.ContentType, input.Image.Data); err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		puzzle.ImageKey = key
		puzzle.ImageContentType = input.Image.ContentType
	}

	if err := s.puzzles.Create(ctx, puzzle); err != nil {
		if puzzle.HasImage() {
			s.removeImage(ctx, puzzle.ImageKey)
		}
		return nil, fmt.Errorf("failed to create puzzle: %w", err)
	}

	s.logger.Info(ctx, "puzzle created", "puzzle_id", puzzle.ID, "owner_id", ownerID)
	return puzzle, nil
}

// Get loads a puzzle by ID.
func (s *PuzzleService) Get(ctx context.Context, id string) (*models.Puzzle, error) {
	puzzle, err := s.puzzles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPuzzleNotFound
		}
		return nil, fmt.Errorf("failed to find puzzle: %w", err)
	}
	return puzzle, nil
}

// List returns one page of the owner's puzzles and the total count.
func (s *PuzzleService) List(ctx context.Context, ownerID string, params utils.PaginationParams) ([]models.Puzzle, int64, error) {
	puzzles, total, err := s.puzzles.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list puzzles: %w", err)
	}
	return puzzles, total, nil
}

// View returns the puzzle as seen by viewerID. Other users only see public
// puzzles, without the private note.
func (s *PuzzleService) View(puzzle *models.Puzzle, viewerID string) (*models.Puzzle, error) {
	if puzzle.OwnerID == viewerID {
		return puzzle, nil
	}
	if puzzle.IsPrivate {
		return nil, ErrPuzzleForbidden
	}
	shared := *puzzle
	shared.PrivateNote = ""
	return &shared, nil
}

// Update applies the input to a puzzle. A new image replaces the old one,
// which is removed after the record is saved.
func (s *PuzzleService) Update(ctx context.Context, puzzle *models.Puzzle, input PuzzleInput) (*models.Puzzle, error) {
	updated := *puzzle
	if err := input.apply(&updated); err != nil {
		return nil, err
	}

	oldKey := ""
	if input.Image != nil {
		key := storage.NewImageKey(puzzle.OwnerID)
		if err := s.images.Put(ctx, key, input.Image.ContentType, input.Image.Data); err != nil {
			return nil, fmt.Errorf("failed to store image: %w", err)
		}
		oldKey = puzzle.ImageKey
		updated.ImageKey = key
		updated.ImageContentType = input.Image.ContentType
	}

	if err := s.puzzles.Update(ctx, &updated); err != nil {
		if input.Image != nil {
			s.removeImage(ctx, updated.ImageKey)
		}
		return nil, fmt.Errorf("failed to update puzzle: %w", err)
	}

	if oldKey != "" {
		s.removeImage(ctx, oldKey)
	}

	s.logger.Info(ctx, "puzzle updated", "puzzle_id", updated.ID)
	return &updated, nil
}

// Delete removes a puzzle and its image.
func (s *PuzzleService) Delete(ctx context.Context, puzzle *models.Puzzle) error {
	if err := s.puzzles.Delete(ctx, puzzle.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPuzzleNotFound
		}
		return fmt.Errorf("failed to delete puzzle: %w", err)
	}
	if puzzle.HasImage() {
		s.removeImage(ctx, puzzle.ImageKey)
	}

	s.logger.Info(ctx, "puzzle deleted", "puzzle_id", puzzle.ID)
	return nil
}

// Image returns the stored image of a puzzle.
func (s *PuzzleService) Image(ctx context.Context, puzzle *models.Puzzle) ([]byte, string, error) {
	if !puzzle.HasImage() {
		return nil, "", ErrPuzzleImageNotFound
	}
	data, contentType, err := s.images.Get(ctx, puzzle.ImageKey)
	if err != nil {
		if errors.Is(err, storage.ErrImageNotFound) {
			return nil, "", ErrPuzzleImageNotFound
		}
		return nil, "", fmt.Errorf("failed to load image: %w", err)
	}
	if contentType == "" {
		contentType = puzzle.ImageContentType
	}
	return data, contentType, nil
}

// removeImage deletes an image that is no longer referenced. Failures
// leave an orphaned object and are only logged.
func (s *PuzzleService) removeImage(ctx context.Context, key string) {
	if err := s.images.Delete(ctx, key); err != nil {
		s.logger.Warn(ctx, "failed to remove image", "key", key, "error", err)
	}
}
