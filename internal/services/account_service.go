package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/puzzlekeeper/puzzle-api/internal/auth"
	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/logging"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/repository"
)

var (
	ErrUsernameRequired   = errors.New("username is required")
	ErrUsernameTooLong    = errors.New("username too long")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")

	// ErrRelationCleanupFailed means the account was left untouched because
	// its movie responses could not be released.
	ErrRelationCleanupFailed = errors.New("failed to release movie responses")
	// ErrAccountNotDeleted means the movie responses were released but the
	// user record could not be removed.
	ErrAccountNotDeleted = errors.New("failed to delete account")
)

// AccountService handles registration, login and account deletion.
type AccountService struct {
	users     repository.UserRepository
	responses repository.MovieResponseRepository
	tokens    *auth.TokenService
	logger    logging.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(users repository.UserRepository, responses repository.MovieResponseRepository, tokens *auth.TokenService, logger logging.Logger) *AccountService {
	return &AccountService{
		users:     users,
		responses: responses,
		tokens:    tokens,
		logger:    logger.With("service", "account"),
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Username string
	Password string
}

// Validate checks the username and password rules.
func (in RegisterInput) Validate() error {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return ErrUsernameRequired
	}
	if utf8.RuneCountInString(username) > constants.MaxUsernameLength {
		return ErrUsernameTooLong
	}

	n := utf8.RuneCountInString(in.Password)
	if n < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}
	if n > constants.MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Register creates a new user. Exactly one user is stored on success and
// none otherwise.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Username)

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info(ctx, "account created", "user_id", user.ID)
	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult is a successful login.
type LoginResult struct {
	User  *models.User
	Token string
}

// Authenticate reports the stored user matching the credentials. The
// username is trimmed the same way Register stores it.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login verifies the credentials and issues a token for the user.
func (s *AccountService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := s.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return &LoginResult{User: user, Token: token}, nil
}

// GetUser retrieves a user by ID.
func (s *AccountService) GetUser(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// DeletionReport describes what a completed or partial deletion changed.
type DeletionReport struct {
	ReleasedAsUser1 int64
	ReleasedAsUser2 int64
	UserDeleted     bool
}

// Delete removes the caller's account. Movie responses are released
// first, slot 1 then slot 2, and the user record is removed only after
// both succeeded. The steps are not atomic: when the final delete fails
// the released slots stay released and the user remains.
func (s *AccountService) Delete(ctx context.Context, identity auth.Identity) (*DeletionReport, error) {
	log := s.logger.With("user_id", identity.ID)
	report := &DeletionReport{}

	released, err := s.responses.ClearUser(ctx, models.SlotUser1, identity.ID)
	if err != nil {
		log.Error(ctx, "releasing user1 slots failed", "error", err)
		return report, fmt.Errorf("%w: %v", ErrRelationCleanupFailed, err)
	}
	report.ReleasedAsUser1 = released

	released, err = s.responses.ClearUser(ctx, models.SlotUser2, identity.ID)
	if err != nil {
		log.Error(ctx, "releasing user2 slots failed", "error", err, "released_user1", report.ReleasedAsUser1)
		return report, fmt.Errorf("%w: %v", ErrRelationCleanupFailed, err)
	}
	report.ReleasedAsUser2 = released

	deleted, err := s.users.DeleteByID(ctx, identity.ID)
	if err != nil {
		log.Error(ctx, "deleting user failed after releasing movie responses", "error", err)
		return report, fmt.Errorf("%w: %v", ErrAccountNotDeleted, err)
	}
	if deleted != 1 {
		log.Warn(ctx, "unexpected number of deleted users", "deleted", deleted)
		return report, ErrAccountNotDeleted
	}
	report.UserDeleted = true

	log.Info(ctx, "account deleted",
		"released_user1", report.ReleasedAsUser1,
		"released_user2", report.ReleasedAsUser2,
	)
	return report, nil
}
