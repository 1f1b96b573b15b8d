package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/puzzlekeeper/puzzle-api/internal/constants"
	"github.com/puzzlekeeper/puzzle-api/internal/models"
	"github.com/puzzlekeeper/puzzle-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieResponseRepository_ClearUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMovieResponseRepository(db)
	ctx := context.Background()

	asFirst := testutil.CreateMovieResponse(t, db, "movie-1", "ann", "bob")
	asSecond := testutil.CreateMovieResponse(t, db, "movie-2", "carl", "ann")
	unrelated := testutil.CreateMovieResponse(t, db, "movie-3", "bob", "carl")

	cleared, err := repo.ClearUser(ctx, models.SlotUser1, "ann")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	cleared, err = repo.ClearUser(ctx, models.SlotUser2, "ann")
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	first := testutil.ReloadMovieResponse(t, db, asFirst.ID)
	assert.Equal(t, constants.RemovedUserID, first.User1ID)
	assert.False(t, first.User1Answered)
	assert.False(t, first.User1AnsweredYes)
	assert.Equal(t, "bob", first.User2ID)
	assert.True(t, first.User2Answered)
	assert.True(t, first.User2AnsweredYes)

	second := testutil.ReloadMovieResponse(t, db, asSecond.ID)
	assert.Equal(t, constants.RemovedUserID, second.User2ID)
	assert.False(t, second.User2Answered)
	assert.False(t, second.User2AnsweredYes)
	assert.Equal(t, "carl", second.User1ID)
	assert.True(t, second.User1AnsweredYes)

	untouched := testutil.ReloadMovieResponse(t, db, unrelated.ID)
	assert.Equal(t, "bob", untouched.User1ID)
	assert.Equal(t, "carl", untouched.User2ID)
	assert.True(t, untouched.User1AnsweredYes)
	assert.True(t, untouched.User2AnsweredYes)
}

func TestMovieResponseRepository_ListAndAnswer(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewMovieResponseRepository(db)
	ctx := context.Background()

	response := &models.MovieResponse{MovieID: "movie-1", User1ID: "ann", User2ID: "bob"}
	require.NoError(t, repo.Create(ctx, response))
	testutil.CreateMovieResponse(t, db, "movie-2", "carl", "dave")

	list, err := repo.ListByUser(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, response.ID, list[0].ID)

	require.NoError(t, repo.SetAnswer(ctx, response.ID, models.SlotUser2, true))

	found, err := repo.FindByID(ctx, response.ID)
	require.NoError(t, err)
	assert.True(t, found.User2Answered)
	assert.True(t, found.User2AnsweredYes)
	assert.False(t, found.User1Answered)

	_, err = repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMovieResponseRepository_ClearUser_StoreFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewMovieResponseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `movie_responses` SET")).
		WillReturnError(errors.New("connection reset"))

	_, err := repo.ClearUser(context.Background(), models.SlotUser1, "ann")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
