package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moovie-ingest/internal/model"
)

func toyStory() model.SearchMovie {
	return model.SearchMovie{
		ID:           "770672122",
		Title:        "Toy Story 3",
		Year:         "2010",
		MPAARating:   "G",
		Runtime:      "103",
		ReleaseDates: map[string]string{"theater": "2010-06-18"},
		AlternateIDs: map[string]string{"imdb": "0435761"},
	}
}

func TestMovieGetOrCreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, created, err := env.movies.GetOrCreate(ctx, toyStory())
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, first)
	assert.Equal(t, int64(435761), first.IMDbID)
	assert.Equal(t, int64(103), *first.Runtime)
	assert.Equal(t, "2010-06-18", *first.Released)

	second, created, err := env.movies.GetOrCreate(ctx, toyStory())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, second)

	// 换一个注册器（冷缓存）走数据库唯一约束
	fresh := NewMovieRegistry(env.repos.Movie)
	third, created, err := fresh.GetOrCreate(ctx, toyStory())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, third)
}

func TestMovieGetOrCreateEmptyFieldsAreNull(t *testing.T) {
	env := newTestEnv(t)

	m := toyStory()
	m.Runtime = ""
	m.ID = ""
	movie, created, err := env.movies.GetOrCreate(context.Background(), m)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Nil(t, movie.Runtime)
	assert.Nil(t, movie.RTID)
}

func TestMovieGetOrCreateBadData(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	bad := toyStory()
	bad.Runtime = "103 min"
	movie, created, err := env.movies.GetOrCreate(ctx, bad)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, movie)

	// 已有记录时仍能读到
	_, _, err = env.movies.GetOrCreate(ctx, toyStory())
	require.NoError(t, err)
	movie, created, err = NewMovieRegistry(env.repos.Movie).GetOrCreate(ctx, bad)
	require.NoError(t, err)
	assert.False(t, created)
	require.NotNil(t, movie)
	assert.Equal(t, "Toy Story 3", movie.Title)
}

func TestMovieGetOrCreateNonNumericIMDb(t *testing.T) {
	env := newTestEnv(t)

	bad := toyStory()
	bad.AlternateIDs = map[string]string{"imdb": "tt0435761"}
	movie, created, err := env.movies.GetOrCreate(context.Background(), bad)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, movie)
}

func TestMovieGetOrCreateRTIDConflictPropagates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, created, err := env.movies.GetOrCreate(ctx, toyStory())
	require.NoError(t, err)
	require.True(t, created)

	// 不同的 IMDb 编号，相同的 rtid
	other := toyStory()
	other.Title = "Toy Story 3 (re-release)"
	other.AlternateIDs = map[string]string{"imdb": "0435762"}
	movie, created, err := NewMovieRegistry(env.repos.Movie).GetOrCreate(ctx, other)
	require.Error(t, err)
	assert.False(t, created)
	assert.Nil(t, movie)
	assert.Equal(t, model.KindOther, model.KindOf(err))

	n, err := env.repos.Movie.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
