package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/repository"
)

type testEnv struct {
	repos     *repository.Repositories
	people    *PersonRegistry
	movies    *MovieRegistry
	extractor *Extractor
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := repository.InitDB(filepath.Join(t.TempDir(), "movies.db"), "silent")
	require.NoError(t, err)
	repos := repository.NewRepositories(db)
	t.Cleanup(func() { _ = repos.Close() })
	require.NoError(t, repos.Schema.EnsureSchema(context.Background()))

	people := NewPersonRegistry(repos.Person, 128)
	return &testEnv{
		repos:     repos,
		people:    people,
		movies:    NewMovieRegistry(repos.Movie),
		extractor: NewExtractor(people, repos.Link),
	}
}

// createMovie 插入一部电影供关联测试使用
func (e *testEnv) createMovie(t *testing.T, imdb string, title string) *model.Movie {
	t.Helper()
	movie, created, err := e.movies.GetOrCreate(context.Background(), model.SearchMovie{
		Title:        title,
		AlternateIDs: map[string]string{"imdb": imdb},
	})
	require.NoError(t, err)
	require.True(t, created)
	return movie
}

func (e *testEnv) credits(t *testing.T, imdbID int64) []repository.RoleCredit {
	t.Helper()
	credits, err := e.repos.Link.CreditsForMovie(context.Background(), imdbID)
	require.NoError(t, err)
	return credits
}

func idPtr(v int64) *int64 { return &v }
