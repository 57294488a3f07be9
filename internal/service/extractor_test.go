package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/moovie-ingest/internal/model"
	"github.com/user/moovie-ingest/internal/repository"
)

func TestExtractGenres(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movie := env.createMovie(t, "0000001", "Genre Test")

	rec := &model.OMDbRecord{Genre: "Comedy, Drama, N/A, , Comedy"}
	require.NoError(t, env.extractor.ExtractGenres(ctx, movie.IMDbID, rec))

	genres, err := env.repos.Link.GenresForMovie(ctx, movie.IMDbID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Comedy", "Drama"}, genres)

	// 重复提取不报错
	require.NoError(t, env.extractor.ExtractGenres(ctx, movie.IMDbID, rec))
}

func TestExtractGenresInvalidLabel(t *testing.T) {
	env := newTestEnv(t)
	movie := env.createMovie(t, "0000001", "Genre Test")

	err := env.extractor.ExtractGenres(context.Background(), movie.IMDbID, &model.OMDbRecord{Genre: "Drama, Mumblecore"})
	require.Error(t, err)
	assert.Equal(t, model.KindInvalidDomainValue, model.KindOf(err))
	assert.Contains(t, err.Error(), "Mumblecore")
}

func TestExtractDirectors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movie := env.createMovie(t, "0000001", "Director Test")

	rec := &model.OMDbRecord{Director: "Joel Coen, Ethan Coen, Joel Coen"}
	require.NoError(t, env.extractor.ExtractDirectors(ctx, movie.IMDbID, rec))
	require.NoError(t, env.extractor.ExtractDirectors(ctx, movie.IMDbID, rec))

	credits := env.credits(t, movie.IMDbID)
	require.Len(t, credits, 2)
	assert.Equal(t, "Ethan Coen", credits[0].Name)
	assert.Equal(t, "Joel Coen", credits[1].Name)
	for _, c := range credits {
		assert.Equal(t, model.RoleDirector, c.Role)
	}
}

func TestExtractWritersMergesQualifiers(t *testing.T) {
	env := newTestEnv(t)
	movie := env.createMovie(t, "0000001", "Writer Test")

	rec := &model.OMDbRecord{Writer: "John Smith (story), Jane Roe, John Smith (screenplay)"}
	require.NoError(t, env.extractor.ExtractWriters(context.Background(), movie.IMDbID, rec))

	credits := env.credits(t, movie.IMDbID)
	require.Len(t, credits, 2)
	assert.Equal(t, "Jane Roe", credits[0].Name)
	assert.Equal(t, "", credits[0].Descr)
	assert.Equal(t, "John Smith", credits[1].Name)
	assert.Equal(t, "story;screenplay", credits[1].Descr)
	assert.Equal(t, model.RoleWriter, credits[1].Role)
}

func TestExtractActorsDedup(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	movie := env.createMovie(t, "0000001", "Actor Test")

	search := model.SearchMovie{
		AbridgedCast: []model.CastMember{
			{Name: "Tom Hanks", ID: "162655641", Characters: []string{"Woody", "Narrator"}},
		},
	}
	rec := &model.OMDbRecord{Actors: "Tom Hanks, Rita Wilson"}
	require.NoError(t, env.extractor.ExtractActors(ctx, movie.IMDbID, search, rec))

	credits := env.credits(t, movie.IMDbID)
	require.Len(t, credits, 2)
	assert.Equal(t, repository.RoleCredit{Person: credits[0].Person, Name: "Rita Wilson", Role: model.RoleActor, Descr: ""}, credits[0])
	assert.Equal(t, "Tom Hanks", credits[1].Name)
	assert.Equal(t, "Woody; Narrator", credits[1].Descr)

	hanks, err := env.repos.Person.FindByName(ctx, "Tom Hanks")
	require.NoError(t, err)
	require.NotNil(t, hanks.RTID)
	assert.Equal(t, int64(162655641), *hanks.RTID)

	rita, err := env.repos.Person.FindByName(ctx, "Rita Wilson")
	require.NoError(t, err)
	assert.Nil(t, rita.RTID)
}

func TestExtractAllWithoutDetails(t *testing.T) {
	env := newTestEnv(t)
	movie := env.createMovie(t, "0000001", "No Details")

	search := model.SearchMovie{AbridgedCast: []model.CastMember{{Name: "Solo Actor"}}}
	require.NoError(t, env.extractor.ExtractAll(context.Background(), movie.IMDbID, search, nil))

	credits := env.credits(t, movie.IMDbID)
	require.Len(t, credits, 1)
	assert.Equal(t, "Solo Actor", credits[0].Name)
}
