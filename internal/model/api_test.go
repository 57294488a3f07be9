package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchMovieDecodesMixedScalars(t *testing.T) {
	raw := `{
		"id": 770672122,
		"title": "Toy Story 3",
		"year": 2010,
		"mpaa_rating": "G",
		"runtime": "",
		"alternate_ids": {"imdb": "0435761"},
		"abridged_cast": [{"name": "Tom Hanks", "id": "162655641", "characters": ["Woody"]}]
	}`

	var m SearchMovie
	require.NoError(t, json.Unmarshal([]byte(raw), &m))

	assert.Equal(t, FlexString("770672122"), m.ID)
	assert.Equal(t, FlexString("2010"), m.Year)
	assert.Equal(t, FlexString(""), m.Runtime)
	id, ok := m.IMDbID()
	assert.True(t, ok)
	assert.Equal(t, "0435761", id)
	require.Len(t, m.AbridgedCast, 1)
	assert.Equal(t, FlexString("162655641"), m.AbridgedCast[0].ID)
}

func TestSearchMovieWithoutIMDb(t *testing.T) {
	var m SearchMovie
	require.NoError(t, json.Unmarshal([]byte(`{"id": "1", "title": "x", "year": null}`), &m))

	_, ok := m.IMDbID()
	assert.False(t, ok)
	assert.Equal(t, FlexString(""), m.Year)
}

func TestFlexStringRejectsObjects(t *testing.T) {
	var f FlexString
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &f))
}

func TestKindOf(t *testing.T) {
	err := NewError(KindAmbiguousIdentity, nil, "ambiguous person %s", "Jane Doe")
	wrapped := &IngestError{Kind: KindOther, Message: "outer", Err: err}

	assert.Equal(t, KindAmbiguousIdentity, KindOf(err))
	assert.Equal(t, KindOther, KindOf(wrapped))
	assert.True(t, IsKind(err, KindAmbiguousIdentity))
	assert.False(t, IsKind(nil, KindOther))
	assert.Equal(t, "ambiguous-identity", KindAmbiguousIdentity.String())
}
