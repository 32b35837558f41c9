package queries_test

import (
	"testing"
	"time"

	"relay/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPublicFeedQuery_Valid(t *testing.T) {
	cursor := time.Now().UTC()

	query, err := queries.NewGetPublicFeedQuery(cursor, 20)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, cursor, query.OlderThan())
	assert.Equal(t, 20, query.Limit())
}

func TestNewGetPublicFeedQuery_ZeroCursorAndDefaultLimit(t *testing.T) {
	query, err := queries.NewGetPublicFeedQuery(time.Time{}, 0)
	require.NoError(t, err)
	assert.True(t, query.OlderThan().IsZero())
	assert.Equal(t, 50, query.Limit())
}

func TestGetPublicFeedQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPublicFeedQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPublicFeedQueryIsNotConstructed)
}
