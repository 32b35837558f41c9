package topic_test

import (
	"testing"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/topic"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopic(t *testing.T) {
	t.Run("counters start at zero", func(t *testing.T) {
		tp, err := topic.NewTopic(kernel.NewUUID(), "Save the river", "cleanup along the banks")

		require.NoError(t, err)
		assert.Equal(t, 0, tp.CountPackages())
		assert.Equal(t, 0, tp.CountTemplates())
	})

	t.Run("name required", func(t *testing.T) {
		_, err := topic.NewTopic(kernel.NewUUID(), "", "")
		require.Error(t, err)
	})
}

func TestTopic_Increment(t *testing.T) {
	tp, err := topic.NewTopic(kernel.NewUUID(), "Save the river", "")
	require.NoError(t, err)

	tp.IncrementPackages()
	tp.IncrementPackages()
	tp.IncrementTemplates()

	assert.Equal(t, 2, tp.CountPackages())
	assert.Equal(t, 1, tp.CountTemplates())
}

func TestRestoreTopic(t *testing.T) {
	tp, err := topic.RestoreTopic(kernel.NewUUID(), "Save the river", "desc", 7, 2)

	require.NoError(t, err)
	assert.Equal(t, 7, tp.CountPackages())
	assert.Equal(t, 2, tp.CountTemplates())
}

func TestNewTemplate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		tpl, err := topic.NewTemplate(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"cleanup", "Bottle drive", "collect deposit bottles")

		require.NoError(t, err)
		assert.Equal(t, 0, tpl.CountPackages())
		assert.Equal(t, "Bottle drive", tpl.Headline())
	})

	t.Run("headline required", func(t *testing.T) {
		_, err := topic.NewTemplate(
			kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			"cleanup", "", "")
		require.Error(t, err)
	})

	t.Run("zero ids rejected", func(t *testing.T) {
		_, err := topic.NewTemplate(
			kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(),
			"cleanup", "Bottle drive", "")
		require.Error(t, err)
	})
}

func TestTemplate_IncrementPackages(t *testing.T) {
	tpl, err := topic.NewTemplate(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		"cleanup", "Bottle drive", "")
	require.NoError(t, err)

	tpl.IncrementPackages()
	assert.Equal(t, 1, tpl.CountPackages())
}
