package pipeline

import (
	"testing"

	"github.com/siherrmann/coref/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPronounDetector(t *testing.T) {
	detect := PronounDetector()

	t.Run("Find pronouns case insensitive", func(t *testing.T) {
		mentions, err := detect("She told him that they would see Smith.")
		require.NoError(t, err)
		require.Len(t, mentions, 3)

		assert.Equal(t, "She", mentions[0].Text)
		assert.Equal(t, 0, mentions[0].Start)
		assert.Equal(t, model.MentionTypePronoun, mentions[0].MentionType)
		assert.Equal(t, model.EntityTypeUndetermined, mentions[0].EntityType)
		assert.Equal(t, "him", mentions[1].Text)
		assert.Equal(t, "they", mentions[2].Text)
	})

	t.Run("Words containing pronouns are skipped", func(t *testing.T) {
		mentions, err := detect("The theme hit the shelf.")
		require.NoError(t, err)
		assert.Empty(t, mentions)
	})
}

func TestDescriptionDetector(t *testing.T) {
	detect := DescriptionDetector(DefaultDescriptionNouns)

	t.Run("Find descriptions with modifiers", func(t *testing.T) {
		sentence := "The small company hired a man."
		mentions, err := detect(sentence)
		require.NoError(t, err)
		require.Len(t, mentions, 2)

		assert.Equal(t, "The small company", mentions[0].Text)
		assert.Equal(t, "company", mentions[0].HeadWord)
		assert.Equal(t, model.EntityTypeOrganization, mentions[0].EntityType)
		assert.Equal(t, model.MentionTypeDescription, mentions[0].MentionType)
		assert.Equal(t, sentence[mentions[0].Start:mentions[0].End], mentions[0].Text)

		assert.Equal(t, "a man", mentions[1].Text)
		assert.Equal(t, model.EntityTypePerson, mentions[1].EntityType)
	})

	t.Run("Unknown head nouns are skipped", func(t *testing.T) {
		mentions, err := detect("The weather was nice.")
		require.NoError(t, err)
		assert.Empty(t, mentions)
	})
}
