package group

import (
	"testing"

	"github.com/siherrmann/coref/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mention(id int, sentence int, entityType model.EntityType, mentionType model.MentionType) *model.Mention {
	return &model.Mention{
		ID:             model.MentionID(id),
		SentenceNumber: sentence,
		EntityType:     entityType,
		MentionType:    mentionType,
	}
}

func TestMentionGroupMerge(t *testing.T) {
	a := New(mention(0, 0, model.EntityTypePerson, model.MentionTypeName))
	b := New(mention(5, 3, model.EntityTypePerson, model.MentionTypeName))
	c := New(mention(2, 1, model.EntityTypePerson, model.MentionTypePronoun))

	b.Merge(c, "pronoun", 0.5)
	a.Merge(b, "name", 1)

	t.Run("Keeps members sorted", func(t *testing.T) {
		assert.Equal(t, []model.MentionID{0, 2, 5}, a.MentionIDs())
		assert.Equal(t, 3, a.Len())
		assert.Len(t, a.Mentions(), 3)
	})

	t.Run("Keeps its id", func(t *testing.T) {
		assert.Equal(t, model.MentionID(0), a.ID())
	})

	t.Run("Contains", func(t *testing.T) {
		assert.True(t, a.Contains(2))
		assert.True(t, a.Contains(5))
		assert.False(t, a.Contains(3))
	})

	t.Run("Sentence range", func(t *testing.T) {
		assert.Equal(t, 0, a.FirstSentence())
		assert.Equal(t, 3, a.LastSentence())
		assert.Equal(t, 1, c.FirstSentence())
		assert.Equal(t, 1, c.LastSentence())
	})

	t.Run("Records nested history", func(t *testing.T) {
		history := a.History()
		require.Len(t, history, 1)
		assert.Equal(t, model.MentionID(5), history[0].Absorbed)
		assert.Equal(t, "name", history[0].Merger)
		assert.Equal(t, 1.0, history[0].Score)
		require.Len(t, history[0].Children, 1)
		assert.Equal(t, model.MentionID(2), history[0].Children[0].Absorbed)
		assert.Equal(t, "pronoun", history[0].Children[0].Merger)
	})

	t.Run("Flattens links oldest first", func(t *testing.T) {
		assert.Equal(t, []Link{
			{Source: 5, Target: 2, Merger: "pronoun", Score: 0.5},
			{Source: 0, Target: 5, Merger: "name", Score: 1},
		}, a.Links())
	})
}

func TestMentionGroupEntityType(t *testing.T) {
	tests := []struct {
		name     string
		mentions []*model.Mention
		expected model.EntityType
	}{
		{
			name:     "Singleton",
			mentions: []*model.Mention{mention(0, 0, model.EntityTypeOrganization, model.MentionTypeName)},
			expected: model.EntityTypeOrganization,
		},
		{
			name: "Majority wins",
			mentions: []*model.Mention{
				mention(0, 0, model.EntityTypeOrganization, model.MentionTypeName),
				mention(1, 0, model.EntityTypeGPE, model.MentionTypeName),
				mention(2, 0, model.EntityTypeGPE, model.MentionTypeDescription),
			},
			expected: model.EntityTypeGPE,
		},
		{
			name: "Recognized outranks undetermined",
			mentions: []*model.Mention{
				mention(0, 0, model.EntityTypeUndetermined, model.MentionTypePronoun),
				mention(1, 0, model.EntityTypeUndetermined, model.MentionTypePronoun),
				mention(2, 0, model.EntityTypePerson, model.MentionTypeDescription),
			},
			expected: model.EntityTypePerson,
		},
		{
			name: "Tie goes to earliest name",
			mentions: []*model.Mention{
				mention(0, 0, model.EntityTypeOrganization, model.MentionTypeDescription),
				mention(1, 0, model.EntityTypeGPE, model.MentionTypeName),
			},
			expected: model.EntityTypeGPE,
		},
		{
			name: "Tie without name goes to earliest member",
			mentions: []*model.Mention{
				mention(0, 0, model.EntityTypeFacility, model.MentionTypeDescription),
				mention(1, 0, model.EntityTypeLocation, model.MentionTypeDescription),
			},
			expected: model.EntityTypeFacility,
		},
		{
			name: "Name of a losing type is ignored",
			mentions: []*model.Mention{
				mention(0, 0, model.EntityTypeOrganization, model.MentionTypeName),
				mention(1, 0, model.EntityTypeGPE, model.MentionTypeDescription),
				mention(2, 0, model.EntityTypeGPE, model.MentionTypeDescription),
			},
			expected: model.EntityTypeGPE,
		},
		{
			name: "Only undetermined",
			mentions: []*model.Mention{
				mention(0, 0, model.EntityTypeUndetermined, model.MentionTypePronoun),
				mention(1, 0, "", model.MentionTypePronoun),
			},
			expected: model.EntityTypeUndetermined,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.mentions[0])
			for _, m := range tt.mentions[1:] {
				g.Merge(New(m), "test", 0)
			}
			assert.Equal(t, tt.expected, g.EntityType())
		})
	}
}

func TestList(t *testing.T) {
	mentions := []*model.Mention{
		mention(0, 0, model.EntityTypePerson, model.MentionTypeName),
		mention(1, 0, model.EntityTypePerson, model.MentionTypeName),
		mention(2, 1, model.EntityTypePerson, model.MentionTypeName),
	}
	list := NewListFromMentions(mentions)
	require.Equal(t, 3, list.Len())

	list.At(0).Merge(list.At(1), "test", 0)
	list.RemoveAt(1)

	assert.Equal(t, 2, list.Len())
	assert.Equal(t, model.MentionID(0), list.At(0).ID())
	assert.Equal(t, model.MentionID(2), list.At(1).ID())
	assert.Same(t, list.At(0), list.GroupOf(1))
	assert.Nil(t, list.GroupOf(9))
	assert.Len(t, list.Groups(), 2)

	empty := NewList()
	assert.Equal(t, 0, empty.Len())
}
