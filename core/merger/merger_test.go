package merger

import (
	"strings"
	"testing"

	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/constraint"
	"github.com/siherrmann/coref/core/extractor"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tagExtractor emits the comma separated "tags" attribute of a mention
func tagExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor("tag", func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		e := feature.NewEmitter("tag")
		for _, tag := range strings.Split(m.Attributes["tags"], ",") {
			e.AddString("value", tag)
		}
		return e.Pairs()
	})
}

func tagged(id int, entityType model.EntityType, tags string) *model.Mention {
	return &model.Mention{
		ID:          model.MentionID(id),
		Text:        "mention",
		EntityType:  entityType,
		MentionType: model.MentionTypeName,
		Attributes:  map[string]string{"tags": tags},
	}
}

// setup puts every slice of mentions into its own sentence
func setup(t *testing.T, sentences ...[]*model.Mention) (*cache.LinkInfoCache, *group.List) {
	t.Helper()

	doc := &model.Document{}
	var mentions []*model.Mention
	for _, sentence := range sentences {
		doc.Sentences = append(doc.Sentences, &model.Sentence{Mentions: sentence})
		mentions = append(mentions, sentence...)
	}
	require.NoError(t, doc.Prepare())

	c := cache.NewLinkInfoCache(
		[]feature.MentionExtractor{tagExtractor(), extractor.NewSyntaxExtractor(), extractor.NewCopulaExtractor(), extractor.NewAcronymExtractor(), extractor.NewStringExtractor(), extractor.NewSpeakerExtractor(), extractor.NewTitleExtractor()},
		nil,
		nil,
		nil,
	)
	c.SetDocument(doc)
	require.NoError(t, c.PopulateMentionFeatureTable())

	return c, group.NewListFromMentions(mentions)
}

func memberIDs(list *group.List) [][]model.MentionID {
	var out [][]model.MentionID
	for _, g := range list.Groups() {
		out = append(out, g.MentionIDs())
	}
	return out
}

func TestBaseSweep(t *testing.T) {
	t.Run("Absorbs transitively in one sweep", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "a"),
			tagged(1, model.EntityTypePerson, "a,b"),
			tagged(2, model.EntityTypePerson, "b"),
		})

		NewExactMatch("tag", "value").Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 1, 2}}, memberIDs(list))
	})

	t.Run("Does not repeat the sweep", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "a"),
			tagged(1, model.EntityTypePerson, "b"),
			tagged(2, model.EntityTypePerson, "a,b"),
		})

		merger := NewExactMatch("tag", "value")
		merger.Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 2}, {1}}, memberIDs(list), "Expected the skipped pair to stay apart")

		merger.Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 1, 2}}, memberIDs(list), "Expected a second run to catch it")
	})

	t.Run("Is idempotent on its own output", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "a"),
			tagged(1, model.EntityTypePerson, "c"),
			tagged(2, model.EntityTypePerson, "a"),
			tagged(3, model.EntityTypePerson, "c"),
			tagged(4, model.EntityTypePerson, "d"),
		})

		merger := NewExactMatch("tag", "value")
		merger.Merge(list, c)
		first := memberIDs(list)
		merger.Merge(list, c)
		assert.Equal(t, first, memberIDs(list))
		assert.Equal(t, [][]model.MentionID{{0, 2}, {1, 3}, {4}}, first)
	})

	t.Run("Records merger and score", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "a"),
			tagged(1, model.EntityTypePerson, "a"),
		})

		NewExactMatch("tag", "value").Merge(list, c)
		require.Equal(t, 1, list.Len())
		history := list.At(0).History()
		require.Len(t, history, 1)
		assert.Equal(t, "exact-match:tag:value", history[0].Merger)
		assert.Equal(t, 1.0, history[0].Score)
	})
}

func TestConstraintPrecedence(t *testing.T) {
	c, list := setup(t, []*model.Mention{
		tagged(0, model.EntityTypePerson, "a"),
		tagged(1, model.EntityTypeOrganization, "a"),
		tagged(2, model.EntityTypePerson, "a"),
	})

	always := New("always", func(g1, g2 *group.MentionGroup, c *cache.LinkInfoCache) (bool, float64) {
		return true, 1
	}).WithConstraint(constraint.NewComposite("default", constraint.EntityTypeClash()))
	always.Merge(list, c)

	assert.Equal(t, [][]model.MentionID{{0, 2}, {1}}, memberIDs(list))
}

func TestLegalityGate(t *testing.T) {
	sentences := func() [][]*model.Mention {
		return [][]*model.Mention{
			{tagged(0, model.EntityTypePerson, "a")},
			{tagged(1, model.EntityTypePerson, "x")},
			{tagged(2, model.EntityTypePerson, "a")},
		}
	}

	tests := []struct {
		name     string
		distance int
		expected [][]model.MentionID
	}{
		{"Zero distance keeps non adjacent sentences apart", 0, [][]model.MentionID{{0}, {1}, {2}}},
		{"Window of one is too small", 1, [][]model.MentionID{{0}, {1}, {2}}},
		{"Window of two allows the merge", 2, [][]model.MentionID{{0, 2}, {1}}},
		{"Negative distance disables the check", -1, [][]model.MentionID{{0, 2}, {1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, list := setup(t, sentences()...)
			NewExactMatch("tag", "value").WithMaxSentenceDistance(tt.distance).Merge(list, c)
			assert.Equal(t, tt.expected, memberIDs(list))
		})
	}

	t.Run("Legal when close in one direction", func(t *testing.T) {
		base := New("test", nil).WithMaxSentenceDistance(0)

		spread := group.New(&model.Mention{ID: 0, SentenceNumber: 0})
		spread.Merge(group.New(&model.Mention{ID: 5, SentenceNumber: 3}), "test", 0)
		late := group.New(&model.Mention{ID: 6, SentenceNumber: 3})
		middle := group.New(&model.Mention{ID: 3, SentenceNumber: 1})

		assert.True(t, base.IsLegalMerge(spread, late))
		assert.True(t, base.IsLegalMerge(late, spread))
		assert.False(t, base.IsLegalMerge(spread, middle), "Expected a group inside the span to be too far from both ends")
	})
}

func TestUniqueMatch(t *testing.T) {
	t.Run("Refuses a value held by a third group", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "smith"),
			tagged(1, model.EntityTypePerson, "smith"),
			tagged(2, model.EntityTypePerson, "smith"),
		})

		NewUniqueMatch("tag", "value").Merge(list, c)
		assert.Equal(t, 3, list.Len())
	})

	t.Run("Merges once the third group is gone", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "smith"),
			tagged(1, model.EntityTypePerson, "smith"),
			tagged(2, model.EntityTypePerson, "doe"),
		})

		NewUniqueMatch("tag", "value").Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 1}, {2}}, memberIDs(list))
	})

	t.Run("Merges when the third holder is already a member", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			tagged(0, model.EntityTypePerson, "smith"),
			tagged(1, model.EntityTypePerson, "smith,john"),
			tagged(2, model.EntityTypePerson, "smith,john"),
		})

		NewExactMatch("tag", "value").WithConstraint(constraint.New("only-john", func(g1, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
			return !g1.Contains(1)
		})).Merge(list, c)
		require.Equal(t, [][]model.MentionID{{0}, {1, 2}}, memberIDs(list))

		NewUniqueMatch("tag", "value").Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 1, 2}}, memberIDs(list))
	})
}

func TestPointerMatch(t *testing.T) {
	title := &model.Mention{ID: 1, Text: "President", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeNested, ParentID: model.MentionIDPtr(0)}
	c, list := setup(t, []*model.Mention{
		{ID: 0, Text: "President Lincoln", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
		title,
		{ID: 2, Text: "Lincoln", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
	})

	NewPointerMatch(extractor.Title, extractor.TitleKeyTarget).Merge(list, c)
	assert.Equal(t, [][]model.MentionID{{0, 1}, {2}}, memberIDs(list))
}

func TestBespokeMergers(t *testing.T) {
	t.Run("Appositive", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			{ID: 0, Text: "Smith, the mayor", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeAppositive},
			{ID: 1, Text: "Smith", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName, ParentID: model.MentionIDPtr(0)},
			{ID: 2, Text: "the mayor", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeDescription, ParentID: model.MentionIDPtr(0)},
			{ID: 3, Text: "the town", EntityType: model.EntityTypeGPE, MentionType: model.MentionTypeDescription},
		})

		NewAppositive().Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 1, 2}, {3}}, memberIDs(list))
	})

	t.Run("Appositive parts without parent group", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			{ID: 0, Text: "Smith, the mayor", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeAppositive},
			{ID: 1, Text: "Smith", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName, ParentID: model.MentionIDPtr(0)},
			{ID: 2, Text: "the mayor", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeDescription, ParentID: model.MentionIDPtr(0)},
		})
		list.RemoveAt(0)

		NewAppositive().Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{1, 2}}, memberIDs(list))
	})

	t.Run("Copula", func(t *testing.T) {
		doc := []*model.Mention{
			{ID: 0, Text: "Smith", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
			{ID: 1, Text: "the mayor", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeDescription},
			{ID: 2, Text: "the town", EntityType: model.EntityTypeGPE, MentionType: model.MentionTypeDescription},
		}
		c, list := setup(t, doc)
		c.Document().Sentences[0].Propositions = []*model.Proposition{
			{ID: 1, Type: model.PropositionTypeCopula, Arguments: []model.Argument{{Role: model.RoleSubject, MentionID: 0}, {Role: model.RoleObject, MentionID: 1}}},
		}
		c.SetDocument(c.Document())
		require.NoError(t, c.PopulateMentionFeatureTable())

		NewCopula().Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 1}, {2}}, memberIDs(list))
	})

	t.Run("Acronym", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			{ID: 0, Text: "NATO", EntityType: model.EntityTypeOrganization, MentionType: model.MentionTypeName},
			{ID: 1, Text: "Acme Corp", EntityType: model.EntityTypeOrganization, MentionType: model.MentionTypeName},
			{ID: 2, Text: "North Atlantic Treaty Organization", EntityType: model.EntityTypeOrganization, MentionType: model.MentionTypeName},
		})

		NewAcronym().Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 2}, {1}}, memberIDs(list))
	})

	t.Run("Speaker", func(t *testing.T) {
		c, list := setup(t, []*model.Mention{
			{ID: 0, Text: "Jane Doe", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
			{ID: 1, Text: "Bob", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
		}, []*model.Mention{
			{ID: 2, Text: "I", MentionType: model.MentionTypePronoun},
			{ID: 3, Text: "you", MentionType: model.MentionTypePronoun},
			{ID: 4, Text: "my", MentionType: model.MentionTypePronoun},
		})
		c.Document().Sentences[1].Speaker = "Jane Doe"
		c.Document().Sentences[1].Addressee = "Bob"
		c.SetDocument(c.Document())
		require.NoError(t, c.PopulateMentionFeatureTable())

		NewSpeaker().Merge(list, c)
		assert.Equal(t, [][]model.MentionID{{0, 2, 4}, {1, 3}}, memberIDs(list))
	})
}

func TestScored(t *testing.T) {
	c, list := setup(t, []*model.Mention{
		tagged(0, model.EntityTypePerson, "a"),
		tagged(1, model.EntityTypePerson, "b"),
		tagged(2, model.EntityTypePerson, "c"),
	})

	score := func(g1, g2 *group.MentionGroup, c *cache.LinkInfoCache) float64 {
		if g2.Contains(2) {
			return 0.9
		}
		return 0.1
	}
	NewScored("scored", score, 0.5).Merge(list, c)

	assert.Equal(t, [][]model.MentionID{{0, 2}, {1}}, memberIDs(list))
	assert.Equal(t, 0.9, list.At(0).History()[0].Score)
}

func TestComposite(t *testing.T) {
	c, list := setup(t, []*model.Mention{
		tagged(0, model.EntityTypePerson, "a"),
		tagged(1, model.EntityTypePerson, "b"),
		tagged(2, model.EntityTypePerson, "a,b"),
	})

	var order []string
	first := NewExactMatch("tag", "value")
	tracer := New("tracer", func(g1, g2 *group.MentionGroup, c *cache.LinkInfoCache) (bool, float64) {
		order = append(order, "tracer")
		return false, 0
	})

	composite := NewComposite("root", first).Add(first).Add(tracer)
	composite.Merge(list, c)

	assert.Equal(t, [][]model.MentionID{{0, 1, 2}}, memberIDs(list), "Expected the second child to see the first child's output")
	assert.Empty(t, order, "Expected no pair left for the last child")
	assert.Len(t, composite.Children(), 3)
	assert.Equal(t, "root", composite.Name())
}
