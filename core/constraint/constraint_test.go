package constraint

import (
	"testing"

	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/extractor"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mention(id int, text string, entityType model.EntityType, mentionType model.MentionType) *model.Mention {
	return &model.Mention{ID: model.MentionID(id), Text: text, EntityType: entityType, MentionType: mentionType}
}

func setup(t *testing.T, mentions ...*model.Mention) (*cache.LinkInfoCache, map[model.MentionID]*group.MentionGroup) {
	t.Helper()

	lex := lexicon.Empty()
	lex.Affiliations.Add("france", "french")
	lex.Affiliations.Add("germany", "german")

	c := cache.NewLinkInfoCache(
		[]feature.MentionExtractor{
			extractor.NewStringExtractor(),
			extractor.NewHeadExtractor(),
			extractor.NewNameExtractor(),
			extractor.NewGenderExtractor(),
			extractor.NewNumberExtractor(),
			extractor.NewGPEExtractor(lex),
			extractor.NewSyntaxExtractor(),
			extractor.NewOperatorExtractor(),
		},
		[]feature.PairExtractor{extractor.NewNamePairExtractor()},
		lex,
		nil,
	)

	doc := &model.Document{Sentences: []*model.Sentence{{Mentions: mentions}}}
	require.NoError(t, doc.Prepare())
	c.SetDocument(doc)
	require.NoError(t, c.PopulateMentionFeatureTable())

	groups := make(map[model.MentionID]*group.MentionGroup)
	for _, m := range mentions {
		groups[m.ID] = group.New(m)
	}
	return c, groups
}

func TestEntityTypeClash(t *testing.T) {
	c, g := setup(t,
		mention(0, "Paris", model.EntityTypeGPE, model.MentionTypeName),
		mention(1, "Paris Hilton", model.EntityTypePerson, model.MentionTypeName),
		mention(2, "it", model.EntityTypeUndetermined, model.MentionTypePronoun),
		mention(3, "the city", model.EntityTypeGPE, model.MentionTypeDescription),
	)
	constraint := EntityTypeClash()

	assert.True(t, constraint.Violates(g[0], g[1], c))
	assert.False(t, constraint.Violates(g[0], g[2], c), "Expected undetermined types never to clash")
	assert.False(t, constraint.Violates(g[0], g[3], c))

	g[0].Merge(g[2], "test", 0)
	assert.True(t, constraint.Violates(g[0], g[1], c), "Expected any cross pair to veto")
}

func TestGuessClash(t *testing.T) {
	c, g := setup(t,
		mention(0, "John Smith", model.EntityTypePerson, model.MentionTypeName),
		mention(1, "she", model.EntityTypeUndetermined, model.MentionTypePronoun),
		mention(2, "he", model.EntityTypeUndetermined, model.MentionTypePronoun),
		mention(3, "they", model.EntityTypeUndetermined, model.MentionTypePronoun),
		mention(4, "Smith", model.EntityTypePerson, model.MentionTypeName),
	)

	t.Run("Gender", func(t *testing.T) {
		constraint := GenderClash()
		assert.True(t, constraint.Violates(g[0], g[1], c))
		assert.False(t, constraint.Violates(g[0], g[2], c))
		assert.False(t, constraint.Violates(g[4], g[1], c), "Expected missing guesses never to veto")
	})

	t.Run("Number", func(t *testing.T) {
		constraint := NumberClash()
		assert.True(t, constraint.Violates(g[0], g[3], c))
		assert.False(t, constraint.Violates(g[0], g[4], c))
	})

	t.Run("Contradictory group never vetoes", func(t *testing.T) {
		mixed := group.New(g[1].Mentions()[0])
		mixed.Merge(group.New(g[2].Mentions()[0]), "test", 0)
		assert.False(t, GenderClash().Violates(g[0], mixed, c))
		assert.False(t, GenderClash().Violates(mixed, g[0], c))
	})
}

func TestPartitive(t *testing.T) {
	c, g := setup(t,
		mention(0, "some of the soldiers", model.EntityTypePerson, model.MentionTypePartitive),
		mention(1, "the soldiers", model.EntityTypePerson, model.MentionTypeDescription),
		mention(2, "the army", model.EntityTypePerson, model.MentionTypeDescription),
	)

	assert.True(t, Partitive().Violates(g[0], g[1], c))
	assert.True(t, Partitive().Violates(g[1], g[0], c))
	assert.False(t, Partitive().Violates(g[1], g[2], c))
}

func TestGPEClash(t *testing.T) {
	c, g := setup(t,
		mention(0, "the French minister", model.EntityTypePerson, model.MentionTypeDescription),
		mention(1, "the German minister", model.EntityTypePerson, model.MentionTypeDescription),
		mention(2, "the minister", model.EntityTypePerson, model.MentionTypeDescription),
		mention(3, "the minister of France", model.EntityTypePerson, model.MentionTypeDescription),
	)
	g[0].Mentions()[0].HeadWord = "minister"
	g[1].Mentions()[0].HeadWord = "minister"
	g[3].Mentions()[0].HeadWord = "minister"
	c.SetDocument(c.Document())
	require.NoError(t, c.PopulateMentionFeatureTable())

	for _, constraint := range []Constraint{LocalGPEClash(), GlobalGPEClash()} {
		t.Run(constraint.Name(), func(t *testing.T) {
			assert.True(t, constraint.Violates(g[0], g[1], c), "Expected different nations to clash")
			assert.False(t, constraint.Violates(g[0], g[2], c), "Expected missing modifiers never to clash")
			assert.False(t, constraint.Violates(g[0], g[3], c), "Expected modifier to match affiliation")
			assert.False(t, constraint.Violates(g[3], g[0], c))
			assert.False(t, constraint.Violates(g[1], g[3], c), "Expected a side without modifiers never to clash")
		})
	}
}

func TestOperatorClash(t *testing.T) {
	m0 := mention(0, "John", model.EntityTypePerson, model.MentionTypeName)
	m0.Attributes = map[string]string{"email": "john@example.com"}
	m1 := mention(1, "J.", model.EntityTypePerson, model.MentionTypeName)
	m1.Attributes = map[string]string{"email": "jay@example.com"}
	m2 := mention(2, "Johnny", model.EntityTypePerson, model.MentionTypeName)
	m3 := mention(3, "John S.", model.EntityTypePerson, model.MentionTypeName)
	m3.Attributes = map[string]string{"email": "JOHN@example.com"}
	c, g := setup(t, m0, m1, m2, m3)

	constraint := OperatorClash(extractor.OperatorKeyEmail)
	assert.True(t, constraint.Violates(g[0], g[1], c))
	assert.False(t, constraint.Violates(g[0], g[2], c), "Expected absence never to clash")
	assert.False(t, constraint.Violates(g[0], g[3], c))

	g[0].Merge(g[3], "test", 0)
	g[2].Merge(g[1], "test", 0)
	assert.True(t, constraint.Violates(g[0], g[2], c))
}

func TestHeadWordClash(t *testing.T) {
	m0 := mention(0, "the company", model.EntityTypeOrganization, model.MentionTypeDescription)
	m1 := mention(1, "the firm", model.EntityTypeOrganization, model.MentionTypeDescription)
	m2 := mention(2, "the big company", model.EntityTypeOrganization, model.MentionTypeDescription)
	m3 := mention(3, "Acme", model.EntityTypeOrganization, model.MentionTypeName)
	c, g := setup(t, m0, m1, m2, m3)

	constraint := HeadWordClash()
	assert.True(t, constraint.Violates(g[0], g[1], c))
	assert.False(t, constraint.Violates(g[0], g[2], c))
	assert.False(t, constraint.Violates(g[0], g[3], c), "Expected names to carry no description head")
}

func TestLocationOverlap(t *testing.T) {
	c, g := setup(t,
		mention(0, "Korea", model.EntityTypeGPE, model.MentionTypeName),
		mention(1, "North Korea", model.EntityTypeGPE, model.MentionTypeName),
		mention(2, "Korea", model.EntityTypeGPE, model.MentionTypeName),
		mention(3, "Dakota Territory", model.EntityTypeLocation, model.MentionTypeName),
		mention(4, "Dakota", model.EntityTypeLocation, model.MentionTypeName),
	)

	constraint := LocationOverlap([]string{"North", "territory"})
	assert.True(t, constraint.Violates(g[0], g[1], c))
	assert.True(t, constraint.Violates(g[1], g[2], c))
	assert.False(t, constraint.Violates(g[0], g[2], c))
	assert.True(t, constraint.Violates(g[3], g[4], c))
	assert.False(t, LocationOverlap(nil).Violates(g[0], g[1], c))
}

func TestNameClash(t *testing.T) {
	c, g := setup(t,
		mention(0, "John Smith", model.EntityTypePerson, model.MentionTypeName),
		mention(1, "Jim Smith", model.EntityTypePerson, model.MentionTypeName),
		mention(2, "Smith", model.EntityTypePerson, model.MentionTypeName),
	)

	assert.True(t, NameClash().Violates(g[0], g[1], c))
	assert.False(t, NameClash().Violates(g[0], g[2], c))
}

func TestNestedClash(t *testing.T) {
	m0 := mention(0, "the mayor of Paris", model.EntityTypePerson, model.MentionTypeDescription)
	m1 := mention(1, "Paris", model.EntityTypeGPE, model.MentionTypeName)
	m1.ParentID = model.MentionIDPtr(0)
	m2 := mention(2, "Jane, the mayor", model.EntityTypePerson, model.MentionTypeAppositive)
	m3 := mention(3, "the mayor", model.EntityTypePerson, model.MentionTypeDescription)
	m3.ParentID = model.MentionIDPtr(2)
	c, g := setup(t, m0, m1, m2, m3)

	assert.True(t, NestedClash().Violates(g[0], g[1], c))
	assert.True(t, NestedClash().Violates(g[1], g[0], c))
	assert.False(t, NestedClash().Violates(g[2], g[3], c), "Expected appositive containment not to clash")
}

func TestComposite(t *testing.T) {
	c, g := setup(t,
		mention(0, "Paris", model.EntityTypeGPE, model.MentionTypeName),
		mention(1, "Paris Hilton", model.EntityTypePerson, model.MentionTypeName),
	)

	calls := 0
	counting := New("counting", func(g1, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
		calls++
		return false
	})

	composite := NewComposite("root", counting)
	assert.False(t, composite.Violates(g[0], g[1], c))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "", composite.Violator(g[0], g[1], c))

	composite.Add(NewComposite("types", EntityTypeClash())).Add(counting)
	calls = 0
	assert.True(t, composite.Violates(g[0], g[1], c))
	assert.Equal(t, 1, calls, "Expected children after the first veto to be skipped")
	assert.Equal(t, "entity-type-clash", composite.Violator(g[0], g[1], c))
	assert.Len(t, composite.Children(), 3)
	assert.Equal(t, "root", composite.Name())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "default", ModeDefault.String())
	assert.Equal(t, "high-precision", ModeHighPrecision.String())
}
