package graph

import (
	"context"
	"testing"

	"github.com/siherrmann/coref/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) *SetGraph {
	t.Helper()

	// Entities: 0 - 2 - 3 (John Smith, Smith, he) and 1 - 4 (Acme, it)
	doc := &model.Document{
		Title: "graph",
		Sentences: []*model.Sentence{
			{Mentions: []*model.Mention{
				{ID: 0, Text: "John Smith", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
				{ID: 1, Text: "Acme", EntityType: model.EntityTypeOrganization, MentionType: model.MentionTypeName},
			}},
			{Mentions: []*model.Mention{
				{ID: 2, Text: "Smith", EntityType: model.EntityTypePerson, MentionType: model.MentionTypeName},
				{ID: 3, Text: "he", EntityType: model.EntityTypeUndetermined, MentionType: model.MentionTypePronoun},
				{ID: 4, Text: "it", EntityType: model.EntityTypeUndetermined, MentionType: model.MentionTypePronoun},
			}},
		},
	}
	require.NoError(t, doc.Prepare())

	set := &model.EntitySet{
		Links: []*model.MergeLink{
			{SourceMentionID: 0, TargetMentionID: 2, Merger: "NameMatch"},
			{SourceMentionID: 2, TargetMentionID: 3, Merger: "PronounLink"},
			{SourceMentionID: 1, TargetMentionID: 4, Merger: "PronounLink"},
		},
	}
	return NewSetGraph(doc, set)
}

func ids(results []*TraversalResult) []model.MentionID {
	var out []model.MentionID
	for _, result := range results {
		out = append(out, result.Mention.ID)
	}
	return out
}

func TestBFS(t *testing.T) {
	g := testGraph(t)

	t.Run("BFS with max hops 1", func(t *testing.T) {
		results, err := BFS(context.Background(), g, 0, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{0, 2}, ids(results))
		assert.Equal(t, 0, results[0].Distance, "Expected source distance to be 0")
		assert.Equal(t, 1, results[1].Distance)
	})

	t.Run("BFS reaches the whole entity", func(t *testing.T) {
		results, err := BFS(context.Background(), g, 0, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{0, 2, 3}, ids(results))
		assert.Equal(t, []model.MentionID{0, 2, 3}, results[2].Path)
		require.Len(t, results[2].Links, 2)
		assert.Equal(t, "PronounLink", results[2].Links[1].Merger)
	})

	t.Run("BFS follows links in both directions", func(t *testing.T) {
		results, err := BFS(context.Background(), g, 3, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{3, 2, 0}, ids(results))
	})

	t.Run("BFS filters by merger", func(t *testing.T) {
		results, err := BFS(context.Background(), g, 0, 5, []string{"NameMatch"})
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{0, 2}, ids(results))
	})

	t.Run("BFS from unknown mention fails", func(t *testing.T) {
		_, err := BFS(context.Background(), g, 42, 1, nil)
		assert.Error(t, err)
	})

	t.Run("BFS stops on cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := BFS(ctx, g, 0, 5, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDFS(t *testing.T) {
	g := testGraph(t)

	t.Run("DFS reaches the whole entity", func(t *testing.T) {
		results, err := DFS(context.Background(), g, 0, 5, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{0, 2, 3}, ids(results))
		assert.Equal(t, 2, results[2].Distance)
	})

	t.Run("DFS with max hops 0 returns the source", func(t *testing.T) {
		results, err := DFS(context.Background(), g, 1, 0, nil)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{1}, ids(results))
	})
}

func TestGetNeighbors(t *testing.T) {
	g := testGraph(t)

	t.Run("Neighbors of a middle mention", func(t *testing.T) {
		neighbors, err := GetNeighbors(context.Background(), g, 2, nil)
		require.NoError(t, err)
		require.Len(t, neighbors, 2)
		assert.Equal(t, model.MentionID(0), neighbors[0].ID)
		assert.Equal(t, model.MentionID(3), neighbors[1].ID)
	})
}

func TestMergePath(t *testing.T) {
	g := testGraph(t)

	t.Run("Path between coreferent mentions", func(t *testing.T) {
		result, err := MergePath(context.Background(), g, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{0, 2, 3}, result.Path)
		assert.Equal(t, 2, result.Distance)
	})

	t.Run("Path to itself", func(t *testing.T) {
		result, err := MergePath(context.Background(), g, 1, 1)
		require.NoError(t, err)
		assert.Equal(t, []model.MentionID{1}, result.Path)
		assert.Empty(t, result.Links)
	})

	t.Run("Mentions of different entities", func(t *testing.T) {
		_, err := MergePath(context.Background(), g, 0, 4)
		assert.ErrorContains(t, err, "not coreferent")
	})
}
