package graph

import (
	"context"
	"fmt"

	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// LinkGraph defines the lookups needed to walk merge links between mentions
type LinkGraph interface {
	GetMention(ctx context.Context, id model.MentionID) (*model.Mention, error)
	GetLinksOfMention(ctx context.Context, id model.MentionID, mergers []string) ([]*model.MergeLink, error)
}

// TraversalResult contains a mention and its distance from the source
type TraversalResult struct {
	Mention  *model.Mention
	Distance int
	Path     []model.MentionID  // Path from source to this mention
	Links    []*model.MergeLink // Links followed along Path
}

// SetGraph is a LinkGraph over a resolved document held in memory
type SetGraph struct {
	doc   *model.Document
	links map[model.MentionID][]*model.MergeLink
}

// NewSetGraph indexes the merge links of set by both of their mentions
func NewSetGraph(doc *model.Document, set *model.EntitySet) *SetGraph {
	g := &SetGraph{
		doc:   doc,
		links: make(map[model.MentionID][]*model.MergeLink),
	}
	for _, link := range set.Links {
		g.links[link.SourceMentionID] = append(g.links[link.SourceMentionID], link)
		g.links[link.TargetMentionID] = append(g.links[link.TargetMentionID], link)
	}
	return g
}

func (g *SetGraph) GetMention(ctx context.Context, id model.MentionID) (*model.Mention, error) {
	mention := g.doc.Mention(id)
	if mention == nil {
		return nil, helper.NewError("get mention", fmt.Errorf("mention %d not found", id))
	}
	return mention, nil
}

func (g *SetGraph) GetLinksOfMention(ctx context.Context, id model.MentionID, mergers []string) ([]*model.MergeLink, error) {
	if len(mergers) == 0 {
		return g.links[id], nil
	}

	var links []*model.MergeLink
	for _, link := range g.links[id] {
		for _, merger := range mergers {
			if link.Merger == merger {
				links = append(links, link)
				break
			}
		}
	}
	return links, nil
}

// other returns the mention at the far end of link
func other(link *model.MergeLink, id model.MentionID) (model.MentionID, bool) {
	switch id {
	case link.SourceMentionID:
		return link.TargetMentionID, true
	case link.TargetMentionID:
		return link.SourceMentionID, true
	}
	return 0, false
}

// BFS performs breadth-first search over merge links from a source mention
func BFS(ctx context.Context, g LinkGraph, sourceID model.MentionID, maxHops int, mergers []string) ([]*TraversalResult, error) {
	source, err := g.GetMention(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	visited := map[model.MentionID]bool{sourceID: true}
	queue := []TraversalResult{{
		Mention:  source,
		Distance: 0,
		Path:     []model.MentionID{sourceID},
	}}

	var results []*TraversalResult
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		current := queue[0]
		queue = queue[1:]
		results = append(results, &current)

		if current.Distance >= maxHops {
			continue
		}

		links, err := g.GetLinksOfMention(ctx, current.Mention.ID, mergers)
		if err != nil {
			return nil, err
		}

		for _, link := range links {
			targetID, ok := other(link, current.Mention.ID)
			if !ok || visited[targetID] {
				continue
			}

			target, err := g.GetMention(ctx, targetID)
			if err != nil {
				continue
			}
			visited[targetID] = true

			path := make([]model.MentionID, len(current.Path), len(current.Path)+1)
			copy(path, current.Path)
			followed := make([]*model.MergeLink, len(current.Links), len(current.Links)+1)
			copy(followed, current.Links)

			queue = append(queue, TraversalResult{
				Mention:  target,
				Distance: current.Distance + 1,
				Path:     append(path, targetID),
				Links:    append(followed, link),
			})
		}
	}

	return results, nil
}

// DFS performs depth-first search over merge links from a source mention
func DFS(ctx context.Context, g LinkGraph, sourceID model.MentionID, maxHops int, mergers []string) ([]*TraversalResult, error) {
	source, err := g.GetMention(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	var results []*TraversalResult
	visited := make(map[model.MentionID]bool)
	err = dfsRecursive(ctx, g, source, 0, maxHops, []model.MentionID{sourceID}, nil, mergers, visited, &results)
	if err != nil {
		return nil, err
	}

	return results, nil
}

func dfsRecursive(
	ctx context.Context,
	g LinkGraph,
	current *model.Mention,
	distance int,
	maxHops int,
	path []model.MentionID,
	followed []*model.MergeLink,
	mergers []string,
	visited map[model.MentionID]bool,
	results *[]*TraversalResult,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	visited[current.ID] = true
	*results = append(*results, &TraversalResult{
		Mention:  current,
		Distance: distance,
		Path:     append([]model.MentionID(nil), path...),
		Links:    append([]*model.MergeLink(nil), followed...),
	})

	if distance >= maxHops {
		return nil
	}

	links, err := g.GetLinksOfMention(ctx, current.ID, mergers)
	if err != nil {
		return err
	}

	for _, link := range links {
		targetID, ok := other(link, current.ID)
		if !ok || visited[targetID] {
			continue
		}

		target, err := g.GetMention(ctx, targetID)
		if err != nil {
			continue
		}

		nextPath := append(append([]model.MentionID(nil), path...), targetID)
		nextLinks := append(append([]*model.MergeLink(nil), followed...), link)
		if err := dfsRecursive(ctx, g, target, distance+1, maxHops, nextPath, nextLinks, mergers, visited, results); err != nil {
			return err
		}
	}

	return nil
}

// GetNeighbors retrieves the mentions directly merged with a mention
func GetNeighbors(ctx context.Context, g LinkGraph, id model.MentionID, mergers []string) ([]*model.Mention, error) {
	results, err := BFS(ctx, g, id, 1, mergers)
	if err != nil {
		return nil, err
	}

	neighbors := make([]*model.Mention, 0, len(results)-1)
	for i := 1; i < len(results); i++ {
		neighbors = append(neighbors, results[i].Mention)
	}

	return neighbors, nil
}

// MergePath returns the shortest chain of merge links connecting two mentions.
// Mentions of different entities are never connected.
func MergePath(ctx context.Context, g LinkGraph, from model.MentionID, to model.MentionID) (*TraversalResult, error) {
	results, err := BFS(ctx, g, from, int(^uint(0)>>1), nil)
	if err != nil {
		return nil, err
	}

	for _, result := range results {
		if result.Mention.ID == to {
			return result, nil
		}
	}
	return nil, helper.NewError("merge path", fmt.Errorf("mentions %d and %d are not coreferent", from, to))
}
