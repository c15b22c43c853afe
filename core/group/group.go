package group

import (
	"sort"

	"github.com/siherrmann/coref/model"
)

// MergeRecord is one node of a group's merge history
type MergeRecord struct {
	Absorbed model.MentionID `json:"absorbed"` // id of the absorbed group
	Merger   string          `json:"merger"`
	Score    float64         `json:"score"`
	Children []MergeRecord   `json:"children,omitempty"` // history of the absorbed group
}

// MentionGroup is a mutable coreference cluster hypothesis.
// It references mentions of one document, kept sorted by id.
type MentionGroup struct {
	id      model.MentionID
	members []*model.Mention
	history []MergeRecord
}

// New creates a singleton group
func New(m *model.Mention) *MentionGroup {
	return &MentionGroup{
		id:      m.ID,
		members: []*model.Mention{m},
	}
}

// ID returns the id of the mention the group was created for
func (g *MentionGroup) ID() model.MentionID {
	return g.id
}

// Merge absorbs other into g. The caller must drop other from its live list afterwards.
func (g *MentionGroup) Merge(other *MentionGroup, merger string, score float64) {
	merged := make([]*model.Mention, 0, len(g.members)+len(other.members))
	i, j := 0, 0
	for i < len(g.members) && j < len(other.members) {
		if g.members[i].ID < other.members[j].ID {
			merged = append(merged, g.members[i])
			i++
		} else {
			merged = append(merged, other.members[j])
			j++
		}
	}
	merged = append(merged, g.members[i:]...)
	merged = append(merged, other.members[j:]...)
	g.members = merged

	g.history = append(g.history, MergeRecord{
		Absorbed: other.id,
		Merger:   merger,
		Score:    score,
		Children: other.history,
	})
}

// Contains reports whether the mention is a member
func (g *MentionGroup) Contains(id model.MentionID) bool {
	i := sort.Search(len(g.members), func(i int) bool { return g.members[i].ID >= id })
	return i < len(g.members) && g.members[i].ID == id
}

// Len returns the number of members
func (g *MentionGroup) Len() int {
	return len(g.members)
}

// Mentions returns the members ordered by id
func (g *MentionGroup) Mentions() []*model.Mention {
	return g.members
}

// MentionIDs returns the member ids ascending
func (g *MentionGroup) MentionIDs() []model.MentionID {
	ids := make([]model.MentionID, len(g.members))
	for i, m := range g.members {
		ids[i] = m.ID
	}
	return ids
}

// FirstSentence returns the lowest sentence number of the members
func (g *MentionGroup) FirstSentence() int {
	first := g.members[0].SentenceNumber
	for _, m := range g.members[1:] {
		first = min(first, m.SentenceNumber)
	}
	return first
}

// LastSentence returns the highest sentence number of the members
func (g *MentionGroup) LastSentence() int {
	last := g.members[0].SentenceNumber
	for _, m := range g.members[1:] {
		last = max(last, m.SentenceNumber)
	}
	return last
}

// EntityType returns the dominant entity type of the members.
// Recognized types outrank undetermined ones and the most frequent type wins.
// Ties go to the type of the earliest NAME member among the tied types,
// then to the type of the earliest member among them.
func (g *MentionGroup) EntityType() model.EntityType {
	counts := make(map[model.EntityType]int)
	best := 0
	for _, m := range g.members {
		if !m.EntityType.IsRecognized() {
			continue
		}
		counts[m.EntityType]++
		best = max(best, counts[m.EntityType])
	}
	if best == 0 {
		return model.EntityTypeUndetermined
	}

	tied := func(t model.EntityType) bool { return counts[t] == best }
	for _, m := range g.members {
		if m.MentionType == model.MentionTypeName && tied(m.EntityType) {
			return m.EntityType
		}
	}
	for _, m := range g.members {
		if tied(m.EntityType) {
			return m.EntityType
		}
	}

	return model.EntityTypeUndetermined
}

// History returns the merge history in merge order
func (g *MentionGroup) History() []MergeRecord {
	return g.history
}

// Link is one flattened merge of the history
type Link struct {
	Source model.MentionID // id of the absorbing group
	Target model.MentionID // id of the absorbed group
	Merger string
	Score  float64
}

// Links flattens the merge history depth first, oldest merges first
func (g *MentionGroup) Links() []Link {
	var links []Link
	var walk func(owner model.MentionID, records []MergeRecord)
	walk = func(owner model.MentionID, records []MergeRecord) {
		for _, r := range records {
			walk(r.Absorbed, r.Children)
			links = append(links, Link{Source: owner, Target: r.Absorbed, Merger: r.Merger, Score: r.Score})
		}
	}
	walk(g.id, g.history)
	return links
}
