package group

import "github.com/siherrmann/coref/model"

// List holds the live groups of one consolidation pass in order
type List struct {
	groups []*MentionGroup
}

// NewList creates a list of groups
func NewList(groups ...*MentionGroup) *List {
	return &List{groups: groups}
}

// NewListFromMentions creates one singleton group per mention in the given order
func NewListFromMentions(mentions []*model.Mention) *List {
	groups := make([]*MentionGroup, 0, len(mentions))
	for _, m := range mentions {
		groups = append(groups, New(m))
	}
	return &List{groups: groups}
}

// Len returns the number of live groups
func (l *List) Len() int {
	return len(l.groups)
}

// At returns the group at position i
func (l *List) At(i int) *MentionGroup {
	return l.groups[i]
}

// RemoveAt drops the group at position i, keeping the order of the rest
func (l *List) RemoveAt(i int) {
	copy(l.groups[i:], l.groups[i+1:])
	l.groups[len(l.groups)-1] = nil
	l.groups = l.groups[:len(l.groups)-1]
}

// Groups returns the live groups
func (l *List) Groups() []*MentionGroup {
	return l.groups
}

// GroupOf returns the live group containing the mention or nil
func (l *List) GroupOf(id model.MentionID) *MentionGroup {
	for _, g := range l.groups {
		if g.Contains(id) {
			return g
		}
	}
	return nil
}
