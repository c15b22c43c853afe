package merger

import (
	"log/slog"

	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/constraint"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// Merger consolidates the live groups of a list in place
type Merger interface {
	Name() string
	Merge(list *group.List, c *cache.LinkInfoCache)
}

// ShouldMergeFunc decides whether two groups refer to the same entity and with which score
type ShouldMergeFunc func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) (bool, float64)

// MentionPairFunc decides whether two mentions of different groups refer to the same entity
type MentionPairFunc func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool

// Base runs one sweep over the list for a should-merge predicate.
// Every ordered pair of live groups is checked once; an absorbed group is
// removed and the scan continues at the same position, so later groups can
// still join the grown group. The sweep is not repeated until nothing changes.
type Base struct {
	name                string
	shouldMerge         ShouldMergeFunc
	constraint          constraint.Constraint
	maxSentenceDistance int
	logger              *slog.Logger
}

// New creates a merger for the predicate. It is not distance gated and has no constraints.
func New(name string, shouldMerge ShouldMergeFunc) *Base {
	return &Base{
		name:                name,
		shouldMerge:         shouldMerge,
		maxSentenceDistance: -1,
		logger:              helper.NewDiscardLogger(),
	}
}

// NewPairwise creates a merger proposing a merge when any cross group mention pair matches
func NewPairwise(name string, fn MentionPairFunc) *Base {
	return New(name, func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) (bool, float64) {
		for _, m1 := range g1.Mentions() {
			for _, m2 := range g2.Mentions() {
				if fn(m1, m2, c) {
					return true, 1
				}
			}
		}
		return false, 0
	})
}

// WithConstraint sets the constraint that can veto merges
func (b *Base) WithConstraint(c constraint.Constraint) *Base {
	b.constraint = c
	return b
}

// WithMaxSentenceDistance sets the legality window, negative disables it
func (b *Base) WithMaxSentenceDistance(distance int) *Base {
	b.maxSentenceDistance = distance
	return b
}

// WithLogger sets the logger
func (b *Base) WithLogger(logger *slog.Logger) *Base {
	if logger == nil {
		logger = helper.NewDiscardLogger()
	}
	b.logger = logger
	return b
}

// Name implements Merger
func (b *Base) Name() string {
	return b.name
}

// IsLegalMerge reports whether the groups are close enough to be merged.
// The merge is illegal only when the distance is exceeded in both directions.
func (b *Base) IsLegalMerge(g1 *group.MentionGroup, g2 *group.MentionGroup) bool {
	if b.maxSentenceDistance < 0 {
		return true
	}
	forward := abs(g1.FirstSentence() - g2.LastSentence())
	backward := abs(g2.FirstSentence() - g1.LastSentence())
	return forward <= b.maxSentenceDistance || backward <= b.maxSentenceDistance
}

// Merge implements Merger
func (b *Base) Merge(list *group.List, c *cache.LinkInfoCache) {
	merges := 0
	for i := 0; i < list.Len(); i++ {
		g1 := list.At(i)
		j := i + 1
		for j < list.Len() {
			g2 := list.At(j)
			if !b.IsLegalMerge(g1, g2) {
				j++
				continue
			}

			ok, score := b.shouldMerge(g1, g2, c)
			if !ok {
				j++
				continue
			}
			if b.constraint != nil && b.constraint.Violates(g1, g2, c) {
				b.logger.Debug("merge vetoed", slog.String("merger", b.name), slog.Int("group", int(g1.ID())), slog.Int("other", int(g2.ID())))
				j++
				continue
			}

			g1.Merge(g2, b.name, score)
			list.RemoveAt(j)
			merges++
		}
	}

	if merges > 0 {
		b.logger.Debug("merged groups", slog.String("merger", b.name), slog.Int("merges", merges), slog.Int("groups", list.Len()))
	}
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Composite runs its children in order, each to completion
type Composite struct {
	name     string
	children []Merger
	logger   *slog.Logger
}

// NewComposite creates a composite merger
func NewComposite(name string, children ...Merger) *Composite {
	return &Composite{name: name, children: children, logger: helper.NewDiscardLogger()}
}

// Add appends a child
func (m *Composite) Add(child Merger) *Composite {
	m.children = append(m.children, child)
	return m
}

// WithLogger sets the logger of the composite and its children
func (m *Composite) WithLogger(logger *slog.Logger) *Composite {
	if logger == nil {
		logger = helper.NewDiscardLogger()
	}
	m.logger = logger
	for _, child := range m.children {
		switch c := child.(type) {
		case *Base:
			c.WithLogger(logger)
		case *Composite:
			c.WithLogger(logger)
		}
	}
	return m
}

// Children returns the children in order
func (m *Composite) Children() []Merger {
	return m.children
}

// Name implements Merger
func (m *Composite) Name() string {
	return m.name
}

// Merge implements Merger
func (m *Composite) Merge(list *group.List, c *cache.LinkInfoCache) {
	for _, child := range m.children {
		before := list.Len()
		child.Merge(list, c)
		m.logger.Debug("ran merger", slog.String("composite", m.name), slog.String("merger", child.Name()), slog.Int("consolidated", before-list.Len()))
	}
}
