package constraint

import (
	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/model"
)

// Mode selects how wide a constraint tree is
type Mode int

const (
	ModeDefault Mode = iota
	// ModeHighPrecision trees are narrower and gate very confident mergers
	ModeHighPrecision
)

// String returns the name of the mode
func (m Mode) String() string {
	if m == ModeHighPrecision {
		return "high-precision"
	}
	return "default"
}

// Constraint vetoes merging two groups.
// Missing features never veto.
type Constraint interface {
	Name() string
	Violates(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool
}

// Composite vetoes when any child vetoes, checking children in order
type Composite struct {
	name     string
	children []Constraint
}

// NewComposite creates a composite constraint
func NewComposite(name string, children ...Constraint) *Composite {
	return &Composite{name: name, children: children}
}

// Add appends a child
func (c *Composite) Add(child Constraint) *Composite {
	c.children = append(c.children, child)
	return c
}

// Children returns the children in order
func (c *Composite) Children() []Constraint {
	return c.children
}

// Name implements Constraint
func (c *Composite) Name() string {
	return c.name
}

// Violates implements Constraint
func (c *Composite) Violates(g1 *group.MentionGroup, g2 *group.MentionGroup, lic *cache.LinkInfoCache) bool {
	for _, child := range c.children {
		if child.Violates(g1, g2, lic) {
			return true
		}
	}
	return false
}

// Violator returns the name of the first vetoing child, empty when none vetoes
func (c *Composite) Violator(g1 *group.MentionGroup, g2 *group.MentionGroup, lic *cache.LinkInfoCache) string {
	for _, child := range c.children {
		if child.Violates(g1, g2, lic) {
			if composite, ok := child.(*Composite); ok {
				return composite.Violator(g1, g2, lic)
			}
			return child.Name()
		}
	}
	return ""
}

// MentionPairFunc decides a veto for one cross group mention pair
type MentionPairFunc func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool

// Pairwise vetoes when any cross group mention pair violates
type Pairwise struct {
	name string
	fn   MentionPairFunc
}

// NewPairwise creates a pairwise constraint
func NewPairwise(name string, fn MentionPairFunc) *Pairwise {
	return &Pairwise{name: name, fn: fn}
}

// Name implements Constraint
func (p *Pairwise) Name() string {
	return p.name
}

// Violates implements Constraint
func (p *Pairwise) Violates(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
	for _, m1 := range g1.Mentions() {
		for _, m2 := range g2.Mentions() {
			if p.fn(m1, m2, c) {
				return true
			}
		}
	}
	return false
}

// GroupFunc decides a veto for two groups
type GroupFunc func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool

type groupConstraint struct {
	name string
	fn   GroupFunc
}

// New wraps a group level predicate as a Constraint
func New(name string, fn GroupFunc) Constraint {
	return &groupConstraint{name: name, fn: fn}
}

func (g *groupConstraint) Name() string {
	return g.name
}

func (g *groupConstraint) Violates(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
	return g.fn(g1, g2, c)
}
