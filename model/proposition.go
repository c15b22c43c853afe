package model

// PropositionType classifies predicate-argument structures
type PropositionType string

const (
	PropositionTypeVerb     PropositionType = "verb"
	PropositionTypeCopula   PropositionType = "copula"
	PropositionTypeModifier PropositionType = "modifier"
	PropositionTypeNoun     PropositionType = "noun"
)

const (
	RoleSubject = "<sub>"
	RoleObject  = "<obj>"
	RoleRef     = "<ref>"
)

// Argument binds a role of a proposition to a mention
type Argument struct {
	Role      string    `json:"role"`
	MentionID MentionID `json:"mention_id"`
}

// Proposition is an upstream predicate-argument structure
type Proposition struct {
	ID        int             `json:"id"`
	Type      PropositionType `json:"type"`
	Predicate string          `json:"predicate,omitempty"`
	Arguments []Argument      `json:"arguments,omitempty"`
}

// Argument returns the mention filling role, if any
func (p *Proposition) Argument(role string) (MentionID, bool) {
	for _, arg := range p.Arguments {
		if arg.Role == role {
			return arg.MentionID, true
		}
	}
	return 0, false
}
