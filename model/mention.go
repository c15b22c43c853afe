package model

import "strings"

// MentionID identifies a mention within one document.
// IDs are non-negative and strictly ascending in document order.
type MentionID int

// MentionType is the upstream mention-type tag
type MentionType string

const (
	MentionTypeName        MentionType = "NAME"
	MentionTypeDescription MentionType = "DESC"
	MentionTypePronoun     MentionType = "PRON"
	MentionTypePartitive   MentionType = "PART"
	MentionTypeNested      MentionType = "NEST"
	MentionTypeAppositive  MentionType = "APPO"
	MentionTypeList        MentionType = "LIST"
	MentionTypeNone        MentionType = "NONE"
)

// EntityType is the upstream entity-type classification of a mention
type EntityType string

const (
	EntityTypePerson       EntityType = "PER"
	EntityTypeOrganization EntityType = "ORG"
	EntityTypeGPE          EntityType = "GPE"
	EntityTypeLocation     EntityType = "LOC"
	EntityTypeFacility     EntityType = "FAC"
	EntityTypeVehicle      EntityType = "VEH"
	EntityTypeWeapon       EntityType = "WEA"
	EntityTypeUndetermined EntityType = "UNDET"
)

// IsRecognized reports whether the type is a real entity type
func (t EntityType) IsRecognized() bool {
	return t != "" && t != EntityTypeUndetermined
}

// Mention is a recognized text span with provisional entity and mention types
type Mention struct {
	ID             MentionID         `json:"id"`
	SentenceNumber int               `json:"sentence"`
	Index          int               `json:"index"`
	Text           string            `json:"text"`
	Words          []string          `json:"words,omitempty"`
	HeadWord       string            `json:"head,omitempty"`
	StartToken     int               `json:"start_token"`
	EndToken       int               `json:"end_token"`
	EntityType     EntityType        `json:"entity_type"`
	MentionType    MentionType       `json:"mention_type"`
	NodeID         int               `json:"node_id,omitempty"`
	ParentID       *MentionID        `json:"parent_id,omitempty"`
	ChildIDs       []MentionID       `json:"child_ids,omitempty"`
	Attributes     map[string]string `json:"attributes,omitempty"`
}

// IsEligible reports whether the mention takes part in coreference.
// Names, descriptions, partitives, nested and appositive mentions need a
// recognized entity type; pronouns are always eligible.
func (m *Mention) IsEligible() bool {
	switch m.MentionType {
	case MentionTypePronoun:
		return true
	case MentionTypeName, MentionTypeDescription, MentionTypePartitive, MentionTypeNested, MentionTypeAppositive:
		return m.EntityType.IsRecognized()
	default:
		return false
	}
}

// Tokens returns the words of the span, splitting Text when Words is empty
func (m *Mention) Tokens() []string {
	if len(m.Words) > 0 {
		return m.Words
	}
	return strings.Fields(m.Text)
}

// Head returns the head word, falling back to the last token
func (m *Mention) Head() string {
	if m.HeadWord != "" {
		return m.HeadWord
	}
	tokens := m.Tokens()
	if len(tokens) == 0 {
		return ""
	}
	return tokens[len(tokens)-1]
}

// HasParent reports whether the mention is nested inside another mention
func (m *Mention) HasParent() bool {
	return m.ParentID != nil
}

// MentionIDPtr returns a pointer to id, handy for ParentID literals
func MentionIDPtr(id MentionID) *MentionID {
	return &id
}
