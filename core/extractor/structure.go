package extractor

import (
	"strings"

	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/model"
)

// NewSyntaxExtractor emits the syntax node of a mention and the mention containing it.
// Containment in an appositive is kept apart from plain nesting.
func NewSyntaxExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Syntax, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		e := feature.NewEmitter(Syntax)
		if m.NodeID != 0 {
			e.Add(SyntaxKeyNode, feature.SyntaxNodeRef(m.NodeID))
		}

		if m.ParentID == nil {
			return e.Pairs()
		}
		parent := doc.Mention(*m.ParentID)
		if parent == nil {
			return e.Pairs()
		}
		if parent.MentionType == model.MentionTypeAppositive {
			e.Add(SyntaxKeyAppositive, feature.MentionRef(parent.ID))
		} else {
			e.Add(SyntaxKeyNestedIn, feature.MentionRef(parent.ID))
		}
		return e.Pairs()
	})
}

// NewTitleExtractor links a title inside a person name to that name,
// as "President" in "President Lincoln"
func NewTitleExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Title, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if m.ParentID == nil {
			return nil
		}
		if m.MentionType != model.MentionTypeDescription && m.MentionType != model.MentionTypeNested {
			return nil
		}
		if !titles[lexicon.Normalize(m.Head())] {
			return nil
		}

		parent := doc.Mention(*m.ParentID)
		if parent == nil || parent.MentionType != model.MentionTypeName || parent.EntityType != m.EntityType {
			return nil
		}
		return feature.NewEmitter(Title).Add(TitleKeyTarget, feature.MentionRef(parent.ID)).Pairs()
	})
}

// CopulaExtractor emits the copula propositions a mention is subject or object of.
// The argument table is built once per document.
type CopulaExtractor struct {
	arguments map[model.MentionID][]int
}

// NewCopulaExtractor creates a copula extractor
func NewCopulaExtractor() *CopulaExtractor {
	return &CopulaExtractor{arguments: make(map[model.MentionID][]int)}
}

// Name implements feature.MentionExtractor
func (e *CopulaExtractor) Name() string {
	return Copula
}

// Reset collects the subject and object arguments of every copula of doc
func (e *CopulaExtractor) Reset(doc *model.Document) {
	e.arguments = make(map[model.MentionID][]int)
	if doc == nil {
		return
	}

	for _, sentence := range doc.Sentences {
		if sentence == nil {
			continue
		}
		for _, p := range sentence.Propositions {
			if p == nil || p.Type != model.PropositionTypeCopula {
				continue
			}
			subject, hasSubject := p.Argument(model.RoleSubject)
			object, hasObject := p.Argument(model.RoleObject)
			if !hasSubject || !hasObject {
				continue
			}
			e.arguments[subject] = append(e.arguments[subject], p.ID)
			e.arguments[object] = append(e.arguments[object], p.ID)
		}
	}
}

// Extract implements feature.MentionExtractor
func (e *CopulaExtractor) Extract(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
	emitter := feature.NewEmitter(Copula)
	for _, id := range e.arguments[m.ID] {
		emitter.Add(CopulaKeyProposition, feature.PropositionRef(id))
	}
	return emitter.Pairs()
}

// NewOperatorExtractor emits identity keys like email addresses or phone numbers
// an upstream tagger attached to the mention
func NewOperatorExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Operator, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if len(m.Attributes) == 0 {
			return nil
		}

		e := feature.NewEmitter(Operator)
		e.AddString(OperatorKeyEmail, strings.ToLower(strings.TrimSpace(m.Attributes[OperatorKeyEmail])))
		e.AddString(OperatorKeyPhone, digits(m.Attributes[OperatorKeyPhone]))
		e.AddString(OperatorKeyHandle, strings.TrimPrefix(lexicon.Normalize(m.Attributes[OperatorKeyHandle]), "@"))
		return e.Pairs()
	})
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
