package extractor

import (
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/model"
)

// GPEExtractor emits the nations a mention is affiliated with.
// Modifiers are nations named in front of the head ("the French minister"),
// affiliations additionally include nations named anywhere in the mention.
type GPEExtractor struct {
	lexicon *lexicon.Lexicon
}

// NewGPEExtractor creates a GPE extractor using the nation list of lex
func NewGPEExtractor(lex *lexicon.Lexicon) *GPEExtractor {
	return &GPEExtractor{lexicon: lex}
}

// Name implements feature.MentionExtractor
func (e *GPEExtractor) Name() string {
	return GPE
}

// Reset implements feature.MentionExtractor
func (e *GPEExtractor) Reset(*model.Document) {}

// Extract implements feature.MentionExtractor
func (e *GPEExtractor) Extract(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
	if m.MentionType == model.MentionTypePronoun || !m.EntityType.IsRecognized() {
		return nil
	}

	emitter := feature.NewEmitter(GPE)

	if m.EntityType == model.EntityTypeGPE {
		if nation, ok := e.lexicon.Nation(m.Text); ok {
			emitter.AddString(GPEKeyAffiliation, nation)
		}
		return emitter.Pairs()
	}

	tokens := lexicon.NormalizeTokens(m.Tokens())
	head := lexicon.Normalize(m.Head())
	headIndex := len(tokens) - 1
	for i, token := range tokens {
		if token == head {
			headIndex = i
			break
		}
	}

	seen := make(map[string]bool)
	add := func(key string, nation string) {
		if seen[key+nation] {
			return
		}
		seen[key+nation] = true
		emitter.AddString(key, nation)
	}

	for i := 0; i < len(tokens); i++ {
		nation, ok := e.lexicon.Nation(tokens[i])
		if !ok && i+1 < len(tokens) {
			nation, ok = e.lexicon.Nation(tokens[i] + " " + tokens[i+1])
		}
		if !ok {
			continue
		}
		if i < headIndex {
			add(GPEKeyModifier, nation)
		}
		add(GPEKeyAffiliation, nation)
	}

	return emitter.Pairs()
}
