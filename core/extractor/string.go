package extractor

import (
	"strings"
	"unicode"

	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/model"
)

// NewStringExtractor emits the normalized text of names and descriptions and,
// for names, the canonical spelling from the alternate spelling table
func NewStringExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(String, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if m.MentionType == model.MentionTypePronoun {
			return nil
		}

		normalized := lexicon.Normalize(m.Text)
		e := feature.NewEmitter(String).AddString(StringKeyNormalized, normalized)
		if m.MentionType == model.MentionTypeName && normalized != "" {
			canonical, ok := r.LookupAlternateSpelling(normalized)
			if !ok {
				canonical = normalized
			}
			e.AddString(StringKeyCanonical, canonical)
		}
		return e.Pairs()
	})
}

// NewHeadExtractor emits the normalized head word of names and descriptions
func NewHeadExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Head, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if m.MentionType != model.MentionTypeName && m.MentionType != model.MentionTypeDescription {
			return nil
		}

		head := lexicon.Normalize(m.Head())
		e := feature.NewEmitter(Head).AddString(HeadKeyWord, head)
		if m.MentionType == model.MentionTypeDescription {
			e.AddString(HeadKeyDescWord, head)
		}
		return e.Pairs()
	})
}

// PersonName holds the parsed parts of a person name
type PersonName struct {
	First  string
	Last   string
	Suffix string
}

// Key implements feature.CustomValue
func (p PersonName) Key() string {
	return p.First + "|" + p.Last + "|" + p.Suffix
}

// ParsePersonName splits a name into first and last name, dropping titles and keeping suffixes apart
func ParsePersonName(text string) PersonName {
	tokens := lexicon.NormalizeTokens(strings.Fields(text))
	for len(tokens) > 0 && titles[tokens[0]] {
		tokens = tokens[1:]
	}

	name := PersonName{}
	if len(tokens) > 1 && nameSuffixes[strings.TrimSuffix(tokens[len(tokens)-1], ",")] {
		name.Suffix = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	switch len(tokens) {
	case 0:
	case 1:
		name.Last = strings.TrimSuffix(tokens[0], ",")
	default:
		name.First = tokens[0]
		name.Last = strings.TrimSuffix(tokens[len(tokens)-1], ",")
	}
	return name
}

// NewNameExtractor emits the parsed parts of person names
func NewNameExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Name, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if m.MentionType != model.MentionTypeName || m.EntityType != model.EntityTypePerson {
			return nil
		}

		name := ParsePersonName(m.Text)
		if name.Last == "" {
			return nil
		}
		return feature.NewEmitter(Name).Add(NameKeyParts, feature.Custom(name)).Pairs()
	})
}

// NewLastNameExtractor emits the last name of person names.
// It reads the parts computed by the name extractor, which must run first.
func NewLastNameExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(LastName, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		e := feature.NewEmitter(LastName)
		for _, avp := range r.MentionFeatures(m.ID, Name, NameKeyParts) {
			if name, ok := avp.Value.AsCustom().(PersonName); ok {
				e.AddString(LastNameKeyValue, name.Last)
			}
		}
		return e.Pairs()
	})
}

// NewAcronymExtractor emits the initials of multi word organization and place names
// and the letters of single word names that look like an acronym
func NewAcronymExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Acronym, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if m.MentionType != model.MentionTypeName {
			return nil
		}
		switch m.EntityType {
		case model.EntityTypeOrganization, model.EntityTypeGPE, model.EntityTypeFacility:
		default:
			return nil
		}

		e := feature.NewEmitter(Acronym)
		tokens := m.Tokens()
		if len(tokens) > 1 {
			initials := Initials(tokens)
			if len([]rune(initials)) > 1 {
				e.AddString(AcronymKeyInitials, initials)
			}
			return e.Pairs()
		}
		if form, ok := AcronymForm(m.Text); ok {
			e.AddString(AcronymKeyForm, form)
		}
		return e.Pairs()
	})
}

// Initials returns the lower case first letters of the words, skipping function words
func Initials(tokens []string) string {
	var b strings.Builder
	for _, token := range tokens {
		normalized := lexicon.Normalize(token)
		if normalized == "" || acronymStopwords[normalized] {
			continue
		}
		b.WriteRune([]rune(normalized)[0])
	}
	return b.String()
}

// AcronymForm returns the lower case letters of an upper case word of two to six letters
func AcronymForm(text string) (string, bool) {
	letters := strings.ReplaceAll(strings.TrimSpace(text), ".", "")
	count := 0
	for _, r := range letters {
		if !unicode.IsUpper(r) {
			return "", false
		}
		count++
	}
	if count < 2 || count > 6 {
		return "", false
	}
	return strings.ToLower(letters), true
}
