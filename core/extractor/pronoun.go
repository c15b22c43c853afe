package extractor

import (
	"strings"

	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/model"
)

// GuessGender guesses the grammatical gender of a mention, empty when unknown
func GuessGender(m *model.Mention) string {
	if m.MentionType == model.MentionTypePronoun {
		word := lexicon.Normalize(m.Text)
		switch {
		case malePronouns[word]:
			return GenderMale
		case femalePronouns[word]:
			return GenderFemale
		case neuterPronouns[word]:
			return GenderNeuter
		}
		return ""
	}

	if !m.EntityType.IsRecognized() {
		return ""
	}
	if m.EntityType != model.EntityTypePerson {
		return GenderNeuter
	}

	tokens := lexicon.NormalizeTokens(m.Tokens())
	if len(tokens) == 0 {
		return ""
	}
	switch m.MentionType {
	case model.MentionTypeName:
		for _, token := range tokens {
			switch {
			case maleTitles[token], maleFirstNames[token]:
				return GenderMale
			case femaleTitles[token], femaleFirstNames[token]:
				return GenderFemale
			case titles[token]:
				continue
			}
			break
		}
	case model.MentionTypeDescription:
		head := lexicon.Normalize(m.Head())
		switch {
		case maleNouns[head]:
			return GenderMale
		case femaleNouns[head]:
			return GenderFemale
		}
	}
	return ""
}

// GuessNumber guesses the grammatical number of a mention, empty when unknown
func GuessNumber(m *model.Mention) string {
	switch m.MentionType {
	case model.MentionTypePronoun:
		word := lexicon.Normalize(m.Text)
		switch {
		case singularPronouns[word]:
			return NumberSingular
		case pluralPronouns[word]:
			return NumberPlural
		}
	case model.MentionTypeName:
		if m.EntityType == model.EntityTypePerson {
			return NumberSingular
		}
	case model.MentionTypeDescription:
		head := lexicon.Normalize(m.Head())
		if head == "" {
			return ""
		}
		if irregularPlurals[head] || (strings.HasSuffix(head, "s") && !strings.HasSuffix(head, "ss")) {
			return NumberPlural
		}
		return NumberSingular
	}
	return ""
}

// NewGenderExtractor emits the gender guess of a mention
func NewGenderExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Gender, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		return feature.NewEmitter(Gender).AddString(GenderKeyGuess, GuessGender(m)).Pairs()
	})
}

// NewNumberExtractor emits the number guess of a mention
func NewNumberExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Number, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		return feature.NewEmitter(Number).AddString(NumberKeyGuess, GuessNumber(m)).Pairs()
	})
}

// NewSpeakerExtractor resolves first and second person pronouns to the
// normalized speaker or addressee of their sentence
func NewSpeakerExtractor() feature.MentionExtractor {
	return feature.NewMentionExtractor(Speaker, func(m *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		if m.MentionType != model.MentionTypePronoun {
			return nil
		}

		sentence := doc.Sentence(m.SentenceNumber)
		if sentence == nil {
			return nil
		}

		word := lexicon.Normalize(m.Text)
		e := feature.NewEmitter(Speaker)
		switch {
		case firstPersonPronouns[word]:
			e.Add(SpeakerKeyPerson, feature.Int(1))
			e.AddString(SpeakerKeyRefersTo, lexicon.Normalize(sentence.Speaker))
		case secondPersonPronouns[word]:
			e.Add(SpeakerKeyPerson, feature.Int(2))
			e.AddString(SpeakerKeyRefersTo, lexicon.Normalize(sentence.Addressee))
		}
		return e.Pairs()
	})
}
