package extractor

import (
	"strings"

	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/model"
)

// NamesClash reports whether two person names can not refer to the same person
func NamesClash(a PersonName, b PersonName) bool {
	if a.Last != "" && b.Last != "" && a.Last != b.Last {
		return true
	}
	if a.First == "" || b.First == "" || a.First == b.First {
		return false
	}
	// an initial matches the full first name
	if len([]rune(a.First)) == 1 && strings.HasPrefix(b.First, a.First) {
		return false
	}
	if len([]rune(b.First)) == 1 && strings.HasPrefix(a.First, b.First) {
		return false
	}
	return true
}

// TokenOverlap returns the Jaccard similarity of the normalized tokens of two texts
func TokenOverlap(a string, b string) float64 {
	left := make(map[string]bool)
	for _, token := range lexicon.NormalizeTokens(strings.Fields(a)) {
		left[token] = true
	}
	right := make(map[string]bool)
	for _, token := range lexicon.NormalizeTokens(strings.Fields(b)) {
		right[token] = true
	}
	if len(left) == 0 && len(right) == 0 {
		return 0
	}

	shared := 0
	for token := range left {
		if right[token] {
			shared++
		}
	}
	return float64(shared) / float64(len(left)+len(right)-shared)
}

// NewNamePairExtractor compares the person names of two mentions
func NewNamePairExtractor() feature.PairExtractor {
	return feature.NewPairExtractor(NamePair, func(first *model.Mention, second *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		e := feature.NewEmitter(NamePair)
		if first.MentionType != model.MentionTypeName || second.MentionType != model.MentionTypeName {
			return nil
		}
		e.Add(NamePairKeyOverlap, feature.Float(TokenOverlap(first.Text, second.Text)))

		clash := false
		for _, a := range r.MentionFeatures(first.ID, Name, NameKeyParts) {
			for _, b := range r.MentionFeatures(second.ID, Name, NameKeyParts) {
				left, lok := a.Value.AsCustom().(PersonName)
				right, rok := b.Value.AsCustom().(PersonName)
				if lok && rok && NamesClash(left, right) {
					clash = true
				}
			}
		}
		return e.Add(NamePairKeyClash, feature.Bool(clash)).Pairs()
	})
}

// NewDistancePairExtractor emits the sentence distance of two mentions
func NewDistancePairExtractor() feature.PairExtractor {
	return feature.NewPairExtractor(Distance, func(first *model.Mention, second *model.Mention, r feature.Reader, doc *model.Document) []feature.AttributeValuePair {
		distance := first.SentenceNumber - second.SentenceNumber
		if distance < 0 {
			distance = -distance
		}
		return feature.NewEmitter(Distance).Add(DistanceKeySentences, feature.Int(int64(distance))).Pairs()
	})
}
