package ruleset

import (
	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/constraint"
	"github.com/siherrmann/coref/core/extractor"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/core/merger"
	"github.com/siherrmann/coref/model"
)

const (
	pronounThreshold     = 0.5
	nameOverlapThreshold = 0.5
)

// English adds pronoun, gender, number and nation knowledge to the generic rules
type English struct {
	*Generic
}

// NewEnglish creates the english configuration
func NewEnglish(config model.ResolverConfig, lex *lexicon.Lexicon) *English {
	return &English{Generic: NewGeneric(config, lex)}
}

// Language implements Configuration
func (e *English) Language() string {
	return model.LanguageEnglish
}

// BuildMentionExtractors implements Configuration
func (e *English) BuildMentionExtractors() []feature.MentionExtractor {
	return append(e.Generic.BuildMentionExtractors(),
		extractor.NewAcronymExtractor(),
		extractor.NewGenderExtractor(),
		extractor.NewNumberExtractor(),
		extractor.NewGPEExtractor(e.lexicon),
		extractor.NewSpeakerExtractor(),
		extractor.NewTitleExtractor(),
	)
}

// BuildConstraints implements Configuration
func (e *English) BuildConstraints(mode constraint.Mode) constraint.Constraint {
	root := e.Generic.BuildConstraints(mode).(*constraint.Composite)
	if mode == constraint.ModeHighPrecision {
		return root
	}

	return root.
		Add(constraint.GenderClash()).
		Add(constraint.NumberClash()).
		Add(constraint.LocalGPEClash()).
		Add(constraint.GlobalGPEClash())
}

// BuildMergers implements Configuration.
// The cascade runs from the most to the least precise rule,
// the aggressiveness dial enables the tail.
func (e *English) BuildMergers() merger.Merger {
	precise := e.BuildConstraints(constraint.ModeHighPrecision)
	standard := e.BuildConstraints(constraint.ModeDefault)

	root := merger.NewComposite(e.Language(),
		merger.NewAppositive().WithConstraint(precise),
		merger.NewCopula().WithConstraint(precise),
		merger.NewPointerMatch(extractor.Title, extractor.TitleKeyTarget).WithConstraint(precise),
		merger.NewExactMatch(extractor.String, extractor.StringKeyCanonical).WithConstraint(standard),
		merger.NewSpeaker().WithConstraint(standard),
		merger.NewAcronym().WithConstraint(standard),
		merger.NewExactMatch(extractor.Operator, extractor.OperatorKeyEmail).WithConstraint(standard),
		merger.NewUniqueMatch(extractor.LastName, extractor.LastNameKeyValue).WithConstraint(standard),
	)

	if e.config.Aggressiveness >= 50 {
		root.Add(merger.NewUniqueMatch(extractor.Head, extractor.HeadKeyDescWord).
			WithConstraint(standard).
			WithMaxSentenceDistance(e.config.MaxSentenceDistance))
	}
	if e.config.Aggressiveness >= 75 {
		root.Add(merger.NewScored("name-overlap", NameOverlapScore, nameOverlapThreshold).
			WithConstraint(standard))
		root.Add(merger.NewScored("pronoun", PronounScore, pronounThreshold).
			WithConstraint(standard).
			WithMaxSentenceDistance(e.config.MaxSentenceDistance))
	}

	return root
}

// isThirdPersonPronoun reports whether the mention is a pronoun not bound to a speaker
func isThirdPersonPronoun(m *model.Mention, c *cache.LinkInfoCache) bool {
	return m.MentionType == model.MentionTypePronoun && len(c.MentionFeatures(m.ID, extractor.Speaker, extractor.SpeakerKeyPerson)) == 0
}

// PronounScore scores a third person pronoun against a preceding name or description.
// The score decays with the sentence distance, the best cross pair counts.
func PronounScore(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) float64 {
	best := 0.0
	for _, m1 := range g1.Mentions() {
		for _, m2 := range g2.Mentions() {
			antecedent, pronoun := m1, m2
			if m2.ID < m1.ID {
				antecedent, pronoun = m2, m1
			}
			if !isThirdPersonPronoun(pronoun, c) {
				continue
			}
			if antecedent.MentionType != model.MentionTypeName && antecedent.MentionType != model.MentionTypeDescription {
				continue
			}

			for _, avp := range c.PairFeatures(antecedent.ID, pronoun.ID, extractor.Distance, extractor.DistanceKeySentences) {
				best = max(best, 1/float64(1+avp.Value.AsInt()))
			}
		}
	}
	return best
}

// NameOverlapScore scores two person name groups by the token overlap of their names
func NameOverlapScore(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) float64 {
	best := 0.0
	for _, m1 := range g1.Mentions() {
		if m1.EntityType != model.EntityTypePerson {
			continue
		}
		for _, m2 := range g2.Mentions() {
			if m2.EntityType != model.EntityTypePerson {
				continue
			}
			for _, avp := range c.PairFeatures(m1.ID, m2.ID, extractor.NamePair, extractor.NamePairKeyOverlap) {
				best = max(best, avp.Value.AsFloat())
			}
		}
	}
	return best
}
