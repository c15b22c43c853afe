package ruleset

import (
	"github.com/siherrmann/coref/core/constraint"
	"github.com/siherrmann/coref/core/extractor"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/core/merger"
	"github.com/siherrmann/coref/model"
)

// Generic only relies on structure, names and identity keys
type Generic struct {
	config  model.ResolverConfig
	lexicon *lexicon.Lexicon
}

// NewGeneric creates the language independent configuration
func NewGeneric(config model.ResolverConfig, lex *lexicon.Lexicon) *Generic {
	return &Generic{config: config, lexicon: lex}
}

// Language implements Configuration
func (g *Generic) Language() string {
	return model.LanguageGeneric
}

// BuildMentionExtractors implements Configuration
func (g *Generic) BuildMentionExtractors() []feature.MentionExtractor {
	return []feature.MentionExtractor{
		extractor.NewStringExtractor(),
		extractor.NewHeadExtractor(),
		extractor.NewNameExtractor(),
		extractor.NewLastNameExtractor(),
		extractor.NewSyntaxExtractor(),
		extractor.NewCopulaExtractor(),
		extractor.NewOperatorExtractor(),
	}
}

// BuildPairExtractors implements Configuration
func (g *Generic) BuildPairExtractors() []feature.PairExtractor {
	return []feature.PairExtractor{
		extractor.NewNamePairExtractor(),
		extractor.NewDistancePairExtractor(),
	}
}

// BuildConstraints implements Configuration
func (g *Generic) BuildConstraints(mode constraint.Mode) constraint.Constraint {
	root := constraint.NewComposite(mode.String(),
		constraint.EntityTypeClash(),
		constraint.Partitive(),
	)
	if mode == constraint.ModeHighPrecision {
		return root
	}

	return root.
		Add(constraint.NestedClash()).
		Add(constraint.NameClash()).
		Add(constraint.OperatorClash(extractor.OperatorKeyEmail)).
		Add(constraint.OperatorClash(extractor.OperatorKeyPhone)).
		Add(constraint.OperatorClash(extractor.OperatorKeyHandle)).
		Add(constraint.HeadWordClash()).
		Add(constraint.LocationOverlap(g.config.LocationAffixes))
}

// BuildMergers implements Configuration
func (g *Generic) BuildMergers() merger.Merger {
	precise := g.BuildConstraints(constraint.ModeHighPrecision)
	standard := g.BuildConstraints(constraint.ModeDefault)

	root := merger.NewComposite(g.Language(),
		merger.NewAppositive().WithConstraint(precise),
		merger.NewCopula().WithConstraint(precise),
		merger.NewExactMatch(extractor.String, extractor.StringKeyCanonical).WithConstraint(standard),
		merger.NewExactMatch(extractor.Operator, extractor.OperatorKeyEmail).WithConstraint(standard),
		merger.NewUniqueMatch(extractor.LastName, extractor.LastNameKeyValue).WithConstraint(standard),
	)

	if g.config.Aggressiveness >= 50 {
		root.Add(merger.NewExactMatch(extractor.String, extractor.StringKeyNormalized).
			WithConstraint(standard).
			WithMaxSentenceDistance(g.config.MaxSentenceDistance))
	}

	return root
}
