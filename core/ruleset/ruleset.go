package ruleset

import (
	"github.com/siherrmann/coref/core/constraint"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/core/merger"
	"github.com/siherrmann/coref/model"
)

// Configuration assembles the extractors, constraints and mergers of one language
type Configuration interface {
	Language() string
	BuildMergers() merger.Merger
	BuildConstraints(mode constraint.Mode) constraint.Constraint
	BuildMentionExtractors() []feature.MentionExtractor
	BuildPairExtractors() []feature.PairExtractor
}

// New returns the configuration for the configured language,
// falling back to the generic one for unknown languages
func New(config model.ResolverConfig, lex *lexicon.Lexicon) Configuration {
	if lex == nil {
		lex = lexicon.Empty()
	}

	switch config.Language {
	case model.LanguageEnglish:
		return NewEnglish(config, lex)
	default:
		return NewGeneric(config, lex)
	}
}

// RequiresLexicon reports whether the language needs both word lists
func RequiresLexicon(language string) bool {
	return language == model.LanguageEnglish
}
