package model

import (
	"fmt"

	"github.com/siherrmann/coref/helper"
)

const (
	LanguageGeneric = "generic"
	LanguageEnglish = "en"
)

// ResolverConfig represents the configuration of one coreference resolver.
// It is read once when the resolver is built.
type ResolverConfig struct {
	// Language selects the ruleset, unknown languages use the generic one
	Language string `json:"language" mapstructure:"language"`

	// Merge legality window in sentences, negative disables the check
	MaxSentenceDistance int `json:"max_sentence_distance" mapstructure:"max_sentence_distance"`

	// Emit groups whose dominant type is undetermined
	IncludeUndetermined bool `json:"include_undetermined" mapstructure:"include_undetermined"`

	// Word lists
	AlternateSpellingsPath string `json:"alternate_spellings_path,omitempty" mapstructure:"alternate_spellings_path"`
	AffiliationsPath       string `json:"affiliations_path,omitempty" mapstructure:"affiliations_path"`

	// Aggressiveness (0-100) enables lower precision mergers late in the cascade
	Aggressiveness int `json:"aggressiveness" mapstructure:"aggressiveness"`

	// Tokens that may prefix or suffix a location name without changing it into another location
	LocationAffixes []string `json:"location_affixes,omitempty" mapstructure:"location_affixes"`
}

// DefaultResolverConfig returns a sensible default configuration
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Language:            LanguageGeneric,
		MaxSentenceDistance: 3,
		IncludeUndetermined: false,
		Aggressiveness:      50,
		LocationAffixes:     []string{"north", "south", "east", "west", "new", "upper", "lower"},
	}
}

// Validate checks value ranges of the configuration
func (c ResolverConfig) Validate() error {
	if c.Aggressiveness < 0 || c.Aggressiveness > 100 {
		return helper.NewError("validate resolver config", fmt.Errorf("aggressiveness %d is outside 0-100", c.Aggressiveness))
	}
	return nil
}
