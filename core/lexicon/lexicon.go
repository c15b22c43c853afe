package lexicon

import (
	"fmt"

	"github.com/siherrmann/coref/helper"
)

// Lexicon bundles the external word lists a ruleset works with
type Lexicon struct {
	AlternateSpellings *WordList
	Affiliations       *WordList
}

// Empty returns a lexicon without entries
func Empty() *Lexicon {
	return &Lexicon{
		AlternateSpellings: NewWordList(),
		Affiliations:       NewWordList(),
	}
}

// Load reads both word lists. An empty path yields an empty list
// unless required is set, in which case it is a configuration error.
func Load(spellingsPath string, affiliationsPath string, required bool) (*Lexicon, error) {
	lex := Empty()

	if required {
		if spellingsPath == "" {
			return nil, helper.NewError("load lexicon", fmt.Errorf("%w: alternate spellings path", helper.ErrMissingConfig))
		}
		if affiliationsPath == "" {
			return nil, helper.NewError("load lexicon", fmt.Errorf("%w: affiliations path", helper.ErrMissingConfig))
		}
	}

	if spellingsPath != "" {
		list, err := LoadWordList(spellingsPath)
		if err != nil {
			return nil, helper.NewError("load alternate spellings", err)
		}
		lex.AlternateSpellings = list
	}

	if affiliationsPath != "" {
		list, err := LoadWordList(affiliationsPath)
		if err != nil {
			return nil, helper.NewError("load affiliations", err)
		}
		lex.Affiliations = list
	}

	return lex, nil
}

// AlternateSpelling returns the canonical spelling of value
func (l *Lexicon) AlternateSpelling(value string) (string, bool) {
	if l == nil {
		return "", false
	}
	return l.AlternateSpellings.Canonical(value)
}

// Nation returns the canonical nation a name or adjective is affiliated with
func (l *Lexicon) Nation(value string) (string, bool) {
	if l == nil {
		return "", false
	}
	return l.Affiliations.Canonical(value)
}
