package constraint

import (
	"strings"

	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/extractor"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/model"
)

// EntityTypeClash vetoes pairs of recognized mentions with different entity types
func EntityTypeClash() Constraint {
	return NewPairwise("entity-type-clash", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return m1.EntityType.IsRecognized() && m2.EntityType.IsRecognized() && m1.EntityType != m2.EntityType
	})
}

// GuessClash compares the distinct guesses of a feature within each group.
// A group with contradictory guesses is not trusted and never vetoes,
// otherwise the groups clash when their guesses are disjoint.
func GuessClash(name string, extractorName string, key string) Constraint {
	return New(name, func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
		left := feature.Strings(c.GroupFeatures(g1.MentionIDs(), extractorName, key))
		right := feature.Strings(c.GroupFeatures(g2.MentionIDs(), extractorName, key))
		if len(left) != 1 || len(right) != 1 {
			return false
		}
		return left[0] != right[0]
	})
}

// GenderClash vetoes groups with different gender guesses
func GenderClash() Constraint {
	return GuessClash("gender-clash", extractor.Gender, extractor.GenderKeyGuess)
}

// NumberClash vetoes groups with different number guesses
func NumberClash() Constraint {
	return GuessClash("number-clash", extractor.Number, extractor.NumberKeyGuess)
}

// Partitive vetoes any pair involving a partitive mention
func Partitive() Constraint {
	return NewPairwise("partitive", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return m1.MentionType == model.MentionTypePartitive || m2.MentionType == model.MentionTypePartitive
	})
}

// subsetEither reports whether one set is a subset of the other
func subsetEither(left []string, right []string) bool {
	return subset(left, right) || subset(right, left)
}

func subset(small []string, large []string) bool {
	contained := make(map[string]bool, len(large))
	for _, s := range large {
		contained[s] = true
	}
	for _, s := range small {
		if !contained[s] {
			return false
		}
	}
	return true
}

func affiliationClash(modifiers1, affiliations1, modifiers2, affiliations2 []string) bool {
	return !subset(modifiers1, affiliations2) && !subset(modifiers2, affiliations1)
}

// LocalGPEClash vetoes mention pairs whose nation modifiers do not fit the other's affiliations
func LocalGPEClash() Constraint {
	return NewPairwise("local-gpe-clash", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return affiliationClash(
			feature.Strings(c.MentionFeatures(m1.ID, extractor.GPE, extractor.GPEKeyModifier)),
			feature.Strings(c.MentionFeatures(m1.ID, extractor.GPE, extractor.GPEKeyAffiliation)),
			feature.Strings(c.MentionFeatures(m2.ID, extractor.GPE, extractor.GPEKeyModifier)),
			feature.Strings(c.MentionFeatures(m2.ID, extractor.GPE, extractor.GPEKeyAffiliation)),
		)
	})
}

// GlobalGPEClash vetoes groups whose nation modifiers do not fit the other group's affiliations
func GlobalGPEClash() Constraint {
	return New("global-gpe-clash", func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
		return affiliationClash(
			feature.Strings(c.GroupFeatures(g1.MentionIDs(), extractor.GPE, extractor.GPEKeyModifier)),
			feature.Strings(c.GroupFeatures(g1.MentionIDs(), extractor.GPE, extractor.GPEKeyAffiliation)),
			feature.Strings(c.GroupFeatures(g2.MentionIDs(), extractor.GPE, extractor.GPEKeyModifier)),
			feature.Strings(c.GroupFeatures(g2.MentionIDs(), extractor.GPE, extractor.GPEKeyAffiliation)),
		)
	})
}

// OperatorClash vetoes groups whose identity keys differ, unless one set of values
// is contained in the other
func OperatorClash(key string) Constraint {
	return New("operator-clash:"+key, func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
		left := feature.Strings(c.GroupFeatures(g1.MentionIDs(), extractor.Operator, key))
		right := feature.Strings(c.GroupFeatures(g2.MentionIDs(), extractor.Operator, key))
		return !subsetEither(left, right)
	})
}

// HeadWordClash vetoes groups of descriptions that share no head word
func HeadWordClash() Constraint {
	return New("head-word-clash", func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) bool {
		left := c.GroupFeatures(g1.MentionIDs(), extractor.Head, extractor.HeadKeyDescWord)
		right := c.GroupFeatures(g2.MentionIDs(), extractor.Head, extractor.HeadKeyDescWord)
		if len(left) == 0 || len(right) == 0 {
			return false
		}
		return !feature.AnyValueEquals(left, right)
	})
}

// LocationOverlap vetoes location names that differ only by one of the affixes,
// as "Korea" and "North Korea"
func LocationOverlap(affixes []string) Constraint {
	known := make(map[string]bool, len(affixes))
	for _, affix := range affixes {
		known[strings.ToLower(affix)] = true
	}

	isLocation := func(m *model.Mention) bool {
		return m.MentionType == model.MentionTypeName && (m.EntityType == model.EntityTypeGPE || m.EntityType == model.EntityTypeLocation)
	}
	differsByAffix := func(short string, long string) bool {
		if prefix, ok := strings.CutSuffix(long, " "+short); ok && known[prefix] {
			return true
		}
		if suffix, ok := strings.CutPrefix(long, short+" "); ok && known[suffix] {
			return true
		}
		return false
	}

	return NewPairwise("location-overlap", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		if !isLocation(m1) || !isLocation(m2) {
			return false
		}
		for _, a := range feature.Strings(c.MentionFeatures(m1.ID, extractor.String, extractor.StringKeyNormalized)) {
			for _, b := range feature.Strings(c.MentionFeatures(m2.ID, extractor.String, extractor.StringKeyNormalized)) {
				if differsByAffix(a, b) || differsByAffix(b, a) {
					return true
				}
			}
		}
		return false
	})
}

// PairFeatureExists vetoes groups with any cross pair holding a true boolean pair feature
func PairFeatureExists(extractorName string, key string) Constraint {
	return NewPairwise("pair-feature:"+feature.FeatureName(extractorName, key), func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		for _, avp := range c.PairFeatures(m1.ID, m2.ID, extractorName, key) {
			if avp.Value.Kind() == feature.KindBool && avp.Value.AsBool() {
				return true
			}
		}
		return false
	})
}

// NameClash vetoes person names that can not belong to the same person
func NameClash() Constraint {
	return PairFeatureExists(extractor.NamePair, extractor.NamePairKeyClash)
}

// NestedClash vetoes a mention and the non appositive mention containing it
func NestedClash() Constraint {
	nestedIn := func(child *model.Mention, parent *model.Mention, c *cache.LinkInfoCache) bool {
		for _, avp := range c.MentionFeatures(child.ID, extractor.Syntax, extractor.SyntaxKeyNestedIn) {
			if avp.Value.AsMention() == parent.ID {
				return true
			}
		}
		return false
	}

	return NewPairwise("nested-clash", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return nestedIn(m1, m2, c) || nestedIn(m2, m1, c)
	})
}
