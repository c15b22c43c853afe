package merger

import (
	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/extractor"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/model"
)

// NewAppositive merges the parts of an appositive and the appositive itself
func NewAppositive() *Base {
	appositiveOf := func(m *model.Mention, c *cache.LinkInfoCache) []feature.AttributeValuePair {
		return c.MentionFeatures(m.ID, extractor.Syntax, extractor.SyntaxKeyAppositive)
	}
	contains := func(parent *model.Mention, child *model.Mention, c *cache.LinkInfoCache) bool {
		if parent.MentionType != model.MentionTypeAppositive {
			return false
		}
		for _, avp := range appositiveOf(child, c) {
			if avp.Value.AsMention() == parent.ID {
				return true
			}
		}
		return false
	}

	return NewPairwise("appositive", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		if contains(m1, m2, c) || contains(m2, m1, c) {
			return true
		}
		return feature.AnyValueEquals(appositiveOf(m1, c), appositiveOf(m2, c))
	})
}

// NewCopula merges subject and object of a copula proposition ("Smith is the mayor")
func NewCopula() *Base {
	return NewPairwise("copula", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return feature.AnyValueEquals(
			c.MentionFeatures(m1.ID, extractor.Copula, extractor.CopulaKeyProposition),
			c.MentionFeatures(m2.ID, extractor.Copula, extractor.CopulaKeyProposition),
		)
	})
}

// NewAcronym merges a multi word name with the acronym of its initials
func NewAcronym() *Base {
	matches := func(long *model.Mention, short *model.Mention, c *cache.LinkInfoCache) bool {
		return feature.AnyValueEquals(
			c.MentionFeatures(long.ID, extractor.Acronym, extractor.AcronymKeyInitials),
			c.MentionFeatures(short.ID, extractor.Acronym, extractor.AcronymKeyForm),
		)
	}

	return NewPairwise("acronym", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return matches(m1, m2, c) || matches(m2, m1, c)
	})
}

// NewSpeaker merges first and second person pronouns with the speaker or
// addressee they refer to, and with each other when they refer to the same one
func NewSpeaker() *Base {
	refersTo := func(pronoun *model.Mention, other *model.Mention, c *cache.LinkInfoCache) bool {
		target := c.MentionFeatures(pronoun.ID, extractor.Speaker, extractor.SpeakerKeyRefersTo)
		if len(target) == 0 {
			return false
		}
		if feature.AnyValueEquals(target, c.MentionFeatures(other.ID, extractor.Speaker, extractor.SpeakerKeyRefersTo)) {
			return true
		}
		return feature.AnyValueEquals(target, c.MentionFeatures(other.ID, extractor.String, extractor.StringKeyNormalized))
	}

	return NewPairwise("speaker", func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return refersTo(m1, m2, c) || refersTo(m2, m1, c)
	})
}
