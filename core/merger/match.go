package merger

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/siherrmann/coref/core/cache"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/group"
	"github.com/siherrmann/coref/model"
)

// NewExactMatch merges groups when any cross pair shares a value of the feature
func NewExactMatch(extractorName string, key string) *Base {
	return NewPairwise("exact-match:"+feature.FeatureName(extractorName, key), func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		for _, a := range c.MentionFeatures(m1.ID, extractorName, key) {
			for _, b := range c.MentionFeatures(m2.ID, extractorName, key) {
				if a.Equals(b) {
					return true
				}
			}
		}
		return false
	})
}

// NewUniqueMatch merges groups sharing a string value of the feature that no
// mention outside the two groups holds
func NewUniqueMatch(extractorName string, key string) *Base {
	return New("unique-match:"+feature.FeatureName(extractorName, key), func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) (bool, float64) {
		var members *roaring.Bitmap
		for _, m1 := range g1.Mentions() {
			for _, m2 := range g2.Mentions() {
				for _, a := range c.MentionFeatures(m1.ID, extractorName, key) {
					if a.Value.Kind() != feature.KindString {
						continue
					}
					for _, b := range c.MentionFeatures(m2.ID, extractorName, key) {
						if !a.Equals(b) {
							continue
						}
						if members == nil {
							members = bitmapOf(g1, g2)
						}
						holders := c.MentionBitmap(extractorName, key, a.Value.AsString())
						holders.AndNot(members)
						if holders.IsEmpty() {
							return true, 1
						}
					}
				}
			}
		}
		return false, 0
	})
}

func bitmapOf(groups ...*group.MentionGroup) *roaring.Bitmap {
	bitmap := roaring.New()
	for _, g := range groups {
		for _, id := range g.MentionIDs() {
			bitmap.Add(uint32(id))
		}
	}
	return bitmap
}

// NewPointerMatch merges mentions where one holds a reference to the other in the feature
func NewPointerMatch(extractorName string, key string) *Base {
	pointsTo := func(from *model.Mention, to *model.Mention, c *cache.LinkInfoCache) bool {
		for _, avp := range c.MentionFeatures(from.ID, extractorName, key) {
			if avp.Value.Kind() == feature.KindMention && avp.Value.AsMention() == to.ID {
				return true
			}
		}
		return false
	}

	return NewPairwise("pointer-match:"+feature.FeatureName(extractorName, key), func(m1 *model.Mention, m2 *model.Mention, c *cache.LinkInfoCache) bool {
		return pointsTo(m1, m2, c) || pointsTo(m2, m1, c)
	})
}

// ScoreFunc scores how likely two groups refer to the same entity
type ScoreFunc func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) float64

// NewScored merges groups whose score reaches the threshold, recording the score
func NewScored(name string, score ScoreFunc, threshold float64) *Base {
	return New(name, func(g1 *group.MentionGroup, g2 *group.MentionGroup, c *cache.LinkInfoCache) (bool, float64) {
		s := score(g1, g2, c)
		return s >= threshold, s
	})
}
