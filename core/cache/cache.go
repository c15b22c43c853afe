package cache

import (
	"fmt"
	"log/slog"
	"unique"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/siherrmann/coref/core/feature"
	"github.com/siherrmann/coref/core/lexicon"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

type featureTable map[string][]feature.AttributeValuePair

// LinkInfoCache memoizes the features of one document.
// Mention features are computed once for every eligible mention,
// pair features lazily for the pairs that are actually queried.
// String valued mention features are additionally kept in an inverted index.
type LinkInfoCache struct {
	mentionExtractors []feature.MentionExtractor
	pairExtractors    []feature.PairExtractor
	lexicon           *lexicon.Lexicon
	logger            *slog.Logger

	doc       *model.Document
	populated bool

	mentionFeatures map[model.MentionID]featureTable
	pairFeatures    map[feature.MentionPair]featureTable
	index           map[string]map[unique.Handle[string]]*roaring.Bitmap
}

// Stats summarizes the tables of the current document
type Stats struct {
	Mentions         int
	MentionFeatures  int
	IndexedFeatures  int
	IndexedValues    int
	PairComputations int
}

// NewLinkInfoCache creates a cache running the given extractors
func NewLinkInfoCache(mentionExtractors []feature.MentionExtractor, pairExtractors []feature.PairExtractor, lex *lexicon.Lexicon, logger *slog.Logger) *LinkInfoCache {
	if lex == nil {
		lex = lexicon.Empty()
	}
	if logger == nil {
		logger = helper.NewDiscardLogger()
	}

	c := &LinkInfoCache{
		mentionExtractors: mentionExtractors,
		pairExtractors:    pairExtractors,
		lexicon:           lex,
		logger:            logger,
	}
	c.clear()

	return c
}

func (c *LinkInfoCache) clear() {
	c.populated = false
	c.mentionFeatures = make(map[model.MentionID]featureTable)
	c.pairFeatures = make(map[feature.MentionPair]featureTable)
	c.index = make(map[string]map[unique.Handle[string]]*roaring.Bitmap)
}

// SetDocument clears all tables and resets every extractor for doc
func (c *LinkInfoCache) SetDocument(doc *model.Document) {
	c.clear()
	c.doc = doc

	for _, extractor := range c.mentionExtractors {
		extractor.Reset(doc)
	}
	for _, extractor := range c.pairExtractors {
		extractor.Reset(doc)
	}
}

// Document returns the current document
func (c *LinkInfoCache) Document() *model.Document {
	return c.doc
}

// Mention returns the mention of the current document with the given id or nil
func (c *LinkInfoCache) Mention(id model.MentionID) *model.Mention {
	if c.doc == nil {
		return nil
	}
	return c.doc.Mention(id)
}

// PopulateMentionFeatureTable runs every mention extractor over the eligible
// mentions of the document in document order
func (c *LinkInfoCache) PopulateMentionFeatureTable() error {
	if c.doc == nil {
		return helper.NewError("populate mention features", fmt.Errorf("no document set"))
	}

	for _, mention := range c.doc.Mentions() {
		if !mention.IsEligible() {
			continue
		}

		table := make(featureTable)
		c.mentionFeatures[mention.ID] = table

		for _, extractor := range c.mentionExtractors {
			for _, avp := range extractor.Extract(mention, c, c.doc) {
				name := avp.Name()
				table[name] = append(table[name], avp)
				if avp.Value.Kind() == feature.KindString {
					c.addToIndex(name, avp.Value.AsString(), mention.ID)
				}
			}
		}
	}
	c.populated = true

	stats := c.Stats()
	c.logger.Debug("populated mention feature table",
		slog.Int("mentions", stats.Mentions),
		slog.Int("features", stats.MentionFeatures),
		slog.Int("indexed_values", stats.IndexedValues),
	)

	return nil
}

func (c *LinkInfoCache) addToIndex(name string, value string, id model.MentionID) {
	values, ok := c.index[name]
	if !ok {
		values = make(map[unique.Handle[string]]*roaring.Bitmap)
		c.index[name] = values
	}

	handle := unique.Make(value)
	bitmap, ok := values[handle]
	if !ok {
		bitmap = roaring.New()
		values[handle] = bitmap
	}
	bitmap.Add(uint32(id))
}

// MentionFeatures returns the features of a mention, empty when absent
func (c *LinkInfoCache) MentionFeatures(id model.MentionID, extractor string, key string) []feature.AttributeValuePair {
	table, ok := c.mentionFeatures[id]
	if !ok {
		return nil
	}
	return table[feature.FeatureName(extractor, key)]
}

// GroupFeatures concatenates the features of the given mentions in order
func (c *LinkInfoCache) GroupFeatures(ids []model.MentionID, extractor string, key string) []feature.AttributeValuePair {
	var out []feature.AttributeValuePair
	for _, id := range ids {
		out = append(out, c.MentionFeatures(id, extractor, key)...)
	}
	return out
}

// PairFeatures returns a feature of the canonical pair of a and b.
// The first query for a pair runs every pair extractor once and caches the whole result.
func (c *LinkInfoCache) PairFeatures(a model.MentionID, b model.MentionID, extractor string, key string) []feature.AttributeValuePair {
	if c.doc == nil || !c.populated {
		return nil
	}

	pair := feature.NewMentionPair(a, b)
	table, ok := c.pairFeatures[pair]
	if !ok {
		table = c.computePair(pair)
		c.pairFeatures[pair] = table
	}

	return table[feature.FeatureName(extractor, key)]
}

func (c *LinkInfoCache) computePair(pair feature.MentionPair) featureTable {
	table := make(featureTable)

	first := c.doc.Mention(pair.First)
	second := c.doc.Mention(pair.Second)
	if first == nil || second == nil {
		return table
	}

	for _, extractor := range c.pairExtractors {
		for _, avp := range extractor.Extract(first, second, c, c.doc) {
			name := avp.Name()
			table[name] = append(table[name], avp)
		}
	}

	return table
}

// PairComputations returns the number of distinct pairs whose features were computed
func (c *LinkInfoCache) PairComputations() int {
	return len(c.pairFeatures)
}

// MentionsByFeatureValue returns the ids of every mention holding the string value, ascending
func (c *LinkInfoCache) MentionsByFeatureValue(extractor string, key string, value string) []model.MentionID {
	bitmap := c.MentionBitmap(extractor, key, value)
	if bitmap.IsEmpty() {
		return nil
	}

	ids := make([]model.MentionID, 0, bitmap.GetCardinality())
	it := bitmap.Iterator()
	for it.HasNext() {
		ids = append(ids, model.MentionID(it.Next()))
	}
	return ids
}

// MentionBitmap returns a copy of the posting list of a string value
func (c *LinkInfoCache) MentionBitmap(extractor string, key string, value string) *roaring.Bitmap {
	values, ok := c.index[feature.FeatureName(extractor, key)]
	if !ok {
		return roaring.New()
	}
	bitmap, ok := values[unique.Make(value)]
	if !ok {
		return roaring.New()
	}
	return bitmap.Clone()
}

// LookupAlternateSpelling returns the canonical spelling of value
func (c *LinkInfoCache) LookupAlternateSpelling(value string) (string, bool) {
	return c.lexicon.AlternateSpelling(value)
}

// Lexicon returns the word lists the cache was built with
func (c *LinkInfoCache) Lexicon() *lexicon.Lexicon {
	return c.lexicon
}

// Stats returns the sizes of the current tables
func (c *LinkInfoCache) Stats() Stats {
	stats := Stats{
		Mentions:         len(c.mentionFeatures),
		IndexedFeatures:  len(c.index),
		PairComputations: len(c.pairFeatures),
	}
	for _, table := range c.mentionFeatures {
		for _, values := range table {
			stats.MentionFeatures += len(values)
		}
	}
	for _, values := range c.index {
		stats.IndexedValues += len(values)
	}
	return stats
}
