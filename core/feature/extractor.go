package feature

import "github.com/siherrmann/coref/model"

// Reader is the read access extractors get to the feature cache
type Reader interface {
	MentionFeatures(id model.MentionID, extractor string, key string) []AttributeValuePair
	LookupAlternateSpelling(value string) (string, bool)
}

// MentionExtractor computes features of a single mention
type MentionExtractor interface {
	Name() string
	Extract(m *model.Mention, r Reader, doc *model.Document) []AttributeValuePair
	// Reset clears extractor-local state before a new document
	Reset(doc *model.Document)
}

// PairExtractor computes features of a canonical mention pair
type PairExtractor interface {
	Name() string
	Extract(first *model.Mention, second *model.Mention, r Reader, doc *model.Document) []AttributeValuePair
	Reset(doc *model.Document)
}

// MentionExtractFunc is a stateless mention extractor
type MentionExtractFunc func(m *model.Mention, r Reader, doc *model.Document) []AttributeValuePair

// PairExtractFunc is a stateless pair extractor
type PairExtractFunc func(first *model.Mention, second *model.Mention, r Reader, doc *model.Document) []AttributeValuePair

type mentionExtractor struct {
	name string
	fn   MentionExtractFunc
}

// NewMentionExtractor wraps a stateless function as a MentionExtractor
func NewMentionExtractor(name string, fn MentionExtractFunc) MentionExtractor {
	return &mentionExtractor{name: name, fn: fn}
}

func (e *mentionExtractor) Name() string { return e.name }

func (e *mentionExtractor) Extract(m *model.Mention, r Reader, doc *model.Document) []AttributeValuePair {
	return e.fn(m, r, doc)
}

func (e *mentionExtractor) Reset(*model.Document) {}

type pairExtractor struct {
	name string
	fn   PairExtractFunc
}

// NewPairExtractor wraps a stateless function as a PairExtractor
func NewPairExtractor(name string, fn PairExtractFunc) PairExtractor {
	return &pairExtractor{name: name, fn: fn}
}

func (e *pairExtractor) Name() string { return e.name }

func (e *pairExtractor) Extract(first *model.Mention, second *model.Mention, r Reader, doc *model.Document) []AttributeValuePair {
	return e.fn(first, second, r, doc)
}

func (e *pairExtractor) Reset(*model.Document) {}

// Emitter collects the features of one extractor invocation
type Emitter struct {
	extractor string
	pairs     []AttributeValuePair
}

// NewEmitter creates an emitter for the named extractor
func NewEmitter(extractor string) *Emitter {
	return &Emitter{extractor: extractor}
}

// Add appends a feature under key
func (e *Emitter) Add(key string, value Value) *Emitter {
	e.pairs = append(e.pairs, NewAttributeValuePair(e.extractor, key, value))
	return e
}

// AddString appends a string feature, skipping empty strings
func (e *Emitter) AddString(key string, s string) *Emitter {
	if s == "" {
		return e
	}
	return e.Add(key, String(s))
}

// Pairs returns the collected features
func (e *Emitter) Pairs() []AttributeValuePair {
	return e.pairs
}
