package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// SegmentFunc splits text into sentences
type SegmentFunc func(text string) ([]SentenceSpan, error)

// DetectFunc finds mentions in the text of one sentence
type DetectFunc func(sentence string) ([]*DetectedMention, error)

// PropositionFunc builds the propositions of one sentence from its detected mentions
type PropositionFunc func(sentence string, mentions []*model.Mention) ([]*model.Proposition, error)

// EmbedFunc is a function that generates embeddings for text
type EmbedFunc func(text string) ([]float32, error)

// SentenceSpan is one sentence with its byte offsets in the source text
type SentenceSpan struct {
	Text  string
	Start int
	End   int
}

// DetectedMention is a mention found by a detector, offsets are relative to the sentence
type DetectedMention struct {
	Text        string
	Start       int
	End         int
	HeadWord    string
	EntityType  model.EntityType
	MentionType model.MentionType
	Score       float32
}

// Pipeline turns raw text into an analysed document
type Pipeline struct {
	Segmenter          SegmentFunc
	Detectors          []DetectFunc
	PropositionBuilder PropositionFunc // Optional
	Embedder           EmbedFunc       // Optional - embeds entity names
}

// NewPipeline creates a new processing pipeline
func NewPipeline(segmenter SegmentFunc, detectors ...DetectFunc) *Pipeline {
	return &Pipeline{
		Segmenter: segmenter,
		Detectors: detectors,
	}
}

// AddDetector appends a mention detector
func (p *Pipeline) AddDetector(detector DetectFunc) {
	p.Detectors = append(p.Detectors, detector)
}

// SetPropositionBuilder sets the proposition builder
func (p *Pipeline) SetPropositionBuilder(builder PropositionFunc) {
	p.PropositionBuilder = builder
}

// SetEmbedder sets the embedding function
func (p *Pipeline) SetEmbedder(embedder EmbedFunc) {
	p.Embedder = embedder
}

// Process segments text, detects mentions and builds propositions.
// Mention ids ascend in document order.
func (p *Pipeline) Process(text string, title string) (*model.Document, error) {
	if p.Segmenter == nil {
		return nil, helper.NewError("process text", fmt.Errorf("%w: no segmenter", helper.ErrMissingConfig))
	}

	spans, err := p.Segmenter(text)
	if err != nil {
		return nil, helper.NewError("segment text", err)
	}

	doc := &model.Document{
		Title:    title,
		Content:  text,
		Metadata: model.Metadata{},
	}

	nextID := model.MentionID(0)
	for i, span := range spans {
		sentence := &model.Sentence{
			Index:  i,
			Text:   span.Text,
			Tokens: strings.Fields(span.Text),
		}

		detected, err := p.detect(span.Text)
		if err != nil {
			return nil, helper.NewError("detect mentions", err)
		}
		sentence.Mentions = toMentions(span.Text, detected, i, &nextID)

		if p.PropositionBuilder != nil {
			propositions, err := p.PropositionBuilder(span.Text, sentence.Mentions)
			if err != nil {
				return nil, helper.NewError("build propositions", err)
			}
			sentence.Propositions = propositions
		}

		doc.Sentences = append(doc.Sentences, sentence)
	}

	if err := doc.Prepare(); err != nil {
		return nil, helper.NewError("process text", err)
	}
	return doc, nil
}

// detect runs every detector and drops spans already found by an earlier one
func (p *Pipeline) detect(sentence string) ([]*DetectedMention, error) {
	type span struct{ start, end int }
	seen := make(map[span]bool)

	var all []*DetectedMention
	for _, detector := range p.Detectors {
		mentions, err := detector(sentence)
		if err != nil {
			return nil, err
		}
		for _, m := range mentions {
			key := span{m.Start, m.End}
			if seen[key] {
				continue
			}
			seen[key] = true
			all = append(all, m)
		}
	}

	// outer spans first on equal start so parents get the lower id
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Start != all[j].Start {
			return all[i].Start < all[j].Start
		}
		return all[i].End > all[j].End
	})
	return all, nil
}

// toMentions assigns ids and links every mention to the smallest mention containing it
func toMentions(text string, detected []*DetectedMention, sentence int, nextID *model.MentionID) []*model.Mention {
	mentions := make([]*model.Mention, len(detected))
	for i, d := range detected {
		mentions[i] = &model.Mention{
			ID:             *nextID,
			SentenceNumber: sentence,
			Index:          i,
			Text:           d.Text,
			Words:          strings.Fields(d.Text),
			HeadWord:       d.HeadWord,
			StartToken:     tokenIndex(text, d.Start),
			EndToken:       tokenIndex(text, d.End) - 1,
			EntityType:     d.EntityType,
			MentionType:    d.MentionType,
		}
		*nextID++
	}

	for i, d := range detected {
		parent := -1
		for j, other := range detected {
			if i == j || other.Start > d.Start || other.End < d.End || (other.Start == d.Start && other.End == d.End) {
				continue
			}
			if parent < 0 || other.End-other.Start < detected[parent].End-detected[parent].Start {
				parent = j
			}
		}
		if parent >= 0 {
			mentions[i].ParentID = model.MentionIDPtr(mentions[parent].ID)
			mentions[parent].ChildIDs = append(mentions[parent].ChildIDs, mentions[i].ID)
		}
	}

	return mentions
}

// tokenIndex returns the number of whitespace separated tokens before offset
func tokenIndex(text string, offset int) int {
	if offset > len(text) {
		offset = len(text)
	}
	return len(strings.Fields(text[:offset]))
}

// EmbedEntities sets the embedding of every entity from its name
func (p *Pipeline) EmbedEntities(set *model.EntitySet) error {
	if p.Embedder == nil {
		return nil
	}

	for _, entity := range set.Entities {
		embedding, err := p.Embedder(entity.Name)
		if err != nil {
			return helper.NewError("embed entity", err)
		}
		entity.Embedding = embedding
	}
	return nil
}
