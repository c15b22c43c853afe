package model

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/coref/helper"
)

// Sentence holds the upstream analysis of one sentence
type Sentence struct {
	Index        int            `json:"index"`
	Text         string         `json:"text,omitempty"`
	Tokens       []string       `json:"tokens,omitempty"`
	Mentions     []*Mention     `json:"mentions,omitempty"`
	Propositions []*Proposition `json:"propositions,omitempty"`
	Speaker      string         `json:"speaker,omitempty"`
	Addressee    string         `json:"addressee,omitempty"`
}

// Document represents a source document together with its per-sentence analysis
type Document struct {
	ID        int64       `json:"id"`
	RID       uuid.UUID   `json:"rid"`
	Title     string      `json:"title"`
	Source    string      `json:"source,omitempty"`
	Language  string      `json:"language,omitempty"`
	Content   string      `json:"content,omitempty" db:"-"` // Raw text, consumed by the pipeline and not stored
	Sentences []*Sentence `json:"sentences,omitempty" db:"-"`
	Metadata  Metadata    `json:"metadata,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	// Resolution state, set when the entities of the document are stored
	EntityCount int        `json:"entity_count,omitempty"`
	LinkCount   int        `json:"link_count,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`

	mentionIndex map[MentionID]*Mention
}

// NewDocumentFromFile reads a raw text file and creates a Document with the file content
// The title defaults to the filename, and source to the file path
func NewDocumentFromFile(filePath string, metadata Metadata) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	filename := filepath.Base(filePath)
	title := filename[:len(filename)-len(filepath.Ext(filename))]
	if title == "" {
		title = filename
	}

	return &Document{
		Title:    title,
		Source:   filePath,
		Content:  string(content),
		Metadata: metadata,
	}, nil
}

// LoadDocumentJSON reads an already analysed document from a JSON file
func LoadDocumentJSON(filePath string) (*Document, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, helper.NewError("read document", err)
	}

	doc := &Document{}
	if err := json.Unmarshal(content, doc); err != nil {
		return nil, helper.NewError("decode document", err)
	}
	if doc.Source == "" {
		doc.Source = filePath
	}

	return doc, nil
}

// Prepare validates the document and builds the mention index.
// Sentence indices and mention positions are normalized to document order.
// Mention ids must be non-negative and strictly ascending in that order.
func (d *Document) Prepare() error {
	d.mentionIndex = make(map[MentionID]*Mention)

	if d.RID == uuid.Nil {
		d.RID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(d.Title+"\x00"+d.Source+"\x00"+d.Content))
	}

	last := MentionID(-1)
	for i, sentence := range d.Sentences {
		if sentence == nil {
			return helper.NewError("prepare document", fmt.Errorf("%w: sentence %d is nil", helper.ErrInvalidDocument, i))
		}
		sentence.Index = i

		for j, mention := range sentence.Mentions {
			if mention == nil {
				return helper.NewError("prepare document", fmt.Errorf("%w: mention %d of sentence %d is nil", helper.ErrInvalidDocument, j, i))
			}
			if mention.ID <= last {
				return helper.NewError("prepare document", fmt.Errorf("%w: mention id %d is not ascending (previous %d)", helper.ErrInvalidDocument, mention.ID, last))
			}
			last = mention.ID
			mention.SentenceNumber = i
			mention.Index = j
			d.mentionIndex[mention.ID] = mention
		}
	}

	for _, mention := range d.Mentions() {
		if mention.ParentID != nil {
			if _, ok := d.mentionIndex[*mention.ParentID]; !ok {
				return helper.NewError("prepare document", fmt.Errorf("%w: mention %d references unknown parent %d", helper.ErrInvalidDocument, mention.ID, *mention.ParentID))
			}
		}
	}

	return nil
}

// Mention returns the mention with the given id or nil
func (d *Document) Mention(id MentionID) *Mention {
	if d.mentionIndex == nil {
		for _, mention := range d.Mentions() {
			if mention.ID == id {
				return mention
			}
		}
		return nil
	}
	return d.mentionIndex[id]
}

// Mentions returns every mention in document order (sentence, then position)
func (d *Document) Mentions() []*Mention {
	var mentions []*Mention
	for _, sentence := range d.Sentences {
		if sentence == nil {
			continue
		}
		mentions = append(mentions, sentence.Mentions...)
	}
	return mentions
}

// Sentence returns the sentence with the given index or nil
func (d *Document) Sentence(index int) *Sentence {
	if index < 0 || index >= len(d.Sentences) {
		return nil
	}
	return d.Sentences[index]
}

// Propositions returns the propositions of the sentence with the given index
func (d *Document) Propositions(sentence int) []*Proposition {
	s := d.Sentence(sentence)
	if s == nil {
		return nil
	}
	return s.Propositions
}
