package model

import (
	"time"

	"github.com/google/uuid"
)

// Entity represents a finalized coreference cluster of one document
type Entity struct {
	ID          uuid.UUID   `json:"id" yaml:"id"`
	DocumentRID uuid.UUID   `json:"document_rid" yaml:"document_rid"`
	Name        string      `json:"name" yaml:"name"`
	Type        EntityType  `json:"entity_type" yaml:"entity_type"`
	MentionIDs  []MentionID `json:"mention_ids" yaml:"mention_ids"`
	Embedding   []float32   `json:"embedding,omitempty" yaml:"-"`
	Metadata    Metadata    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt   time.Time   `json:"created_at" yaml:"created_at"`
	// Results
	Similarity float64 `json:"similarity,omitempty" yaml:"similarity,omitempty"`
}

// EntitySet is the output of resolving one document
type EntitySet struct {
	DocumentRID uuid.UUID    `json:"document_rid" yaml:"document_rid"`
	Title       string       `json:"title,omitempty" yaml:"title,omitempty"`
	Language    string       `json:"language" yaml:"language"`
	Entities    []*Entity    `json:"entities" yaml:"entities"`
	Links       []*MergeLink `json:"links,omitempty" yaml:"links,omitempty"`
}

// EntityOf returns the entity containing the mention or nil
func (s *EntitySet) EntityOf(id MentionID) *Entity {
	for _, entity := range s.Entities {
		for _, member := range entity.MentionIDs {
			if member == id {
				return entity
			}
		}
	}
	return nil
}

// LinksOf returns the merge links recorded for an entity
func (s *EntitySet) LinksOf(entityID uuid.UUID) []*MergeLink {
	var links []*MergeLink
	for _, link := range s.Links {
		if link.EntityID == entityID {
			links = append(links, link)
		}
	}
	return links
}
