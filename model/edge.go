package model

import (
	"time"

	"github.com/google/uuid"
)

// MergeLink records that a merger joined the group holding SourceMentionID
// with the group holding TargetMentionID while building an entity
type MergeLink struct {
	ID              uuid.UUID `json:"id" yaml:"id"`
	EntityID        uuid.UUID `json:"entity_id" yaml:"entity_id"`
	SourceMentionID MentionID `json:"source_mention_id" yaml:"source_mention_id"`
	TargetMentionID MentionID `json:"target_mention_id" yaml:"target_mention_id"`
	Merger          string    `json:"merger" yaml:"merger"`
	Score           float64   `json:"score" yaml:"score"`
	Metadata        Metadata  `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
}
