package pipeline

import (
	"fmt"
	"strings"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
)

// NERModel is the token classification model used by NERDetector
const NERModel = "KnightsAnalytics/distilbert-NER"

// NERDetector creates a name detector on top of a hugot token classification pipeline.
// PER, ORG and LOC labels become PER, ORG and GPE name mentions, MISC is ignored.
func NERDetector() (DetectFunc, error) {
	modelPath, err := helper.PrepareModel(NERModel, "model.onnx")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "coref-ner-pipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	nerPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create NER pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create NER pipeline: %w", err)
	}

	return func(sentence string) ([]*DetectedMention, error) {
		result, err := nerPipeline.RunPipeline([]string{sentence})
		if err != nil {
			return nil, fmt.Errorf("failed to run NER: %w", err)
		}
		if len(result.Entities) == 0 {
			return nil, nil
		}

		var mentions []*DetectedMention
		for _, entity := range result.Entities[0] {
			entityType, ok := entityTypeOfLabel(entity.Entity)
			if !ok {
				continue
			}

			start, end, ok := locate(sentence, strings.TrimSpace(entity.Word), int(entity.Start), int(entity.End))
			if !ok {
				continue
			}

			text := sentence[start:end]
			words := strings.Fields(text)
			mentions = append(mentions, &DetectedMention{
				Text:        text,
				Start:       start,
				End:         end,
				HeadWord:    words[len(words)-1],
				EntityType:  entityType,
				MentionType: model.MentionTypeName,
				Score:       entity.Score,
			})
		}
		return mentions, nil
	}, nil
}

// entityTypeOfLabel maps a NER label to an entity type
func entityTypeOfLabel(label string) (model.EntityType, bool) {
	switch normalizeEntityType(label) {
	case "PER":
		return model.EntityTypePerson, true
	case "ORG":
		return model.EntityTypeOrganization, true
	case "LOC":
		return model.EntityTypeGPE, true
	default:
		return "", false
	}
}

// normalizeEntityType removes B- and I- prefixes from NER labels
func normalizeEntityType(label string) string {
	if strings.HasPrefix(label, "B-") || strings.HasPrefix(label, "I-") {
		return label[2:]
	}
	return label
}

// locate returns the byte span of word in sentence, preferring the offsets reported by the model
func locate(sentence string, word string, start int, end int) (int, int, bool) {
	if word == "" {
		return 0, 0, false
	}
	if start >= 0 && end <= len(sentence) && start < end && sentence[start:end] == word {
		return start, end, true
	}

	from := start
	if from < 0 || from > len(sentence) {
		from = 0
	}
	if i := strings.Index(sentence[from:], word); i >= 0 {
		return from + i, from + i + len(word), true
	}
	if i := strings.Index(sentence, word); i >= 0 {
		return i, i + len(word), true
	}
	return 0, 0, false
}
