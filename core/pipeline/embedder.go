package pipeline

import (
	"fmt"

	"github.com/knights-analytics/hugot"
	"github.com/siherrmann/coref/helper"
)

// EmbeddingModel is the sentence transformer used by DefaultEmbedder, it produces 384-dimensional vectors
const EmbeddingModel = "sentence-transformers/all-MiniLM-L6-v2"

// EmbeddingDimension is the vector size of EmbeddingModel
const EmbeddingDimension = 384

// DefaultEmbedder creates an embedder for entity names
func DefaultEmbedder() (EmbedFunc, error) {
	modelPath, err := helper.PrepareModel(EmbeddingModel, "")
	if err != nil {
		return nil, err
	}

	session, err := hugot.NewGoSession()
	if err != nil {
		return nil, fmt.Errorf("failed to create hugot session: %w", err)
	}

	config := hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "coref-embedder-pipeline",
	}
	embedPipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		if destroyErr := session.Destroy(); destroyErr != nil {
			return nil, fmt.Errorf("failed to create embedding pipeline: %w (cleanup error: %v)", err, destroyErr)
		}
		return nil, fmt.Errorf("failed to create embedding pipeline: %w", err)
	}

	return func(text string) ([]float32, error) {
		result, err := embedPipeline.RunPipeline([]string{text})
		if err != nil {
			return nil, fmt.Errorf("failed to embed %q: %w", text, err)
		}
		if len(result.Embeddings) == 0 {
			return nil, fmt.Errorf("no embedding generated for %q", text)
		}
		return result.Embeddings[0], nil
	}, nil
}
