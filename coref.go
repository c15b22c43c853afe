package coref

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/siherrmann/coref/core/pipeline"
	"github.com/siherrmann/coref/core/resolver"
	"github.com/siherrmann/coref/database"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	loadSql "github.com/siherrmann/coref/sql"
)

// Coref resolves documents and stores their entities in Postgres
type Coref struct {
	DB        *helper.Database
	Documents *database.DocumentsDBHandler
	Entities  *database.EntitiesDBHandler
	Links     *database.LinksDBHandler
	Resolver  *resolver.Resolver
	Pipeline  *pipeline.Pipeline // Optional text pipeline
	// Resolver is not safe for concurrent use
	mu  sync.Mutex
	log *slog.Logger
}

// NewCoref creates a new Coref instance with all handlers initialized
func NewCoref(dbConfig *helper.DatabaseConfiguration, resolverConfig model.ResolverConfig, embeddingDim int) (*Coref, error) {
	return NewCorefWithLogger(dbConfig, resolverConfig, embeddingDim, helper.NewLogger(os.Stdout, slog.LevelInfo))
}

// NewCorefWithLogger creates a new Coref instance logging to logger
func NewCorefWithLogger(dbConfig *helper.DatabaseConfiguration, resolverConfig model.ResolverConfig, embeddingDim int, logger *slog.Logger) (*Coref, error) {
	if logger == nil {
		logger = helper.NewDiscardLogger()
	}

	r, err := resolver.NewResolver(resolverConfig, logger)
	if err != nil {
		return nil, helper.NewError("create resolver", err)
	}

	db, err := helper.ConnectDatabase("coref", dbConfig, logger)
	if err != nil {
		return nil, helper.NewError("connect database", err)
	}
	err = loadSql.Init(db.Instance)
	if err != nil {
		db.Close()
		return nil, helper.NewError("initialize database extensions", err)
	}

	// documents first, entities and links reference them
	documents, err := database.NewDocumentsDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create documents handler", err)
	}

	entities, err := database.NewEntitiesDBHandler(db, embeddingDim, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create entities handler", err)
	}

	links, err := database.NewLinksDBHandler(db, false)
	if err != nil {
		db.Close()
		return nil, helper.NewError("create links handler", err)
	}

	return &Coref{
		DB:        db,
		Documents: documents,
		Entities:  entities,
		Links:     links,
		Resolver:  r,
		log:       logger,
	}, nil
}

// Close closes the database connection
func (c *Coref) Close() error {
	if c.DB != nil && c.DB.Instance != nil {
		return c.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the text pipeline for document processing
func (c *Coref) SetPipeline(pipeline *pipeline.Pipeline) {
	c.Pipeline = pipeline
}

// UseDefaultPipeline sets up NER, pronoun and description detection with copula
// propositions and entity name embeddings (all-MiniLM-L6-v2, 384 dimensions)
func (c *Coref) UseDefaultPipeline() error {
	ner, err := pipeline.NERDetector()
	if err != nil {
		return helper.NewError("create default mention detector", err)
	}
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	p := pipeline.NewPipeline(
		pipeline.SentenceSegmenter(),
		ner,
		pipeline.DescriptionDetector(pipeline.DefaultDescriptionNouns),
		pipeline.PronounDetector(),
	)
	p.SetPropositionBuilder(pipeline.CopulaPropositions())
	p.SetEmbedder(embedder)

	c.Pipeline = p
	return nil
}

// ProcessAndInsertDocument runs the pipeline over the document content, resolves the
// detected mentions and stores document, entities and merge links.
// The document's Content field is used for processing but not stored in the database.
func (c *Coref) ProcessAndInsertDocument(doc *model.Document) (*model.EntitySet, error) {
	if c.Pipeline == nil {
		return nil, helper.NewError("process document", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}
	if doc.Content == "" {
		return nil, helper.NewError("process document", fmt.Errorf("document content is empty"))
	}

	processed, err := c.Pipeline.Process(doc.Content, doc.Title)
	if err != nil {
		return nil, helper.NewError("process text", err)
	}
	doc.Sentences = processed.Sentences

	c.log.Info("Processed document", slog.String("title", doc.Title), slog.Int("sentences", len(doc.Sentences)), slog.Int("mentions", len(processed.Mentions())))

	return c.ResolveAndInsert(doc)
}

// ResolveAndInsert resolves an analysed document and stores document, entities and merge links.
// Entities stored earlier for the same document are replaced.
func (c *Coref) ResolveAndInsert(doc *model.Document) (*model.EntitySet, error) {
	set, err := c.resolve(doc)
	if err != nil {
		return nil, err
	}

	if c.Pipeline != nil {
		if err := c.Pipeline.EmbedEntities(set); err != nil {
			return nil, helper.NewError("embed entities", err)
		}
	}

	if doc.Language == "" {
		doc.Language = set.Language
	}
	if err := c.Documents.InsertDocument(doc); err != nil {
		return nil, helper.NewError("insert document", err)
	}
	if err := c.Entities.DeleteEntitiesByDocument(doc.RID); err != nil {
		return nil, helper.NewError("delete previous entities", err)
	}

	for i, entity := range set.Entities {
		if err := c.Entities.InsertEntity(entity); err != nil {
			return nil, helper.NewError(fmt.Sprintf("insert entity %d", i), err)
		}
	}
	for i, link := range set.Links {
		if err := c.Links.InsertLink(link); err != nil {
			return nil, helper.NewError(fmt.Sprintf("insert link %d", i), err)
		}
	}
	if err := c.Documents.UpdateDocumentResolution(doc, set); err != nil {
		return nil, helper.NewError("update document resolution", err)
	}

	c.log.Info("Inserted entity set", slog.String("document_id", doc.RID.String()), slog.Int("entities", len(set.Entities)), slog.Int("links", len(set.Links)))

	return set, nil
}

// Resolve resolves a document without storing anything
func (c *Coref) Resolve(doc *model.Document) (*model.EntitySet, error) {
	return c.resolve(doc)
}

func (c *Coref) resolve(doc *model.Document) (*model.EntitySet, error) {
	if c.Resolver == nil {
		return nil, helper.NewError("resolve document", fmt.Errorf("resolver not initialized"))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	set, err := c.Resolver.BuildEntitySet(doc)
	if err != nil {
		return nil, helper.NewError("resolve document", err)
	}
	return set, nil
}

// EntitySet loads the stored entities and merge links of a document
func (c *Coref) EntitySet(documentRID uuid.UUID) (*model.EntitySet, error) {
	doc, err := c.Documents.SelectDocument(documentRID)
	if err != nil {
		return nil, helper.NewError("select document", err)
	}

	entities, err := c.Entities.SelectEntitiesByDocument(documentRID)
	if err != nil {
		return nil, helper.NewError("select entities", err)
	}

	links, err := c.Links.SelectLinksByDocument(documentRID)
	if err != nil {
		return nil, helper.NewError("select links", err)
	}

	return &model.EntitySet{
		DocumentRID: doc.RID,
		Title:       doc.Title,
		Language:    doc.Language,
		Entities:    entities,
		Links:       links,
	}, nil
}

// SimilarEntities finds stored entities whose name embedding is close to the embedding of name
func (c *Coref) SimilarEntities(ctx context.Context, name string, limit int, threshold float64, entityType *model.EntityType) ([]*model.Entity, error) {
	if c.Pipeline == nil || c.Pipeline.Embedder == nil {
		return nil, helper.NewError("similar entities", fmt.Errorf("pipeline with embedder not set, use SetPipeline() first"))
	}
	if err := ctx.Err(); err != nil {
		return nil, helper.NewError("similar entities", err)
	}

	embedding, err := c.Pipeline.Embedder(name)
	if err != nil {
		return nil, helper.NewError("generate embedding", err)
	}

	return c.Entities.SelectEntitiesBySimilarity(embedding, limit, threshold, entityType)
}

// ChangeIndexType changes the entity embedding index between HNSW and IVFFlat
func (c *Coref) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	return c.Entities.ChangeIndexType(ctx, indexType, params)
}
