package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	"github.com/siherrmann/coref/sql"
)

// EntitiesDBHandlerFunctions defines the interface for Entities database operations.
type EntitiesDBHandlerFunctions interface {
	InsertEntity(entity *model.Entity) error
	SelectEntity(id uuid.UUID) (*model.Entity, error)
	SelectEntitiesByDocument(documentRID uuid.UUID) ([]*model.Entity, error)
	SelectEntitiesByType(entityType model.EntityType, limit int) ([]*model.Entity, error)
	SelectEntitiesBySearch(searchTerm string, entityType *model.EntityType, limit int) ([]*model.Entity, error)
	SelectEntitiesBySimilarity(embedding []float32, limit int, threshold float64, entityType *model.EntityType) ([]*model.Entity, error)
	UpdateEntityEmbedding(id uuid.UUID, embedding []float32) error
	DeleteEntity(id uuid.UUID) error
	DeleteEntitiesByDocument(documentRID uuid.UUID) error
}

// EntitiesDBHandler handles entity-related database operations
type EntitiesDBHandler struct {
	db *helper.Database
}

// NewEntitiesDBHandler creates a new entities database handler.
// The documents table must exist, embeddings are stored as vector(embeddingDim).
// If force is true, it will reload the SQL functions even if they already exist.
func NewEntitiesDBHandler(db *helper.Database, embeddingDim int, force bool) (*EntitiesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}
	if embeddingDim <= 0 {
		return nil, helper.NewError("embedding dimension validation", fmt.Errorf("%w: embedding dimension must be positive, got %d", helper.ErrMissingConfig, embeddingDim))
	}

	entitiesDbHandler := &EntitiesDBHandler{
		db: db,
	}

	err := sql.LoadEntitiesSql(entitiesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load entities sql", err)
	}

	err = entitiesDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized EntitiesDBHandler")

	return entitiesDbHandler, nil
}

// CreateTable creates the 'entities' table and its indexes if they do not exist.
func (h *EntitiesDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_entities($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing entities table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table entities")

	return nil
}

// InsertEntity inserts an entity or replaces the stored one with the same id
func (h *EntitiesDBHandler) InsertEntity(entity *model.Entity) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_entity($1, $2, $3, $4, $5, $6, $7)`,
		entity.ID,
		entity.DocumentRID,
		entity.Name,
		string(entity.Type),
		pq.Array(mentionIDsToInt64(entity.MentionIDs)),
		vectorParam(entity.Embedding),
		entity.Metadata,
	)

	err := scanEntity(row, entity)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectEntity retrieves an entity by ID
func (h *EntitiesDBHandler) SelectEntity(id uuid.UUID) (*model.Entity, error) {
	entity := &model.Entity{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_entity($1)`,
		id,
	)

	err := scanEntity(row, entity)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return entity, nil
}

// SelectEntitiesByDocument retrieves the entities of a document ordered by first mention
func (h *EntitiesDBHandler) SelectEntitiesByDocument(documentRID uuid.UUID) ([]*model.Entity, error) {
	return h.queryEntities(`SELECT * FROM select_entities_by_document($1)`, documentRID)
}

// SelectEntitiesByType retrieves entities by type
func (h *EntitiesDBHandler) SelectEntitiesByType(entityType model.EntityType, limit int) ([]*model.Entity, error) {
	return h.queryEntities(`SELECT * FROM select_entities_by_type($1, $2)`, string(entityType), limit)
}

// SelectEntitiesBySearch searches entities by name pattern, optionally restricted to a type
func (h *EntitiesDBHandler) SelectEntitiesBySearch(searchTerm string, entityType *model.EntityType, limit int) ([]*model.Entity, error) {
	return h.queryEntities(`SELECT * FROM search_entities($1, $2, $3)`, searchTerm, entityTypeParam(entityType), limit)
}

// SelectEntitiesBySimilarity performs a cosine similarity search over entity embeddings.
// If entityType is nil, entities of all types are searched.
func (h *EntitiesDBHandler) SelectEntitiesBySimilarity(embedding []float32, limit int, threshold float64, entityType *model.EntityType) ([]*model.Entity, error) {
	if len(embedding) == 0 {
		return nil, helper.NewError("similarity search", fmt.Errorf("embedding is empty"))
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_entities_by_similarity($1, $2, $3, $4)`,
		pgvector.NewVector(embedding),
		limit,
		threshold,
		entityTypeParam(entityType),
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var entities []*model.Entity
	for rows.Next() {
		entity := &model.Entity{}
		err := scanEntity(rows, entity, &entity.Similarity)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		entities = append(entities, entity)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return entities, nil
}

// UpdateEntityEmbedding sets the embedding of an entity
func (h *EntitiesDBHandler) UpdateEntityEmbedding(id uuid.UUID, embedding []float32) error {
	_, err := h.db.Instance.Exec(
		`SELECT update_entity_embedding($1, $2)`,
		id,
		vectorParam(embedding),
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteEntity deletes an entity by ID
func (h *EntitiesDBHandler) DeleteEntity(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_entity($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// DeleteEntitiesByDocument deletes all entities of a document
func (h *EntitiesDBHandler) DeleteEntitiesByDocument(documentRID uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_entities_by_document($1)`,
		documentRID,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *EntitiesDBHandler) queryEntities(query string, args ...interface{}) ([]*model.Entity, error) {
	rows, err := h.db.Instance.Query(query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var entities []*model.Entity
	for rows.Next() {
		entity := &model.Entity{}
		err := scanEntity(rows, entity)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		entities = append(entities, entity)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return entities, nil
}

func scanEntity(row scanner, entity *model.Entity, extra ...interface{}) error {
	var mentionIDs pq.Int64Array
	var embedding pq.Float32Array

	dest := []interface{}{
		&entity.ID,
		&entity.DocumentRID,
		&entity.Name,
		&entity.Type,
		&mentionIDs,
		&embedding,
		&entity.Metadata,
		&entity.CreatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	if err != nil {
		return err
	}

	entity.MentionIDs = make([]model.MentionID, len(mentionIDs))
	for i, id := range mentionIDs {
		entity.MentionIDs[i] = model.MentionID(id)
	}
	if len(embedding) > 0 {
		entity.Embedding = []float32(embedding)
	} else {
		entity.Embedding = nil
	}
	return nil
}

func mentionIDsToInt64(ids []model.MentionID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

// vectorParam returns nil for an empty embedding since pgvector rejects zero dimensions
func vectorParam(embedding []float32) interface{} {
	if len(embedding) == 0 {
		return nil
	}
	return pgvector.NewVector(embedding)
}

func entityTypeParam(entityType *model.EntityType) interface{} {
	if entityType == nil {
		return nil
	}
	return string(*entityType)
}
