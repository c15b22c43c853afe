package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/coref/helper"
	"github.com/siherrmann/coref/model"
	loadSql "github.com/siherrmann/coref/sql"
)

// LinksDBHandlerFunctions defines the interface for merge link database operations.
type LinksDBHandlerFunctions interface {
	InsertLink(link *model.MergeLink) error
	SelectLink(id uuid.UUID) (*model.MergeLink, error)
	SelectLinksByEntity(entityID uuid.UUID) ([]*model.MergeLink, error)
	SelectLinksByDocument(documentRID uuid.UUID) ([]*model.MergeLink, error)
	CountLinksByMerger(documentRID *uuid.UUID) (map[string]int, error)
	DeleteLink(id uuid.UUID) error
}

// LinksDBHandler handles merge link database operations
type LinksDBHandler struct {
	db *helper.Database
}

// NewLinksDBHandler creates a new merge links database handler.
// The entities table must exist.
// If force is true, it will reload the SQL functions even if they already exist.
func NewLinksDBHandler(db *helper.Database, force bool) (*LinksDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	linksDbHandler := &LinksDBHandler{
		db: db,
	}

	err := loadSql.LoadLinksSql(linksDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load links sql", err)
	}

	err = linksDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized LinksDBHandler")

	return linksDbHandler, nil
}

// CreateTable creates the 'merge_links' table and its indexes if they do not exist.
func (h *LinksDBHandler) CreateTable() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_links();`)
	if err != nil {
		log.Panicf("error initializing merge_links table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table merge_links")

	return nil
}

// InsertLink inserts a merge link or updates the stored one with the same id
func (h *LinksDBHandler) InsertLink(link *model.MergeLink) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_link($1, $2, $3, $4, $5, $6, $7)`,
		link.ID,
		link.EntityID,
		int64(link.SourceMentionID),
		int64(link.TargetMentionID),
		link.Merger,
		link.Score,
		link.Metadata,
	)

	err := scanLink(row, link)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectLink retrieves a merge link by ID
func (h *LinksDBHandler) SelectLink(id uuid.UUID) (*model.MergeLink, error) {
	link := &model.MergeLink{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_link($1)`,
		id,
	)

	err := scanLink(row, link)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return link, nil
}

// SelectLinksByEntity retrieves the merge links of an entity
func (h *LinksDBHandler) SelectLinksByEntity(entityID uuid.UUID) ([]*model.MergeLink, error) {
	return h.queryLinks(`SELECT * FROM select_links_by_entity($1)`, entityID)
}

// SelectLinksByDocument retrieves the merge links of all entities of a document
func (h *LinksDBHandler) SelectLinksByDocument(documentRID uuid.UUID) ([]*model.MergeLink, error) {
	return h.queryLinks(`SELECT * FROM select_links_by_document($1)`, documentRID)
}

// CountLinksByMerger counts links per merger name, over all documents if documentRID is nil
func (h *LinksDBHandler) CountLinksByMerger(documentRID *uuid.UUID) (map[string]int, error) {
	var rid interface{}
	if documentRID != nil {
		rid = *documentRID
	}

	rows, err := h.db.Instance.Query(`SELECT * FROM count_links_by_merger($1)`, rid)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var merger string
		var count int
		if err := rows.Scan(&merger, &count); err != nil {
			return nil, helper.NewError("scan", err)
		}
		counts[merger] = count
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return counts, nil
}

// DeleteLink deletes a merge link by ID
func (h *LinksDBHandler) DeleteLink(id uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_link($1)`,
		id,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

func (h *LinksDBHandler) queryLinks(query string, args ...interface{}) ([]*model.MergeLink, error) {
	rows, err := h.db.Instance.Query(query, args...)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var links []*model.MergeLink
	for rows.Next() {
		link := &model.MergeLink{}
		err := scanLink(rows, link)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		links = append(links, link)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return links, nil
}

func scanLink(row scanner, link *model.MergeLink) error {
	return row.Scan(
		&link.ID,
		&link.EntityID,
		&link.SourceMentionID,
		&link.TargetMentionID,
		&link.Merger,
		&link.Score,
		&link.Metadata,
		&link.CreatedAt,
	)
}
