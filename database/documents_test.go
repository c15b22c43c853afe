package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/coref/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsDocument(docs []*model.Document, rid uuid.UUID) bool {
	for _, doc := range docs {
		if doc.RID == rid {
			return true
		}
	}
	return false
}

func TestDocumentsNewDocumentsDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewDocumentsDBHandler", func(t *testing.T) {
		documents, err := NewDocumentsDBHandler(database, true)
		assert.NoError(t, err, "Expected NewDocumentsDBHandler to not return an error")
		require.NotNil(t, documents, "Expected NewDocumentsDBHandler to return a non-nil instance")
		require.NotNil(t, documents.db.Instance, "Expected a non-nil database connection instance")
	})

	t.Run("Invalid call NewDocumentsDBHandler with nil database", func(t *testing.T) {
		_, err := NewDocumentsDBHandler(nil, false)
		assert.ErrorContains(t, err, "database connection is nil")
	})
}

func TestDocumentsInsert(t *testing.T) {
	database := initDB(t)
	documents, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)

	t.Run("Insert document without RID", func(t *testing.T) {
		doc := &model.Document{
			Title:    "Trade talks",
			Source:   "reuters/0001.json",
			Language: model.LanguageEnglish,
			Metadata: model.Metadata{"desk": "economy", "year": 2024},
		}

		err := documents.InsertDocument(doc)
		require.NoError(t, err, "Expected InsertDocument to not return an error")
		defer documents.DeleteDocument(doc.RID)

		assert.NotEqual(t, uuid.Nil, doc.RID, "Expected the database to generate a RID")
		assert.Equal(t, model.LanguageEnglish, doc.Language)
		assert.Nil(t, doc.ResolvedAt, "Expected a new document to be unresolved")
		assert.Zero(t, doc.EntityCount)
		assert.WithinDuration(t, time.Now(), doc.CreatedAt, 2*time.Second)
	})

	t.Run("Insert document with prepared RID twice", func(t *testing.T) {
		doc := &model.Document{Title: "Deterministic", Content: "John Smith arrived.", Metadata: model.Metadata{}}
		require.NoError(t, doc.Prepare(), "Expected Prepare to derive a RID")
		rid := doc.RID

		require.NoError(t, documents.InsertDocument(doc))
		defer documents.DeleteDocument(rid)
		firstID := doc.ID
		assert.Equal(t, rid, doc.RID, "Expected the prepared RID to be kept")

		doc.Source = "second.txt"
		require.NoError(t, documents.InsertDocument(doc))
		assert.Equal(t, firstID, doc.ID, "Expected the second insert to update the same row")
		assert.Equal(t, "second.txt", doc.Source)
	})
}

func TestDocumentsSelect(t *testing.T) {
	database := initDB(t)
	documents, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)

	prefix := "SelectCase" + uuid.NewString()[:8]
	var inserted []*model.Document
	for i := 0; i < 4; i++ {
		inserted = append(inserted, insertTestDocument(t, documents, fmt.Sprintf("%s %d", prefix, i)))
	}
	other := insertTestDocument(t, documents, "Unrelated")
	defer func() {
		for _, doc := range append(inserted, other) {
			documents.DeleteDocument(doc.RID)
		}
	}()

	t.Run("Select by RID", func(t *testing.T) {
		doc, err := documents.SelectDocument(inserted[0].RID)
		require.NoError(t, err)
		assert.Equal(t, inserted[0].Title, doc.Title)
		assert.Equal(t, inserted[0].ID, doc.ID)
	})

	t.Run("Select unknown RID fails", func(t *testing.T) {
		_, err := documents.SelectDocument(uuid.New())
		assert.Error(t, err)
	})

	t.Run("Select all pages by creation time", func(t *testing.T) {
		page, err := documents.SelectAllDocuments(nil, 2)
		require.NoError(t, err)
		require.Len(t, page, 2)

		next, err := documents.SelectAllDocuments(&page[1].CreatedAt, 100)
		require.NoError(t, err)
		for _, doc := range next {
			assert.True(t, doc.CreatedAt.Before(page[1].CreatedAt), "Expected the next page to start before the cursor")
		}
	})

	t.Run("Search by title", func(t *testing.T) {
		results, err := documents.SelectDocumentsBySearch(prefix, 10)
		require.NoError(t, err)
		assert.Len(t, results, 4)
		assert.False(t, containsDocument(results, other.RID))
	})
}

func TestDocumentsResolution(t *testing.T) {
	database := initDB(t)
	documents, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)

	doc := insertTestDocument(t, documents, "Resolution")
	defer documents.DeleteDocument(doc.RID)

	t.Run("New document is unresolved", func(t *testing.T) {
		pending, err := documents.SelectUnresolvedDocuments(1000)
		require.NoError(t, err)
		assert.True(t, containsDocument(pending, doc.RID), "Expected the document to be pending")
	})

	t.Run("Record resolution", func(t *testing.T) {
		set := &model.EntitySet{
			Language: model.LanguageGeneric,
			Entities: []*model.Entity{{Name: "John Smith"}, {Name: "Jane Doe"}},
			Links:    []*model.MergeLink{{SourceMentionID: 0, TargetMentionID: 2}},
		}

		err := documents.UpdateDocumentResolution(doc, set)
		require.NoError(t, err)
		assert.Equal(t, 2, doc.EntityCount)
		assert.Equal(t, 1, doc.LinkCount)
		assert.Equal(t, model.LanguageGeneric, doc.Language, "Expected the resolver language to be stored")
		require.NotNil(t, doc.ResolvedAt)
		assert.WithinDuration(t, time.Now(), *doc.ResolvedAt, 2*time.Second)

		pending, err := documents.SelectUnresolvedDocuments(1000)
		require.NoError(t, err)
		assert.False(t, containsDocument(pending, doc.RID), "Expected the document to leave the pending list")
	})
}

func TestDocumentsUpdate(t *testing.T) {
	database := initDB(t)
	documents, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)

	doc := insertTestDocument(t, documents, "Original Title")
	defer documents.DeleteDocument(doc.RID)

	doc.Title = "Updated Title"
	doc.Source = "updated.txt"
	doc.Metadata = model.Metadata{"version": 2}
	require.NoError(t, documents.UpdateDocument(doc))

	stored, err := documents.SelectDocument(doc.RID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", stored.Title)
	assert.Equal(t, "updated.txt", stored.Source)
	assert.Equal(t, float64(2), stored.Metadata["version"], "Expected metadata to be updated")
}

func TestDocumentsDelete(t *testing.T) {
	database := initDB(t)
	documents, err := NewDocumentsDBHandler(database, true)
	require.NoError(t, err)

	doc := insertTestDocument(t, documents, "Deleted")
	require.NoError(t, documents.DeleteDocument(doc.RID))

	_, err = documents.SelectDocument(doc.RID)
	assert.Error(t, err, "Expected the deleted document to be gone")
}
