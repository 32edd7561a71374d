package pgvector

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db), mock
}

func passageRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "doc_id", "chunk_index", "content", "metadata", "similarity"})
}

func TestSearchMapsRowsToPassages(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery("SELECT id, doc_id, chunk_index, content, metadata, similarity").
		WithArgs("[0.015,-0.25]", 8, `{"source":"human-nutrition-text.pdf"}`).
		WillReturnRows(passageRows().
			AddRow(int64(11), "doc-1", 4, "Vitamin C supports immunity.", []byte(`{"page":12,"source":"human-nutrition-text.pdf"}`), 0.91).
			AddRow(int64(27), "doc-1", 9, "Iron absorption.", []byte(`{"source":"human-nutrition-text.pdf"}`), 0.83).
			AddRow(int64(30), "doc-1", 10, "Minerals.", nil, 0.78))

	passages, err := store.Search(context.Background(), []float32{0.015, -0.25}, 8, domain.PassageFilter{
		Source: "human-nutrition-text.pdf",
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(passages) != 3 {
		t.Fatalf("expected 3 passages, got %d", len(passages))
	}
	first := passages[0]
	if first.ID != 11 || first.DocID != "doc-1" || first.ChunkIndex != 4 || first.Similarity != 0.91 {
		t.Fatalf("unexpected first passage: %+v", first)
	}
	if first.Page == nil || *first.Page != 12 {
		t.Fatalf("expected page 12, got %v", first.Page)
	}
	if first.SourceName != "human-nutrition-text.pdf" {
		t.Fatalf("unexpected source name %q", first.SourceName)
	}
	if passages[1].Page != nil {
		t.Fatalf("expected nil page for metadata without page, got %v", *passages[1].Page)
	}
	if passages[2].Page != nil || passages[2].SourceName != "" {
		t.Fatalf("expected empty metadata handling, got %+v", passages[2])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSearchEmptyResultIsNotAnError(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery("SELECT id, doc_id, chunk_index, content, metadata, similarity").
		WithArgs("[1]", 8, "{}").
		WillReturnRows(passageRows())

	passages, err := store.Search(context.Background(), []float32{1}, 8, domain.PassageFilter{})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(passages) != 0 {
		t.Fatalf("expected empty result, got %d", len(passages))
	}
}

func TestSearchWrapsQueryFailure(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery("SELECT id, doc_id, chunk_index, content, metadata, similarity").
		WillReturnError(errors.New("connection refused"))

	_, err := store.Search(context.Background(), []float32{0.1}, 8, domain.PassageFilter{Source: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestSearchWrapsMalformedMetadata(t *testing.T) {
	store, mock := newStoreWithMock(t)

	mock.ExpectQuery("SELECT id, doc_id, chunk_index, content, metadata, similarity").
		WillReturnRows(passageRows().
			AddRow(int64(1), "doc-1", 0, "text", []byte("{not json"), 0.9))

	_, err := store.Search(context.Background(), []float32{0.1}, 8, domain.PassageFilter{Source: "x"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !domain.IsKind(err, domain.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestVectorLiteral(t *testing.T) {
	if got := vectorLiteral([]float32{0.015, -0.25, 3}); got != "[0.015,-0.25,3]" {
		t.Fatalf("unexpected literal %q", got)
	}
	if got := vectorLiteral(nil); got != "[]" {
		t.Fatalf("unexpected empty literal %q", got)
	}
}
