package usecase

import (
	"reflect"
	"testing"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

func intPtr(n int) *int { return &n }

func TestAssembleContextAssignsSequentialIndices(t *testing.T) {
	passages := []domain.Passage{
		{ID: 11, DocID: "doc-1", ChunkIndex: 4, Content: "Vitamin C supports immunity.", Page: intPtr(12), Similarity: 0.91},
		{ID: 27, DocID: "doc-1", ChunkIndex: 9, Content: "Iron absorption improves with vitamin C.", Page: nil, Similarity: 0.83},
		{ID: 30, DocID: "doc-1", ChunkIndex: 10, Content: "Minerals are inorganic nutrients.", Page: intPtr(7), Similarity: 0.78},
	}

	contextText, sources := AssembleContext(passages)

	want := "[1] (Page 12) Vitamin C supports immunity.\n\n" +
		"[2] (Page ?) Iron absorption improves with vitamin C.\n\n" +
		"[3] (Page 7) Minerals are inorganic nutrients."
	if contextText != want {
		t.Fatalf("context mismatch:\ngot:  %q\nwant: %q", contextText, want)
	}

	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
	for i, src := range sources {
		if src.Index != i+1 {
			t.Fatalf("source %d: expected index %d, got %d", i, i+1, src.Index)
		}
	}
	if sources[0].Page == nil || *sources[0].Page != 12 {
		t.Fatalf("expected source 1 page 12, got %v", sources[0].Page)
	}
	if sources[1].Page != nil {
		t.Fatalf("expected source 2 page nil, got %v", *sources[1].Page)
	}
	if sources[0].ID != 11 || sources[0].DocID != "doc-1" || sources[0].ChunkIndex != 4 {
		t.Fatalf("source 1 lost passage identity: %+v", sources[0])
	}
	if sources[0].Similarity != 0.91 {
		t.Fatalf("expected source 1 similarity 0.91, got %f", sources[0].Similarity)
	}
}

func TestAssembleContextEmptyInput(t *testing.T) {
	contextText, sources := AssembleContext(nil)
	if contextText != "" {
		t.Fatalf("expected empty context, got %q", contextText)
	}
	if len(sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(sources))
	}
}

func TestAssembleContextIsDeterministic(t *testing.T) {
	passages := []domain.Passage{
		{ID: 1, DocID: "doc-1", ChunkIndex: 0, Content: "Proteins are built from amino acids.", Page: intPtr(101), Similarity: 0.9},
		{ID: 2, DocID: "doc-1", ChunkIndex: 1, Content: "Fats store energy.", Similarity: 0.8},
	}

	firstContext, firstSources := AssembleContext(passages)
	secondContext, secondSources := AssembleContext(passages)

	if firstContext != secondContext {
		t.Fatalf("context differs between identical calls")
	}
	if !reflect.DeepEqual(firstSources, secondSources) {
		t.Fatalf("sources differ between identical calls")
	}
}
