package citation

import (
	"strings"
	"testing"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

func intPtr(n int) *int { return &n }

func testSources(indices ...int) []domain.Source {
	sources := make([]domain.Source, 0, len(indices))
	for _, idx := range indices {
		sources = append(sources, domain.Source{
			ID:      int64(idx * 10),
			Index:   idx,
			Page:    intPtr(idx * 11),
			Content: "passage content",
		})
	}
	return sources
}

func reassemble(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func citationIndices(segments []Segment) []int {
	var out []int
	for _, seg := range segments {
		if seg.IsCitation() {
			out = append(out, seg.Source.Index)
		}
	}
	return out
}

func TestResolveMatchesMarkersToSources(t *testing.T) {
	text := "Vitamin C helps immunity [1]. It also [2] aids absorption."
	segments := Resolve(text, testSources(1, 2))

	got := citationIndices(segments)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("expected citation indices [1 2], got %v", got)
	}
	if reassemble(segments) != text {
		t.Fatalf("segments do not reassemble input:\ngot:  %q\nwant: %q", reassemble(segments), text)
	}
}

func TestResolveLeavesUnresolvedMarkerLiteral(t *testing.T) {
	text := "This claim [9] has no source."
	segments := Resolve(text, testSources(1, 2, 3))

	if len(citationIndices(segments)) != 0 {
		t.Fatalf("expected no citations, got %v", citationIndices(segments))
	}
	if len(segments) != 1 || segments[0].Text != text {
		t.Fatalf("expected single literal segment, got %#v", segments)
	}
}

func TestResolveRepeatedIndexResolvesIndependently(t *testing.T) {
	segments := Resolve("First [1], and again [1].", testSources(1))

	got := citationIndices(segments)
	if len(got) != 2 || got[0] != 1 || got[1] != 1 {
		t.Fatalf("expected two independent citations for index 1, got %v", got)
	}
}

func TestResolveMixedResolvedAndUnresolved(t *testing.T) {
	text := "Known [2] and unknown [7] markers."
	segments := Resolve(text, testSources(1, 2))

	got := citationIndices(segments)
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only index 2 resolved, got %v", got)
	}
	if reassemble(segments) != text {
		t.Fatalf("literal text was not preserved: %q", reassemble(segments))
	}
}

func TestResolveNoMarkers(t *testing.T) {
	text := "Plain prose without citations."
	segments := Resolve(text, testSources(1))

	if len(segments) != 1 || segments[0].IsCitation() || segments[0].Text != text {
		t.Fatalf("expected single literal segment, got %#v", segments)
	}
}

func TestResolveEmptyText(t *testing.T) {
	if segments := Resolve("", testSources(1)); segments != nil {
		t.Fatalf("expected nil segments, got %#v", segments)
	}
}

func TestResolveWithoutSourcesKeepsEverythingLiteral(t *testing.T) {
	text := "Cites [1] and [2]."
	segments := Resolve(text, nil)

	if len(segments) != 1 || segments[0].Text != text {
		t.Fatalf("expected single literal segment, got %#v", segments)
	}
}
