package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

// AssembleContext formats retrieved passages into the prompt context block and
// the parallel source list. Citation index i belongs to passages[i-1]; the
// ranking produced by the store is kept as-is, with no dedup or thresholding.
// An unknown page renders as "?" in the context text and stays nil in the
// structured source.
func AssembleContext(passages []domain.Passage) (string, []domain.Source) {
	blocks := make([]string, 0, len(passages))
	sources := make([]domain.Source, 0, len(passages))

	for i, p := range passages {
		page := "?"
		if p.Page != nil {
			page = strconv.Itoa(*p.Page)
		}
		blocks = append(blocks, fmt.Sprintf("[%d] (Page %s) %s", i+1, page, p.Content))
		sources = append(sources, domain.Source{
			ID:         p.ID,
			Index:      i + 1,
			Page:       p.Page,
			Content:    p.Content,
			Similarity: p.Similarity,
			DocID:      p.DocID,
			ChunkIndex: p.ChunkIndex,
		})
	}

	return strings.Join(blocks, "\n\n"), sources
}
