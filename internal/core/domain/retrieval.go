package domain

// PassageFilter restricts similarity search to one reference document.
type PassageFilter struct {
	Source string
}

// Passage is one stored chunk of the reference document as returned by the
// similarity search, ranked by descending similarity for the current query.
type Passage struct {
	ID         int64
	DocID      string
	ChunkIndex int
	Content    string
	Page       *int
	SourceName string
	Similarity float64
}

// Source is the public projection of a retrieved passage. Index is the
// 1-based citation index assigned by retrieval rank; it is unique within one
// answer and is the only field answer text may reference by value.
type Source struct {
	ID         int64   `json:"id"`
	Index      int     `json:"index"`
	Page       *int    `json:"page"`
	Content    string  `json:"content"`
	Similarity float64 `json:"similarity"`
	DocID      string  `json:"doc_id"`
	ChunkIndex int     `json:"chunk_index"`
}

type Answer struct {
	Text    string   `json:"answer"`
	Sources []Source `json:"sources"`
}
