// Package pgvector reads the precomputed passage index from Postgres through
// the match_documents similarity function.
package pgvector

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func OpenDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

type passageMetadata struct {
	Page   *int   `json:"page"`
	Source string `json:"source"`
}

// Search calls the match_documents function that backs the passage index. The
// function ranks by descending cosine similarity; rows are kept in the order
// the database returns them. Zero rows is a valid empty result.
func (s *Store) Search(ctx context.Context, queryVector []float32, limit int, filter domain.PassageFilter) ([]domain.Passage, error) {
	const query = `
SELECT id, doc_id, chunk_index, content, metadata, similarity
FROM match_documents($1::vector, $2, $3::jsonb)`

	filterJSON, err := json.Marshal(matchFilter(filter))
	if err != nil {
		return nil, domain.WrapError(domain.ErrProvider, "encode passage filter", err)
	}

	rows, err := s.db.QueryContext(ctx, query, vectorLiteral(queryVector), limit, string(filterJSON))
	if err != nil {
		return nil, domain.WrapError(domain.ErrProvider, "match documents", err)
	}
	defer rows.Close()

	passages := make([]domain.Passage, 0, limit)
	for rows.Next() {
		var (
			p        domain.Passage
			metadata []byte
		)
		if err := rows.Scan(&p.ID, &p.DocID, &p.ChunkIndex, &p.Content, &metadata, &p.Similarity); err != nil {
			return nil, domain.WrapError(domain.ErrProvider, "scan passage row", err)
		}
		if len(metadata) > 0 {
			var meta passageMetadata
			if err := json.Unmarshal(metadata, &meta); err != nil {
				return nil, domain.WrapError(domain.ErrProvider, "decode passage metadata", err)
			}
			p.Page = meta.Page
			p.SourceName = meta.Source
		}
		passages = append(passages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.WrapError(domain.ErrProvider, "iterate passage rows", err)
	}
	return passages, nil
}

func matchFilter(filter domain.PassageFilter) map[string]string {
	if filter.Source == "" {
		return map[string]string{}
	}
	return map[string]string{"source": filter.Source}
}

// vectorLiteral renders the query vector in pgvector's text input format.
func vectorLiteral(v []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, f := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(f), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
