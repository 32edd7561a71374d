package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
	"github.com/kirillkom/nutrition-assistant/internal/core/ports"
)

const noContextAnswer = "I couldn't find relevant information about that in the nutrition textbook. " +
	"Try asking about topics like vitamins, minerals, digestion, proteins, or dietary guidelines!"

type ChatUseCase struct {
	embedder  ports.Embedder
	store     ports.PassageStore
	generator ports.AnswerGenerator
	topK      int
	filter    domain.PassageFilter
}

func NewChatUseCase(
	embedder ports.Embedder,
	store ports.PassageStore,
	generator ports.AnswerGenerator,
	topK int,
	filter domain.PassageFilter,
) *ChatUseCase {
	if topK <= 0 {
		topK = 8
	}
	return &ChatUseCase{
		embedder:  embedder,
		store:     store,
		generator: generator,
		topK:      topK,
		filter:    filter,
	}
}

// Answer runs the query pipeline: embed, retrieve, assemble, generate.
// Stages are strictly sequential and fail fast; no stage is retried. An empty
// retrieval short-circuits into a friendly no-context answer with an empty
// source list, which is a success outcome.
func (uc *ChatUseCase) Answer(ctx context.Context, message string) (*domain.Answer, error) {
	question := strings.TrimSpace(message)
	if question == "" {
		return nil, domain.WrapError(domain.ErrEmptyQuery, "validate query", errors.New("message must not be blank"))
	}

	queryVector, err := uc.embedder.EmbedQuery(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	passages, err := uc.store.Search(ctx, queryVector, uc.topK, uc.filter)
	if err != nil {
		return nil, fmt.Errorf("search passages: %w", err)
	}

	contextText, sources := AssembleContext(passages)
	if contextText == "" {
		return &domain.Answer{Text: noContextAnswer, Sources: []domain.Source{}}, nil
	}

	answerText, err := uc.generator.GenerateAnswer(ctx, question, contextText)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &domain.Answer{Text: answerText, Sources: sources}, nil
}
