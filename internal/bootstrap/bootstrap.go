package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/nutrition-assistant/internal/config"
	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
	"github.com/kirillkom/nutrition-assistant/internal/core/ports"
	"github.com/kirillkom/nutrition-assistant/internal/core/usecase"
	"github.com/kirillkom/nutrition-assistant/internal/infrastructure/llm/openai"
	"github.com/kirillkom/nutrition-assistant/internal/infrastructure/vector/pgvector"
	"github.com/kirillkom/nutrition-assistant/internal/observability/metrics"
)

const ServiceName = "nutrition-assistant-api"

type App struct {
	Config config.Config

	Chat    ports.ChatService
	Metrics *metrics.HTTPServerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := pgvector.OpenDB(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open passage store: %w", err)
	}
	store := pgvector.NewStore(db)

	llm := openai.New(openai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		EmbedModel:  cfg.EmbedModel,
		ChatModel:   cfg.ChatModel,
		Temperature: float32(cfg.ChatTemperature),
	})
	embedder := openai.NewEmbedder(llm)
	generator := openai.NewGenerator(llm)

	chatUC := usecase.NewChatUseCase(embedder, store, generator, cfg.RAGTopK, domain.PassageFilter{
		Source: cfg.RAGSourceFilter,
	})

	return &App{
		Config:  cfg,
		Chat:    chatUC,
		Metrics: metrics.NewHTTPServerMetrics(ServiceName),

		closeFn: func() {
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
