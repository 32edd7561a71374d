// Package openai adapts the OpenAI embeddings and chat completions APIs to
// the pipeline's outbound ports. Every call is a single attempt; failures are
// reported as provider errors and never retried here.
package openai

import (
	"context"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

type Config struct {
	APIKey      string
	BaseURL     string
	EmbedModel  string
	ChatModel   string
	Temperature float32
}

type Client struct {
	api         *openai.Client
	embedModel  string
	chatModel   string
	temperature float32
}

func New(cfg Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		embedModel:  cfg.EmbedModel,
		chatModel:   cfg.ChatModel,
		temperature: cfg.Temperature,
	}
}

type Embedder struct {
	client *Client
}

func NewEmbedder(client *Client) *Embedder {
	return &Embedder{client: client}
}

// EmbedQuery embeds the exact query text with the fixed embedding model. The
// same model must have produced the stored passage vectors; a different model
// would put query and passages in incompatible spaces.
func (e *Embedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:          []string{text},
		Model:          openai.EmbeddingModel(e.client.embedModel),
		EncodingFormat: openai.EmbeddingEncodingFormatFloat,
	})
	if err != nil {
		return nil, wrapProviderError("embed query", err)
	}
	if len(resp.Data) == 0 {
		return nil, domain.WrapError(domain.ErrProvider, "embed query", errEmptyEmbedding)
	}
	return resp.Data[0].Embedding, nil
}

type Generator struct {
	client *Client
}

func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

// GenerateAnswer asks the completion model for a grounded answer under the
// fixed system instruction. Temperature is kept low to favor citation
// fidelity over creativity.
func (g *Generator) GenerateAnswer(ctx context.Context, question, contextText string) (string, error) {
	resp, err := g.client.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.client.chatModel,
		Temperature: g.client.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: buildUserMessage(question, contextText)},
		},
	})
	if err != nil {
		return "", wrapProviderError("generate answer", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.WrapError(domain.ErrProvider, "generate answer", errEmptyCompletion)
	}
	return resp.Choices[0].Message.Content, nil
}
