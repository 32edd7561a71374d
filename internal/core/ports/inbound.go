package ports

import (
	"context"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

// ChatService is the inbound contract for one grounded question/answer exchange.
type ChatService interface {
	Answer(ctx context.Context, message string) (*domain.Answer, error)
}
