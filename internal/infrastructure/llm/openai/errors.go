package openai

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kirillkom/nutrition-assistant/internal/core/domain"
)

var (
	errEmptyEmbedding  = errors.New("response contains no embedding")
	errEmptyCompletion = errors.New("response contains no choices")
)

// wrapProviderError tags API failures with the provider error kind and keeps
// the upstream status and message when the client exposes them.
func wrapProviderError(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return domain.WrapError(domain.ErrProvider, operation,
			fmt.Errorf("openai status %d: %s", apiErr.HTTPStatusCode, apiErr.Message))
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return domain.WrapError(domain.ErrProvider, operation,
			fmt.Errorf("openai status %d: %s", reqErr.HTTPStatusCode, string(reqErr.Body)))
	}

	return domain.WrapError(domain.ErrProvider, operation, err)
}
