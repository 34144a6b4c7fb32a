package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

// Generation favors determinism and factuality over creativity.
const (
	defaultModel    = "gemini-2.0-flash"
	temperature     = 0.3
	topP            = 0.8
	maxOutputTokens = 2048
)

// Explorer answers queries with a Gemini backend. The backend is flaky by
// assumption: any generation failure is converted to a human-readable
// string so the chat layer always receives an answer, never an error,
// from this strategy.
type Explorer struct {
	model  llms.Model
	logger *slog.Logger
}

// New fails fast when the API key is missing; a misconfigured explorer
// must not be discovered on the first query.
func New(ctx context.Context, apiKey, modelName string) (*Explorer, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini explorer: google api key is required")
	}
	if modelName == "" {
		modelName = defaultModel
	}

	model, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(modelName),
	)
	if err != nil {
		return nil, fmt.Errorf("gemini explorer: init client: %w", err)
	}
	return NewWithModel(model), nil
}

// NewWithModel wires an explorer onto any llms.Model, used by tests and by
// deployments pointing at a compatible backend.
func NewWithModel(model llms.Model) *Explorer {
	return &Explorer{
		model:  model,
		logger: slog.Default().With("component", "gemini-explorer"),
	}
}

func (e *Explorer) Explore(ctx context.Context, query string, file *domain.FileView) (string, error) {
	prompt := buildPrompt(query, file.Content)

	answer, err := llms.GenerateFromSinglePrompt(ctx, e.model, prompt,
		llms.WithTemperature(temperature),
		llms.WithTopP(topP),
		llms.WithMaxTokens(maxOutputTokens),
	)
	if err != nil {
		e.logger.Error("gemini generation failed", "file_id", file.ID, "error", err)
		return fmt.Sprintf("Error exploring content with Gemini: %v", err), nil
	}
	return strings.TrimSpace(answer), nil
}
