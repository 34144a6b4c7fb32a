package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/tmc/langchaingo/llms"

	"github.com/mkravets/smart-file-search/internal/core/domain"
)

type modelFake struct {
	answer   string
	err      error
	prompt   string
	requests int
}

func (f *modelFake) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.requests++
	if len(messages) > 0 && len(messages[0].Parts) > 0 {
		if text, ok := messages[0].Parts[0].(llms.TextContent); ok {
			f.prompt = text.Text
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.answer}},
	}, nil
}

func (f *modelFake) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := f.GenerateContent(ctx, []llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)}, options...)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func testView() *domain.FileView {
	return &domain.FileView{ID: "abc", Content: "the answer is 42"}
}

func TestExploreReturnsModelAnswer(t *testing.T) {
	model := &modelFake{answer: "  42  "}
	explorer := NewWithModel(model)

	answer, err := explorer.Explore(context.Background(), "what is the answer?", testView())
	if err != nil {
		t.Fatalf("Explore() error = %v", err)
	}
	if answer != "42" {
		t.Fatalf("answer = %q", answer)
	}
	if !strings.Contains(model.prompt, "INSTRUCTIONS:") || !strings.Contains(model.prompt, "DOCUMENT CONTENT:") {
		t.Fatalf("prompt missing sections: %q", model.prompt)
	}
	if !strings.Contains(model.prompt, "what is the answer?") || !strings.Contains(model.prompt, "the answer is 42") {
		t.Fatalf("prompt missing query or content: %q", model.prompt)
	}
}

func TestExploreBackendFailureReturnsErrorString(t *testing.T) {
	model := &modelFake{err: errors.New("quota exceeded")}
	explorer := NewWithModel(model)

	answer, err := explorer.Explore(context.Background(), "q", testView())
	if err != nil {
		t.Fatalf("Explore() must not return an error, got %v", err)
	}
	if !strings.Contains(answer, "Error exploring content") {
		t.Fatalf("expected error marker in answer, got %q", answer)
	}
	if !strings.Contains(answer, "quota exceeded") {
		t.Fatalf("expected cause in answer, got %q", answer)
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), "  ", ""); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}

func TestBuildPromptDirectsAnswerFromContentOnly(t *testing.T) {
	prompt := buildPrompt("q", "c")
	if !strings.Contains(prompt, "based solely on the document content") {
		t.Fatalf("prompt missing grounding directive: %q", prompt)
	}
	if !strings.Contains(prompt, "If the answer is not in the document, say so clearly.") {
		t.Fatalf("prompt missing absence directive: %q", prompt)
	}
}
