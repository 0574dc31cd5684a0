package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultGeminiModel is the generation model used when none is configured.
	DefaultGeminiModel = "gemini-2.5-flash"
	// DefaultGeminiEmbeddingModel is the embedding model used when none is configured.
	DefaultGeminiEmbeddingModel = "text-embedding-004"
)

// ErrNoCandidates is returned when the generation response carries no usable
// candidate text.
var ErrNoCandidates = errors.New("no candidates returned by model")

// GeminiClient wraps the Google GenAI client for embeddings, generation, and
// token counting.
type GeminiClient struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

// GeminiConfig holds configuration for GeminiClient.
type GeminiConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel string
}

// NewGeminiClient creates a Gemini client. The caller owns it and must Close
// it at shutdown.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	embeddingModel := cfg.EmbeddingModel
	if embeddingModel == "" {
		embeddingModel = DefaultGeminiEmbeddingModel
	}

	return &GeminiClient{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
	}, nil
}

// Close releases the underlying client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// GenerateEmbedding generates an embedding vector for the given text.
func (c *GeminiClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	res, err := c.client.EmbeddingModel(c.embeddingModel).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, errors.New("empty embedding returned")
	}
	return res.Embedding.Values, nil
}

// GenerateAnswer sends the prompt to the generation model and returns the
// first candidate's text. Prompt and completion tokens are counted with
// separate CountTokens calls so the numbers match what was actually sent and
// received.
func (c *GeminiClient) GenerateAnswer(ctx context.Context, prompt string) (*Generation, error) {
	model := c.client.GenerativeModel(c.model)

	promptTokens, err := c.countTokens(ctx, model, prompt)
	if err != nil {
		return nil, err
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	text := firstCandidateText(resp)
	if text == "" {
		return nil, ErrNoCandidates
	}

	completionTokens, err := c.countTokens(ctx, model, text)
	if err != nil {
		return nil, err
	}

	return &Generation{
		Text:             text,
		Model:            c.model,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
	}, nil
}

func (c *GeminiClient) countTokens(ctx context.Context, model *genai.GenerativeModel, text string) (int, error) {
	resp, err := model.CountTokens(ctx, genai.Text(text))
	if err != nil {
		return 0, fmt.Errorf("failed to count tokens: %w", err)
	}
	return int(resp.TotalTokens), nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
