package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiClient owns the connection to the Gemini API.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini client authenticated with apiKey.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client}, nil
}

// Close releases the underlying connection.
func (g *GeminiClient) Close() error {
	return g.client.Close()
}

// Generator returns a Generator backed by the named model.
func (g *GeminiClient) Generator(model string) *GeminiGenerator {
	return &GeminiGenerator{client: g.client, model: model}
}

// Embedder returns an EmbeddingProvider backed by the named model.
// dimensions > 0 enables vector size validation.
func (g *GeminiClient) Embedder(model string, dimensions int) *GeminiEmbedder {
	return &GeminiEmbedder{client: g.client, model: model, dimensions: dimensions}
}

// GeminiGenerator implements Generator.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// newModel returns a fresh model handle; handles are not shared between calls
// because SystemInstruction is per request.
func (g *GeminiGenerator) newModel(system string) *genai.GenerativeModel {
	model := g.client.GenerativeModel(g.model)
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	return model
}

// Generate implements Generator.
func (g *GeminiGenerator) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.newModel(system).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini generate: empty response")
	}
	return text, nil
}

// StreamGenerate implements Generator.
func (g *GeminiGenerator) StreamGenerate(ctx context.Context, system, prompt string, callback func(chunk string) error) error {
	iter := g.newModel(system).GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}
		if chunk := responseText(resp); chunk != "" {
			if err := callback(chunk); err != nil {
				return fmt.Errorf("callback error: %w", err)
			}
		}
	}
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// GeminiEmbedder implements EmbeddingProvider.
type GeminiEmbedder struct {
	client     *genai.Client
	model      string
	dimensions int
}

// Embed implements EmbeddingProvider.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := e.client.EmbeddingModel(e.model).EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding")
	}
	if e.dimensions > 0 && len(res.Embedding.Values) != e.dimensions {
		return nil, fmt.Errorf("embedding has size %d, expected %d", len(res.Embedding.Values), e.dimensions)
	}
	return res.Embedding.Values, nil
}
