package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAIOptions configures a backend speaking the OpenAI HTTP dialect
// (llama.cpp server, vLLM, OpenAI itself).
type OpenAIOptions struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	HTTPClient  *http.Client
}

type endpoint struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func newEndpoint(opts OpenAIOptions) endpoint {
	hc := opts.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	return endpoint{baseURL: strings.TrimRight(opts.BaseURL, "/"), apiKey: opts.APIKey, http: hc}
}

// post sends payload as JSON and returns the response when the status is 200.
// Any other status becomes a *StatusError so retry classification can see it.
func (e endpoint) post(ctx context.Context, path string, payload any, stream bool) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}
	if stream {
		req.Header.Set("Accept", "text/event-stream")
	}

	resp, err := e.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	return resp, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

// ChatClient implements Generator over /v1/chat/completions.
type ChatClient struct {
	endpoint
	model       string
	maxTokens   int
	temperature float32
}

// NewChatClient creates a chat generator.
func NewChatClient(opts OpenAIOptions) *ChatClient {
	return &ChatClient{
		endpoint:    newEndpoint(opts),
		model:       opts.Model,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

func (c *ChatClient) request(system, prompt string, stream bool) chatRequest {
	msgs := make([]chatMessage, 0, 2)
	if system != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: system})
	}
	return chatRequest{
		Model:       c.model,
		Messages:    append(msgs, chatMessage{Role: "user", Content: prompt}),
		Stream:      stream,
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}
}

// Generate implements Generator.
func (c *ChatClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.post(ctx, "/v1/chat/completions", c.request(system, prompt, false), false)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return out.Choices[0].Message.Content, nil
}

// StreamGenerate implements Generator.
func (c *ChatClient) StreamGenerate(ctx context.Context, system, prompt string, callback func(chunk string) error) error {
	resp, err := c.post(ctx, "/v1/chat/completions", c.request(system, prompt, true), true)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	return readDeltas(resp.Body, callback)
}

// readDeltas walks an SSE body of chat chunks until [DONE], a finish reason
// or EOF. Lines that are not data events or do not decode are ignored.
func readDeltas(r io.Reader, callback func(chunk string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		data, ok := strings.CutPrefix(scanner.Text(), "data:")
		if !ok {
			continue
		}
		data = strings.TrimSpace(data)
		if data == "[DONE]" {
			return nil
		}

		var chunk chatChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil || len(chunk.Choices) == 0 {
			continue
		}
		if text := chunk.Choices[0].Delta.Content; text != "" {
			if err := callback(text); err != nil {
				return fmt.Errorf("callback error: %w", err)
			}
		}
		if chunk.Choices[0].FinishReason != "" {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stream: %w", err)
	}
	return nil
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// EmbeddingClient implements EmbeddingProvider over /v1/embeddings.
type EmbeddingClient struct {
	endpoint
	model      string
	dimensions int
}

// NewEmbeddingClient creates an embedding provider. Vectors whose length is
// not dimensions are rejected; dimensions <= 0 accepts any length.
func NewEmbeddingClient(opts OpenAIOptions, dimensions int) *EmbeddingClient {
	return &EmbeddingClient{endpoint: newEndpoint(opts), model: opts.Model, dimensions: dimensions}
}

// Embed implements EmbeddingProvider.
func (c *EmbeddingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.post(ctx, "/v1/embeddings", embeddingRequest{Model: c.model, Input: text}, false)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var out embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	for _, d := range out.Data {
		if d.Index != 0 {
			continue
		}
		if len(d.Embedding) == 0 {
			break
		}
		if c.dimensions > 0 && len(d.Embedding) != c.dimensions {
			return nil, fmt.Errorf("embedding has size %d, expected %d", len(d.Embedding), c.dimensions)
		}
		vec := make([]float32, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		return vec, nil
	}
	return nil, errors.New("no embedding returned")
}
