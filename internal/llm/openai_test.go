package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestChatClient_Generate(t *testing.T) {
	tests := []struct {
		name       string
		system     string
		serverResp func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantReply  string
		wantStatus int
		wantErr    bool
	}{
		{
			name:   "system and user messages",
			system: "You are a senior engineer",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var req chatRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				if r.URL.Path != "/v1/chat/completions" {
					t.Errorf("path = %s, want /v1/chat/completions", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
					t.Errorf("Authorization = %q, want Bearer test-key", got)
				}
				if req.Model != "test-model" || req.Stream {
					t.Errorf("request model = %q stream = %v", req.Model, req.Stream)
				}
				if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "What does main.go do?" {
					t.Errorf("messages = %+v", req.Messages)
				}
				_, _ = fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"It starts the server."},"finish_reason":"stop"}]}`)
			},
			wantReply: "It starts the server.",
		},
		{
			name: "no system message",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var req chatRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				if len(req.Messages) != 1 || req.Messages[0].Role != "user" {
					t.Errorf("messages = %+v, want a single user message", req.Messages)
				}
				_, _ = fmt.Fprint(w, `{"choices":[{"message":{"content":"ok"}}]}`)
			},
			wantReply: "ok",
		},
		{
			name: "no choices",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_, _ = fmt.Fprint(w, `{"choices":[]}`)
			},
			wantErr: true,
		},
		{
			name: "rate limited",
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				http.Error(w, "slow down", http.StatusTooManyRequests)
			},
			wantErr:    true,
			wantStatus: http.StatusTooManyRequests,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			client := NewChatClient(OpenAIOptions{BaseURL: server.URL + "/", APIKey: "test-key", Model: "test-model"})
			reply, err := client.Generate(context.Background(), tt.system, "What does main.go do?")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Generate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantStatus != 0 {
				var statusErr *StatusError
				if !errors.As(err, &statusErr) || statusErr.StatusCode != tt.wantStatus {
					t.Errorf("Generate() error = %v, want StatusError %d", err, tt.wantStatus)
				}
				if !IsTransient(err) {
					t.Errorf("IsTransient(%v) = false, want true", err)
				}
			}
			if reply != tt.wantReply {
				t.Errorf("Generate() = %q, want %q", reply, tt.wantReply)
			}
		})
	}
}

func TestChatClient_StreamGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Accept"); got != "text/event-stream" {
			t.Errorf("Accept = %q, want text/event-stream", got)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"The \"}}]}\n\n")
		_, _ = fmt.Fprint(w, ": keep-alive\n\n")
		_, _ = fmt.Fprint(w, "data: not json\n\n")
		_, _ = fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"router\"}}]}\n\n")
		_, _ = fmt.Fprint(w, "data: [DONE]\n\n")
		_, _ = fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"ignored\"}}]}\n\n")
	}))
	defer server.Close()

	client := NewChatClient(OpenAIOptions{BaseURL: server.URL, Model: "test-model"})
	var chunks []string
	err := client.StreamGenerate(context.Background(), "", "Which file handles routing?", func(chunk string) error {
		chunks = append(chunks, chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamGenerate() error = %v", err)
	}
	if got := strings.Join(chunks, "|"); got != "The |router" {
		t.Errorf("StreamGenerate() chunks = %q, want %q", got, "The |router")
	}
}

func TestReadDeltas(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		stopErr error
		wantErr bool
	}{
		{
			name: "finish reason ends the stream",
			body: "data: {\"choices\":[{\"delta\":{\"content\":\"a\"},\"finish_reason\":\"stop\"}]}\n" +
				"data: {\"choices\":[{\"delta\":{\"content\":\"b\"}}]}\n",
			want: "a",
		},
		{
			name: "eof without done",
			body: "data:{\"choices\":[{\"delta\":{\"content\":\"x\"}}]}\n",
			want: "x",
		},
		{
			name:    "callback error stops",
			body:    "data: {\"choices\":[{\"delta\":{\"content\":\"a\"}}]}\n",
			stopErr: errors.New("client gone"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			err := readDeltas(strings.NewReader(tt.body), func(chunk string) error {
				if tt.stopErr != nil {
					return tt.stopErr
				}
				b.WriteString(chunk)
				return nil
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("readDeltas() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.stopErr != nil && !errors.Is(err, tt.stopErr) {
				t.Errorf("readDeltas() error = %v, want wrapping %v", err, tt.stopErr)
			}
			if b.String() != tt.want {
				t.Errorf("readDeltas() = %q, want %q", b.String(), tt.want)
			}
		})
	}
}

func TestEmbeddingClient_Embed(t *testing.T) {
	tests := []struct {
		name       string
		dimensions int
		body       string
		status     int
		want       []float32
		wantErr    bool
	}{
		{name: "valid", dimensions: 3, body: `{"data":[{"index":0,"embedding":[0.5,0.25,1]}]}`, want: []float32{0.5, 0.25, 1}},
		{name: "any size when unset", dimensions: 0, body: `{"data":[{"index":0,"embedding":[1,2]}]}`, want: []float32{1, 2}},
		{name: "wrong size", dimensions: 3, body: `{"data":[{"index":0,"embedding":[1,2]}]}`, wantErr: true},
		{name: "empty data", dimensions: 3, body: `{"data":[]}`, wantErr: true},
		{name: "empty vector", dimensions: 3, body: `{"data":[{"index":0,"embedding":[]}]}`, wantErr: true},
		{name: "bad json", dimensions: 3, body: `{`, wantErr: true},
		{name: "unavailable", dimensions: 3, status: http.StatusServiceUnavailable, body: "loading model", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req embeddingRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				if r.URL.Path != "/v1/embeddings" || req.Model != "embed-model" || req.Input != "summary of main.go" {
					t.Errorf("request = %s %+v", r.URL.Path, req)
				}
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewEmbeddingClient(OpenAIOptions{BaseURL: server.URL, Model: "embed-model"}, tt.dimensions)
			got, err := client.Embed(context.Background(), "summary of main.go")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Embed() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Embed() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Embed()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
