package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// newOllamaImpl creates a new Ollama implementation
func newOllamaImpl(cfg Config) *ollamaImpl {
	return &ollamaImpl{
		host:       cfg.Host,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}
}

// Chat sends a chat request to the Ollama API
func (o *ollamaImpl) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	body, err := json.Marshal(o.transformRequest(req))
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+chatPath, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("ollama: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: API call failed: %v", ErrTransient, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var wire chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("ollama: failed to decode response: %w", err)
	}
	if wire.Message.Content == "" {
		return nil, ErrEmptyReply
	}

	return &ChatResponse{
		Model:   wire.Model,
		Content: wire.Message.Content,
		Usage: Usage{
			PromptTokens: wire.PromptEvalCount,
			OutputTokens: wire.EvalCount,
		},
	}, nil
}

// Ping lists local models, which only succeeds when the server is up
func (o *ollamaImpl) Ping(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, o.host+tagsPath, nil)
	if err != nil {
		return fmt.Errorf("ollama: failed to create request: %w", err)
	}

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("%w: ping failed: %v", ErrTransient, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp)
}

// Model returns the model being used
func (o *ollamaImpl) Model() string {
	return o.model
}

func (o *ollamaImpl) transformRequest(req *ChatRequest) *chatRequest {
	wire := &chatRequest{
		Model:    o.model,
		Stream:   false,
		Options:  Options{Temperature: req.Temperature},
		Messages: make([]Message, 0, len(req.Messages)+1),
	}
	if req.System != "" {
		wire.Messages = append(wire.Messages, Message{Role: "system", Content: req.System})
	}
	wire.Messages = append(wire.Messages, req.Messages...)
	return wire
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("%w: API error %d: %s", ErrTransient, resp.StatusCode, string(raw))
	}
	return fmt.Errorf("ollama: API error %d: %s", resp.StatusCode, string(raw))
}
