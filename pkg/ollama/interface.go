package ollama

import "context"

// IOllama defines the interface for the Ollama chat API client.
// Implementations are safe for concurrent use.
type IOllama interface {
	// Chat sends a non-streaming chat request and returns the reply
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	// Ping checks that the server is reachable
	Ping(ctx context.Context) error

	// Model returns the model being used
	Model() string
}

// New creates a new Ollama client with the given configuration
func New(cfg Config) (IOllama, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOllamaImpl(cfg), nil
}
