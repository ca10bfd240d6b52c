package ollama

import "time"

const (
	// DefaultModel is the default Ollama model
	DefaultModel = "llama3.1:8b"

	// DefaultHost is the default Ollama endpoint
	DefaultHost = "http://localhost:11434"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 30 * time.Second

	chatPath = "/api/chat"
	tagsPath = "/api/tags"
)
