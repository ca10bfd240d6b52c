package ollama

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds Ollama client configuration
type Config struct {
	Host       string
	Model      string
	HTTPClient *http.Client
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	c.Host = strings.TrimRight(c.Host, "/")
	if !strings.HasPrefix(c.Host, "http://") && !strings.HasPrefix(c.Host, "https://") {
		return fmt.Errorf("ollama: host must start with http:// or https://, got %q", c.Host)
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// ollamaImpl is the internal implementation of IOllama
type ollamaImpl struct {
	host       string
	model      string
	httpClient *http.Client
}

// Message is one chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options are sampling options forwarded to the model
type Options struct {
	Temperature float64 `json:"temperature"`
}

// ChatRequest represents an Ollama chat request
type ChatRequest struct {
	System      string
	Messages    []Message
	Temperature float64
}

// ChatResponse represents an Ollama chat reply
type ChatResponse struct {
	Model   string
	Content string
	Usage   Usage
}

// Usage tracks token consumption
type Usage struct {
	PromptTokens int
	OutputTokens int
}

// Wire types for /api/chat
type chatRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
	Options  Options   `json:"options"`
}

type chatResponse struct {
	Model           string  `json:"model"`
	Message         Message `json:"message"`
	Done            bool    `json:"done"`
	PromptEvalCount int     `json:"prompt_eval_count"`
	EvalCount       int     `json:"eval_count"`
}
