package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// Generator produces a text completion for a prompt. Implementations are
// opaque and possibly unavailable; callers treat every failure as non-fatal.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// HTTPGenerator calls an Ollama-style completion endpoint.
type HTTPGenerator struct {
	URL    string
	Model  string
	Client *http.Client
}

// NewHTTPGenerator builds a generator from CODEKEEP_AI_URL and
// CODEKEEP_AI_MODEL, with local-Ollama defaults.
func NewHTTPGenerator() *HTTPGenerator {
	url := os.Getenv("CODEKEEP_AI_URL")
	if url == "" {
		url = "http://localhost:11434/api/generate"
	}
	model := os.Getenv("CODEKEEP_AI_MODEL")
	if model == "" {
		model = "llama3.2"
	}
	return &HTTPGenerator{
		URL:    url,
		Model:  model,
		Client: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

// Generate sends the prompt and returns the completion text.
func (g *HTTPGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{Model: g.Model, Prompt: prompt, Stream: false})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generation endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Response == "" {
		return "", errors.New("empty response from model")
	}
	return result.Response, nil
}
