package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zenilop-regex/ai-tax-agent/config"
)

// ChatMessage is one role-tagged entry of a chat-style request.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []ChatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionRequest struct {
	Model       string  `json:"model,omitempty"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// completionResponse covers both request shapes: chat responses carry
// choices[].message.content, completion responses carry choices[].text.
type completionResponse struct {
	Choices []struct {
		Text    string `json:"text"`
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// LLMClient talks to a prioritized list of local text-completion
// endpoints (LM Studio style).
type LLMClient struct {
	cfg    config.LLMConfig
	http   *http.Client
	logger zerolog.Logger
}

// NewLLMClient creates a client for the configured endpoint list.
func NewLLMClient(cfg config.LLMConfig, logger zerolog.Logger) *LLMClient {
	return &LLMClient{
		cfg:    cfg,
		http:   &http.Client{},
		logger: logger,
	}
}

// Endpoints returns the configured endpoint list in priority order.
func (c *LLMClient) Endpoints() []config.LLMEndpoint {
	return c.cfg.Endpoints
}

// modelsURL derives the capability-listing URL used to probe an
// endpoint for availability.
func modelsURL(endpointURL string) string {
	u := strings.Replace(endpointURL, "/chat/completions", "/models", 1)
	return strings.Replace(u, "/completions", "/models", 1)
}

// Probe reports whether an endpoint answers its capability-listing URL
// within the short probe timeout.
func (c *LLMClient) Probe(ctx context.Context, ep config.LLMEndpoint) bool {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, modelsURL(ep.URL), nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Str("endpoint", ep.Name).Err(err).Msg("endpoint probe failed")
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode == http.StatusOK
}

// Complete submits the prompt to one endpoint using its request shape
// and returns the raw completion text.
func (c *LLMClient) Complete(ctx context.Context, ep config.LLMEndpoint, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.CallTimeout)
	defer cancel()

	var payload any
	switch ep.Type {
	case config.EndpointChat:
		payload = chatRequest{
			Model: c.cfg.Model,
			Messages: []ChatMessage{
				{Role: "system", Content: "You are a precise data extraction assistant. Return only valid JSON."},
				{Role: "user", Content: prompt},
			},
			Temperature: c.cfg.Temperature,
			MaxTokens:   c.cfg.MaxTokens,
		}
	case config.EndpointCompletion:
		payload = completionRequest{
			Model:       c.cfg.Model,
			Prompt:      prompt,
			Temperature: c.cfg.Temperature,
			MaxTokens:   c.cfg.MaxTokens,
		}
	default:
		return "", fmt.Errorf("unknown endpoint type %q", ep.Type)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ep.URL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("LLM call failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var parsed completionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("LLM response contained no choices")
	}

	if ep.Type == config.EndpointChat {
		return parsed.Choices[0].Message.Content, nil
	}
	return parsed.Choices[0].Text, nil
}
