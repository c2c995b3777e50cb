package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/padhaihub/tutorhub/internal/observability"
)

// OpenRouterClient calls the OpenRouter chat completions endpoint.
type OpenRouterClient struct {
	baseURL    string
	apiKey     string
	model      string
	referer    string
	title      string
	httpClient *http.Client
	prom       *observability.Prom
}

type OpenRouterConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	// Referer and Title feed OpenRouter's attribution headers.
	Referer string
	Title   string
}

func NewOpenRouterClient(cfg OpenRouterConfig, prom *observability.Prom) *OpenRouterClient {
	return &OpenRouterClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		referer:    cfg.Referer,
		title:      cfg.Title,
		httpClient: &http.Client{},
		prom:       prom,
	}
}

// Complete sends the prompt as a single user message and returns the first
// choice's content.
func (c *OpenRouterClient) Complete(ctx context.Context, prompt string) (string, error) {
	var text string

	call := func() error {
		body, _ := json.Marshal(map[string]any{
			"model": c.model,
			"messages": []map[string]string{
				{"role": "user", "content": prompt},
			},
		})

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/chat/completions", bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("openrouter: build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("HTTP-Referer", c.referer)
		req.Header.Set("X-Title", c.title)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("openrouter: %w", err)
		}
		defer resp.Body.Close()

		if err := checkResp(resp, "openrouter", "chat/completions"); err != nil {
			return err
		}

		var result struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("openrouter: decode: %w", err)
		}

		if len(result.Choices) == 0 || result.Choices[0].Message.Content == "" {
			return ErrEmptyCompletion
		}

		text = result.Choices[0].Message.Content
		return nil
	}

	var err error

	if c.prom != nil {
		err = c.prom.ObserveAI("openrouter", call)
	} else {
		err = call()
	}

	if err != nil {
		return "", err
	}

	return text, nil
}
