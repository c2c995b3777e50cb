package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/padhaihub/tutorhub/internal/observability"
)

// GeminiClient calls the Gemini generateContent endpoint over HTTP.
// The zero-value http.Client carries no timeout: a slow provider holds the
// request open until the caller's context is done.
type GeminiClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	prom       *observability.Prom
}

func NewGeminiClient(baseURL, apiKey string, prom *observability.Prom) *GeminiClient {
	return &GeminiClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		prom:       prom,
	}
}

// Generate sends the prompt and returns the first candidate's text.
func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	var text string

	call := func() error {
		body, _ := json.Marshal(map[string]any{
			"contents": []map[string]any{
				{"parts": []map[string]string{{"text": prompt}}},
			},
		})

		endpoint := c.baseURL + "/v1beta/models/gemini-pro:generateContent?key=" + url.QueryEscape(c.apiKey)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("gemini: build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("gemini: %w", err)
		}
		defer resp.Body.Close()

		if err := checkResp(resp, "gemini", "generateContent"); err != nil {
			return err
		}

		var result struct {
			Candidates []struct {
				Content struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"content"`
			} `json:"candidates"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("gemini: decode: %w", err)
		}

		if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 || result.Candidates[0].Content.Parts[0].Text == "" {
			return ErrEmptyCompletion
		}

		text = result.Candidates[0].Content.Parts[0].Text
		return nil
	}

	var err error

	if c.prom != nil {
		err = c.prom.ObserveAI("gemini", call)
	} else {
		err = call()
	}

	if err != nil {
		return "", err
	}

	return text, nil
}

// checkResp returns an error carrying the upstream body when the status is
// not 2xx, which is the only debugging signal these providers give.
func checkResp(resp *http.Response, provider, op string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("%s %s returned %d: %s", provider, op, resp.StatusCode, string(body))
}
