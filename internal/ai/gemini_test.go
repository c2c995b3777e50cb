package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGeminiClient_Generate(t *testing.T) {
	var gotPath string
	var gotKey string
	var gotBody struct {
		Contents []struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"contents"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")

		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"light becomes sugar"}]}}]}`))
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "test-key", nil)

	text, err := c.Generate(context.Background(), "explain photosynthesis")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if text != "light becomes sugar" {
		t.Fatalf("text = %q", text)
	}

	if gotPath != "/v1beta/models/gemini-pro:generateContent" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Fatalf("key = %q", gotKey)
	}
	if len(gotBody.Contents) != 1 || len(gotBody.Contents[0].Parts) != 1 || gotBody.Contents[0].Parts[0].Text != "explain photosynthesis" {
		t.Fatalf("request body did not carry the prompt: %+v", gotBody)
	}
}

func TestGeminiClient_MissingKey(t *testing.T) {
	// no server: the key check must short-circuit before any network call
	c := NewGeminiClient("http://127.0.0.1:0", "", nil)

	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestGeminiClient_EmptyCandidates(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no candidates", body: `{"candidates":[]}`},
		{name: "no parts", body: `{"candidates":[{"content":{"parts":[]}}]}`},
		{name: "empty text", body: `{"candidates":[{"content":{"parts":[{"text":""}]}}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := NewGeminiClient(srv.URL, "test-key", nil)

			_, err := c.Generate(context.Background(), "anything")
			if !errors.Is(err, ErrEmptyCompletion) {
				t.Fatalf("err = %v, want ErrEmptyCompletion", err)
			}
		})
	}
}

func TestGeminiClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewGeminiClient(srv.URL, "test-key", nil)

	_, err := c.Generate(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected an error for a non-2xx response")
	}
	// the upstream body is the only debugging signal, keep it in the error
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("error should carry the upstream body, got %v", err)
	}
}
