package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/vanguard/internal/constants"
	"github.com/julianstephens/vanguard/internal/models"
)

func TestNewClientOllama(t *testing.T) {
	client, err := NewClient(Config{Provider: "ollama", Model: "llama3.2"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	o, ok := client.(*Ollama)
	if !ok {
		t.Fatalf("expected *Ollama, got %T", client)
	}
	if o.url != constants.DefaultLLMURL {
		t.Errorf("url = %q, want default", o.url)
	}
}

func TestNewClientGemini(t *testing.T) {
	client, err := NewClient(Config{Provider: "gemini", APIKey: "test-key", Model: constants.DefaultLLMModel})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	g, ok := client.(*Gemini)
	if !ok {
		t.Fatalf("expected *Gemini, got %T", client)
	}
	if g.model != defaultGeminiModel {
		t.Errorf("model = %q, want %q", g.model, defaultGeminiModel)
	}
}

func TestNewClientGeminiMissingKey(t *testing.T) {
	if _, err := NewClient(Config{Provider: "gemini"}); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestNewClientMock(t *testing.T) {
	client, err := NewClient(Config{Provider: "mock"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, ok := client.(*MockClient); !ok {
		t.Errorf("expected *MockClient, got %T", client)
	}
}

func TestNewClientUnknown(t *testing.T) {
	if _, err := NewClient(Config{Provider: "gpt"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestConfigFromSettings(t *testing.T) {
	cfg := ConfigFromSettings(models.Settings{LLMProvider: "ollama", LLMModel: "m", LLMURL: "http://x"}, "k")
	if cfg.Timeout != time.Duration(constants.DefaultLLMTimeoutSec)*time.Second {
		t.Errorf("Timeout = %v, want default", cfg.Timeout)
	}
	if cfg.APIKey != "k" || cfg.Model != "m" || cfg.URL != "http://x" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestOllamaComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["prompt"] != "hello" || body["stream"] != false {
			t.Errorf("body = %v", body)
		}
		_, _ = io.WriteString(w, `{"response":"hi there","prompt_eval_count":3,"eval_count":4}`)
	}))
	defer srv.Close()

	resp, err := NewOllama(srv.URL+"/", "llama3.2", 5*time.Second).Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "hi there" || resp.TokensUsed != 7 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestOllamaCompleteStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewOllama(srv.URL, "missing", 5*time.Second).Complete(context.Background(), "hello")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Errorf("err = %v, want status 404", err)
	}
}

func TestOllamaCompleteTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	if _, err := NewOllama(srv.URL, "slow", 20*time.Millisecond).Complete(context.Background(), "hello"); err == nil {
		t.Error("expected timeout error")
	}
}

func TestGeminiComplete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-test:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "secret" {
			t.Errorf("missing api key header")
		}
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"part one "},{"text":"part two"}]}}],"usageMetadata":{"totalTokenCount":12}}`)
	}))
	defer srv.Close()

	g := NewGemini("secret", "gemini-test", 5*time.Second)
	g.baseURL = srv.URL
	resp, err := g.Complete(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "part one part two" || resp.TokensUsed != 12 || resp.Provider != "gemini" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestMockClient(t *testing.T) {
	mock := &MockClient{
		Response: &Response{Content: "test response", Provider: "mock"},
	}

	resp, err := mock.Complete(context.Background(), "test prompt")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != "test response" {
		t.Errorf("content = %q, want %q", resp.Content, "test response")
	}
	if mock.CallCount() != 1 || mock.Calls[0] != "test prompt" {
		t.Errorf("calls = %v", mock.Calls)
	}
}

func TestDryRunAnswersEveryPrompt(t *testing.T) {
	dry := NewDryRun()
	ctx := context.Background()

	resp, _ := dry.Complete(ctx, IntelPrompt(10))
	if _, err := ParseIntelCards(resp.Content); err != nil {
		t.Errorf("dry-run intel not parseable: %v", err)
	}
	resp, _ = dry.Complete(ctx, DailyBriefingPrompt())
	if _, err := ParseBriefing(resp.Content); err != nil {
		t.Errorf("dry-run briefing not parseable: %v", err)
	}
	resp, _ = dry.Complete(ctx, MentorPrompt(50, nil))
	if resp.Content == "" {
		t.Error("dry-run mentor reply is empty")
	}
}
