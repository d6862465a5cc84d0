package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/providers"
)

func TestChat(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path /chat/completions, got %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("Expected bearer token, got %q", r.Header.Get("Authorization"))
		}

		var body struct {
			Model    string              `json:"model"`
			Messages []map[string]string `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			return
		}
		if len(body.Messages) != 4 {
			t.Errorf("Expected system, 2 history and prompt messages, got %d", len(body.Messages))
		}
		if body.Messages[2]["role"] != "assistant" {
			t.Errorf("Expected model turn mapped to assistant, got %q", body.Messages[2]["role"])
		}

		w.Write([]byte(`{"choices":[{"message":{"content":"Dispatch confirmed"}}]}`))
	}))
	defer server.Close()

	o := &OpenAI{APIKey: "test-key", BaseURL: server.URL, HTTPClient: server.Client()}
	reply, err := o.Chat(context.Background(), providers.Config{
		Model:             "gpt-4o-mini",
		SystemInstruction: "be brief",
		History: []models.ChatMessage{
			{Role: models.RoleUser, Text: "hi"},
			{Role: models.RoleModel, Text: "hello"},
		},
		Prompt: "tow please",
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply != "Dispatch confirmed" {
		t.Errorf("Expected 'Dispatch confirmed', got %q", reply)
	}
}

func TestChatWithoutKey(t *testing.T) {
	o := &OpenAI{BaseURL: "http://unused", HTTPClient: http.DefaultClient}
	if _, err := o.Chat(context.Background(), providers.Config{Prompt: "hi"}); !errors.Is(err, providers.ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}

func TestChatErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	o := &OpenAI{APIKey: "k", BaseURL: server.URL, HTTPClient: server.Client()}
	if _, err := o.Chat(context.Background(), providers.Config{Prompt: "hi"}); err == nil {
		t.Error("Expected error for non-200 response")
	}
}
