package chat

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/providers"
)

type fakeProvider struct {
	reply string
	err   error
	got   providers.Config
}

func (f *fakeProvider) Chat(_ context.Context, config providers.Config) (string, error) {
	f.got = config
	return f.reply, f.err
}

func TestReply(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		err      error
		expected string
	}{
		{"plain answer", "Dispatch is on the way.", nil, "Dispatch is on the way."},
		{"markdown stripped", "**Call** us at *once*", nil, "Call us at once"},
		{"empty answer", "  ", nil, EmptyReply},
		{"missing credentials", "", fmt.Errorf("%w: no key", providers.ErrNotConfigured), UnavailableReply},
		{"provider failure", "", errors.New("connection reset"), ErrorReply},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(&fakeProvider{reply: tt.reply, err: tt.err}, "test-model")
			if got := a.Reply(context.Background(), nil, "hello"); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestReplyPassesConversation(t *testing.T) {
	fake := &fakeProvider{reply: "ok"}
	history := []models.ChatMessage{
		{Role: models.RoleUser, Text: "Do you cover Alabama?"},
		{Role: models.RoleModel, Text: "We serve the Southeast."},
	}

	New(fake, "test-model").Reply(context.Background(), history, "Need a rotator")

	if fake.got.Model != "test-model" || fake.got.Prompt != "Need a rotator" {
		t.Errorf("Expected model and prompt to be passed, got %+v", fake.got)
	}
	if len(fake.got.History) != 2 {
		t.Errorf("Expected 2 history messages, got %d", len(fake.got.History))
	}
	if fake.got.Temperature != 0.7 {
		t.Errorf("Expected temperature 0.7, got %v", fake.got.Temperature)
	}
	if fake.got.SystemInstruction == "" {
		t.Error("Expected system instruction")
	}
}

func TestReplyWithoutProvider(t *testing.T) {
	if got := New(nil, "").Reply(context.Background(), nil, "hi"); got != UnavailableReply {
		t.Errorf("Expected %q, got %q", UnavailableReply, got)
	}
}

func TestDefaultModel(t *testing.T) {
	tests := []struct {
		provider string
		expected string
	}{
		{"gemini", "gemini-1.5-flash"},
		{"openai", "gpt-4o-mini"},
		{"ollama", "llama3.1"},
		{"", "gemini-1.5-flash"},
	}

	for _, tt := range tests {
		if got := DefaultModel(tt.provider); got != tt.expected {
			t.Errorf("DefaultModel(%q): expected %q, got %q", tt.provider, tt.expected, got)
		}
	}
}
