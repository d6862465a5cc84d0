package gemini

import (
	"context"
	"errors"
	"testing"

	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/providers"
	"github.com/google/generative-ai-go/genai"
)

func TestHistory(t *testing.T) {
	history := History([]models.ChatMessage{
		{Role: models.RoleUser, Text: "Do you run rotators?"},
		{Role: models.RoleModel, Text: "Yes, across the Southeast."},
	})

	if len(history) != 2 {
		t.Fatalf("Expected 2 contents, got %d", len(history))
	}
	expectedRoles := []string{"user", "model"}
	for i, content := range history {
		if content.Role != expectedRoles[i] {
			t.Errorf("Content %d: expected role %s, got %s", i, expectedRoles[i], content.Role)
		}
		if _, ok := content.Parts[0].(genai.Text); !ok {
			t.Errorf("Content %d: expected text part", i)
		}
	}
}

func TestChatWithoutKey(t *testing.T) {
	g := &Gemini{}
	if _, err := g.Chat(context.Background(), providers.Config{Prompt: "hi"}); !errors.Is(err, providers.ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}
