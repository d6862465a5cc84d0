package providers

import (
	"context"
	"errors"

	"github.com/gibbs-towing/fleetsite/internal/models"
)

// ErrNotConfigured is returned when a provider is missing its credentials.
var ErrNotConfigured = errors.New("provider not configured")

// Config represents one chat request to an LLM provider
type Config struct {
	Model             string
	Temperature       float64
	SystemInstruction string
	History           []models.ChatMessage
	Prompt            string
}

// Provider defines the interface for an LLM provider
type Provider interface {
	Chat(ctx context.Context, config Config) (string, error)
}

// OpenAIRole maps a conversation role onto the chat-completions vocabulary
// shared by OpenAI and Ollama.
func OpenAIRole(role string) string {
	if role == models.RoleModel {
		return "assistant"
	}
	return "user"
}
