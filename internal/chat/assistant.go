package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gibbs-towing/fleetsite/internal/gemini"
	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/ollama"
	"github.com/gibbs-towing/fleetsite/internal/openai"
	"github.com/gibbs-towing/fleetsite/internal/providers"
)

// Replies used whenever the provider cannot answer. Visitors never see a raw error.
const (
	Welcome          = "Welcome to Gibbs Towing & Recovery. I'm your elite dispatch assistant. How can we help you today?"
	UnavailableReply = "AI assistant is currently unavailable. Please contact our 24/7 command center at (678) 508-9243."
	ErrorReply       = "Operations connection error. Contact our command center at (678) 508-9243."
	EmptyReply       = "Please contact our 24/7 command center at (678) 508-9243 for multi-state dispatch."
)

const temperature = 0.7

const systemInstruction = `You are the Enterprise AI Assistant for Gibbs Towing & Recovery.
Your goal is to provide elite-level logistics support and manage incoming service requests for commercial clients.

Tone: Authoritative, enterprise-grade, urgent but calm, and logistics-focused.

Key Positioning:
- Company: Gibbs Towing & Recovery
- Scale: Multi-state & Nationwide Recovery Logistics.
- Headquarters: Georgia.
- Contact Number: (678) 508-9243
- Website: Atlantatowing247.com
- Core Services: Commercial Load Shifts, Multi-State Trans Loads, Heavy-Duty Logistics Recovery, Rotator Operations, Infrastructure Support.

IMPORTANT RULES:
- Never mention an individual owner by name. Focus on the company's collective capability.
- Never mention "2-hour minimums" or pricing details.
- Emphasize multi-state coverage and nationwide contract capability.
- Do NOT use markdown (bold, italics, lists).
- Keep sentences concise.
- Direct all immediate dispatch needs to (678) 508-9243.`

// Assistant answers visitor chat messages through one provider
type Assistant struct {
	provider providers.Provider
	model    string
}

func New(provider providers.Provider, model string) *Assistant {
	return &Assistant{provider: provider, model: model}
}

// NewFromName picks a provider by name ("gemini", "openai", "ollama").
// An empty model selects the provider's default.
func NewFromName(name, model string) *Assistant {
	if name == "" {
		name = "gemini"
	}
	if model == "" {
		model = DefaultModel(name)
	}

	var provider providers.Provider
	switch name {
	case "openai":
		provider = openai.New()
	case "ollama":
		provider = ollama.New()
	case "gemini":
		provider = gemini.New()
	default:
		slog.Warn("Unsupported chat provider, falling back to gemini", "provider", name)
		provider = gemini.New()
		model = DefaultModel("gemini")
	}
	return New(provider, model)
}

func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		return "gpt-4o-mini"
	case "ollama":
		return "llama3.1"
	default:
		return "gemini-1.5-flash"
	}
}

// Reply returns the assistant's answer to message given the prior turns.
// Provider failures are logged and replaced by a fixed dispatch message.
func (a *Assistant) Reply(ctx context.Context, history []models.ChatMessage, message string) string {
	if a.provider == nil {
		return UnavailableReply
	}

	text, err := a.provider.Chat(ctx, providers.Config{
		Model:             a.model,
		Temperature:       temperature,
		SystemInstruction: systemInstruction,
		History:           history,
		Prompt:            message,
	})
	if err != nil {
		if errors.Is(err, providers.ErrNotConfigured) {
			slog.Warn("Chat assistant not configured", "err", err)
			return UnavailableReply
		}
		slog.Error("Chat provider request failed", "model", a.model, "err", err)
		return ErrorReply
	}

	text = StripMarkdown(text)
	if strings.TrimSpace(text) == "" {
		return EmptyReply
	}
	return text
}

// StripMarkdown removes the emphasis and heading markers the model sometimes emits.
func StripMarkdown(s string) string {
	return strings.NewReplacer("**", "", "*", "", "#", "").Replace(s)
}
