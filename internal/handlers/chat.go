package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gibbs-towing/fleetsite/internal/chat"
	"github.com/gibbs-towing/fleetsite/internal/models"
)

const maxChatHistory = 50

// HandleChat returns the welcome message on GET and a reply on POST.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		h.writeJSON(w, map[string]any{
			"messages": []models.ChatMessage{{Role: models.RoleModel, Text: chat.Welcome}},
		})
	case "POST":
		var request struct {
			History []models.ChatMessage `json:"history"`
			Message string               `json:"message"`
		}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&request); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		message := strings.TrimSpace(request.Message)
		if message == "" {
			h.writeError(w, "message is required", http.StatusBadRequest)
			return
		}

		history := request.History
		if len(history) > maxChatHistory {
			history = history[len(history)-maxChatHistory:]
		}

		reply := h.assistant.Reply(r.Context(), history, message)
		h.writeJSON(w, map[string]any{
			"reply": models.ChatMessage{Role: models.RoleModel, Text: reply},
		})
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
