package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gibbs-towing/fleetsite/internal/editor"
	"github.com/gibbs-towing/fleetsite/internal/gallery"
)

// HandleEditorSessions opens a new, locked editor session.
func (h *Handler) HandleEditorSessions(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	session := h.editors.Open(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	h.writeJSON(w, map[string]any{
		"session_id": session.ID,
		"session":    session.Snapshot(),
	})
}

// HandleEditorSession serves /api/admin/sessions/{id}[/{action}]
func (h *Handler) HandleEditorSession(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/admin/sessions/")
	sessionID, action, _ := strings.Cut(rest, "/")

	if action == "" && r.Method == "DELETE" {
		if err := h.editors.Close(sessionID); err != nil {
			h.writeEditorError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	session, err := h.editors.Get(sessionID)
	if err != nil {
		h.writeEditorError(w, err)
		return
	}

	switch {
	case action == "" && r.Method == "GET":
		h.writeJSON(w, session.Snapshot())
	case action == "export" && r.Method == "GET":
		h.exportSession(w, session)
	case action != "" && r.Method == "POST":
		h.applyAction(w, r, session, action)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type actionRequest struct {
	Password  string `json:"password"`
	Index     *int   `json:"index"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Direction string `json:"direction"`
}

func (h *Handler) applyAction(w http.ResponseWriter, r *http.Request, session *editor.Session, action string) {
	switch action {
	case "upload":
		h.handleUpload(w, r, session)
		return
	case "replace-image":
		h.handleReplaceImage(w, r, session)
		return
	}

	var req actionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	index := func() (int, error) {
		if req.Index == nil {
			return 0, fmt.Errorf("%w: index is required", editor.ErrIndexOutOfRange)
		}
		return *req.Index, nil
	}

	var err error
	switch action {
	case "login":
		if !session.Login(req.Password) {
			err = fmt.Errorf("%w: invalid password", editor.ErrAuth)
		}
	case "add":
		err = session.Add()
	case "edit":
		var i int
		if i, err = index(); err == nil {
			err = session.Edit(i)
		}
	case "draft":
		err = session.SetDraft(req.URL, req.Title)
	case "save-edit":
		err = session.SaveEdit()
	case "cancel-edit":
		err = session.CancelEdit()
	case "delete":
		var i int
		if i, err = index(); err == nil {
			err = session.RequestDelete(i)
		}
	case "confirm-delete":
		err = session.ConfirmDelete()
	case "cancel-delete":
		err = session.CancelDelete()
	case "reorder":
		var i int
		var dir editor.Direction
		if i, err = index(); err == nil {
			if dir, err = editor.ParseDirection(req.Direction); err != nil {
				h.writeError(w, err.Error(), http.StatusBadRequest)
				return
			}
			err = session.Reorder(i, dir)
		}
	case "commit":
		err = session.Commit(r.Context())
	default:
		h.writeError(w, "Unknown action: "+action, http.StatusNotFound)
		return
	}

	if err != nil {
		h.writeEditorError(w, err)
		return
	}
	h.writeJSON(w, session.Snapshot())
}

// exportSession downloads the working list with embedded images redacted.
func (h *Handler) exportSession(w http.ResponseWriter, session *editor.Session) {
	if !session.Authenticated() {
		h.writeEditorError(w, editor.ErrAuth)
		return
	}
	filename := fmt.Sprintf("fleet-data-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := gallery.WriteJSON(w, session.Images()); err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
	}
}
