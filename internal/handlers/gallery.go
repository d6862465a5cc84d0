package handlers

import (
	"net/http"
	"strconv"

	"github.com/gibbs-towing/fleetsite/internal/gallery"
	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/site"
	"github.com/gibbs-towing/fleetsite/internal/viewer"
)

func (h *Handler) HandleContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, site.PageContent())
}

// HandleGallery returns the committed gallery
func (h *Handler) HandleGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	h.writeJSON(w, gallery.Document{Images: h.publisher.Current()})
}

type lightboxResponse struct {
	Index      int                  `json:"index"`
	Direction  int                  `json:"direction"`
	Total      int                  `json:"total"`
	Caption    string               `json:"caption"`
	Image      *models.GalleryImage `json:"image,omitempty"`
	LoadFailed bool                 `json:"load_failed"`
	Closed     bool                 `json:"closed"`
}

// HandleLightbox applies one navigation step to the committed gallery.
// Query: index, action (next, prev, jump, key, swipe, error), to, key, offset, velocity.
func (h *Handler) HandleLightbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	index, _ := strconv.Atoi(q.Get("index"))
	lb := viewer.At(h.publisher.Current(), index)

	closed := false
	switch q.Get("action") {
	case "", "show":
	case "next":
		lb.Next()
	case "prev":
		lb.Prev()
	case "jump":
		to, err := strconv.Atoi(q.Get("to"))
		if err != nil {
			h.writeError(w, "Invalid 'to' parameter", http.StatusBadRequest)
			return
		}
		if err := lb.Jump(to); err != nil {
			h.writeError(w, err.Error(), http.StatusBadRequest)
			return
		}
	case "key":
		closed = lb.HandleKey(q.Get("key"))
	case "swipe":
		offset, err1 := strconv.ParseFloat(q.Get("offset"), 64)
		velocity, err2 := strconv.ParseFloat(q.Get("velocity"), 64)
		if err1 != nil || err2 != nil {
			h.writeError(w, "Invalid swipe parameters", http.StatusBadRequest)
			return
		}
		lb.HandleSwipe(offset, velocity)
	case "error":
		lb.MarkLoadFailed()
	default:
		h.writeError(w, "Invalid action. Must be 'next', 'prev', 'jump', 'key', 'swipe' or 'error'", http.StatusBadRequest)
		return
	}

	resp := lightboxResponse{
		Index:      lb.Index(),
		Direction:  lb.Direction(),
		Total:      lb.Len(),
		Caption:    lb.Caption(),
		LoadFailed: lb.LoadFailed(),
		Closed:     closed,
	}
	if img, ok := lb.Current(); ok {
		resp.Image = &img
	}
	h.writeJSON(w, resp)
}
