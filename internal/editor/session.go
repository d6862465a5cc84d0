package editor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gibbs-towing/fleetsite/internal/auth"
	"github.com/gibbs-towing/fleetsite/internal/gallery"
	"github.com/gibbs-towing/fleetsite/internal/ingest"
	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/site"
)

// Backend is what every editor session shares
type Backend struct {
	Gate      *auth.Gate
	Store     *gallery.RecordStore
	Defaults  []gallery.Provider
	Publisher *gallery.Publisher
	Pipeline  *ingest.Pipeline
}

// Session is one open admin panel. All edits apply to a working copy of the
// gallery; only Commit writes to the record store.
type Session struct {
	ID      string
	backend *Backend

	mu            sync.Mutex
	authenticated bool
	working       []models.GalleryImage
	state         State
	index         int
	draft         models.GalleryImage
	progress      *int
	message       string
	errMessage    string
}

// Snapshot is the externally visible session state
type Snapshot struct {
	ID            string                `json:"id"`
	Authenticated bool                  `json:"authenticated"`
	State         State                 `json:"state"`
	Index         *int                  `json:"index,omitempty"`
	Draft         *models.GalleryImage  `json:"draft,omitempty"`
	Images        []models.GalleryImage `json:"images,omitempty"`
	Progress      *int                  `json:"progress"`
	Message       string                `json:"message,omitempty"`
	Error         string                `json:"error,omitempty"`
}

func NewSession(id string, backend *Backend) *Session {
	return &Session{ID: id, backend: backend}
}

// Open re-arms the gate and reloads the working list from the store, or
// the defaults when nothing is stored.
func (s *Session) Open(ctx context.Context) {
	providers := append([]gallery.Provider{gallery.StoreProvider{Store: s.backend.Store}}, s.backend.Defaults...)
	images, source := gallery.Resolve(ctx, providers...)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	s.working = images
	slog.Debug("Editor session opened", "session_id", s.ID, "images", len(images), "source", source)
}

// Close discards unsaved work and re-arms the gate.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	slog.Debug("Editor session closed", "session_id", s.ID)
}

func (s *Session) reset() {
	s.authenticated = false
	s.working = nil
	s.state = Viewing
	s.index = 0
	s.draft = models.GalleryImage{}
	s.message = ""
	s.errMessage = ""
}

// Login checks secret against the gate. A failure leaves the session locked
// and sets the error message; any number of attempts is allowed.
func (s *Session) Login(secret string) bool {
	ok := s.backend.Gate.Authenticate(secret)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !ok {
		s.errMessage = "Invalid password"
		slog.Info("Admin login failed", "session_id", s.ID)
		return false
	}
	s.authenticated = true
	s.errMessage = ""
	slog.Info("Admin login succeeded", "session_id", s.ID)
	return true
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Add appends the placeholder image and opens it for editing.
func (s *Session) Add() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("add", Viewing); err != nil {
		return err
	}
	s.working = append(s.working, site.PlaceholderImage)
	s.state = Editing
	s.index = len(s.working) - 1
	s.draft = site.PlaceholderImage
	return nil
}

// Edit copies entry i into the draft buffer.
func (s *Session) Edit(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("edit", Viewing); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.state = Editing
	s.index = i
	s.draft = s.working[i]
	return nil
}

// SetDraft replaces the draft fields while editing.
func (s *Session) SetDraft(url, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("change draft", Editing); err != nil {
		return err
	}
	s.draft = models.GalleryImage{URL: url, Title: title}
	return nil
}

// SaveEdit writes the draft back over the entry being edited.
func (s *Session) SaveEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("save edit", Editing); err != nil {
		return err
	}
	s.working[s.index] = s.draft
	s.state = Viewing
	s.draft = models.GalleryImage{}
	s.message = "Image updated"
	return nil
}

func (s *Session) CancelEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("cancel edit", Editing); err != nil {
		return err
	}
	s.state = Viewing
	s.draft = models.GalleryImage{}
	return nil
}

// RequestDelete asks for confirmation before removing entry i.
func (s *Session) RequestDelete(i int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("delete", Viewing); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.state = ConfirmingDelete
	s.index = i
	return nil
}

func (s *Session) ConfirmDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("confirm delete", ConfirmingDelete); err != nil {
		return err
	}
	next := make([]models.GalleryImage, 0, len(s.working)-1)
	next = append(next, s.working[:s.index]...)
	next = append(next, s.working[s.index+1:]...)
	s.working = next
	s.state = Viewing
	s.message = "Image deleted"
	return nil
}

func (s *Session) CancelDelete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("cancel delete", ConfirmingDelete); err != nil {
		return err
	}
	s.state = Viewing
	return nil
}

// Reorder swaps entry i with its neighbour. Moving past either end is a no-op.
func (s *Session) Reorder(i int, dir Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("reorder", Viewing); err != nil {
		return err
	}
	if err := s.checkIndex(i); err != nil {
		return err
	}
	j := i + int(dir)
	if j < 0 || j >= len(s.working) {
		return nil
	}
	s.working[i], s.working[j] = s.working[j], s.working[i]
	return nil
}

// Upload compresses files and appends the successful ones. The session lock
// is released while the batch runs so progress stays observable.
func (s *Session) Upload(ctx context.Context, files []ingest.File) (ingest.Result, error) {
	s.mu.Lock()
	if err := s.require("upload", Viewing); err != nil {
		s.mu.Unlock()
		return ingest.Result{}, err
	}
	s.errMessage = ""
	s.mu.Unlock()

	result := s.backend.Pipeline.Ingest(ctx, files, func(percent *int) {
		s.mu.Lock()
		s.progress = percent
		s.mu.Unlock()
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.authenticated {
		slog.Warn("Editor closed during upload, discarding images", "session_id", s.ID, "images", len(result.Images))
		return result, nil
	}
	s.working = append(s.working, result.Images...)
	if err := result.Err(); err != nil {
		s.errMessage = err.Error()
	}
	if len(result.Images) > 0 {
		s.message = fmt.Sprintf("Added %d image(s)", len(result.Images))
	}
	return result, nil
}

// ReplaceDraftImage compresses f into the draft URL. On failure the draft
// keeps its previous value.
func (s *Session) ReplaceDraftImage(ctx context.Context, f ingest.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("replace image", Editing); err != nil {
		return err
	}
	img, err := s.backend.Pipeline.IngestOne(ctx, f)
	if err != nil {
		s.errMessage = err.Error()
		return err
	}
	s.draft.URL = img.URL
	if s.draft.Title == "" {
		s.draft.Title = img.Title
	}
	return nil
}

// Commit writes the working list through to the store and publishes it. On
// failure the working list is left as it was so the admin can fix and retry.
func (s *Session) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.require("commit", Viewing); err != nil {
		return err
	}

	if err := s.backend.Store.Save(ctx, s.working); err != nil {
		var sizeErr *gallery.SizeExceededError
		if errors.As(err, &sizeErr) {
			s.errMessage = sizeErr.Error()
		} else {
			s.errMessage = "Failed to save changes: " + err.Error()
		}
		slog.Error("Gallery commit failed", "session_id", s.ID, "err", err)
		return err
	}
	s.backend.Publisher.Publish(s.working)
	s.errMessage = ""
	s.message = "All changes saved!"
	return nil
}

// Images returns a copy of the working list
func (s *Session) Images() []models.GalleryImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.CloneImages(s.working)
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:            s.ID,
		Authenticated: s.authenticated,
		State:         s.state,
		Message:       s.message,
		Error:         s.errMessage,
	}
	if s.progress != nil {
		p := *s.progress
		snap.Progress = &p
	}
	if !s.authenticated {
		return snap
	}
	snap.Images = models.CloneImages(s.working)
	if s.state != Viewing {
		i := s.index
		snap.Index = &i
	}
	if s.state == Editing {
		d := s.draft
		snap.Draft = &d
	}
	return snap
}

func (s *Session) require(op string, want State) error {
	if !s.authenticated {
		return ErrAuth
	}
	if s.state != want {
		return stateError(op, s.state)
	}
	return nil
}

func (s *Session) checkIndex(i int) error {
	if i < 0 || i >= len(s.working) {
		return indexError(i, len(s.working))
	}
	return nil
}
