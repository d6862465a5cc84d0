package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/storage"
)

const (
	// StorageKey is the single key the gallery is persisted under.
	StorageKey = "fleet-images"
	// SizeBudget keeps the serialized gallery under the store's ceiling.
	SizeBudget = 4.5 * 1024 * 1024
	// SchemaVersion is written into every saved envelope.
	SchemaVersion = 1
)

// SizeExceededError is returned when a list is too large to persist
type SizeExceededError struct {
	ActualMB float64
}

func (e *SizeExceededError) Error() string {
	return fmt.Sprintf("gallery is %.2fMB, over the %.1fMB limit; remove or shrink some images", e.ActualMB, float64(SizeBudget)/1024/1024)
}

// envelope is the persisted layout. Version 0 is the legacy bare array.
type envelope struct {
	Version int                   `json:"version"`
	Images  []models.GalleryImage `json:"images"`
}

// RecordStore persists the gallery under one key of a KV.
type RecordStore struct {
	kv  storage.KV
	key string
}

func NewRecordStore(kv storage.KV) *RecordStore {
	return &RecordStore{kv: kv, key: StorageKey}
}

// Encode serializes images in the persisted layout and checks the budget.
func Encode(images []models.GalleryImage) ([]byte, error) {
	if images == nil {
		images = []models.GalleryImage{}
	}
	data, err := json.Marshal(envelope{Version: SchemaVersion, Images: images})
	if err != nil {
		return nil, fmt.Errorf("failed to encode gallery: %w", err)
	}
	if len(data) > SizeBudget {
		return nil, &SizeExceededError{ActualMB: float64(len(data)) / 1024 / 1024}
	}
	return data, nil
}

// Decode accepts the versioned envelope or a legacy bare array.
func Decode(data []byte) ([]models.GalleryImage, error) {
	var legacy []models.GalleryImage
	if err := json.Unmarshal(data, &legacy); err == nil {
		return legacy, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode gallery: %w", err)
	}
	if env.Version > SchemaVersion {
		return nil, fmt.Errorf("unsupported gallery schema version %d", env.Version)
	}
	return env.Images, nil
}

// Stored returns the persisted list. It returns storage.ErrNotFound when
// nothing has been saved yet.
func (s *RecordStore) Stored(ctx context.Context) ([]models.GalleryImage, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Load returns the persisted list when present and non-empty, otherwise defaults.
func (s *RecordStore) Load(ctx context.Context, defaults []models.GalleryImage) []models.GalleryImage {
	images, err := s.Stored(ctx)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Warn("Unable to load stored gallery, using defaults", "err", err)
		}
		return models.CloneImages(defaults)
	}
	if len(images) == 0 {
		return models.CloneImages(defaults)
	}
	return images
}

// Save writes images through to the KV. Nothing is written when the list is
// over budget.
func (s *RecordStore) Save(ctx context.Context, images []models.GalleryImage) error {
	data, err := Encode(images)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("failed to save gallery: %w", err)
	}
	slog.Info("Gallery saved", "images", len(images), "bytes", len(data))
	return nil
}

// Clear removes the persisted list so the next load falls back to defaults.
func (s *RecordStore) Clear(ctx context.Context) error {
	return s.kv.Delete(ctx, s.key)
}
