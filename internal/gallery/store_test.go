package gallery

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/gibbs-towing/fleetsite/internal/storage"
)

var defaults = []models.GalleryImage{
	{URL: "/images/gibbs-truck-1.png", Title: "Gibbs Fleet - Commercial Bus Recovery"},
}

func TestRecordStoreRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		images []models.GalleryImage
	}{
		{
			name: "remote urls",
			images: []models.GalleryImage{
				{URL: "https://example.com/rotator.jpg", Title: "Rotator Unit"},
				{URL: "/images/flatbed.png", Title: "Landoll 440 Flatbed"},
			},
		},
		{
			name: "embedded image and duplicate urls",
			images: []models.GalleryImage{
				{URL: "data:image/jpeg;base64,/9j/4AAQ", Title: "Uploaded"},
				{URL: "data:image/jpeg;base64,/9j/4AAQ", Title: "Uploaded again"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := NewRecordStore(storage.NewMemory(storage.DefaultQuota))

			if err := store.Save(ctx, tt.images); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			got := store.Load(ctx, defaults)
			if !reflect.DeepEqual(got, tt.images) {
				t.Errorf("Expected %v, got %v", tt.images, got)
			}
		})
	}
}

func TestRecordStoreLoadFallsBackToDefaults(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(storage.DefaultQuota)
	store := NewRecordStore(kv)

	if got := store.Load(ctx, defaults); !reflect.DeepEqual(got, defaults) {
		t.Errorf("Expected defaults for empty store, got %v", got)
	}

	if err := store.Save(ctx, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := store.Load(ctx, defaults); !reflect.DeepEqual(got, defaults) {
		t.Errorf("Expected defaults for empty stored list, got %v", got)
	}

	if err := kv.Set(ctx, StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got := store.Load(ctx, defaults); !reflect.DeepEqual(got, defaults) {
		t.Errorf("Expected defaults for corrupt value, got %v", got)
	}
}

func TestRecordStoreRejectsOverBudget(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(storage.NewMemory(10 * 1024 * 1024))

	committed := []models.GalleryImage{{URL: "/images/wrecker.png", Title: "Wrecker"}}
	if err := store.Save(ctx, committed); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	huge := []models.GalleryImage{{URL: "data:image/jpeg;base64," + strings.Repeat("A", 5*1024*1024), Title: "Huge"}}
	err := store.Save(ctx, huge)

	var sizeErr *SizeExceededError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("Expected SizeExceededError, got %v", err)
	}
	if sizeErr.ActualMB < 5 {
		t.Errorf("Expected reported size above 5MB, got %.2f", sizeErr.ActualMB)
	}
	if got := store.Load(ctx, defaults); !reflect.DeepEqual(got, committed) {
		t.Errorf("Expected previous list to remain, got %d images", len(got))
	}
}

func TestRecordStoreQuotaExceeded(t *testing.T) {
	ctx := context.Background()
	store := NewRecordStore(storage.NewMemory(64))

	images := []models.GalleryImage{{URL: "https://example.com/" + strings.Repeat("x", 100), Title: "Long"}}
	err := store.Save(ctx, images)
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("Expected ErrQuotaExceeded, got %v", err)
	}
	var sizeErr *SizeExceededError
	if errors.As(err, &sizeErr) {
		t.Error("Expected quota error to be distinct from size error")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected []models.GalleryImage
		wantErr  bool
	}{
		{
			name:     "versioned envelope",
			data:     `{"version":1,"images":[{"url":"/a.png","title":"A"}]}`,
			expected: []models.GalleryImage{{URL: "/a.png", Title: "A"}},
		},
		{
			name:     "legacy bare array",
			data:     `[{"url":"/b.png","title":"B"}]`,
			expected: []models.GalleryImage{{URL: "/b.png", Title: "B"}},
		},
		{
			name:     "fleet data document",
			data:     `{"images":[{"url":"/c.png","title":"C"}]}`,
			expected: []models.GalleryImage{{URL: "/c.png", Title: "C"}},
		},
		{
			name:    "future schema version",
			data:    `{"version":2,"images":[]}`,
			wantErr: true,
		},
		{
			name:    "garbage",
			data:    `nope`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestEncodeWritesVersion(t *testing.T) {
	data, err := Encode([]models.GalleryImage{{URL: "/a.png", Title: "A"}})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"version":1,`) {
		t.Errorf("Expected versioned envelope, got %s", data)
	}
}
