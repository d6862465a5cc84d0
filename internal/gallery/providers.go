package gallery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gibbs-towing/fleetsite/internal/models"
)

// Provider yields a candidate gallery. An empty list or an error means the
// next provider in the chain is consulted.
type Provider interface {
	Name() string
	Images(ctx context.Context) ([]models.GalleryImage, error)
}

// Resolve tries providers in order and returns the first non-empty list.
func Resolve(ctx context.Context, providers ...Provider) ([]models.GalleryImage, string) {
	for _, p := range providers {
		images, err := p.Images(ctx)
		if err != nil {
			slog.Debug("Gallery provider unavailable", "provider", p.Name(), "err", err)
			continue
		}
		if len(images) == 0 {
			continue
		}
		return images, p.Name()
	}
	return []models.GalleryImage{}, ""
}

// StoreProvider reads the persisted list.
type StoreProvider struct {
	Store *RecordStore
}

func (p StoreProvider) Name() string { return "store" }

func (p StoreProvider) Images(ctx context.Context) ([]models.GalleryImage, error) {
	return p.Store.Stored(ctx)
}

// StaticProvider returns a fixed list, normally the compiled defaults.
type StaticProvider struct {
	List []models.GalleryImage
}

func (p StaticProvider) Name() string { return "builtin" }

func (p StaticProvider) Images(context.Context) ([]models.GalleryImage, error) {
	return models.CloneImages(p.List), nil
}

// FleetDataProvider reads a fleet data document ({"images": [...]}) from an
// http(s) URL or a local path.
type FleetDataProvider struct {
	Source     string
	HTTPClient *http.Client
}

func NewFleetDataProvider(source string) *FleetDataProvider {
	return &FleetDataProvider{
		Source: source,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (p *FleetDataProvider) Name() string { return "fleet-data" }

func (p *FleetDataProvider) Images(ctx context.Context) ([]models.GalleryImage, error) {
	if p.Source == "" {
		return nil, errors.New("no fleet data source configured")
	}

	var body io.ReadCloser
	if strings.HasPrefix(p.Source, "http://") || strings.HasPrefix(p.Source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.Source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		resp, err := p.HTTPClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch fleet data: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fleet data returned status %d", resp.StatusCode)
		}
		body = resp.Body
	} else {
		f, err := os.Open(p.Source)
		if err != nil {
			return nil, fmt.Errorf("failed to open fleet data: %w", err)
		}
		body = f
	}
	defer body.Close()

	var doc Document
	if err := json.NewDecoder(body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode fleet data: %w", err)
	}
	return doc.Images, nil
}
