package site

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFleetImagesShipWithStaticAssets(t *testing.T) {
	staticDir := filepath.Join("..", "..", "static")

	for _, img := range FleetImages() {
		t.Run(img.Title, func(t *testing.T) {
			if !strings.HasPrefix(img.URL, "/images/") {
				t.Fatalf("Expected a local /images/ url, got %q", img.URL)
			}
			f, err := os.Open(filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(img.URL, "/"))))
			if err != nil {
				t.Fatalf("Expected asset for %s: %v", img.URL, err)
			}
			defer f.Close()
			if _, _, err := image.Decode(f); err != nil {
				t.Errorf("Expected %s to decode as an image: %v", img.URL, err)
			}
		})
	}
}
