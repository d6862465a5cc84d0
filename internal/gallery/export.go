package gallery

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/parquet-go/parquet-go"
)

// RedactedURL replaces embedded payloads in exports. Uploaded images are
// therefore not restored by importing an export.
const RedactedURL = "[embedded image omitted from export]"

// Document is the shape of the fleet data resource and of exports
type Document struct {
	Images []models.GalleryImage `json:"images"`
}

// IsEmbedded reports whether url carries the image inline
func IsEmbedded(url string) bool {
	return strings.HasPrefix(url, "data:")
}

// Export copies images into an export document, redacting embedded payloads.
// It returns how many entries were redacted.
func Export(images []models.GalleryImage) (Document, int) {
	doc := Document{Images: make([]models.GalleryImage, len(images))}
	redacted := 0
	for i, img := range images {
		if IsEmbedded(img.URL) {
			img.URL = RedactedURL
			redacted++
		}
		doc.Images[i] = img
	}
	if redacted > 0 {
		slog.Warn("Embedded images were redacted from the export and cannot be restored from it", "redacted", redacted, "images", len(images))
	}
	return doc, redacted
}

// WriteJSON writes the export document as indented JSON
func WriteJSON(w io.Writer, images []models.GalleryImage) error {
	doc, _ := Export(images)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// WriteParquet writes the export rows as a Parquet file
func WriteParquet(w io.Writer, images []models.GalleryImage) error {
	doc, _ := Export(images)
	writer := parquet.NewGenericWriter[models.GalleryImage](w)
	if _, err := writer.Write(doc.Images); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// LoadFile reads a gallery from .json (export document, envelope or bare
// array), .jsonl (one image per line) or .parquet.
func LoadFile(path string) ([]models.GalleryImage, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".json":
		return loadJSON(path)
	case ".jsonl":
		return loadJSONL(path)
	case ".parquet":
		return loadParquet(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .json, .jsonl, .parquet)", ext)
	}
}

func loadJSON(path string) ([]models.GalleryImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	// export documents and envelopes share the "images" field
	return Decode(data)
}

func loadJSONL(path string) ([]models.GalleryImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	var images []models.GalleryImage
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), SizeBudget)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var img models.GalleryImage
		if err := json.Unmarshal([]byte(text), &img); err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", line, err)
		}
		images = append(images, img)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}
	return images, nil
}

func loadParquet(path string) ([]models.GalleryImage, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[models.GalleryImage](pf)
	defer reader.Close()

	var images []models.GalleryImage
	rows := make([]models.GalleryImage, 64)
	for {
		n, err := reader.Read(rows)
		images = append(images, rows[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}

	slog.Debug("Loaded gallery from parquet", "path", path, "images", len(images))
	return images, nil
}
