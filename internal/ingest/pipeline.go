package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"math"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/disintegration/imaging"
	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/h2non/filetype"
	"go.uber.org/multierr"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	DefaultMaxWidth = 1200
	// DefaultQuality is the JPEG quality of re-encoded uploads (0.7).
	DefaultQuality = 70
	// MaxFileSize caps a single upload.
	MaxFileSize = 10 * 1024 * 1024
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrDecodeOrEncode      = errors.New("unable to process image")
)

// File is one uploaded file
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// FileError ties a per-file failure to its file
type FileError struct {
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Result of a batch. Images are in input order, skipping failed files.
type Result struct {
	Images   []models.GalleryImage
	Failures []*FileError
}

// Err combines every per-file failure, or returns nil when all files succeeded.
func (r Result) Err() error {
	var err error
	for _, f := range r.Failures {
		err = multierr.Append(err, f)
	}
	return err
}

// ProgressFunc receives the batch percentage after every file and nil once
// the batch is finished.
type ProgressFunc func(percent *int)

// Pipeline turns uploaded files into compact embedded gallery images
type Pipeline struct {
	MaxWidth int
	Quality  int
}

func New() *Pipeline {
	return &Pipeline{
		MaxWidth: DefaultMaxWidth,
		Quality:  DefaultQuality,
	}
}

// Ingest processes files one at a time in order. A failing file is recorded
// and the batch moves on.
func (p *Pipeline) Ingest(ctx context.Context, files []File, progress ProgressFunc) Result {
	if progress == nil {
		progress = func(*int) {}
	}
	defer progress(nil)

	var result Result
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			for _, rest := range files[i:] {
				result.Failures = append(result.Failures, &FileError{Name: rest.Name, Err: err})
			}
			slog.Warn("Upload batch cancelled", "processed", i, "total", len(files))
			return result
		}

		img, err := p.IngestOne(ctx, f)
		if err != nil {
			slog.Warn("Unable to ingest file", "file", f.Name, "err", err)
			result.Failures = append(result.Failures, &FileError{Name: f.Name, Err: err})
		} else {
			result.Images = append(result.Images, img)
		}

		percent := int(math.Round(float64(i+1) / float64(len(files)) * 100))
		progress(&percent)
	}

	slog.Info("Upload batch processed", "files", len(files), "images", len(result.Images), "failures", len(result.Failures))
	return result
}

// IngestOne compresses a single file into a gallery image
func (p *Pipeline) IngestOne(_ context.Context, f File) (models.GalleryImage, error) {
	if !isImage(f) {
		return models.GalleryImage{}, fmt.Errorf("%w: %s", ErrUnsupportedFileType, describeType(f))
	}
	if len(f.Data) > MaxFileSize {
		return models.GalleryImage{}, fmt.Errorf("%w: file larger than %dMB", ErrDecodeOrEncode, MaxFileSize/1024/1024)
	}

	url, err := p.compress(f.Data)
	if err != nil {
		return models.GalleryImage{}, err
	}
	return models.GalleryImage{URL: url, Title: TitleFromFilename(f.Name)}, nil
}

func (p *Pipeline) compress(data []byte) (string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: decode: %v", ErrDecodeOrEncode, err)
	}

	width, height := TargetSize(img.Bounds().Dx(), img.Bounds().Dy(), p.MaxWidth)
	if width != img.Bounds().Dx() {
		img = imaging.Resize(img, width, height, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.JPEG, imaging.JPEGQuality(p.Quality)); err != nil {
		return "", fmt.Errorf("%w: encode: %v", ErrDecodeOrEncode, err)
	}

	slog.Debug("Image compressed", "format", format, "width", width, "height", height, "bytes_in", len(data), "bytes_out", buf.Len())
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// TargetSize scales width down to maxWidth keeping the aspect ratio.
// Images already narrower keep their size.
func TargetSize(width, height, maxWidth int) (int, int) {
	if maxWidth <= 0 || width <= maxWidth {
		return width, height
	}
	h := int(math.Round(float64(height) * float64(maxWidth) / float64(width)))
	if h < 1 {
		h = 1
	}
	return maxWidth, h
}

// TitleFromFilename turns "heavy_wrecker-unit.jpg" into "Heavy wrecker unit".
func TitleFromFilename(name string) string {
	base := filepath.Base(name)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ").Replace(base)

	r, size := utf8.DecodeRuneInString(base)
	if r == utf8.RuneError {
		return base
	}
	return string(unicode.ToUpper(r)) + base[size:]
}

// isImage trusts the sniffed content over the declared type.
func isImage(f File) bool {
	if len(f.Data) > 0 {
		if kind, err := filetype.Match(f.Data); err == nil && kind != filetype.Unknown {
			return filetype.IsImage(f.Data)
		}
	}
	return strings.HasPrefix(strings.ToLower(f.ContentType), "image/")
}

func describeType(f File) string {
	if kind, err := filetype.Match(f.Data); err == nil && kind != filetype.Unknown {
		return kind.MIME.Value
	}
	if f.ContentType != "" {
		return f.ContentType
	}
	return "unknown"
}
