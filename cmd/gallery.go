package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gibbs-towing/fleetsite/internal/gallery"
	"github.com/gibbs-towing/fleetsite/internal/ingest"
	"github.com/gibbs-towing/fleetsite/internal/models"
	"github.com/spf13/cobra"
)

func newGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Inspect and maintain the stored fleet gallery",
		Long: `Maintenance tools for the fleet gallery held in storage.

These commands work directly against the configured storage backend and
apply the same size limit as the admin panel's save button.`,
	}

	cmd.AddCommand(newGalleryListCmd())
	cmd.AddCommand(newGalleryExportCmd())
	cmd.AddCommand(newGalleryImportCmd())
	cmd.AddCommand(newGalleryIngestCmd())
	cmd.AddCommand(newGalleryClearCmd())

	return cmd
}

func newGalleryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the gallery that visitors currently see",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			images, source := gallery.Resolve(cmd.Context(), a.chain()...)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Source: %s (%d images)\n", source, len(images))
			for i, img := range images {
				url := img.URL
				if gallery.IsEmbedded(url) {
					url = fmt.Sprintf("[embedded, %d bytes]", len(url))
				}
				fmt.Fprintf(out, "%3d  %-50s  %s\n", i+1, img.Title, url)
			}
			return nil
		},
	}
}

func newGalleryExportCmd() *cobra.Command {
	var output string
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the gallery as a fleet data document",
		Long: `Export the current gallery in the fleet data format ({"images": [...]}).

Uploaded images are embedded in the gallery and are replaced by a
placeholder in the export, so importing an export does not restore them.`,
		Example: `  # Export to stdout
  fleetsite gallery export

  # Export to a Parquet file
  fleetsite gallery export --format parquet --output fleet.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			toStdout := output == "" || output == "-"
			var write func(io.Writer, []models.GalleryImage) error
			switch format {
			case "json":
				write = gallery.WriteJSON
			case "parquet":
				if toStdout {
					return fmt.Errorf("--output is required for parquet exports")
				}
				write = gallery.WriteParquet
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			images, _ := gallery.Resolve(cmd.Context(), a.chain()...)

			if toStdout {
				return write(cmd.OutOrStdout(), images)
			}
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			if err := write(f, images); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", output, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json or parquet)")

	return cmd
}

func newGalleryImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored gallery with the images in FILE",
		Long: `Replace the stored gallery with the images in FILE.

Supported formats: .json (fleet data document or bare array), .jsonl (one
image per line) and .parquet (url and title columns).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images, err := gallery.LoadFile(args[0])
			if err != nil {
				return err
			}
			for _, img := range images {
				if img.URL == gallery.RedactedURL {
					slog.Warn("Imported entry has a redacted image and will not display", "title", img.Title)
				}
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Save(cmd.Context(), images); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d images from %s\n", len(images), args[0])
			return nil
		},
	}
}

func newGalleryIngestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest IMAGE...",
		Short: "Compress local image files and append them to the stored gallery",
		Example: `  # Add two photos; titles come from the file names
  fleetsite gallery ingest rotator_unit.jpg night-recovery.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files := make([]ingest.File, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				files = append(files, ingest.File{
					Name:        filepath.Base(path),
					ContentType: mime.TypeByExtension(strings.ToLower(filepath.Ext(path))),
					Data:        data,
				})
			}

			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			result := ingest.New().Ingest(cmd.Context(), files, func(percent *int) {
				if percent != nil {
					fmt.Fprintf(out, "\rProcessing... %d%%", *percent)
				} else {
					fmt.Fprintln(out)
				}
			})
			for _, f := range result.Failures {
				fmt.Fprintf(out, "  skipped %s: %v\n", f.Name, f.Err)
			}
			if len(result.Images) == 0 {
				return fmt.Errorf("no images could be processed")
			}

			images, _ := gallery.Resolve(cmd.Context(), a.chain()...)
			images = append(models.CloneImages(images), result.Images...)
			if err := a.store.Save(cmd.Context(), images); err != nil {
				return err
			}
			fmt.Fprintf(out, "Added %d images, gallery now has %d\n", len(result.Images), len(images))
			return nil
		},
	}
}

func newGalleryClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored gallery so the defaults are shown again",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to clear the stored gallery without --yes")
			}
			a, err := openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear gallery: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Stored gallery cleared")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")

	return cmd
}
