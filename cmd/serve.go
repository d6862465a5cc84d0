package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gibbs-towing/fleetsite/internal/auth"
	"github.com/gibbs-towing/fleetsite/internal/chat"
	"github.com/gibbs-towing/fleetsite/internal/editor"
	"github.com/gibbs-towing/fleetsite/internal/gallery"
	"github.com/gibbs-towing/fleetsite/internal/handlers"
	"github.com/gibbs-towing/fleetsite/internal/ingest"
	"github.com/gibbs-towing/fleetsite/internal/site"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the website and admin panel",
		Long: `Starts the website on the specified port.

The fleet gallery is loaded from storage, falling back to the fleet data
resource and then to the built-in images. The admin panel is served at a
hidden path and guarded by ADMIN_PASSWORD; it is a convenience gate, not
access control.`,
		Example: `  # Start server on default port 8888
  fleetsite serve

  # Start server on custom port with SQLite storage
  STORAGE_BACKEND=sqlite STORAGE_PATH=fleet.db fleetsite serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := openApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()
			if port == "" {
				port = a.cfg.Port
			}

			images, source := gallery.Resolve(ctx, a.chain()...)
			slog.Info("Fleet gallery loaded", "images", len(images), "source", source)
			publisher := gallery.NewPublisher(images)

			editors := editor.NewManager(&editor.Backend{
				Gate:      auth.NewGate(a.cfg.AdminPassword),
				Store:     a.store,
				Defaults:  a.defaults,
				Publisher: publisher,
				Pipeline:  ingest.New(),
			}, a.cfg.SessionTTL)
			go editors.Run(ctx, time.Minute)

			assistant := chat.NewFromName(a.cfg.Chat.Provider, a.cfg.Chat.Model)
			handler := handlers.New(publisher, editors, assistant, a.cfg.StaticDir)

			// Set up routes
			mux := http.NewServeMux()
			handler.Routes(mux)

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Website available", "addr", addr, "url", "http://localhost"+addr, "admin", site.AdminPath)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-ctx.Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default from config, 8888)")

	return cmd
}
