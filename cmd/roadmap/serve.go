package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/roadmap/internal/api"
	"github.com/rgehrsitz/roadmap/internal/config"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the roadmap JSON API",
		Long: `Serves the roadmap JSON API over HTTP.

Settings come from flags, then ROADMAP_* environment variables (a .env
file is loaded when present), then defaults.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := config.LoadSettings(settings)
			if err != nil {
				return err
			}

			handler := api.NewHandler(newEngine(settings))
			handler.Version = version
			if s.Debug {
				handler.Logger = simpleCLILogger{}
			}

			server := &http.Server{
				Addr:         s.Addr(),
				Handler:      api.NewRouter(handler, s.AllowedOrigins),
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("Server starting on http://localhost%s", s.Addr())
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Println("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Println("Server stopped")
			return nil
		},
	}

	cmd.Flags().Int("port", 8080, "HTTP server port")
	cmd.Flags().StringSlice("allowed-origins", []string{"*"}, "CORS allowed origins")
	cmd.Flags().Int("cache-size", 4096, "Allocation cache entries (0 disables caching)")
	_ = settings.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = settings.BindPFlag("allowed_origins", cmd.Flags().Lookup("allowed-origins"))
	_ = settings.BindPFlag("cache_size", cmd.Flags().Lookup("cache-size"))
	return cmd
}
