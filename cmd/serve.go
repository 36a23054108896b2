package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/coverage-cli/internal/model"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the article ingest server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initPipeline(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/ingest/article", func(w http.ResponseWriter, req *http.Request) {
			var article model.Article
			if err := json.NewDecoder(req.Body).Decode(&article); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if article.Title == "" || article.URL == "" || article.Content == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title, url, and content are required"})
				return
			}
			if article.PublishedAt == nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "published_at is required"})
				return
			}

			// Process asynchronously; the run audit trail carries the outcome.
			go func() {
				result, err := e.Pipeline.Run(ctx, article)
				if err != nil {
					zap.L().Error("ingest processing failed",
						zap.String("url", article.URL),
						zap.Error(err),
					)
					return
				}
				zap.L().Info("ingest processing complete",
					zap.String("url", article.URL),
					zap.String("company", result.Company),
					zap.String("quarter", result.Quarter),
					zap.Int("facts", result.Facts),
				)
			}()

			writeJSON(w, http.StatusAccepted, map[string]string{
				"status": "accepted",
				"url":    article.URL,
			})
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			if err := shutdownServer(srv, serveDrainTimeout); err != nil {
				zap.L().Warn("server shutdown", zap.Error(err))
			}
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// serveDrainTimeout bounds how long in-flight requests get to finish after a
// shutdown signal.
const serveDrainTimeout = 10 * time.Second

// shutdownServer drains the server under a fresh timeout context. The signal
// context is already cancelled by the time shutdown starts, so it cannot be
// reused here.
func shutdownServer(srv *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
