package server

import (
	"fmt"
	"net/http"

	"lyric-story-web/internal/builder"
	"lyric-story-web/internal/config"
	"lyric-story-web/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(cfg *config.Config, appCtx *builder.AppContext) (http.Handler, error) {
	webHandler, err := handlers.NewHandler(cfg, appCtx.Pipeline, appCtx.SlackNotifier)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web handler: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)

	r.Get("/", webHandler.Index)
	r.Post("/generate", webHandler.HandleSubmit)
	r.Get("/healthz", healthz)

	return r, nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
