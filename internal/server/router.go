package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wizvault/wizvault/internal/api"
	"github.com/wizvault/wizvault/internal/api/handlers"
	"github.com/wizvault/wizvault/internal/api/middleware"
)

type RouterConfig struct {
	PDFHandler *handlers.PDFHandler
	// WebUI serves the browser frontend at the root path when set.
	WebUI http.Handler
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Uploads carry whole PDFs, so the body cap is generous.
	const maxBodyBytes int64 = 50 * 1024 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog)
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/pdf", func(r chi.Router) {
		r.Post("/upload", cfg.PDFHandler.Upload)
		r.Get("/ask", cfg.PDFHandler.Ask)
		r.Get("/list", cfg.PDFHandler.List)
		r.Get("/chunks", cfg.PDFHandler.Chunks)
	})

	if cfg.WebUI != nil {
		r.Handle("/*", cfg.WebUI)
	}

	return r
}
