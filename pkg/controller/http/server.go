package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/headwind-cms/headwind/pkg/usecase"
	"github.com/headwind-cms/headwind/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Route("/content-types", func(r chi.Router) {
			r.Post("/", s.createContentType)
			r.Get("/", s.listContentTypes)
			r.Get("/{typeID}", s.getContentType)
			r.Put("/{typeID}/fields", s.replaceContentTypeFields)
			r.Delete("/{typeID}", s.deleteContentType)
		})

		r.Route("/content/{typeID}", func(r chi.Router) {
			r.Post("/", s.createContent)
			r.Get("/", s.listContent)
			r.Get("/{recordID}", s.getContent)
			r.Put("/{recordID}", s.updateContent)
			r.Delete("/{recordID}", s.deleteContent)
			r.Get("/{recordID}/activity", s.getContentActivity)
		})

		r.Post("/validate", s.bulkValidate)
		r.Get("/kinds", kindsHandler)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
