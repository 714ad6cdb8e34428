package router

import (
	"encoding/json"
	"net/http"

	"catalog-api/internal/handler"
	"catalog-api/internal/middleware"
	"catalog-api/internal/model"
	"catalog-api/internal/ratelimit"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Options configures the cross-cutting behaviour of the router.
type Options struct {
	// APIKey guards /api routes when non-empty.
	APIKey string

	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string

	// RateLimiter throttles clients by IP when non-nil.
	RateLimiter *ratelimit.KeyedRateLimiter

	// TrustProxy keys the rate limiter on X-Forwarded-For / X-Real-IP.
	TrustProxy bool
}

// Handlers groups the entity handlers mounted under /api.
type Handlers struct {
	Category *handler.CategoryHandler
	Product  *handler.ProductHandler
	Tag      *handler.TagHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> RequestID -> Logging -> CORS -> RateLimit -> APIKeyAuth
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(logger))
	r.Use(cors.Handler(corsOptions(opts.AllowedOrigins)))
	if opts.RateLimiter != nil {
		r.Use(middleware.RateLimit(opts.RateLimiter, opts.TrustProxy, logger))
	}
	r.Use(middleware.APIKeyAuth(opts.APIKey, logger))
	r.Use(chimiddleware.Compress(5))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusNotFound, model.ErrorResponse{
			Error:         "route not found",
			Code:          model.ErrCodeNotFound,
			CorrelationID: middleware.RequestIDFromContext(r.Context()),
		})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusMethodNotAllowed, model.ErrorResponse{
			Error:         "method not allowed",
			Code:          "METHOD_NOT_ALLOWED",
			CorrelationID: middleware.RequestIDFromContext(r.Context()),
		})
	})

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.Category.GetAll)
			r.Post("/", h.Category.Create)
			r.Get("/{id}", h.Category.GetByID)
			r.Put("/{id}", h.Category.Update)
			r.Delete("/{id}", h.Category.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.Product.GetAll)
			r.Post("/", h.Product.Create)
			r.Get("/{id}", h.Product.GetByID)
			r.Put("/{id}", h.Product.Update)
			r.Delete("/{id}", h.Product.Delete)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.Tag.GetAll)
			r.Post("/", h.Tag.Create)
			r.Get("/{id}", h.Tag.GetByID)
			r.Put("/{id}", h.Tag.Update)
			r.Delete("/{id}", h.Tag.Delete)
		})
	})

	return r
}

func corsOptions(origins []string) cors.Options {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-API-Key", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}
}

func writeStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
