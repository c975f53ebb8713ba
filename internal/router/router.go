package router

import (
	"net/http"
	"strings"

	"cucinanostrard/internal/handler"
	"cucinanostrard/internal/middleware"
	"cucinanostrard/internal/session"

	"github.com/rs/zerolog"
)

// New creates the HTTP router. Catalogue reads are public so the
// storefront always renders; mutations and admin views sit behind the
// session-token check.
func New(
	productHandler *handler.ProductHandler,
	sessionHandler *handler.SessionHandler,
	manager *session.Manager,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.SessionAuth(manager, logger)

	// Health check endpoint (no authentication required)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	productCollection := func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			productHandler.List(w, r)
		case http.MethodPost:
			auth(http.HandlerFunc(productHandler.Create)).ServeHTTP(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	productItem := func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/products/featured":
			productHandler.Featured(w, r)
			return
		case "/api/products/stats":
			auth(http.HandlerFunc(productHandler.Stats)).ServeHTTP(w, r)
			return
		}

		switch r.Method {
		case http.MethodGet:
			productHandler.GetByID(w, r)
		case http.MethodPut:
			auth(http.HandlerFunc(productHandler.Update)).ServeHTTP(w, r)
		case http.MethodDelete:
			auth(http.HandlerFunc(productHandler.Delete)).ServeHTTP(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}

	mux.HandleFunc("/api/products", productCollection)
	mux.HandleFunc("/api/products/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/products/" {
			productCollection(w, r)
			return
		}
		productItem(w, r)
	})

	mux.HandleFunc("/api/auth/", func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimSuffix(r.URL.Path, "/") {
		case "/api/auth/login":
			sessionHandler.Login(w, r)
		case "/api/auth/logout":
			auth(http.HandlerFunc(sessionHandler.Logout)).ServeHTTP(w, r)
		case "/api/auth/logout-all":
			auth(http.HandlerFunc(sessionHandler.LogoutAll)).ServeHTTP(w, r)
		case "/api/auth/sessions":
			auth(http.HandlerFunc(sessionHandler.Sessions)).ServeHTTP(w, r)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	})

	// Apply middleware in order: Recovery -> Logging -> CORS
	var h http.Handler = mux
	h = middleware.CORS(h)
	h = middleware.Logging(logger)(h)
	h = middleware.Recovery(logger)(h)

	return h
}
