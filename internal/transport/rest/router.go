package rest

import (
	"net/http"

	"mindshift/internal/service"
	"mindshift/internal/transport/rest/handler"
	"mindshift/internal/transport/rest/middleware"
	"mindshift/internal/transport/ws"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CORSConfig holds the Access-Control-* values; empty fields fall back to
// permissive defaults
type CORSConfig struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// Container holds all dependencies for the router
type Container struct {
	AuthService           *service.AuthService
	QuestionService       *service.QuestionService
	ProfileService        *service.ProfileService
	RecommendationService *service.RecommendationService
	BlocklistService      *service.BlocklistService
	WSHub                 *ws.Hub
	Metrics               http.Handler
	CORS                  CORSConfig
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	questionHandler := handler.NewQuestionHandler(c.QuestionService)
	profileHandler := handler.NewProfileHandler(c.ProfileService)
	eventHandler := handler.NewEventHandler(c.RecommendationService)
	blocklistHandler := handler.NewBlocklistHandler(c.BlocklistService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	metricsHandler := c.Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Handle("/metrics", metricsHandler).Methods("GET")

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/session", authHandler.Session).Methods("POST", "OPTIONS")
	v1.HandleFunc("/questions/general", questionHandler.General).Methods("GET", "OPTIONS")
	v1.HandleFunc("/stats/types", profileHandler.TypeStats).Methods("GET", "OPTIONS")

	// WebSocket route (public with token in query param)
	if c.WSHub != nil {
		wsHandler := ws.NewHandler(c.WSHub, c.AuthService)
		v1.HandleFunc("/ws", wsHandler.UserWS).Methods("GET")
	}

	// User routes (require session auth)
	userRoutes := v1.NewRoute().Subrouter()
	userRoutes.Use(authMW.RequireUser)

	userRoutes.HandleFunc("/history", questionHandler.History).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/questions", questionHandler.Themed).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/answers", profileHandler.Submit).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/profile", profileHandler.Latest).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/profile/history", profileHandler.History).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/events", eventHandler.Create).Methods("POST", "OPTIONS")

	userRoutes.HandleFunc("/blocklist", blocklistHandler.List).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/blocklist", blocklistHandler.Add).Methods("POST", "OPTIONS")
	userRoutes.HandleFunc("/blocklist", blocklistHandler.Remove).Methods("DELETE", "OPTIONS")
	userRoutes.HandleFunc("/blocklist/check", blocklistHandler.Check).Methods("GET", "OPTIONS")
	userRoutes.HandleFunc("/blocklist.txt", blocklistHandler.Text).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(cfg CORSConfig) mux.MiddlewareFunc {
	allowedOrigins := cfg.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	allowedMethods := cfg.AllowedMethods
	if allowedMethods == "" {
		allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}

	allowedHeaders := cfg.AllowedHeaders
	if allowedHeaders == "" {
		allowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
