package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"quinceinvitation/internal/delivery/http/controllers"
	"quinceinvitation/internal/delivery/http/middleware"
)

// NewRouter initializes the HTTP router with all application routes.
// metricsHandler may be nil, in which case /metrics is not served.
func NewRouter(rsvpController *controllers.RSVPController, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// API Routes
	mux.HandleFunc("POST /api/submit-rsvp", rsvpController.SubmitRSVP)
	mux.HandleFunc("GET /healthz", controllers.Health)

	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request ID, access logging and CORS.
func NewHandler(logger *slog.Logger, mux http.Handler, allowedOrigins []string) http.Handler {
	h := middleware.CORS(allowedOrigins, mux)
	h = middleware.LoggingMiddleware(logger, h)
	return middleware.RequestID(h)
}
