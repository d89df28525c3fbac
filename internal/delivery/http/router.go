package http

import (
	"net/http"

	"eventcheckin/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(graphqlHandler, wsHandler http.Handler, healthController *controllers.HealthController) *http.ServeMux {
	mux := http.NewServeMux()

	// Single GraphQL endpoint; GET serves GraphiQL when enabled.
	mux.Handle("/graphql", graphqlHandler)

	// Realtime fan-out
	mux.Handle("GET /ws", wsHandler)

	// Liveness
	mux.HandleFunc("GET /healthz", healthController.Live)

	return mux
}
