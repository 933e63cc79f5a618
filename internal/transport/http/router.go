package http

import (
	"net/http"

	"github.com/rs/cors"
)

// NewRouter mounts the websocket gateway, room snapshots and health check,
// wrapped in CORS for browser clients. An empty origin list allows all.
func NewRouter(ws *WSHandler, rooms *RoomsHandler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ws", ws.ServeWS)
	mux.HandleFunc("GET /rooms/{code}", rooms.ServeSnapshot)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet},
	}).Handler(mux)
}
