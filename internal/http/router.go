// Package httpx wires the HTTP surface: auth, profile, room directory,
// health, metrics, and the websocket endpoint.
package httpx

import (
	"net/http"

	"github.com/YashGangan/chatteroo/internal/app"
	"github.com/YashGangan/chatteroo/internal/chat"
	"github.com/YashGangan/chatteroo/internal/store"
	"github.com/YashGangan/chatteroo/internal/ws"
	"github.com/YashGangan/chatteroo/pkg/auth"
	"github.com/YashGangan/chatteroo/pkg/metrics"
)

// NewRouter wires up all HTTP routes, middleware, and handlers
func NewRouter(cfg app.Config, hub *ws.Hub, reg *chat.Registry, db *store.Postgres, sessions *store.Sessions) http.Handler {
	mw := NewMiddleware(cfg, sessions)

	j := auth.New(cfg.JWTSecret)
	authAPI := &AuthAPI{DB: db, JWT: j, Sessions: sessions}
	profileAPI := &ProfileAPI{DB: db}
	roomsAPI := &RoomsAPI{Reg: reg}

	mux := http.NewServeMux()

	// Health / readiness / metrics
	mux.Handle("/healthz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/readyz", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) }))
	mux.Handle("/metrics", metrics.Handler())

	// WebSocket endpoint
	mux.Handle("/ws", http.HandlerFunc(hub.ServeWS))

	// Auth endpoints
	mux.Handle("/api/auth/register", http.HandlerFunc(authAPI.Register))
	mux.Handle("/api/auth/login", http.HandlerFunc(authAPI.Login))
	mux.Handle("/api/auth/logout", http.HandlerFunc(authAPI.Logout))
	mux.Handle("/api/auth/me", mw.Auth(http.HandlerFunc(authAPI.Me)))

	// Profile (JWT-protected) + room directory
	mux.Handle("/api/profile", mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			profileAPI.Update(w, r)
			return
		}
		http.NotFound(w, r)
	})))
	mux.Handle("/api/rooms", http.HandlerFunc(roomsAPI.List))

	// CORS + rate limit applied globally
	return mw.Wrap(mux)
}
