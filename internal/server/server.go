// Package server exposes the enrichment pipeline over HTTP: visitor
// tracking and lookup for authenticated callers, diagnostics for admins,
// and account registration/login.
package server

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"leadscope/internal/auth"
	"leadscope/internal/enrich"
	"leadscope/internal/model"
	"leadscope/internal/store"
)

// Server is the HTTP server.
type Server struct {
	service *enrich.Service
	store   store.Store // may be nil: tracking then skips persistence
	auth    *auth.Auth
	mux     *http.ServeMux
}

// New wires the routes. st may be nil when persistence is disabled.
func New(svc *enrich.Service, st store.Store, a *auth.Auth) *Server {
	s := &Server{
		service: svc,
		store:   st,
		auth:    a,
		mux:     http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/v1/users/register", s.handleRegister)
	s.mux.HandleFunc("POST /api/v1/users/login", s.handleLogin)

	s.mux.Handle("GET /api/v1/enrich/{ip}", s.auth.RequireAuth(http.HandlerFunc(s.handleEnrich)))
	s.mux.Handle("POST /api/v1/track", s.auth.RequireAuth(http.HandlerFunc(s.handleTrack)))

	s.mux.Handle("GET /api/v1/stats", s.auth.RequireAdmin(http.HandlerFunc(s.handleStats)))
	s.mux.Handle("POST /api/v1/cache/clear", s.auth.RequireAdmin(http.HandlerFunc(s.handleCacheClear)))
	s.mux.Handle("GET /api/v1/domains", s.auth.RequireAdmin(http.HandlerFunc(s.handleDomains)))
	s.mux.Handle("GET /api/v1/visits", s.auth.RequireAdmin(http.HandlerFunc(s.handleVisits)))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	s.mux.ServeHTTP(w, r)

	log.Debug("http", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, &model.ErrorResponse{
		Error: msg,
		Code:  status,
	})
}

func isPrivateIP(ipStr string) bool {
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return false
	}

	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"127.0.0.0/8",
		"::1/128",
		"fc00::/7",
		"fe80::/10",
	}

	for _, r := range privateRanges {
		_, cidr, _ := net.ParseCIDR(r)
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
