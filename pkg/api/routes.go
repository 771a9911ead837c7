package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// API routes with method-specific routing
	mux.HandleFunc("GET /api/v2/courses", s.HandleCourses)
	mux.HandleFunc("GET /api/v2/search", s.HandleSearch)
	mux.HandleFunc("GET /api/v2/agent-progress", s.HandleAgentProgress)
	mux.HandleFunc("GET /api/v2/stats", s.HandleStats)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
