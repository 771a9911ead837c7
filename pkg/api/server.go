// Package api exposes the search and progress services over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/klauspost/compress/gzhttp"

	"github.com/artor/studysearch/pkg/log"
	"github.com/artor/studysearch/pkg/progress"
	"github.com/artor/studysearch/pkg/search"
	"github.com/artor/studysearch/pkg/storage"
	"github.com/artor/studysearch/pkg/updater"
)

type Server struct {
	store    *storage.Store
	search   *search.Service
	progress *progress.Aggregator
	updater  *updater.Checker
	logger   *log.Logger
}

// NewServer wires the HTTP layer. The updater is optional; without one
// the health payload simply omits update information.
func NewServer(store *storage.Store, searchService *search.Service, aggregator *progress.Aggregator, checker *updater.Checker) *Server {
	return &Server{
		store:    store,
		search:   searchService,
		progress: aggregator,
		updater:  checker,
		logger:   log.ForService("api"),
	}
}

// Handler assembles the routed mux with the middleware stack.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = s.RecoverMiddleware(handler)
	handler = s.RequestLogMiddleware(handler)
	handler = CorsMiddleware(handler)
	return gzhttp.GzipHandler(handler)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Errorf("encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, ErrorResponse{
		ErrorCode: code,
		Message:   message,
	})
}

func (s *Server) writeInternalError(w http.ResponseWriter, message string, err error) {
	s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		ErrorCode: "internal_error",
		Message:   message,
		Details:   err.Error(),
	})
}

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequestLogMiddleware tags every request with an id and logs it.
func (s *Server) RequestLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", requestID)

		s.logger.Debugf("%s %s (%s)", r.Method, r.URL.RequestURI(), requestID)
		next.ServeHTTP(w, r)
	})
}

// RecoverMiddleware converts panics anywhere in the pipeline into the
// internal-error envelope instead of tearing the connection down.
func (s *Server) RecoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{
					ErrorCode: "internal_error",
					Message:   "Unexpected server error",
					Details:   stringify(rec),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func stringify(v interface{}) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "unknown panic"
}
