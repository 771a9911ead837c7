package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/artor/studysearch/pkg/lms"
	"github.com/artor/studysearch/pkg/search"
	"github.com/artor/studysearch/pkg/version"
)

func (s *Server) HandleCourses(w http.ResponseWriter, r *http.Request) {
	params := search.ParseParams(r.URL.Query())

	list, err := s.search.CoursesByCategory(params)
	if err != nil {
		if errors.Is(err, lms.ErrMissingDependency) {
			s.writeError(w, http.StatusInternalServerError, "controller_not_found",
				"No course listing backend is configured")
			return
		}
		s.writeInternalError(w, "Course query failed", err)
		return
	}

	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) HandleSearch(w http.ResponseWriter, r *http.Request) {
	params := search.ParseParams(r.URL.Query())

	results, err := s.search.CombinedSearch(params)
	if err != nil {
		s.writeInternalError(w, "Search failed", err)
		return
	}

	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) HandleAgentProgress(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	includeLessons := true
	if raw := query.Get("include_lessons"); raw != "" {
		if parsed, err := strconv.ParseBool(raw); err == nil {
			includeLessons = parsed
		}
	}

	report, err := s.progress.Report(query.Get("agent_id"), query.Get("status"), includeLessons)
	if err != nil {
		switch {
		case errors.Is(err, lms.ErrBadRequest):
			s.writeError(w, http.StatusBadRequest, "no_agent_id",
				"Parameter 'agent_id' is required")
		case errors.Is(err, lms.ErrNotFound):
			s.writeError(w, http.StatusNotFound, "agent_not_found",
				"No user matches the given agent identifier")
		default:
			s.writeInternalError(w, "Progress aggregation failed", err)
		}
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.GetStats()
	if err != nil {
		s.writeInternalError(w, "Failed to get stats", err)
		return
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}
	if s.updater != nil {
		health.Update = s.updater.CachedStatus()
	}

	s.writeJSON(w, http.StatusOK, health)
}
