package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/elee1766/coursechat/src/aisdk"
	"github.com/elee1766/coursechat/src/rag"
)

// QueryRequest is the body of POST /api/query.
type QueryRequest struct {
	Query     string `json:"query" validate:"required"`
	SessionID string `json:"session_id,omitempty"`
}

// QueryResponse is the answer to a query with its sources.
type QueryResponse struct {
	Answer    string           `json:"answer"`
	Sources   []aisdk.Citation `json:"sources"`
	SessionID string           `json:"session_id"`
}

// CoursesResponse is the catalog analytics payload of GET /api/courses.
type CoursesResponse struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}

type queryHandler struct {
	system   *rag.System
	validate *validator.Validate
	logger   *slog.Logger
}

func (h *queryHandler) query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("field '%s' failed validation on '%s'", verrs[0].Field(), verrs[0].Tag()))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	answer, sources, sid, err := h.system.Answer(r.Context(), req.Query, req.SessionID)
	if err != nil {
		h.logger.Error("query failed", "error", err, "session_id", sid)
		writeError(w, http.StatusInternalServerError, "failed to answer query")
		return
	}
	if sources == nil {
		sources = []aisdk.Citation{}
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Answer:    answer,
		Sources:   sources,
		SessionID: sid,
	})
}

func (h *queryHandler) courses(w http.ResponseWriter, r *http.Request) {
	stats, err := h.system.Analytics(r.Context())
	if err != nil {
		h.logger.Error("course analytics failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load course stats")
		return
	}

	writeJSON(w, http.StatusOK, CoursesResponse{
		TotalCourses: stats.TotalCourses,
		CourseTitles: stats.CourseTitles,
	})
}

func (h *queryHandler) deleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.system.ClearSession(id); err != nil {
		if errors.Is(err, rag.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		h.logger.Error("session delete failed", "error", err, "session_id", id)
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "session cleared",
		"session_id": id,
	})
}

// health is kept outside the middleware stack so probes stay cheap and
// unlogged.
func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}
