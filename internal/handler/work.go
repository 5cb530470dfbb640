package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/middleware"
	"github.com/mkettu/worklog/backend/internal/service"
)

// PostWork handles POST /work: the single action-routed mutation endpoint.
// The body is {action, ...action-specific fields}; the response is the
// view-selection result {view?, date?, project?}.
func (s *Server) PostWork(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	// Unknown payload fields are ignored: the form ships whole entities
	// (e.g. the full record object) while the dispatcher only reads ids.
	var req service.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	result, err := s.work.Dispatch(r.Context(), sess, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetWork handles GET /work. Read methods never mutate and never select a
// view: the response is always the empty view result.
func (s *Server) GetWork(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.ViewResult{})
}

// GetWorkView handles GET /work/view: runs the view selector and returns
// the full view-model for the renderer. Query parameters: view, project
// (UUID), date (RFC 3339). All optional; unauthenticated callers get the
// empty view.
func (s *Server) GetWorkView(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFromContext(r.Context())

	req, err := renderRequestFromQuery(r)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	view, err := s.work.Render(r.Context(), sess, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// renderRequestFromQuery decodes the /work/view query parameters.
func renderRequestFromQuery(r *http.Request) (service.RenderRequest, error) {
	q := r.URL.Query()
	req := service.RenderRequest{}

	switch v := q.Get("view"); v {
	case "":
	case string(domain.ViewListProjects):
		req.View = domain.ViewListProjects
	case string(domain.ViewListRecords):
		req.View = domain.ViewListRecords
	default:
		return service.RenderRequest{}, errors.New("unknown view: " + v)
	}

	if p := q.Get("project"); p != "" {
		id, err := uuid.Parse(p)
		if err != nil {
			return service.RenderRequest{}, errors.New("malformed project id")
		}
		req.ProjectID = id
	}

	if d := q.Get("date"); d != "" {
		t, err := time.Parse(time.RFC3339, d)
		if err != nil {
			return service.RenderRequest{}, errors.New("malformed date; want RFC 3339")
		}
		req.Date = &t
	}

	return req, nil
}
