// Package handler implements the HTTP handlers for the Worklog API.
// All handlers are methods on Server. The inbound surface is deliberately
// small: one action-routed POST endpoint plus read-only view, export, and
// health endpoints.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/mkettu/worklog/backend/internal/domain"
	"github.com/mkettu/worklog/backend/internal/service"
)

// WorkServicer defines the business operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type WorkServicer interface {
	Dispatch(ctx context.Context, sess domain.Session, req service.ActionRequest) (domain.ViewResult, error)
	Render(ctx context.Context, sess domain.Session, req service.RenderRequest) (domain.RenderedView, error)
	Export(ctx context.Context, sess domain.Session) ([]domain.ExportRow, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	work WorkServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(work WorkServicer) *Server {
	return &Server{work: work}
}

// Routes returns the router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/work", s.GetWork)
	r.Post("/work", s.PostWork)
	r.Get("/work/view", s.GetWorkView)
	r.Get("/work/export", s.GetExport)
	return r
}
