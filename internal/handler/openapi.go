package handler

import (
	"net/http"

	"github.com/mkettu/worklog/backend/spec"
)

// GetOpenAPI handles GET /openapi.yaml.
// Serving the embedded document keeps the spec and the running code in sync.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(spec.OpenAPI)
}
