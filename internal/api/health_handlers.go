package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Component statuses, worst last.
const (
	statusHealthy   = "healthy"
	statusDegraded  = "degraded"
	statusUnhealthy = "unhealthy"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "healthCheck",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Description: "Returns server health status with component checks",
		Tags:        []string{"Health"},
	}, s.handleHealthCheck)
}

// ComponentHealth describes the health of a single component.
type ComponentHealth struct {
	Status  string `json:"status" doc:"Component status: healthy, degraded, or unhealthy"`
	Latency string `json:"latency,omitempty" doc:"Response time for this component"`
	Message string `json:"message,omitempty" doc:"Additional status information"`
}

// HealthResponse contains health check data in API responses.
type HealthResponse struct {
	Status     string                     `json:"status" doc:"Overall status: healthy, degraded, or unhealthy"`
	Components map[string]ComponentHealth `json:"components" doc:"Individual component statuses"`
}

// HealthOutput wraps the health response for Huma.
type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleHealthCheck(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	components := map[string]ComponentHealth{
		"storage": s.checkStorage(),
		"search":  s.checkSearchIndex(),
	}

	overall := statusHealthy
	for _, c := range components {
		overall = worse(overall, c.Status)
	}

	return &HealthOutput{
		Body: HealthResponse{
			Status:     overall,
			Components: components,
		},
	}, nil
}

// checkStorage reports whether the backing store is lagging behind memory:
// a key could not be read at startup, or the last write failed.
// The catalog keeps serving from memory in that case, so it is degraded
// rather than unhealthy.
func (s *Server) checkStorage() ComponentHealth {
	if s.store == nil {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "store not configured",
		}
	}

	if keys := s.store.SuspendedKeys(); len(keys) > 0 {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "not writing keys that failed to load: " + strings.Join(keys, ", "),
		}
	}
	if err := s.store.LastWriteError(); err != nil {
		return ComponentHealth{
			Status:  statusDegraded,
			Message: "last write failed: " + err.Error(),
		}
	}
	return ComponentHealth{Status: statusHealthy}
}

// checkSearchIndex verifies the Bleve index is accessible.
func (s *Server) checkSearchIndex() ComponentHealth {
	if s.services == nil || s.services.Search == nil || !s.services.Search.Enabled() {
		return ComponentHealth{
			Status:  statusHealthy,
			Message: "search disabled",
		}
	}

	start := time.Now()
	docCount, err := s.services.Search.IndexedDocuments()
	latency := time.Since(start)

	if err != nil {
		return ComponentHealth{
			Status:  statusUnhealthy,
			Latency: latency.String(),
			Message: "search index unreachable",
		}
	}

	return ComponentHealth{
		Status:  statusHealthy,
		Latency: latency.String(),
		Message: fmt.Sprintf("%d documents indexed", docCount),
	}
}

func worse(a, b string) string {
	rank := map[string]int{statusHealthy: 0, statusDegraded: 1, statusUnhealthy: 2}
	if rank[b] > rank[a] {
		return b
	}
	return a
}
