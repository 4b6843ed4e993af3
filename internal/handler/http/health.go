package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/senam-dashboard/internal/handler/http/response"
)

// HealthChecker reports whether the backend answers.
type HealthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler interface {
	Check(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	backend HealthChecker
}

func NewHealthHandler(backend HealthChecker) HealthHandler {
	return &healthHandlerImpl{backend: backend}
}

type healthResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}

// Check handles GET /health
func (h *healthHandlerImpl) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.backend.Health(r.Context()); err != nil {
		slog.Warn("backend health check failed", "error", err)
		response.SuccessWithMessage(w, "Backend tidak dapat dihubungi", healthResponse{Status: "ok", Backend: "unreachable"})
		return
	}

	response.Success(w, healthResponse{Status: "ok", Backend: "ok"})
}
