package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ekorolev/coinkeeper/pkg/api"
)

// Pinger проверяет доступность хранилища
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler обрабатывает health-check запросы
type HealthHandler struct {
	pinger Pinger
	logger *slog.Logger
}

// NewHealthHandler создает новый HealthHandler
func NewHealthHandler(pinger Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		pinger: pinger,
		logger: logger,
	}
}

// Health обрабатывает GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Status:   "ok",
		Database: "ok",
	}
	status := http.StatusOK

	if err := h.pinger.Ping(r.Context()); err != nil {
		h.logger.Error("database ping failed", slog.Any("error", err))
		resp.Status = "degraded"
		resp.Database = "unavailable"
		status = http.StatusServiceUnavailable
	}

	sendJSON(h.logger, w, resp, status)
}
