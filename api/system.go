package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthPingTimeout = 2 * time.Second

// SystemHandler serves the unauthenticated operational endpoints.
type SystemHandler struct {
	// Ping checks the backing store. A nil Ping reports the store as ok.
	Ping func(ctx context.Context) error
}

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

type versionResponse struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
}

func (h *SystemHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Service: "jobboard", Database: "ok"}
	if h.Ping != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthPingTimeout)
		defer cancel()
		if err := h.Ping(ctx); err != nil {
			logger.Error("health check failed", slog.Any("err", err))
			resp.Status = "error"
			resp.Database = "unavailable"
			writeJSON(w, resp, http.StatusServiceUnavailable)
			return
		}
	}
	writeJSON(w, resp, http.StatusOK)
}

func (h *SystemHandler) VersionHandler(version, buildTime string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, versionResponse{Version: version, BuildTime: buildTime}, http.StatusOK)
	}
}
