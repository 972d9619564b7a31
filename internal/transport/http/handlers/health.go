package handlers

import (
	"net/http"

	"github.com/culturalite/backend/internal/transport/http/response"
)

type HealthHandler struct {
	version string
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status":  "healthy",
		"message": "culturalite backend is running",
		"version": h.version,
	})
}
