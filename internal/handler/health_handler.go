package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListingCounter reports the size of the loaded collection.
type ListingCounter interface {
	Len() int
}

// HealthHandler serves the liveness check.
type HealthHandler struct {
	listings ListingCounter
}

// NewHealthHandler creates a new handler instance.
func NewHealthHandler(listings ListingCounter) *HealthHandler {
	return &HealthHandler{listings: listings}
}

// Check handles GET /healthz requests.
func (h *HealthHandler) Check(c echo.Context) error {
	data := map[string]any{"status": "ok"}
	if h.listings != nil {
		data["listings"] = h.listings.Len()
	}
	return Success(c, http.StatusOK, "service healthy", data)
}
