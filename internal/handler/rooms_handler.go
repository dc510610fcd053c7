package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roomus/rooms-api/internal/service"
	"github.com/roomus/rooms-api/internal/service/search"
)

// RoomsHandler exposes room search, facet and lookup endpoints.
type RoomsHandler struct {
	service *service.RoomsService
}

// NewRoomsHandler creates a new handler instance.
func NewRoomsHandler(service *service.RoomsService) *RoomsHandler {
	return &RoomsHandler{service: service}
}

// Search handles GET /api/rooms/search requests.
func (h *RoomsHandler) Search(c echo.Context) error {
	filter := search.ParseFilter(c.QueryParams())

	page, err := h.service.Search(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to search rooms")
	}
	return Success(c, http.StatusOK, "rooms retrieved", page)
}

// Counts handles GET /api/rooms/counts requests.
func (h *RoomsHandler) Counts(c echo.Context) error {
	filter := search.ParseFilter(c.QueryParams())

	counts, err := h.service.Counts(c.Request().Context(), filter)
	if err != nil {
		return Error(c, http.StatusInternalServerError, "failed to count rooms")
	}
	return Success(c, http.StatusOK, "room counts retrieved", counts)
}

// Options handles GET /api/rooms/options requests.
func (h *RoomsHandler) Options(c echo.Context) error {
	return Success(c, http.StatusOK, "filter options retrieved", h.service.Options())
}

// Get handles GET /api/rooms/:id requests.
func (h *RoomsHandler) Get(c echo.Context) error {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return Error(c, http.StatusNotFound, "room not found")
	}

	room, err := h.service.GetRoom(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return Error(c, http.StatusNotFound, "room not found")
		}
		return Error(c, http.StatusInternalServerError, "failed to load room")
	}
	return Success(c, http.StatusOK, "room retrieved", room)
}
