package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roomus/rooms-api/internal/dto"
	middleware "github.com/roomus/rooms-api/internal/middleware"
	"github.com/roomus/rooms-api/internal/service"
)

// ContactHandler accepts enquiries about a room and relays them to the
// notification worker when one is configured.
type ContactHandler struct {
	contacts *service.ContactService
	worker   WorkerPoster
	logger   *slog.Logger
}

// NewContactHandler wires a handler. A nil worker acknowledges every request
// without relaying it.
func NewContactHandler(contacts *service.ContactService, worker WorkerPoster, logger *slog.Logger) *ContactHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContactHandler{contacts: contacts, worker: worker, logger: logger}
}

// Send handles POST /api/rooms/:id/contact requests. The room id is not
// checked against the collection; every well-formed request is accepted.
func (h *ContactHandler) Send(c echo.Context) error {
	var req dto.ContactRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}

	roomID := strings.TrimSpace(c.Param("id"))
	msg := h.contacts.Prepare(roomID, req)

	relayed := false
	if h.worker != nil {
		rid := middleware.RequestIDFromContext(c)
		if _, err := h.worker.PostJSON(c.Request().Context(), "/contact", msg, rid); err != nil {
			h.logger.Error("contact relay failed",
				slog.String("request_id", rid),
				slog.String("room_id", roomID),
				slog.String("error", err.Error()),
			)
			return Error(c, http.StatusBadGateway, "failed to relay contact message")
		}
		relayed = true
	}

	return Success(c, http.StatusOK, "contact message accepted", dto.ContactResponse{
		OK:      true,
		RoomID:  roomID,
		Relayed: relayed,
	})
}
