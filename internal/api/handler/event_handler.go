package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify/internal/core/ports"
)

// EventHandler serves the public event listing.
type EventHandler struct {
	events        ports.EventService
	registrations ports.RegistrationService
}

func NewEventHandler(events ports.EventService, registrations ports.RegistrationService) *EventHandler {
	return &EventHandler{events: events, registrations: registrations}
}

// Upcoming lists upcoming events. No authentication required.
//
// @Summary      List upcoming events
// @Tags         public
// @Produce      json
// @Success      200  {array}  eventResponse
// @Router       /api/public/events [get]
func (h *EventHandler) Upcoming(c echo.Context) error {
	ctx := c.Request().Context()
	events, err := h.events.Upcoming(ctx)
	if err != nil {
		return err
	}

	resp := make([]eventResponse, 0, len(events))
	for i := range events {
		count, _ := h.registrations.Count(ctx, events[i].ID)
		resp = append(resp, toEventResponse(&events[i], count))
	}
	return c.JSON(http.StatusOK, resp)
}
