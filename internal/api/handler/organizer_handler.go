package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify/internal/core/domain"
	"github.com/eventify/eventify/internal/core/ports"
)

// OrganizerHandler serves event management routes for organizers.
type OrganizerHandler struct {
	users         ports.UserService
	events        ports.EventService
	registrations ports.RegistrationService
}

func NewOrganizerHandler(users ports.UserService, events ports.EventService, registrations ports.RegistrationService) *OrganizerHandler {
	return &OrganizerHandler{users: users, events: events, registrations: registrations}
}

// Events lists the organizer's own events.
//
// @Summary      List own events
// @Tags         organizer
// @Produce      json
// @Success      200  {array}  eventResponse
// @Router       /api/organizer/events [get]
func (h *OrganizerHandler) Events(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	events, err := h.events.ByOrganizer(ctx, principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.toResponses(c, events))
}

// CreateEvent creates an event owned by the organizer.
//
// @Summary      Create an event
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Param        body  body      eventRequest  true  "Event details"
// @Success      201   {object}  eventResponse
// @Failure      400   {object}  map[string]string
// @Router       /api/organizer/events [post]
func (h *OrganizerHandler) CreateEvent(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Capacity:    req.Capacity,
		OrganizerID: principal.ID,
	}

	created, err := h.events.Create(c.Request().Context(), event)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toEventResponse(created, 0))
}

// UpdateEvent updates an event the organizer owns.
//
// @Summary      Update an event
// @Tags         organizer
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "Event ID"
// @Param        body  body      eventRequest  true  "Event details"
// @Success      200   {object}  eventResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/organizer/events/{id} [put]
func (h *OrganizerHandler) UpdateEvent(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	updated, err := h.events.Update(ctx, principal.ID, &domain.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Capacity:    req.Capacity,
	})
	if err != nil {
		return err
	}

	count, _ := h.registrations.Count(ctx, id)
	return c.JSON(http.StatusOK, toEventResponse(updated, count))
}

// DeleteEvent deletes an event the organizer owns.
//
// @Summary      Delete an event
// @Tags         organizer
// @Param        id  path  int  true  "Event ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/organizer/events/{id} [delete]
func (h *OrganizerHandler) DeleteEvent(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	if err := h.events.Delete(c.Request().Context(), principal.ID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Profile returns the organizer's account record.
//
// @Summary      Get own profile
// @Tags         organizer
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /api/organizer/profile [get]
func (h *OrganizerHandler) Profile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.FindByEmail(c.Request().Context(), principal.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

func (h *OrganizerHandler) toResponses(c echo.Context, events []domain.Event) []eventResponse {
	ctx := c.Request().Context()
	resp := make([]eventResponse, 0, len(events))
	for i := range events {
		count, _ := h.registrations.Count(ctx, events[i].ID)
		resp = append(resp, toEventResponse(&events[i], count))
	}
	return resp
}
