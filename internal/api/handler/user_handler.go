package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/eventify/eventify/internal/core/ports"
)

// UserHandler serves routes available to any authenticated user.
type UserHandler struct {
	users         ports.UserService
	events        ports.EventService
	registrations ports.RegistrationService
}

func NewUserHandler(users ports.UserService, events ports.EventService, registrations ports.RegistrationService) *UserHandler {
	return &UserHandler{users: users, events: events, registrations: registrations}
}

// Profile returns the current user's account record.
//
// @Summary      Get own profile
// @Tags         user
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /api/user/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
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

type updateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}

// UpdateProfile changes the current user's display name.
//
// @Summary      Update own profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body  body      updateProfileRequest  true  "Profile changes"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /api/user/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), principal.ID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// RegisterForEvent signs the current user up for an event.
//
// @Summary      Register for an event
// @Tags         user
// @Produce      json
// @Param        id   path      int  true  "Event ID"
// @Success      201  {object}  registrationResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/user/events/{id}/register [post]
func (h *UserHandler) RegisterForEvent(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	ctx := c.Request().Context()
	reg, err := h.registrations.Register(ctx, principal.ID, eventID)
	if err != nil {
		return err
	}

	resp := toRegistrationResponse(reg, nil)
	if event, err := h.events.Get(ctx, eventID); err == nil {
		count, _ := h.registrations.Count(ctx, eventID)
		er := toEventResponse(event, count)
		resp.Event = &er
	}

	return c.JSON(http.StatusCreated, resp)
}

// Registrations lists the current user's registrations with event details.
//
// @Summary      List own registrations
// @Tags         user
// @Produce      json
// @Success      200  {array}  registrationResponse
// @Router       /api/user/registrations [get]
func (h *UserHandler) Registrations(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	regs, err := h.registrations.ListByUser(ctx, principal.ID)
	if err != nil {
		return err
	}

	resp := make([]registrationResponse, 0, len(regs))
	for i := range regs {
		r := toRegistrationResponse(&regs[i], nil)
		if event, err := h.events.Get(ctx, regs[i].EventID); err == nil {
			count, _ := h.registrations.Count(ctx, event.ID)
			er := toEventResponse(event, count)
			r.Event = &er
		}
		resp = append(resp, r)
	}

	return c.JSON(http.StatusOK, resp)
}

// CancelRegistration removes the current user's registration for an event.
//
// @Summary      Cancel a registration
// @Tags         user
// @Param        id  path  int  true  "Event ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /api/user/events/{id}/register [delete]
func (h *UserHandler) CancelRegistration(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	eventID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	if err := h.registrations.Cancel(c.Request().Context(), principal.ID, eventID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
