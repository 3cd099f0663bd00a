package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/raslen-der12/event-api-sub000/internal/dto"
	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

type RegistrationHandler struct {
	svc service.AdmissionService
}

func NewRegistrationHandler(svc service.AdmissionService) *RegistrationHandler {
	return &RegistrationHandler{svc: svc}
}

func (h *RegistrationHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("/:id/registrations", h.CreateRegistration)
	events.GET("/:id/registrations", h.ListRegistrations)
	events.DELETE("/:id/registrations/:actorID", h.CancelRegistration)
	events.POST("/:id/waitlist", h.JoinWaitlist)
}

func (h *RegistrationHandler) CreateRegistration(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateRegistrationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}
	role, ok := models.ParseActorRole(req.ActorRole)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_role must be attendee, exhibitor or speaker")
	}

	regs, err := h.svc.ReserveMany(c.Request().Context(), uint(eventID), req.SessionIDs, req.ActorID, role)
	if err != nil {
		return admissionHTTPError(err)
	}

	resp := make([]dto.RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = dto.ToRegistrationResponse(&r)
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *RegistrationHandler) CancelRegistration(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}
	actorID := c.Param("actorID")
	if actorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "actor id is required")
	}

	ref := service.EventRef(uint(eventID))
	if raw := c.QueryParam("session_id"); raw != "" {
		sessionID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid session_id")
		}
		ref = service.SessionRef(uint(eventID), uint(sessionID))
	}

	if err := h.svc.Release(c.Request().Context(), ref, actorID); err != nil {
		return admissionHTTPError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "cancelled"})
}

func (h *RegistrationHandler) JoinWaitlist(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.JoinWaitlistRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.ActorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_id is required")
	}
	role, ok := models.ParseActorRole(req.ActorRole)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "actor_role must be attendee, exhibitor or speaker")
	}

	ref := service.ResourceRef{EventID: uint(eventID), SessionID: req.SessionID}
	reg, err := h.svc.JoinWaitlist(c.Request().Context(), ref, req.ActorID, role)
	if err != nil {
		return admissionHTTPError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToRegistrationResponse(reg))
}

func (h *RegistrationHandler) ListRegistrations(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var status *models.RegistrationStatus
	if s := c.QueryParam("status"); s != "" {
		rs := models.RegistrationStatus(s)
		status = &rs
	}

	regs, err := h.svc.ListRegistrations(c.Request().Context(), uint(eventID), status)
	if err != nil {
		return admissionHTTPError(err)
	}

	resp := make([]dto.RegistrationResponse, len(regs))
	for i, r := range regs {
		resp[i] = dto.ToRegistrationResponse(&r)
	}
	return c.JSON(http.StatusOK, resp)
}

// admissionHTTPError translates admission sentinels into HTTP statuses.
// ErrResourceFull is a user-recoverable conflict, never retried here.
func admissionHTTPError(err error) error {
	switch {
	case errors.Is(err, service.ErrResourceNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrResourceFull),
		errors.Is(err, service.ErrAlreadyRegistered):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrSessionMismatch),
		errors.Is(err, service.ErrDuplicateSessions),
		errors.Is(err, service.ErrRegistrationClosed):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
