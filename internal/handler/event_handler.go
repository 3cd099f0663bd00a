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

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(e *echo.Echo) {
	events := e.Group("/api/v1/events")
	events.POST("", h.CreateEvent)
	events.GET("", h.ListEvents)
	events.GET("/:id", h.GetEvent)
	events.GET("/:id/status", h.GetEventStatus)
	events.POST("/:id/sessions", h.CreateSession)
	events.GET("/:id/sessions", h.ListSessions)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Capacity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "capacity must be >= 0 (0 = unbounded)")
	}
	if !req.RegistrationEndAt.After(req.RegistrationStartAt) {
		return echo.NewHTTPError(http.StatusBadRequest, "registration_end_at must be after registration_start_at")
	}

	event := &models.Event{
		Name:                req.Name,
		Description:         req.Description,
		Capacity:            req.Capacity,
		RegistrationStartAt: req.RegistrationStartAt,
		RegistrationEndAt:   req.RegistrationEndAt,
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEventStatus(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	event, err := h.svc.GetEvent(c.Request().Context(), uint(id))
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToEventStatusResponse(event))
}

func (h *EventHandler) CreateSession(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	var req dto.CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if req.Capacity < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "capacity must be >= 0 (0 = unbounded)")
	}

	session := &models.Session{
		EventID:  uint(eventID),
		Title:    req.Title,
		StartAt:  req.StartAt,
		EndAt:    req.EndAt,
		Capacity: req.Capacity,
	}

	if err := h.svc.CreateSession(c.Request().Context(), session); err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

func (h *EventHandler) ListSessions(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid event id")
	}

	sessions, err := h.svc.ListSessions(c.Request().Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrResourceNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.SessionResponse, len(sessions))
	for i, s := range sessions {
		resp[i] = dto.ToSessionResponse(&s)
	}
	return c.JSON(http.StatusOK, resp)
}
