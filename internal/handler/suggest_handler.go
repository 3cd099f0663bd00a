package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/raslen-der12/event-api-sub000/internal/service"
	"github.com/labstack/echo/v4"
)

type SuggestHandler struct {
	svc service.SuggestService
}

func NewSuggestHandler(svc service.SuggestService) *SuggestHandler {
	return &SuggestHandler{svc: svc}
}

func (h *SuggestHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/v1/actors/:id/suggestions", h.GetSuggestions)
}

func (h *SuggestHandler) GetSuggestions(c echo.Context) error {
	actorID := c.Param("id")
	if actorID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "actor id is required")
	}

	opts := service.SuggestOptions{NameFilter: c.QueryParam("name")}
	if raw := c.QueryParam("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		opts.Limit = limit
	}

	suggestions, err := h.svc.Suggest(c.Request().Context(), actorID, opts)
	if err != nil {
		if errors.Is(err, service.ErrActorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if suggestions == nil {
		suggestions = []service.Suggestion{}
	}
	return c.JSON(http.StatusOK, suggestions)
}
