package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSuggestService struct {
	suggestFn func(ctx context.Context, actorID string, opts service.SuggestOptions) ([]service.Suggestion, error)
}

func (m *mockSuggestService) Suggest(ctx context.Context, actorID string, opts service.SuggestOptions) ([]service.Suggestion, error) {
	return m.suggestFn(ctx, actorID, opts)
}

func TestGetSuggestions_Handler_Success(t *testing.T) {
	svc := &mockSuggestService{
		suggestFn: func(ctx context.Context, actorID string, opts service.SuggestOptions) ([]service.Suggestion, error) {
			assert.Equal(t, "actor-1", actorID)
			assert.Equal(t, 5, opts.Limit)
			return []service.Suggestion{
				{ActorID: "actor-2", Role: models.RoleExhibitor, FullName: "Sam", Score: 8},
				{ActorID: "actor-3", Role: models.RoleAttendee, FullName: "Wanda", Score: 5},
			}, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/actors/actor-1/suggestions?limit=5", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("actor-1")

	require.NoError(t, NewSuggestHandler(svc).GetSuggestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []service.Suggestion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "actor-2", resp[0].ActorID)
	assert.Equal(t, 8.0, resp[0].Score)
}

func TestGetSuggestions_Handler_NameFilterPassedThrough(t *testing.T) {
	svc := &mockSuggestService{
		suggestFn: func(ctx context.Context, actorID string, opts service.SuggestOptions) ([]service.Suggestion, error) {
			assert.Equal(t, "zara", opts.NameFilter)
			return nil, nil
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/actors/actor-1/suggestions?name=zara", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("actor-1")

	require.NoError(t, NewSuggestHandler(svc).GetSuggestions(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestGetSuggestions_Handler_ActorNotFound(t *testing.T) {
	svc := &mockSuggestService{
		suggestFn: func(ctx context.Context, actorID string, opts service.SuggestOptions) ([]service.Suggestion, error) {
			return nil, service.ErrActorNotFound
		},
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/actors/ghost/suggestions", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	err := NewSuggestHandler(svc).GetSuggestions(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetSuggestions_Handler_BadLimit(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/actors/actor-1/suggestions?limit=zero", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("actor-1")

	err := NewSuggestHandler(&mockSuggestService{}).GetSuggestions(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
