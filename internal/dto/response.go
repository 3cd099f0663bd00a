package dto

import (
	"time"

	"github.com/raslen-der12/event-api-sub000/internal/models"
)

type EventResponse struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Capacity            int       `json:"capacity"`
	ReservedCount       int       `json:"reserved_count"`
	RegistrationStartAt time.Time `json:"registration_start_at"`
	RegistrationEndAt   time.Time `json:"registration_end_at"`
	CreatedAt           time.Time `json:"created_at"`
}

type SessionResponse struct {
	ID            uint      `json:"id"`
	EventID       uint      `json:"event_id"`
	Title         string    `json:"title"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Capacity      int       `json:"capacity"`
	ReservedCount int       `json:"reserved_count"`
}

type RegistrationResponse struct {
	ID        uint                      `json:"id"`
	EventID   uint                      `json:"event_id"`
	SessionID *uint                     `json:"session_id,omitempty"`
	ActorID   string                    `json:"actor_id"`
	ActorRole models.ActorRole          `json:"actor_role"`
	Status    models.RegistrationStatus `json:"status"`
	CreatedAt time.Time                 `json:"created_at"`
}

// EventStatusResponse reports capacity headroom. Remaining is -1 for
// unbounded events.
type EventStatusResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	Capacity      int    `json:"capacity"`
	ReservedCount int    `json:"reserved_count"`
	Remaining     int    `json:"remaining"`
	Unbounded     bool   `json:"unbounded"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:                  e.ID,
		Name:                e.Name,
		Description:         e.Description,
		Capacity:            e.Capacity,
		ReservedCount:       e.ReservedCount,
		RegistrationStartAt: e.RegistrationStartAt,
		RegistrationEndAt:   e.RegistrationEndAt,
		CreatedAt:           e.CreatedAt,
	}
}

func ToSessionResponse(s *models.Session) SessionResponse {
	return SessionResponse{
		ID:            s.ID,
		EventID:       s.EventID,
		Title:         s.Title,
		StartAt:       s.StartAt,
		EndAt:         s.EndAt,
		Capacity:      s.Capacity,
		ReservedCount: s.ReservedCount,
	}
}

func ToRegistrationResponse(r *models.Registration) RegistrationResponse {
	return RegistrationResponse{
		ID:        r.ID,
		EventID:   r.EventID,
		SessionID: r.SessionID,
		ActorID:   r.ActorID,
		ActorRole: r.ActorRole,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

func ToEventStatusResponse(e *models.Event) EventStatusResponse {
	return EventStatusResponse{
		ID:            e.ID,
		Name:          e.Name,
		Capacity:      e.Capacity,
		ReservedCount: e.ReservedCount,
		Remaining:     e.Remaining(),
		Unbounded:     e.Unbounded(),
	}
}
