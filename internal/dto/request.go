package dto

import "time"

type CreateEventRequest struct {
	Name                string    `json:"name" validate:"required"`
	Description         string    `json:"description"`
	Capacity            int       `json:"capacity" validate:"gte=0"`
	RegistrationStartAt time.Time `json:"registration_start_at" validate:"required"`
	RegistrationEndAt   time.Time `json:"registration_end_at" validate:"required,gtfield=RegistrationStartAt"`
}

type CreateSessionRequest struct {
	Title    string    `json:"title" validate:"required"`
	StartAt  time.Time `json:"start_at"`
	EndAt    time.Time `json:"end_at"`
	Capacity int       `json:"capacity" validate:"gte=0"`
}

type CreateRegistrationRequest struct {
	ActorID    string `json:"actor_id" validate:"required"`
	ActorRole  string `json:"actor_role" validate:"required"`
	SessionIDs []uint `json:"session_ids"`
}

type JoinWaitlistRequest struct {
	ActorID   string `json:"actor_id" validate:"required"`
	ActorRole string `json:"actor_role" validate:"required"`
	SessionID *uint  `json:"session_id,omitempty"`
}
