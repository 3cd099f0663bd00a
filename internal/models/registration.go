package models

import "time"

type RegistrationStatus string

const (
	StatusRegistered RegistrationStatus = "registered"
	StatusWaitlisted RegistrationStatus = "waitlisted"
	StatusCancelled  RegistrationStatus = "cancelled"
)

type ActorRole string

const (
	RoleAttendee  ActorRole = "attendee"
	RoleExhibitor ActorRole = "exhibitor"
	RoleSpeaker   ActorRole = "speaker"
)

// ParseActorRole validates a role string from the wire.
func ParseActorRole(s string) (ActorRole, bool) {
	switch ActorRole(s) {
	case RoleAttendee, RoleExhibitor, RoleSpeaker:
		return ActorRole(s), true
	}
	return "", false
}

// Registration is one actor's claim on a capacity resource. SessionID is nil
// for event-level registrations. A partial unique index on
// (event_id, actor_id) WHERE session_id IS NULL AND status <> 'cancelled',
// and one on (session_id, actor_id) WHERE status <> 'cancelled', prevent an
// actor from holding two active claims on the same resource.
type Registration struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	EventID   uint               `gorm:"not null;index" json:"event_id"`
	SessionID *uint              `json:"session_id,omitempty"`
	ActorID   string             `gorm:"not null" json:"actor_id"`
	ActorRole ActorRole          `gorm:"type:varchar(20);not null" json:"actor_role"`
	Status    RegistrationStatus `gorm:"type:varchar(20);not null;default:'registered'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	Event   *Event   `gorm:"foreignKey:EventID" json:"event,omitempty"`
	Session *Session `gorm:"foreignKey:SessionID" json:"session,omitempty"`
}

// Active reports whether the registration still holds or queues for a seat.
func (r *Registration) Active() bool {
	return r.Status != StatusCancelled
}
