package models

import "time"

// Event is the top-level capacity resource. Capacity == 0 means unbounded:
// registrations are always admitted and ReservedCount is kept for reporting only.
type Event struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"not null" json:"name"`
	Description         string    `json:"description"`
	Capacity            int       `gorm:"not null" json:"capacity"`
	ReservedCount       int       `gorm:"not null;default:0" json:"reserved_count"`
	RegistrationStartAt time.Time `gorm:"not null" json:"registration_start_at"`
	RegistrationEndAt   time.Time `gorm:"not null" json:"registration_end_at"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Unbounded reports whether the event admits any number of registrants.
func (e *Event) Unbounded() bool {
	return e.Capacity == 0
}

// Remaining returns the number of free seats, or -1 for unbounded events.
func (e *Event) Remaining() int {
	if e.Unbounded() {
		return -1
	}
	if r := e.Capacity - e.ReservedCount; r > 0 {
		return r
	}
	return 0
}

// Session is a child capacity resource within an event. Its seats are
// reserved independently of the parent event's seats.
type Session struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EventID       uint      `gorm:"not null;index" json:"event_id"`
	Title         string    `gorm:"not null" json:"title"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	ReservedCount int       `gorm:"not null;default:0" json:"reserved_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
}

func (s *Session) Unbounded() bool {
	return s.Capacity == 0
}
