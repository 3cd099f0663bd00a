package models

import "time"

type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "active"
	ConversationArchived ConversationStatus = "archived"
)

// Conversation links two actors who are already in contact. Actors with an
// active conversation are excluded from each other's suggestions.
type Conversation struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	EventID   uint               `gorm:"not null;index" json:"event_id"`
	ActorA    string             `gorm:"not null;index" json:"actor_a"`
	ActorB    string             `gorm:"not null;index" json:"actor_b"`
	Status    ConversationStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Block records one actor blocking another. A row in either direction
// excludes the pair from each other's suggestions.
type Block struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActorID   string    `gorm:"not null;index" json:"actor_id"`
	BlockedID string    `gorm:"not null;index" json:"blocked_id"`
	CreatedAt time.Time `json:"created_at"`
}
