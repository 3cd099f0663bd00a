package repository

import (
	"context"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"gorm.io/gorm"
)

// ConnectionRepository answers "who is this actor already connected to or
// blocked from", used to exclude candidates before scoring.
type ConnectionRepository interface {
	ActiveContactIDs(ctx context.Context, eventID uint, actorID string) (map[string]struct{}, error)
	BlockedIDs(ctx context.Context, actorID string) (map[string]struct{}, error)
}

type connectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) ActiveContactIDs(ctx context.Context, eventID uint, actorID string) (map[string]struct{}, error) {
	var conversations []models.Conversation
	err := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ? AND (actor_a = ? OR actor_b = ?)",
			eventID, models.ConversationActive, actorID, actorID).
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}

	contacts := make(map[string]struct{}, len(conversations))
	for _, conv := range conversations {
		if conv.ActorA == actorID {
			contacts[conv.ActorB] = struct{}{}
		} else {
			contacts[conv.ActorA] = struct{}{}
		}
	}
	return contacts, nil
}

// BlockedIDs returns actors blocked in either direction.
func (r *connectionRepository) BlockedIDs(ctx context.Context, actorID string) (map[string]struct{}, error) {
	var blocks []models.Block
	err := r.db.WithContext(ctx).
		Where("actor_id = ? OR blocked_id = ?", actorID, actorID).
		Find(&blocks).Error
	if err != nil {
		return nil, err
	}

	blocked := make(map[string]struct{}, len(blocks))
	for _, b := range blocks {
		if b.ActorID == actorID {
			blocked[b.BlockedID] = struct{}{}
		} else {
			blocked[b.ActorID] = struct{}{}
		}
	}
	return blocked, nil
}
