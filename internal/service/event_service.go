package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/repository"
	"github.com/raslen-der12/event-api-sub000/pkg/rabbitmq"
	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id uint) (*models.Event, error)
	ListEvents(ctx context.Context) ([]models.Event, error)
	CreateSession(ctx context.Context, session *models.Session) error
	ListSessions(ctx context.Context, eventID uint) ([]models.Session, error)
}

type eventService struct {
	events    repository.EventRepository
	sessions  repository.SessionRepository
	publisher *rabbitmq.Publisher
}

func NewEventService(events repository.EventRepository, sessions repository.SessionRepository, publisher *rabbitmq.Publisher) EventService {
	return &eventService{events: events, sessions: sessions, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.events.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.created", event)
	}
	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.events.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", id, ErrResourceNotFound)
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context) ([]models.Event, error) {
	return s.events.FindAll(ctx)
}

func (s *eventService) CreateSession(ctx context.Context, session *models.Session) error {
	if _, err := s.events.FindByID(ctx, session.EventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event %d: %w", session.EventID, ErrResourceNotFound)
		}
		return fmt.Errorf("load event: %w", err)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if s.publisher != nil {
		_ = s.publisher.Publish("event.session.created", session)
	}
	return nil
}

func (s *eventService) ListSessions(ctx context.Context, eventID uint) ([]models.Session, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", eventID, ErrResourceNotFound)
		}
		return nil, fmt.Errorf("load event: %w", err)
	}
	return s.sessions.FindByEvent(ctx, eventID)
}
