package repository

import (
	"context"
	"errors"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"gorm.io/gorm"
)

// ProfileProvider flattens the per-role tables into one lookup surface.
// Callers resolve an actor or list an event's actors without knowing which
// role table a profile lives in.
type ProfileProvider interface {
	Resolve(ctx context.Context, actorID string) (*models.ActorProfile, error)
	ListByEvent(ctx context.Context, eventID uint) ([]models.ActorProfile, error)
	SearchByName(ctx context.Context, eventID uint, name string) ([]models.ActorProfile, error)
}

type profileProvider struct {
	db *gorm.DB
}

func NewProfileProvider(db *gorm.DB) ProfileProvider {
	return &profileProvider{db: db}
}

// Resolve tries each role table in turn and returns the first hit.
func (p *profileProvider) Resolve(ctx context.Context, actorID string) (*models.ActorProfile, error) {
	var attendee models.Attendee
	err := p.db.WithContext(ctx).Where("actor_id = ?", actorID).First(&attendee).Error
	if err == nil {
		profile := attendee.Profile()
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var exhibitor models.Exhibitor
	err = p.db.WithContext(ctx).Where("actor_id = ?", actorID).First(&exhibitor).Error
	if err == nil {
		profile := exhibitor.Profile()
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var speaker models.Speaker
	err = p.db.WithContext(ctx).Where("actor_id = ?", actorID).First(&speaker).Error
	if err != nil {
		return nil, err
	}
	profile := speaker.Profile()
	return &profile, nil
}

func (p *profileProvider) ListByEvent(ctx context.Context, eventID uint) ([]models.ActorProfile, error) {
	var profiles []models.ActorProfile

	var attendees []models.Attendee
	if err := p.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&attendees).Error; err != nil {
		return nil, err
	}
	for i := range attendees {
		profiles = append(profiles, attendees[i].Profile())
	}

	var exhibitors []models.Exhibitor
	if err := p.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&exhibitors).Error; err != nil {
		return nil, err
	}
	for i := range exhibitors {
		profiles = append(profiles, exhibitors[i].Profile())
	}

	var speakers []models.Speaker
	if err := p.db.WithContext(ctx).Where("event_id = ?", eventID).Find(&speakers).Error; err != nil {
		return nil, err
	}
	for i := range speakers {
		profiles = append(profiles, speakers[i].Profile())
	}

	return profiles, nil
}

// SearchByName matches case-insensitively on a name substring across all
// role tables.
func (p *profileProvider) SearchByName(ctx context.Context, eventID uint, name string) ([]models.ActorProfile, error) {
	pattern := "%" + name + "%"
	var profiles []models.ActorProfile

	var attendees []models.Attendee
	if err := p.db.WithContext(ctx).Where("event_id = ? AND full_name ILIKE ?", eventID, pattern).Find(&attendees).Error; err != nil {
		return nil, err
	}
	for i := range attendees {
		profiles = append(profiles, attendees[i].Profile())
	}

	var exhibitors []models.Exhibitor
	if err := p.db.WithContext(ctx).Where("event_id = ? AND full_name ILIKE ?", eventID, pattern).Find(&exhibitors).Error; err != nil {
		return nil, err
	}
	for i := range exhibitors {
		profiles = append(profiles, exhibitors[i].Profile())
	}

	var speakers []models.Speaker
	if err := p.db.WithContext(ctx).Where("event_id = ? AND full_name ILIKE ?", eventID, pattern).Find(&speakers).Error; err != nil {
		return nil, err
	}
	for i := range speakers {
		profiles = append(profiles, speakers[i].Profile())
	}

	return profiles, nil
}
