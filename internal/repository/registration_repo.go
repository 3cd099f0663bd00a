package repository

import (
	"context"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"gorm.io/gorm"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.Registration) error
	FindActive(ctx context.Context, eventID uint, sessionID *uint, actorID string) (*models.Registration, error)
	Cancel(ctx context.Context, id uint) (bool, error)
	MarkRegistered(ctx context.Context, id uint) error
	FirstWaitlisted(ctx context.Context, eventID uint, sessionID *uint) (*models.Registration, error)
	FindByEvent(ctx context.Context, eventID uint, status *models.RegistrationStatus) ([]models.Registration, error)
}

type registrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

// scopeResource narrows a query to one capacity resource: the event itself
// when sessionID is nil, otherwise the session.
func scopeResource(q *gorm.DB, eventID uint, sessionID *uint) *gorm.DB {
	q = q.Where("event_id = ?", eventID)
	if sessionID == nil {
		return q.Where("session_id IS NULL")
	}
	return q.Where("session_id = ?", *sessionID)
}

// Create inserts a registration. The partial unique indexes on active rows
// make duplicate claims surface as gorm.ErrDuplicatedKey.
func (r *registrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	return r.db.WithContext(ctx).Create(reg).Error
}

func (r *registrationRepository) FindActive(ctx context.Context, eventID uint, sessionID *uint, actorID string) (*models.Registration, error) {
	var reg models.Registration
	err := scopeResource(r.db.WithContext(ctx), eventID, sessionID).
		Where("actor_id = ? AND status <> ?", actorID, models.StatusCancelled).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

// Cancel flips the registration to cancelled, guarded so a concurrent or
// repeated cancellation reports false instead of cancelling twice.
func (r *registrationRepository) Cancel(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND status <> ?", id, models.StatusCancelled).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *registrationRepository) MarkRegistered(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ?", id).
		Update("status", models.StatusRegistered).Error
}

// FirstWaitlisted returns the earliest waitlisted registration for promotion.
func (r *registrationRepository) FirstWaitlisted(ctx context.Context, eventID uint, sessionID *uint) (*models.Registration, error) {
	var reg models.Registration
	err := scopeResource(r.db.WithContext(ctx), eventID, sessionID).
		Where("status = ?", models.StatusWaitlisted).
		Order("created_at ASC, id ASC").
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *registrationRepository) FindByEvent(ctx context.Context, eventID uint, status *models.RegistrationStatus) ([]models.Registration, error) {
	var regs []models.Registration
	q := r.db.WithContext(ctx).Where("event_id = ?", eventID)
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if err := q.Order("id ASC").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}
