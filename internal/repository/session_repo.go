package repository

import (
	"context"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"gorm.io/gorm"
)

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, id uint) (*models.Session, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Session, error)
	FindByEvent(ctx context.Context, eventID uint) ([]models.Session, error)
	TryReserveSeat(ctx context.Context, id uint) (bool, error)
	ReleaseSeat(ctx context.Context, id uint) error
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id uint) (*models.Session, error) {
	var session models.Session
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepository) FindByEvent(ctx context.Context, eventID uint) ([]models.Session, error) {
	var sessions []models.Session
	if err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("start_at ASC, id ASC").Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

// TryReserveSeat mirrors EventRepository.TryReserveSeat for session seats:
// one conditional UPDATE, no read-then-write.
func (r *sessionRepository) TryReserveSeat(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ? AND (capacity = 0 OR reserved_count < capacity)", id).
		UpdateColumn("reserved_count", gorm.Expr("reserved_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *sessionRepository) ReleaseSeat(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", id).
		UpdateColumn("reserved_count", gorm.Expr("GREATEST(reserved_count - 1, 0)")).Error
}
