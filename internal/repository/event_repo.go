package repository

import (
	"context"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAll(ctx context.Context) ([]models.Event, error)
	TryReserveSeat(ctx context.Context, id uint) (bool, error)
	ReleaseSeat(ctx context.Context, id uint) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// TryReserveSeat performs the admission check as a single conditional UPDATE:
// the capacity guard and the increment happen in one round trip, so
// concurrent callers serialize at the database and the sum of successful
// increments never exceeds capacity. capacity = 0 means unbounded and the
// increment always applies, for reporting only.
//
// A read-then-write sequence (SELECT the counter, compare, UPDATE) is not an
// acceptable substitute; it reopens the race between concurrent registrants.
func (r *eventRepository) TryReserveSeat(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ? AND (capacity = 0 OR reserved_count < capacity)", id).
		UpdateColumn("reserved_count", gorm.Expr("reserved_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// ReleaseSeat decrements the reservation counter, floored at zero.
func (r *eventRepository) ReleaseSeat(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Event{}).
		Where("id = ?", id).
		UpdateColumn("reserved_count", gorm.Expr("GREATEST(reserved_count - 1, 0)")).Error
}
