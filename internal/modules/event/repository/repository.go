package repository

import (
	"context"
	"time"

	"anoa.com/tccscheduler/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindAll(ctx context.Context) ([]*entity.Event, error)
	FindByType(ctx context.Context, eventType string) ([]*entity.Event, error)
	FindInRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error)
	FindUpcoming(ctx context.Context, since time.Time, limit int) ([]*entity.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	CountOverlapping(ctx context.Context, localID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) (int64, error)
	Update(ctx context.Context, event *entity.Event) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	ReplaceParticipants(ctx context.Context, eventID uuid.UUID, participants []entity.EventParticipant) error
	CreateParticipants(ctx context.Context, participants []entity.EventParticipant) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Local").
		Preload("Presentation").
		Preload("Participants").
		Preload("Participants.User")
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	// Participant rows are inserted separately so the replace-on-update path
	// and the create path share one code shape.
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error
}

func (r *eventRepository) FindAll(ctx context.Context) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.withRelations(ctx).Order("start_date ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByType(ctx context.Context, eventType string) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.withRelations(ctx).
		Where("type = ?", eventType).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// FindInRange returns events whose interval overlaps [from, to], bounds
// included.
func (r *eventRepository) FindInRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.withRelations(ctx).
		Where("start_date <= ? AND end_date >= ?", to, from).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.withRelations(ctx).
		Where("id IN (?)", r.db.Model(&entity.EventParticipant{}).
			Select("event_id").
			Where("user_id = ?", userID)).
		Order("start_date ASC").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindUpcoming(ctx context.Context, since time.Time, limit int) ([]*entity.Event, error) {
	var events []*entity.Event
	if err := r.withRelations(ctx).
		Where("start_date >= ?", since).
		Order("start_date ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var event entity.Event
	if err := r.withRelations(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// CountOverlapping counts events in the given room whose interval overlaps
// [start, end] under inclusive bounds, so touching endpoints count as a
// conflict. excludeEventID removes the event being updated from the check.
func (r *eventRepository) CountOverlapping(ctx context.Context, localID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Event{}).
		Where("local_id = ? AND start_date <= ? AND end_date >= ?", localID, end, start)
	if excludeEventID != nil {
		query = query.Where("id <> ?", *excludeEventID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *eventRepository) Update(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(event).Error
}

func (r *eventRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(&entity.Event{ID: id})
	return res.RowsAffected, res.Error
}

func (r *eventRepository) ReplaceParticipants(ctx context.Context, eventID uuid.UUID, participants []entity.EventParticipant) error {
	if err := r.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Delete(&entity.EventParticipant{}).Error; err != nil {
		return err
	}
	if len(participants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&participants).Error
}

func (r *eventRepository) CreateParticipants(ctx context.Context, participants []entity.EventParticipant) error {
	if len(participants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&participants).Error
}
