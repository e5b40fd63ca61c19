package service

import (
	"context"
	"errors"
	"time"

	"anoa.com/tccscheduler/internal/entity"
	"anoa.com/tccscheduler/internal/metrics"
	"anoa.com/tccscheduler/internal/modules/event/dto"
	"anoa.com/tccscheduler/internal/modules/event/repository"
	localRepo "anoa.com/tccscheduler/internal/modules/local/repository"
	presentationRepo "anoa.com/tccscheduler/internal/modules/presentation/repository"
	"anoa.com/tccscheduler/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultUpcomingLimit = 10

type EventService interface {
	Create(ctx context.Context, input dto.CreateEventInput) (*entity.Event, error)
	GetAll(ctx context.Context) ([]*entity.Event, error)
	GetByType(ctx context.Context, eventType string) ([]*entity.Event, error)
	GetInRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error)
	GetUpcoming(ctx context.Context, limit int) ([]*entity.Event, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateEventInput) (*entity.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type eventService struct {
	repo          repository.EventRepository
	locals        localRepo.LocalRepository
	presentations presentationRepo.PresentationRepository
	now           func() time.Time
}

func NewEventService(repo repository.EventRepository, locals localRepo.LocalRepository, presentations presentationRepo.PresentationRepository) EventService {
	return &eventService{
		repo:          repo,
		locals:        locals,
		presentations: presentations,
		now:           time.Now,
	}
}

func parseInstant(value, field string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperror.BadRequest(field + " must be an RFC 3339 timestamp")
	}
	return t.UTC(), nil
}

func (s *eventService) resolveLocal(ctx context.Context, id uuid.UUID) error {
	if _, err := s.locals.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("local not found")
		}
		return err
	}
	return nil
}

func (s *eventService) resolvePresentation(ctx context.Context, id uuid.UUID) error {
	if _, err := s.presentations.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("presentation not found")
		}
		return err
	}
	return nil
}

// checkRoomAvailable rejects the interval when any event already occupies the
// room, counting touching endpoints as occupied. The check and the following
// insert are not transactional; two concurrent requests may both pass.
func (s *eventService) checkRoomAvailable(ctx context.Context, localID uuid.UUID, start, end time.Time, excludeEventID *uuid.UUID) error {
	count, err := s.repo.CountOverlapping(ctx, localID, start, end, excludeEventID)
	if err != nil {
		return err
	}
	if count > 0 {
		metrics.RoomConflicts.Inc()
		return apperror.BadRequest("room already booked for this time slot")
	}
	return nil
}

func participantRows(eventID uuid.UUID, inputs []dto.ParticipantInput) []entity.EventParticipant {
	rows := make([]entity.EventParticipant, 0, len(inputs))
	for _, p := range inputs {
		rows = append(rows, entity.EventParticipant{
			EventID: eventID,
			UserID:  p.UserID,
			Type:    p.Type,
		})
	}
	return rows
}

func (s *eventService) Create(ctx context.Context, input dto.CreateEventInput) (*entity.Event, error) {
	start, err := parseInstant(input.StartDate, "start date")
	if err != nil {
		return nil, err
	}
	end, err := parseInstant(input.EndDate, "end date")
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, apperror.BadRequest("end date must be after start date")
	}

	if input.LocalID != nil {
		if err := s.resolveLocal(ctx, *input.LocalID); err != nil {
			return nil, err
		}
		if err := s.checkRoomAvailable(ctx, *input.LocalID, start, end, nil); err != nil {
			return nil, err
		}
	}

	if input.PresentationID != nil {
		if err := s.resolvePresentation(ctx, *input.PresentationID); err != nil {
			return nil, err
		}
	}

	event := &entity.Event{
		Type:           input.Type,
		Title:          input.Title,
		Description:    input.Description,
		StartDate:      start,
		EndDate:        end,
		LocalID:        input.LocalID,
		PresentationID: input.PresentationID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	// Participants are stored as supplied; user ids are not validated here.
	if len(input.Participants) > 0 {
		if err := s.repo.CreateParticipants(ctx, participantRows(event.ID, input.Participants)); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, event.ID)
}

func (s *eventService) GetAll(ctx context.Context) ([]*entity.Event, error) {
	return s.repo.FindAll(ctx)
}

func (s *eventService) GetByType(ctx context.Context, eventType string) ([]*entity.Event, error) {
	return s.repo.FindByType(ctx, eventType)
}

func (s *eventService) GetInRange(ctx context.Context, from, to time.Time) ([]*entity.Event, error) {
	if !to.After(from) {
		return nil, apperror.BadRequest("end date must be after start date")
	}
	return s.repo.FindInRange(ctx, from, to)
}

func (s *eventService) GetByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Event, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *eventService) GetUpcoming(ctx context.Context, limit int) ([]*entity.Event, error) {
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	return s.repo.FindUpcoming(ctx, s.now(), limit)
}

func (s *eventService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event not found")
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateEventInput) (*entity.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	start := event.StartDate
	end := event.EndDate
	intervalChanged := false

	if input.StartDate != nil {
		start, err = parseInstant(*input.StartDate, "start date")
		if err != nil {
			return nil, err
		}
		intervalChanged = intervalChanged || !start.Equal(event.StartDate)
	}
	if input.EndDate != nil {
		end, err = parseInstant(*input.EndDate, "end date")
		if err != nil {
			return nil, err
		}
		intervalChanged = intervalChanged || !end.Equal(event.EndDate)
	}
	if (input.StartDate != nil || input.EndDate != nil) && !end.After(start) {
		return nil, apperror.BadRequest("end date must be after start date")
	}

	localChanged := input.LocalID != nil &&
		(event.LocalID == nil || *input.LocalID != *event.LocalID)
	if localChanged {
		if err := s.resolveLocal(ctx, *input.LocalID); err != nil {
			return nil, err
		}
	}

	// Re-run the availability check whenever the effective (room, interval)
	// pair changes, excluding this event from the overlap query.
	effectiveLocal := event.LocalID
	if input.LocalID != nil {
		effectiveLocal = input.LocalID
	}
	if effectiveLocal != nil && (localChanged || intervalChanged) {
		if err := s.checkRoomAvailable(ctx, *effectiveLocal, start, end, &event.ID); err != nil {
			return nil, err
		}
	}

	if input.PresentationID != nil &&
		(event.PresentationID == nil || *input.PresentationID != *event.PresentationID) {
		if err := s.resolvePresentation(ctx, *input.PresentationID); err != nil {
			return nil, err
		}
		event.PresentationID = input.PresentationID
	}

	if localChanged {
		event.LocalID = input.LocalID
	}
	event.StartDate = start
	event.EndDate = end

	if input.Type != nil {
		event.Type = *input.Type
	}
	if input.Title != nil {
		event.Title = input.Title
	}
	if input.Description != nil {
		event.Description = input.Description
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, err
	}

	// A supplied participants field replaces the whole set, even when empty.
	// An omitted field leaves the stored participants untouched.
	if input.Participants != nil {
		if err := s.repo.ReplaceParticipants(ctx, event.ID, participantRows(event.ID, *input.Participants)); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, id)
}

func (s *eventService) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperror.NotFound("event not found")
	}
	return nil
}
