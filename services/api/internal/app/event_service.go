package app

import (
	"context"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

type EventRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	CreateEvent(ctx context.Context, event domain.Event) error
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) error
	DeleteEvent(ctx context.Context, id string) error
	DeleteRegistrationsByEvent(ctx context.Context, eventID string) error
	DeleteLikesByEvent(ctx context.Context, eventID string) error
	CountRegistrations(ctx context.Context, eventID string) (int, error)
	ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error)
	ListPast(ctx context.Context, now time.Time) ([]domain.Event, error)
	ListRecent(ctx context.Context, now time.Time, limit int) ([]domain.Event, error)
	ListFreeUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error)
}

type EventService struct {
	repo  EventRepository
	clock clock.Clock
}

func NewEventService(repo EventRepository, clk clock.Clock) *EventService {
	return &EventService{
		repo:  repo,
		clock: clk,
	}
}

const defaultRecentLimit = 3

type CreateEventInput struct {
	Name          string
	Description   string
	Location      string
	PriceCents    int64
	Capacity      int
	StartsAt      *time.Time
	ImageFileName string
}

func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (domain.Event, error) {
	startsAt := s.clock.Now()
	if in.StartsAt != nil {
		startsAt = in.StartsAt.UTC()
	}

	event := domain.Event{
		ID:            newID(),
		Name:          in.Name,
		Description:   in.Description,
		Location:      in.Location,
		PriceCents:    in.PriceCents,
		Capacity:      in.Capacity,
		StartsAt:      startsAt,
		ImageFileName: in.ImageFileName,
		CreatedAt:     s.clock.Now(),
	}

	if err := domain.ValidateEvent(event); err != nil {
		return domain.Event{}, err
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

type UpdateEventInput struct {
	Name          string
	Description   string
	Location      string
	PriceCents    int64
	Capacity      int
	StartsAt      *time.Time
	ImageFileName string
}

func (s *EventService) UpdateEvent(ctx context.Context, id string, in UpdateEventInput) (domain.Event, error) {
	if id == "" {
		return domain.Event{}, domain.ErrInvalidID
	}

	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return domain.Event{}, err
	}

	event.Name = in.Name
	event.Description = in.Description
	event.Location = in.Location
	event.PriceCents = in.PriceCents
	event.Capacity = in.Capacity
	event.ImageFileName = in.ImageFileName
	if in.StartsAt != nil {
		event.StartsAt = in.StartsAt.UTC()
	}

	if err := domain.ValidateEvent(event); err != nil {
		return domain.Event{}, err
	}
	if err := s.repo.UpdateEvent(ctx, event); err != nil {
		return domain.Event{}, err
	}
	return event, nil
}

// EventDetails pairs an event with its registration count so handlers can
// expose free/sold_out/spots_left.
type EventDetails struct {
	Event      domain.Event
	Registered int
}

func (s *EventService) GetEvent(ctx context.Context, id string) (EventDetails, error) {
	if id == "" {
		return EventDetails{}, domain.ErrInvalidID
	}

	event, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return EventDetails{}, err
	}
	registered, err := s.repo.CountRegistrations(ctx, id)
	if err != nil {
		return EventDetails{}, err
	}
	return EventDetails{Event: event, Registered: registered}, nil
}

// DeleteEvent removes the event and everything hanging off it in a single
// transaction, so a failure partway leaves no orphaned rows behind.
func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidID
	}

	return s.repo.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := s.repo.GetEvent(txCtx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteRegistrationsByEvent(txCtx, id); err != nil {
			return err
		}
		if err := s.repo.DeleteLikesByEvent(txCtx, id); err != nil {
			return err
		}
		return s.repo.DeleteEvent(txCtx, id)
	})
}

// Upcoming returns future events, soonest first.
func (s *EventService) Upcoming(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListUpcoming(ctx, s.clock.Now())
}

// Past returns events that already started, oldest first.
func (s *EventService) Past(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListPast(ctx, s.clock.Now())
}

// Recent returns the limit most recently past events, newest first.
// A non-positive limit falls back to the default of 3.
func (s *EventService) Recent(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return s.repo.ListRecent(ctx, s.clock.Now(), limit)
}

// Free returns upcoming events that cost nothing, soonest first.
func (s *EventService) Free(ctx context.Context) ([]domain.Event, error) {
	return s.repo.ListFreeUpcoming(ctx, s.clock.Now())
}
