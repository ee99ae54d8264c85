package app

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

type fakeEventRepo struct {
	events        map[string]domain.Event
	registrations map[string]int
	likes         map[string]int
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	repo := &fakeEventRepo{
		events:        make(map[string]domain.Event),
		registrations: make(map[string]int),
		likes:         make(map[string]int),
	}
	for _, e := range events {
		repo.events[e.ID] = e
	}
	return repo
}

func (f *fakeEventRepo) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event domain.Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) GetEvent(_ context.Context, id string) (domain.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return domain.Event{}, domain.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) UpdateEvent(_ context.Context, event domain.Event) error {
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrEventNotFound
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return domain.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) DeleteRegistrationsByEvent(_ context.Context, eventID string) error {
	delete(f.registrations, eventID)
	return nil
}

func (f *fakeEventRepo) DeleteLikesByEvent(_ context.Context, eventID string) error {
	delete(f.likes, eventID)
	return nil
}

func (f *fakeEventRepo) CountRegistrations(_ context.Context, eventID string) (int, error) {
	return f.registrations[eventID], nil
}

func (f *fakeEventRepo) ListUpcoming(_ context.Context, now time.Time) ([]domain.Event, error) {
	return f.list(func(e domain.Event) bool { return e.StartsAt.After(now) }, true), nil
}

func (f *fakeEventRepo) ListPast(_ context.Context, now time.Time) ([]domain.Event, error) {
	return f.list(func(e domain.Event) bool { return !e.StartsAt.After(now) }, true), nil
}

func (f *fakeEventRepo) ListRecent(_ context.Context, now time.Time, limit int) ([]domain.Event, error) {
	past := f.list(func(e domain.Event) bool { return !e.StartsAt.After(now) }, false)
	if len(past) > limit {
		past = past[:limit]
	}
	return past, nil
}

func (f *fakeEventRepo) ListFreeUpcoming(_ context.Context, now time.Time) ([]domain.Event, error) {
	return f.list(func(e domain.Event) bool { return e.StartsAt.After(now) && e.PriceCents == 0 }, true), nil
}

func (f *fakeEventRepo) list(keep func(domain.Event) bool, ascending bool) []domain.Event {
	var out []domain.Event
	for _, e := range f.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if ascending {
			return out[i].StartsAt.Before(out[j].StartsAt)
		}
		return out[i].StartsAt.After(out[j].StartsAt)
	})
	return out
}

func monthsFrom(now time.Time, months int) time.Time {
	return now.AddDate(0, months, 0)
}

func chronologyFixture(now time.Time) []domain.Event {
	mk := func(id string, startsAt time.Time, priceCents int64) domain.Event {
		return domain.Event{
			ID:          id,
			Name:        id,
			Description: "An evening of talks about building services in Go.",
			Location:    "Community Hall",
			PriceCents:  priceCents,
			Capacity:    10,
			StartsAt:    startsAt,
		}
	}
	return []domain.Event{
		mk("past-3mo", monthsFrom(now, -3), 1000),
		mk("past-2mo", monthsFrom(now, -2), 0),
		mk("past-1mo", monthsFrom(now, -1), 1000),
		mk("future-1mo", monthsFrom(now, 1), 1000),
		mk("future-2mo", monthsFrom(now, 2), 0),
		mk("future-3mo", monthsFrom(now, 3), 1000),
	}
}

func eventIDs(events []domain.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.ID)
	}
	return out
}

func assertIDs(t *testing.T, got []domain.Event, want ...string) {
	t.Helper()
	ids := eventIDs(got)
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ids)
		}
	}
}

func TestEventService_Chronology(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeEventRepo(chronologyFixture(now)...)
	svc := NewEventService(repo, clock.NewFixed(now))
	ctx := context.Background()

	t.Run("upcoming is future events soonest first", func(t *testing.T) {
		events, err := svc.Upcoming(ctx)
		if err != nil {
			t.Fatalf("upcoming: %v", err)
		}
		assertIDs(t, events, "future-1mo", "future-2mo", "future-3mo")
	})

	t.Run("past is past events oldest first", func(t *testing.T) {
		events, err := svc.Past(ctx)
		if err != nil {
			t.Fatalf("past: %v", err)
		}
		assertIDs(t, events, "past-3mo", "past-2mo", "past-1mo")
	})

	t.Run("recent is newest past events first", func(t *testing.T) {
		events, err := svc.Recent(ctx, 2)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		assertIDs(t, events, "past-1mo", "past-2mo")
	})

	t.Run("recent defaults to three", func(t *testing.T) {
		events, err := svc.Recent(ctx, 0)
		if err != nil {
			t.Fatalf("recent: %v", err)
		}
		assertIDs(t, events, "past-1mo", "past-2mo", "past-3mo")
	})

	t.Run("free is only upcoming zero-priced events", func(t *testing.T) {
		events, err := svc.Free(ctx)
		if err != nil {
			t.Fatalf("free: %v", err)
		}
		assertIDs(t, events, "future-2mo")
	})
}

func TestEventService_CreateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("creates a valid event", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, clock.NewFixed(now))

		startsAt := now.AddDate(0, 1, 0)
		event, err := svc.CreateEvent(context.Background(), CreateEventInput{
			Name:        "Go Meetup",
			Description: "An evening of talks about building services in Go.",
			Location:    "Community Hall",
			PriceCents:  1500,
			Capacity:    50,
			StartsAt:    &startsAt,
		})
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		if event.ID == "" {
			t.Fatalf("expected event ID to be set")
		}
		if event.StartsAt != startsAt {
			t.Fatalf("expected starts_at %v, got %v", startsAt, event.StartsAt)
		}
		if len(repo.events) != 1 {
			t.Fatalf("expected 1 event in repo, got %d", len(repo.events))
		}
	})

	t.Run("defaults starts_at to now", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, clock.NewFixed(now))

		event, err := svc.CreateEvent(context.Background(), CreateEventInput{
			Name:        "Go Meetup",
			Description: "An evening of talks about building services in Go.",
			Location:    "Community Hall",
			Capacity:    50,
		})
		if err != nil {
			t.Fatalf("create event: %v", err)
		}
		if event.StartsAt != now {
			t.Fatalf("expected starts_at %v, got %v", now, event.StartsAt)
		}
	})

	t.Run("rejects invalid events without persisting", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, clock.NewFixed(now))

		_, err := svc.CreateEvent(context.Background(), CreateEventInput{
			Name:        "Go Meetup",
			Description: "too short",
			Location:    "Community Hall",
			Capacity:    0,
		})
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			t.Fatalf("expected ValidationErrors, got %v", err)
		}
		if len(repo.events) != 0 {
			t.Fatalf("expected no events persisted, got %d", len(repo.events))
		}
	})
}

func TestEventService_GetEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeEventRepo(domain.Event{ID: "event-1", Name: "Go Meetup", Capacity: 5, StartsAt: now})
	repo.registrations["event-1"] = 3
	svc := NewEventService(repo, clock.NewFixed(now))

	details, err := svc.GetEvent(context.Background(), "event-1")
	if err != nil {
		t.Fatalf("get event: %v", err)
	}
	if details.Registered != 3 {
		t.Fatalf("expected 3 registered, got %d", details.Registered)
	}
	if details.Event.SpotsLeft(details.Registered) != 2 {
		t.Fatalf("expected 2 spots left, got %d", details.Event.SpotsLeft(details.Registered))
	}

	if _, err := svc.GetEvent(context.Background(), "missing"); err != domain.ErrEventNotFound {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_DeleteEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("removes the event with its registrations and likes", func(t *testing.T) {
		repo := newFakeEventRepo(domain.Event{ID: "event-1", Capacity: 5, StartsAt: now})
		repo.registrations["event-1"] = 2
		repo.likes["event-1"] = 4
		svc := NewEventService(repo, clock.NewFixed(now))

		if err := svc.DeleteEvent(context.Background(), "event-1"); err != nil {
			t.Fatalf("delete event: %v", err)
		}
		if len(repo.events) != 0 {
			t.Fatalf("expected event removed, got %d", len(repo.events))
		}
		if repo.registrations["event-1"] != 0 {
			t.Fatalf("expected registrations removed")
		}
		if repo.likes["event-1"] != 0 {
			t.Fatalf("expected likes removed")
		}
	})

	t.Run("missing event returns not found", func(t *testing.T) {
		repo := newFakeEventRepo()
		svc := NewEventService(repo, clock.NewFixed(now))

		if err := svc.DeleteEvent(context.Background(), "missing"); err != domain.ErrEventNotFound {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	repo := newFakeEventRepo(domain.Event{
		ID:          "event-1",
		Name:        "Go Meetup",
		Description: "An evening of talks about building services in Go.",
		Location:    "Community Hall",
		Capacity:    50,
		StartsAt:    now,
	})
	svc := NewEventService(repo, clock.NewFixed(now))

	updated, err := svc.UpdateEvent(context.Background(), "event-1", UpdateEventInput{
		Name:        "Go Meetup 2025",
		Description: "An evening of talks about building services in Go.",
		Location:    "Bigger Community Hall",
		PriceCents:  500,
		Capacity:    100,
	})
	if err != nil {
		t.Fatalf("update event: %v", err)
	}
	if updated.Name != "Go Meetup 2025" || updated.Capacity != 100 {
		t.Fatalf("unexpected event after update: %+v", updated)
	}
	if updated.StartsAt != now {
		t.Fatalf("expected starts_at untouched, got %v", updated.StartsAt)
	}

	_, err = svc.UpdateEvent(context.Background(), "event-1", UpdateEventInput{
		Name:        "",
		Description: "An evening of talks about building services in Go.",
		Location:    "Community Hall",
		Capacity:    100,
	})
	var verrs domain.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
}
