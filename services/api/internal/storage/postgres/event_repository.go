package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

const eventColumns = `id, name, description, location, price_cents, capacity, starts_at, COALESCE(image_file_name, ''), created_at`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return withTx(ctx, r.pool, fn)
}

func (r *EventRepository) CreateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
INSERT INTO events (id, name, description, location, price_cents, capacity, starts_at, image_file_name, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)`

	_, err := r.exec(ctx, stmt,
		event.ID,
		event.Name,
		event.Description,
		event.Location,
		event.PriceCents,
		event.Capacity,
		event.StartsAt,
		event.ImageFileName,
		event.CreatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (r *EventRepository) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := r.scanEvent(r.queryRow(ctx, query, id))
	if err != nil {
		if isInvalidUUID(err) {
			return domain.Event{}, domain.ErrInvalidID
		}
		if err == pgx.ErrNoRows {
			return domain.Event{}, domain.ErrEventNotFound
		}
		return domain.Event{}, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) UpdateEvent(ctx context.Context, event domain.Event) error {
	const stmt = `
UPDATE events
SET name = $2, description = $3, location = $4, price_cents = $5, capacity = $6, starts_at = $7, image_file_name = NULLIF($8, '')
WHERE id = $1`

	tag, err := r.exec(ctx, stmt,
		event.ID,
		event.Name,
		event.Description,
		event.Location,
		event.PriceCents,
		event.Capacity,
		event.StartsAt,
		event.ImageFileName,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteEvent(ctx context.Context, id string) error {
	const stmt = `DELETE FROM events WHERE id = $1`

	tag, err := r.exec(ctx, stmt, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

func (r *EventRepository) DeleteRegistrationsByEvent(ctx context.Context, eventID string) error {
	const stmt = `DELETE FROM registrations WHERE event_id = $1`
	if _, err := r.exec(ctx, stmt, eventID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete registrations: %w", err)
	}
	return nil
}

func (r *EventRepository) DeleteLikesByEvent(ctx context.Context, eventID string) error {
	const stmt = `DELETE FROM likes WHERE event_id = $1`
	if _, err := r.exec(ctx, stmt, eventID); err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete likes: %w", err)
	}
	return nil
}

func (r *EventRepository) CountRegistrations(ctx context.Context, eventID string) (int, error) {
	const query = `SELECT COUNT(*) FROM registrations WHERE event_id = $1`

	var count int
	if err := r.queryRow(ctx, query, eventID).Scan(&count); err != nil {
		if isInvalidUUID(err) {
			return 0, domain.ErrInvalidID
		}
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return count, nil
}

// ListUpcoming returns future events, soonest first.
func (r *EventRepository) ListUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE starts_at > $1 ORDER BY starts_at ASC`
	return r.listEvents(ctx, query, now)
}

// ListPast returns events that already started, oldest first.
func (r *EventRepository) ListPast(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE starts_at <= $1 ORDER BY starts_at ASC`
	return r.listEvents(ctx, query, now)
}

// ListRecent returns the limit most recently past events, newest first.
// Note the ordering is the reverse of ListPast.
func (r *EventRepository) ListRecent(ctx context.Context, now time.Time, limit int) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE starts_at <= $1 ORDER BY starts_at DESC LIMIT $2`
	return r.listEvents(ctx, query, now, limit)
}

// ListFreeUpcoming returns zero-priced future events, soonest first.
func (r *EventRepository) ListFreeUpcoming(ctx context.Context, now time.Time) ([]domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE starts_at > $1 AND price_cents = 0 ORDER BY starts_at ASC`
	return r.listEvents(ctx, query, now)
}

func (r *EventRepository) listEvents(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := r.query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []domain.Event
	for rows.Next() {
		event, err := r.scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, event)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate events: %w", rows.Err())
	}
	return events, nil
}

func (r *EventRepository) scanEvent(row pgx.Row) (domain.Event, error) {
	var e domain.Event
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Description,
		&e.Location,
		&e.PriceCents,
		&e.Capacity,
		&e.StartsAt,
		&e.ImageFileName,
		&e.CreatedAt,
	)
	return e, err
}

func (r *EventRepository) exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Exec(ctx, sql, args...)
	}
	return r.pool.Exec(ctx, sql, args...)
}

func (r *EventRepository) query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	if tx := txFromContext(ctx); tx != nil {
		return tx.Query(ctx, sql, args...)
	}
	return r.pool.Query(ctx, sql, args...)
}

func (r *EventRepository) queryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if tx := txFromContext(ctx); tx != nil {
		return tx.QueryRow(ctx, sql, args...)
	}
	return r.pool.QueryRow(ctx, sql, args...)
}
