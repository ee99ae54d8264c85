package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

type LikeRepository struct {
	pool *pgxpool.Pool
}

func NewLikeRepository(pool *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{pool: pool}
}

func (r *LikeRepository) CreateLike(ctx context.Context, like domain.Like) error {
	const stmt = `
INSERT INTO likes (id, event_id, user_id, created_at)
VALUES ($1, $2, $3, $4)`

	_, err := r.pool.Exec(ctx, stmt, like.ID, like.EventID, like.UserID, like.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyLiked
		}
		if isForeignKeyViolation(err) {
			return domain.ErrEventNotFound
		}
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

func (r *LikeRepository) DeleteLike(ctx context.Context, eventID, likeID, userID string) error {
	const stmt = `DELETE FROM likes WHERE id = $1 AND event_id = $2 AND user_id = $3`

	tag, err := r.pool.Exec(ctx, stmt, likeID, eventID, userID)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrInvalidID
		}
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}
	return nil
}

// ListLikersByEvent returns the users who liked the event, oldest like first.
func (r *LikeRepository) ListLikersByEvent(ctx context.Context, eventID string) ([]domain.User, error) {
	const query = `
SELECT u.id, u.name, u.email, u.created_at
FROM likes l
JOIN users u ON u.id = l.user_id
WHERE l.event_id = $1
ORDER BY l.created_at ASC`

	rows, err := r.pool.Query(ctx, query, eventID)
	if err != nil {
		if isInvalidUUID(err) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("list likers: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan liker: %w", err)
		}
		users = append(users, u)
	}
	if rows.Err() != nil {
		if isInvalidUUID(rows.Err()) {
			return nil, domain.ErrInvalidID
		}
		return nil, fmt.Errorf("iterate likers: %w", rows.Err())
	}
	return users, nil
}
