package app

import (
	"context"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

type LikeRepository interface {
	CreateLike(ctx context.Context, like domain.Like) error
	DeleteLike(ctx context.Context, eventID, likeID, userID string) error
	ListLikersByEvent(ctx context.Context, eventID string) ([]domain.User, error)
}

type LikeService struct {
	repo  LikeRepository
	clock clock.Clock
}

func NewLikeService(repo LikeRepository, clk clock.Clock) *LikeService {
	return &LikeService{
		repo:  repo,
		clock: clk,
	}
}

type LikeInput struct {
	EventID string
	UserID  string
}

func (s *LikeService) Like(ctx context.Context, in LikeInput) (domain.Like, error) {
	if in.EventID == "" || in.UserID == "" {
		return domain.Like{}, domain.ErrInvalidID
	}

	like := domain.Like{
		ID:        newID(),
		EventID:   in.EventID,
		UserID:    in.UserID,
		CreatedAt: s.clock.Now(),
	}
	if err := s.repo.CreateLike(ctx, like); err != nil {
		return domain.Like{}, err
	}
	return like, nil
}

// Unlike removes a like, scoped to its event and owner so a user cannot
// remove somebody else's like.
func (s *LikeService) Unlike(ctx context.Context, eventID, likeID, userID string) error {
	if eventID == "" || likeID == "" || userID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteLike(ctx, eventID, likeID, userID)
}

// Likers returns the users who liked the event, oldest like first.
func (s *LikeService) Likers(ctx context.Context, eventID string) ([]domain.User, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListLikersByEvent(ctx, eventID)
}
