package app

import (
	"context"

	"github.com/jkbrookover/events-ii/services/api/internal/clock"
	"github.com/jkbrookover/events-ii/services/api/internal/domain"
)

type RegistrationRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetEventForUpdate(ctx context.Context, eventID string) (domain.Event, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	CreateRegistration(ctx context.Context, reg domain.Registration) error
	DeleteRegistration(ctx context.Context, eventID, registrationID string) error
	ListByEvent(ctx context.Context, eventID string) ([]domain.Registration, error)
}

type RegistrationService struct {
	repo  RegistrationRepository
	clock clock.Clock
}

func NewRegistrationService(repo RegistrationRepository, clk clock.Clock) *RegistrationService {
	return &RegistrationService{
		repo:  repo,
		clock: clk,
	}
}

type RegisterInput struct {
	EventID string
	UserID  string
}

// Register reserves a spot while holding a row lock on the event, so two
// concurrent registrations cannot both take the last spot.
func (s *RegistrationService) Register(ctx context.Context, in RegisterInput) (domain.Registration, error) {
	if in.EventID == "" || in.UserID == "" {
		return domain.Registration{}, domain.ErrInvalidID
	}

	now := s.clock.Now()
	var result domain.Registration

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		event, err := s.repo.GetEventForUpdate(txCtx, in.EventID)
		if err != nil {
			return err
		}

		registered, err := s.repo.CountByEvent(txCtx, in.EventID)
		if err != nil {
			return err
		}
		if event.SoldOut(registered) {
			return domain.ErrSoldOut
		}

		reg := domain.Registration{
			ID:        newID(),
			EventID:   in.EventID,
			UserID:    in.UserID,
			CreatedAt: now,
		}
		if err := s.repo.CreateRegistration(txCtx, reg); err != nil {
			return err
		}

		result = reg
		return nil
	})
	if err != nil {
		return domain.Registration{}, err
	}
	return result, nil
}

func (s *RegistrationService) Cancel(ctx context.Context, eventID, registrationID string) error {
	if eventID == "" || registrationID == "" {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteRegistration(ctx, eventID, registrationID)
}

func (s *RegistrationService) ListForEvent(ctx context.Context, eventID string) ([]domain.Registration, error) {
	if eventID == "" {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByEvent(ctx, eventID)
}
