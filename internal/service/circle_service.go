package service

import (
	"context"
	"log/slog"

	"github.com/vighnaharta/internal/domain"
)

// circleService implements the CircleService interface
type circleService struct {
	repo   domain.CircleRepository
	logger *slog.Logger
}

// NewCircleService creates a new circle service
func NewCircleService(repo domain.CircleRepository, logger *slog.Logger) domain.CircleService {
	return &circleService{
		repo:   repo,
		logger: logger,
	}
}

// ListActiveCircles returns every active circle. One attempt, no retry.
func (s *circleService) ListActiveCircles(ctx context.Context) ([]domain.Circle, error) {
	s.logger.DebugContext(ctx, "listing active circles")

	circles, err := s.repo.ListActiveCircles(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list active circles", "error", err)
		if !domain.IsInfrastructureError(err) {
			err = domain.WrapDatabaseOperation("list active circles", err)
		}
		return nil, err
	}

	if circles == nil {
		circles = []domain.Circle{}
	}

	s.logger.DebugContext(ctx, "listed active circles", "count", len(circles))
	return circles, nil
}

// GetCircleByCode returns one active circle by its code
func (s *circleService) GetCircleByCode(ctx context.Context, code string) (*domain.Circle, error) {
	circleCode, err := domain.NewCircleCode(code)
	if err != nil {
		// Anything that is not a valid code cannot exist in the store
		return nil, domain.WrapCircleNotFound(code, err)
	}

	circle, err := s.repo.GetCircleByCode(ctx, circleCode.String())
	if err != nil {
		if domain.IsNotFoundError(err) {
			s.logger.DebugContext(ctx, "circle not found", "code", circleCode.String())
			return nil, err
		}
		s.logger.ErrorContext(ctx, "failed to get circle", "code", circleCode.String(), "error", err)
		if !domain.IsInfrastructureError(err) {
			err = domain.WrapDatabaseOperation("get circle by code", err)
		}
		return nil, err
	}

	return circle, nil
}
