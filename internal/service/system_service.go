package service

import (
	"context"
	"log/slog"

	"github.com/vighnaharta/internal/domain"
	"github.com/vighnaharta/internal/system"
)

// systemService implements the SystemService interface
type systemService struct {
	collector *system.Collector
	logger    *slog.Logger
}

// NewSystemService creates a new system service
func NewSystemService(collector *system.Collector, logger *slog.Logger) domain.SystemService {
	return &systemService{
		collector: collector,
		logger:    logger,
	}
}

// GetSystemStats retrieves host and process statistics of this server
func (s *systemService) GetSystemStats(ctx context.Context) (*system.SystemStats, error) {
	s.logger.DebugContext(ctx, "getting system stats")

	stats, err := s.collector.GetSystemStats(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to collect system stats", "error", err)
		return nil, err
	}
	return stats, nil
}
