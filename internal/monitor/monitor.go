// Package monitor probes the circle store on a cron schedule and keeps the
// last result for the health endpoint.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/vighnaharta/internal/domain"
)

const probeTimeout = 5 * time.Second

// Pinger is the part of a CircleRepository the monitor needs
type Pinger interface {
	Ping(ctx context.Context) error
}

// Monitor runs the store health probe
type Monitor struct {
	store    Pinger
	driver   string
	schedule cron.Schedule
	expr     string
	cron     *cron.Cron
	logger   *slog.Logger

	mu   sync.RWMutex
	last domain.StoreHealth
}

// New validates expr (standard cron or @every descriptors) and returns a
// stopped monitor
func New(store Pinger, driver, expr string, logger *slog.Logger) (*Monitor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid store health schedule %q: %w", expr, err)
	}

	cl := cronLogger{logger: logger}
	return &Monitor{
		store:    store,
		driver:   driver,
		schedule: schedule,
		expr:     expr,
		cron: cron.New(cron.WithChain(
			cron.Recover(cl),
			cron.SkipIfStillRunning(cl),
		)),
		logger: logger,
		last:   domain.StoreHealth{Driver: driver},
	}, nil
}

// Start probes once synchronously and then on every tick of the schedule
func (m *Monitor) Start(ctx context.Context) {
	m.Check(ctx)

	m.cron.Schedule(m.schedule, cron.FuncJob(func() {
		m.Check(context.Background())
	}))
	m.cron.Start()
	m.logger.Info("store health monitor started", "driver", m.driver, "schedule", m.expr)
}

// Stop stops the scheduler. The returned context is done once a running
// probe has finished.
func (m *Monitor) Stop() context.Context {
	return m.cron.Stop()
}

// Check pings the store and records the result
func (m *Monitor) Check(ctx context.Context) domain.StoreHealth {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := m.store.Ping(ctx)
	now := time.Now().UTC()

	health := domain.StoreHealth{
		Driver:    m.driver,
		Healthy:   err == nil,
		CheckedAt: &now,
	}
	if err != nil {
		health.Error = domain.PublicMessage(err)
		m.logger.Warn("store health check failed", "driver", m.driver, "error", err)
	}

	m.mu.Lock()
	previous := m.last
	m.last = health
	m.mu.Unlock()

	if previous.CheckedAt != nil && !previous.Healthy && health.Healthy {
		m.logger.Info("store recovered", "driver", m.driver)
	}
	return health
}

// Snapshot returns the last recorded result
func (m *Monitor) Snapshot() domain.StoreHealth {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// cronLogger adapts slog to cron.Logger
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, append([]interface{}{"component", "cron"}, keysAndValues...)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{"component", "cron", "error", err}, keysAndValues...)...)
}
