package infra

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the outcome of the last database probe
type HealthStatus struct {
	Database  string    `json:"database"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"-"`
}

// Healthy reports whether the last probe reached the database
func (s HealthStatus) Healthy() bool {
	return s.Database == "healthy"
}

// HealthProbe pings the database on a cron schedule and keeps the last result
type HealthProbe struct {
	cron    *cron.Cron
	db      Pinger
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.RWMutex
	last HealthStatus
}

// NewHealthProbe creates a probe. Nothing runs until Start.
func NewHealthProbe(db Pinger, logger *zap.Logger) *HealthProbe {
	return &HealthProbe{
		cron:    cron.New(),
		db:      db,
		timeout: 2 * time.Second,
		logger:  logger,
		last:    HealthStatus{Database: "unknown"},
	}
}

// Start runs one probe immediately and then on the given schedule
func (p *HealthProbe) Start(schedule string) error {
	if _, err := p.cron.AddFunc(schedule, func() { p.Check(context.Background()) }); err != nil {
		return err
	}

	p.Check(context.Background())
	p.cron.Start()
	p.logger.Info("health probe started", zap.String("schedule", schedule))
	return nil
}

// Stop stops the schedule and waits for a running probe to finish
func (p *HealthProbe) Stop() {
	<-p.cron.Stop().Done()
	p.logger.Info("health probe stopped")
}

// Check pings the database once and records the result
func (p *HealthProbe) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	status := HealthStatus{Database: "healthy", CheckedAt: time.Now().UTC()}
	if err := p.db.Ping(ctx); err != nil {
		status.Database = "unhealthy"
		status.Error = err.Error()
	}

	p.mu.Lock()
	previous := p.last
	p.last = status
	p.mu.Unlock()

	if previous.Database != status.Database {
		if status.Healthy() {
			p.logger.Info("database is healthy")
		} else {
			p.logger.Warn("database is unhealthy", zap.String("error", status.Error))
		}
	}

	return status
}

// Status returns the last recorded probe result
func (p *HealthProbe) Status() HealthStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.last
}
