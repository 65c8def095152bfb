package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the nightly maintenance pass: refresh derived golfer stats
// and reprice the field for the active season. The core engines stay
// request-scoped; this is just a periodic trigger around them.
type Scheduler struct {
	cron     *cron.Cron
	scores   *ScoreService
	pricing  *PricingService
	settings *SettingsService
	logger   *logrus.Logger
	spec     string

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

func NewScheduler(scores *ScoreService, pricing *PricingService, settings *SettingsService, logger *logrus.Logger, spec string) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		scores:   scores,
		pricing:  pricing,
		settings: settings,
		logger:   logger,
		spec:     spec,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runNightly); err != nil {
		return fmt.Errorf("failed to schedule nightly job: %w", err)
	}
	s.cron.Start()
	s.logger.Infof("Scheduler started (nightly: %q)", s.spec)
	return nil
}

func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(10 * time.Second):
		s.logger.Warn("Scheduler stop timed out waiting for running jobs")
	}
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) runNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	err := s.RunMaintenance(ctx)

	s.mu.Lock()
	s.lastRun = time.Now().UTC()
	s.lastErr = err
	s.mu.Unlock()
}

// RunMaintenance performs one maintenance pass for the active season
func (s *Scheduler) RunMaintenance(ctx context.Context) error {
	season, err := s.settings.CurrentSeason(ctx)
	if err != nil {
		s.logger.Errorf("Maintenance: failed to resolve season: %v", err)
		return err
	}

	if _, err := s.scores.RefreshGolferStats(ctx, season); err != nil {
		s.logger.Errorf("Maintenance: stats refresh failed: %v", err)
		return err
	}
	if _, err := s.pricing.CalculateGolferPrices(ctx, season); err != nil {
		s.logger.Errorf("Maintenance: repricing failed: %v", err)
		return err
	}

	s.logger.WithField("season", season).Info("Nightly maintenance completed")
	return nil
}

// Status reports the last run for the health endpoint
func (s *Scheduler) Status() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"jobs":     len(s.cron.Entries()),
		"last_run": s.lastRun,
	}
	if s.lastErr != nil {
		status["last_error"] = s.lastErr.Error()
	}
	return status
}
