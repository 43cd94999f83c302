package scheduler

import (
	"github.com/AldoHdz97/Portfolio-02/internal/config"
	"github.com/AldoHdz97/Portfolio-02/internal/ingest"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Service runs ingestion on a fixed schedule.
type Service struct {
	config        *config.Config
	ingestService *ingest.Service
	cron          *cron.Cron
}

// NewService creates a new scheduler service
func NewService(cfg *config.Config, ingestService *ingest.Service) *Service {
	return &Service{
		config:        cfg,
		ingestService: ingestService,
		cron:          cron.New(cron.WithSeconds()),
	}
}

// Start begins the scheduled ingestion runs.
func (s *Service) Start() error {
	var cronExpression string

	switch s.config.IngestSchedule {
	case "daily":
		// Run daily at 6 AM UTC, after the overnight exports land
		cronExpression = "0 0 6 * * *"
	case "weekly":
		// Run weekly on Monday at 6 AM UTC
		cronExpression = "0 0 6 * * MON"
	default:
		// Monthly on the 1st at 6 AM UTC
		cronExpression = "0 0 6 1 * *"
	}

	_, err := s.cron.AddFunc(cronExpression, func() {
		logrus.Info("Starting scheduled ingestion run")
		if err := s.ingestService.Run("schedule"); err != nil {
			logrus.Errorf("Scheduled ingestion run failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	logrus.Infof("Scheduler started with %s schedule", s.config.IngestSchedule)
	return nil
}

// Stop stops the scheduler
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
		logrus.Info("Scheduler stopped")
	}
}
