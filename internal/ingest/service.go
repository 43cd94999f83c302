package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/AldoHdz97/Portfolio-02/internal/campus"
	"github.com/AldoHdz97/Portfolio-02/internal/config"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/AldoHdz97/Portfolio-02/internal/notifications"
	"github.com/AldoHdz97/Portfolio-02/internal/pipeline"
	"github.com/AldoHdz97/Portfolio-02/internal/storage"
	"github.com/AldoHdz97/Portfolio-02/internal/validation"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Artifact names match what the downstream report agents expect to find.
const (
	MetricsArtifact      = "metrics_estructurado.json"
	PublicationsArtifact = "Publicaciones_estructuradas_Top8.json"
	ScoresArtifact       = "sdm_estructurado.json"
	ValidationArtifact   = "validation_report.json"
)

// Service orchestrates one ingestion run: the three pipelines, artifact
// publishing, cross-artifact validation, metrics, and the run summary
// notification. The pipelines are independent and run sequentially; each
// reads its whole input before emitting anything.
type Service struct {
	config       *config.Config
	storage      storage.Storage
	notifier     notifications.Notifier
	directory    *campus.Directory
	metrics      *pipeline.Metrics
	publications *pipeline.Publications
	scores       *pipeline.Scores
	validator    *validation.Validator
	runMetrics   *RunMetrics

	mu     sync.RWMutex
	status Status
}

// Status is the last-run state exposed on the service's /status endpoint.
type Status struct {
	LastRunID          string                           `json:"last_run_id"`
	LastRun            time.Time                        `json:"last_run"`
	LastRunDuration    string                           `json:"last_run_duration"`
	LastError          string                           `json:"last_error,omitempty"`
	Pipelines          map[string]models.PipelineCounts `json:"pipelines,omitempty"`
	CompleteCampuses   int                              `json:"complete_campuses"`
	IncompleteCampuses int                              `json:"incomplete_campuses"`
}

// NewService wires an ingestion service.
func NewService(cfg *config.Config, store storage.Storage, notifier notifications.Notifier, runMetrics *RunMetrics) *Service {
	directory := campus.NewDirectory()
	return &Service{
		config:       cfg,
		storage:      store,
		notifier:     notifier,
		directory:    directory,
		metrics:      pipeline.NewMetrics(directory),
		publications: pipeline.NewPublications(),
		scores:       pipeline.NewScores(directory),
		validator:    validation.NewValidator(directory),
		runMetrics:   runMetrics,
	}
}

// Run executes a full ingestion run. trigger records what started the run
// ("schedule", "manual", "cli") for the run report.
func (s *Service) Run(trigger string) error {
	start := time.Now()
	runID := uuid.NewString()
	logrus.Infof("Starting ingestion run %s (trigger: %s)", runID, trigger)

	err := s.run(runID, trigger, start)
	if s.runMetrics != nil {
		s.runMetrics.observeRun(time.Since(start), err != nil)
	}
	if err != nil {
		s.recordFailure(runID, start, err)
		logrus.Errorf("Ingestion run %s failed: %v", runID, err)
		return err
	}

	logrus.Infof("Ingestion run %s completed in %v", runID, time.Since(start))
	return nil
}

func (s *Service) run(runID, trigger string, start time.Time) error {
	counts := make(map[string]models.PipelineCounts)
	var artifacts []string

	metricsOutput, metricsCounts, err := s.metrics.Run(s.config.CurrentMetricsFile, s.config.PreviousMetricsFile)
	if err != nil {
		return fmt.Errorf("metrics pipeline: %w", err)
	}
	counts["metrics"] = metricsCounts

	publicationGroups, publicationCounts, err := s.publications.Run(s.config.PublicationsFile)
	if err != nil {
		return fmt.Errorf("publications pipeline: %w", err)
	}
	counts["publications"] = publicationCounts

	scoresOutput, scoresCounts, err := s.scores.Run(s.config.ScoresFile)
	if err != nil {
		return fmt.Errorf("scores pipeline: %w", err)
	}
	counts["scores"] = scoresCounts

	report := s.validator.Validate(metricsOutput, publicationGroups, scoresOutput)
	logrus.Info(report.Summary)

	stored, err := s.publishArtifacts(metricsOutput, publicationGroups, scoresOutput, report)
	if err != nil {
		return err
	}
	artifacts = append(artifacts, stored...)

	if s.runMetrics != nil {
		for name, c := range counts {
			s.runMetrics.observeCounts(name, c)
		}
		s.runMetrics.observeValidation(report.CompleteCampuses, report.IncompleteCampuses)
	}

	runReport := &models.RunReport{
		RunID:       runID,
		StartedAt:   start,
		Duration:    time.Since(start).Round(time.Millisecond).String(),
		Pipelines:   counts,
		Validation:  report,
		Artifacts:   artifacts,
		TriggeredBy: trigger,
	}

	s.recordSuccess(runReport)

	if err := s.notifier.SendRunReport(runReport); err != nil {
		return fmt.Errorf("failed to send run report: %w", err)
	}

	return nil
}

func (s *Service) publishArtifacts(metricsOutput *models.MetricsOutput, publicationGroups []models.CampusPublications, scoresOutput *models.ScoresOutput, report *models.ValidationReport) ([]string, error) {
	metricsData, err := json.MarshalIndent(metricsOutput, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metrics output: %w", err)
	}

	publicationsData, err := encodeNDJSON(publicationGroups)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal publications output: %w", err)
	}

	scoresData, err := json.MarshalIndent(scoresOutput, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal scores output: %w", err)
	}

	validationData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal validation report: %w", err)
	}

	stored := []string{}
	for _, artifact := range []struct {
		name string
		data []byte
	}{
		{MetricsArtifact, metricsData},
		{PublicationsArtifact, publicationsData},
		{ScoresArtifact, scoresData},
		{ValidationArtifact, validationData},
	} {
		if err := s.storage.Store(artifact.name, artifact.data); err != nil {
			return nil, fmt.Errorf("failed to store %s: %w", artifact.name, err)
		}
		stored = append(stored, artifact.name)
	}

	return stored, nil
}

// encodeNDJSON writes one JSON object per line, one line per campus group.
func encodeNDJSON(groups []models.CampusPublications) ([]byte, error) {
	var buf bytes.Buffer
	for _, group := range groups {
		line, err := json.Marshal(group)
		if err != nil {
			return nil, err
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func (s *Service) recordSuccess(report *models.RunReport) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = Status{
		LastRunID:       report.RunID,
		LastRun:         report.StartedAt,
		LastRunDuration: report.Duration,
		Pipelines:       report.Pipelines,
	}
	if report.Validation != nil {
		s.status.CompleteCampuses = report.Validation.CompleteCampuses
		s.status.IncompleteCampuses = report.Validation.IncompleteCampuses
	}
}

func (s *Service) recordFailure(runID string, start time.Time, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status = Status{
		LastRunID:       runID,
		LastRun:         start,
		LastRunDuration: time.Since(start).Round(time.Millisecond).String(),
		LastError:       err.Error(),
	}
}

// GetStatus returns the last-run status as JSON.
func (s *Service) GetStatus() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, _ := json.MarshalIndent(s.status, "", "  ")
	return string(data)
}
