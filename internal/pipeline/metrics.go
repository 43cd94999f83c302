package pipeline

import (
	"encoding/json"

	"github.com/AldoHdz97/Portfolio-02/internal/campus"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/sirupsen/logrus"
)

// Metrics merges the current-month and previous-year metric exports into one
// document keyed by resolved campus identity.
type Metrics struct {
	directory *campus.Directory
}

// NewMetrics creates the metrics pipeline.
func NewMetrics(directory *campus.Directory) *Metrics {
	return &Metrics{directory: directory}
}

// Run reads both exports and merges them.
func (m *Metrics) Run(currentFile, previousFile string) (*models.MetricsOutput, models.PipelineCounts, error) {
	current, err := readMetricsFile(currentFile)
	if err != nil {
		return nil, models.PipelineCounts{}, err
	}
	logrus.Infof("Loaded %d current-month regions from %s", len(current), currentFile)

	previous, err := readMetricsFile(previousFile)
	if err != nil {
		return nil, models.PipelineCounts{}, err
	}
	logrus.Infof("Loaded %d previous-year regions from %s", len(previous), previousFile)

	regions := m.Merge(current, previous)

	output := &models.MetricsOutput{
		Regions: regions,
		Metadata: models.MetricsMetadata{
			TotalRegions: len(regions),
			CurrentFile:  currentFile,
			PreviousFile: previousFile,
		},
	}

	counts := models.PipelineCounts{Read: len(current) + len(previous), Kept: len(regions)}
	return output, counts, nil
}

// Merge joins current and previous records by raw REGION text and resolves
// each pair's campus identity. Records are matched on the raw text, not the
// resolved code: two differently-labelled regions that resolve to the same
// campus stay separate entries. Output order follows the current export.
func (m *Metrics) Merge(current, previous []models.RawMetricsRecord) []models.CampusCombined {
	// Last record wins on duplicate REGION text.
	previousByRegion := make(map[string]models.RawMetricsRecord, len(previous))
	for _, record := range previous {
		previousByRegion[record.Region] = record
	}

	regions := make([]models.CampusCombined, 0, len(current))
	for _, record := range current {
		code, name := m.directory.Resolve(record.Region)

		previousMetrics := models.PeriodMetrics{}
		if match, ok := previousByRegion[record.Region]; ok {
			previousMetrics = match.PeriodMetrics
		} else {
			logrus.Infof("No previous year data for %s (%s)", name, code)
		}

		regions = append(regions, models.CampusCombined{
			CampusID:          code,
			CampusName:        name,
			CurrentMonth:      record.PeriodMetrics,
			PreviousYearMonth: previousMetrics,
		})
	}

	return regions
}

func readMetricsFile(path string) ([]models.RawMetricsRecord, error) {
	var records []models.RawMetricsRecord
	err := readLines(path, func(line []byte) error {
		var record models.RawMetricsRecord
		if err := json.Unmarshal(line, &record); err != nil {
			return err
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
