package validation

import (
	"testing"

	"github.com/AldoHdz97/Portfolio-02/internal/campus"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestValidator_Validate_CompleteCampus(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	metrics := &models.MetricsOutput{
		Regions: []models.CampusCombined{
			{
				CampusID:          "MTY",
				CampusName:        "Monterrey",
				CurrentMonth:      models.PeriodMetrics{TotalInteractions: 500},
				PreviousYearMonth: models.PeriodMetrics{TotalInteractions: 300},
			},
		},
	}
	publications := []models.CampusPublications{
		{CampusID: "MTY", Publications: []models.Publication{{EngagementScore: 50}}},
	}
	scores := &models.ScoresOutput{
		Campuses: []models.CampusPerformance{
			{
				CampusID:   "MTY",
				CampusName: "Monterrey",
				Totales:    models.PlatformScores{SaludDeMarca: intPtr(120)},
			},
		},
	}

	report := v.Validate(metrics, publications, scores)

	require.Len(t, report.Validations, 1)
	validation := report.Validations[0]
	assert.True(t, validation.HasCurrentMetrics)
	assert.True(t, validation.HasPreviousMetrics)
	assert.True(t, validation.HasPublications)
	assert.Equal(t, 1, validation.PublicationCount)
	assert.True(t, validation.HasPlatformScores)
	assert.True(t, validation.IsComplete)
	assert.Empty(t, validation.Notes)

	assert.Equal(t, 1, report.TotalCampuses)
	assert.Equal(t, 1, report.CompleteCampuses)
	assert.Equal(t, 0, report.IncompleteCampuses)
	assert.Contains(t, report.Summary, "1 of 1")
}

func TestValidator_Validate_IncompleteCampus(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	// Metrics only, with a zero-filled previous period.
	metrics := &models.MetricsOutput{
		Regions: []models.CampusCombined{
			{
				CampusID:     "PUE",
				CampusName:   "Puebla",
				CurrentMonth: models.PeriodMetrics{TotalInteractions: 10},
			},
		},
	}

	report := v.Validate(metrics, nil, nil)

	require.Len(t, report.Validations, 1)
	validation := report.Validations[0]
	assert.True(t, validation.HasCurrentMetrics)
	assert.False(t, validation.HasPreviousMetrics)
	assert.False(t, validation.HasPublications)
	assert.False(t, validation.HasPlatformScores)
	assert.False(t, validation.IsComplete)

	assert.Equal(t, 1, report.IncompleteCampuses)
}

func TestValidator_Validate_UnknownCodeIsNotedNotRejected(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	publications := []models.CampusPublications{
		{CampusID: "XYZ", Publications: []models.Publication{{EngagementScore: 1}}},
	}

	report := v.Validate(nil, publications, nil)

	require.Len(t, report.Validations, 1)
	assert.Equal(t, "XYZ", report.Validations[0].CampusID)
	assert.Contains(t, report.Validations[0].Notes, "not one of the 20 known codes")
}

func TestValidator_Validate_DuplicateMetricEntriesAreNoted(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	// Two raw region labels that resolved to the same campus: the merge keeps
	// both, the validator surfaces the duplication.
	metrics := &models.MetricsOutput{
		Regions: []models.CampusCombined{
			{CampusID: "GDL", CampusName: "Guadalajara"},
			{CampusID: "GDL", CampusName: "Guadalajara"},
		},
	}

	report := v.Validate(metrics, nil, nil)

	require.Len(t, report.Validations, 1)
	assert.Contains(t, report.Validations[0].Notes, "multiple metric entries")
}

func TestValidator_Validate_PublicationBoundIsNoted(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	posts := make([]models.Publication, 9)
	publications := []models.CampusPublications{
		{CampusID: "SAL", Publications: posts},
	}

	report := v.Validate(nil, publications, nil)

	require.Len(t, report.Validations, 1)
	assert.Equal(t, 9, report.Validations[0].PublicationCount)
	assert.Contains(t, report.Validations[0].Notes, "exceeds the 8-post bound")
}

func TestValidator_Validate_UnionAcrossArtifactsInFirstSeenOrder(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	metrics := &models.MetricsOutput{
		Regions: []models.CampusCombined{
			{CampusID: "MTY", CampusName: "Monterrey"},
		},
	}
	publications := []models.CampusPublications{
		{CampusID: "GDL", Publications: []models.Publication{{}}},
	}
	scores := &models.ScoresOutput{
		Campuses: []models.CampusPerformance{
			{CampusID: "PUE", CampusName: "Puebla", Facebook: models.PlatformScores{Visibilidad: intPtr(90)}},
		},
	}

	report := v.Validate(metrics, publications, scores)

	require.Len(t, report.Validations, 3)
	assert.Equal(t, "MTY", report.Validations[0].CampusID)
	assert.Equal(t, "GDL", report.Validations[1].CampusID)
	assert.Equal(t, "PUE", report.Validations[2].CampusID)

	// Names fill in from the directory when the artifact has none.
	assert.Equal(t, "Guadalajara", report.Validations[1].CampusName)
}

func TestValidator_Validate_EmptyInputs(t *testing.T) {
	v := NewValidator(campus.NewDirectory())

	report := v.Validate(nil, nil, nil)

	assert.Empty(t, report.Validations)
	assert.Equal(t, 0, report.TotalCampuses)
	assert.Contains(t, report.Summary, "0 of 0")
}
