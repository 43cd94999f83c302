// Package validation cross-checks the three pipeline artifacts for
// per-campus completeness. It is a passive consumer: anomalies become notes
// on the report, never rejections.
package validation

import (
	"fmt"
	"strings"

	"github.com/AldoHdz97/Portfolio-02/internal/campus"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
)

// maxPublicationsPerCampus is the downstream contract bound: 4 Instagram + 4
// Facebook posts.
const maxPublicationsPerCampus = 8

// Validator builds completeness reports over pipeline outputs.
type Validator struct {
	directory *campus.Directory
}

// NewValidator creates a validator backed by the campus directory.
func NewValidator(directory *campus.Directory) *Validator {
	return &Validator{directory: directory}
}

// Validate builds the per-campus completeness report across the three
// artifacts. Any of the inputs may be nil or empty; the report covers the
// union of campuses observed, in first-seen order.
func (v *Validator) Validate(metrics *models.MetricsOutput, publications []models.CampusPublications, scores *models.ScoresOutput) *models.ValidationReport {
	type status struct {
		validation models.CampusValidation
		notes      []string
	}

	byCampus := make(map[string]*status)
	var order []string

	observe := func(code, name string) *status {
		if st, ok := byCampus[code]; ok {
			if st.validation.CampusName == "" {
				st.validation.CampusName = name
			}
			return st
		}
		st := &status{validation: models.CampusValidation{CampusID: code, CampusName: name}}
		if !v.directory.IsKnown(code) {
			st.notes = append(st.notes, fmt.Sprintf("campus code %q is not one of the 20 known codes", code))
		}
		byCampus[code] = st
		order = append(order, code)
		return st
	}

	if metrics != nil {
		for _, region := range metrics.Regions {
			st := observe(region.CampusID, region.CampusName)
			if st.validation.HasCurrentMetrics {
				st.notes = append(st.notes, "multiple metric entries resolve to this campus")
			}
			st.validation.HasCurrentMetrics = true
			if region.PreviousYearMonth != (models.PeriodMetrics{}) {
				st.validation.HasPreviousMetrics = true
			}
		}
	}

	for _, group := range publications {
		name, _ := v.directory.Name(group.CampusID)
		st := observe(group.CampusID, name)
		st.validation.HasPublications = len(group.Publications) > 0
		st.validation.PublicationCount += len(group.Publications)
		if st.validation.PublicationCount > maxPublicationsPerCampus {
			st.notes = append(st.notes, fmt.Sprintf("publication count %d exceeds the %d-post bound", st.validation.PublicationCount, maxPublicationsPerCampus))
		}
	}

	if scores != nil {
		for _, performance := range scores.Campuses {
			st := observe(performance.CampusID, performance.CampusName)
			if hasAnyScore(performance) {
				st.validation.HasPlatformScores = true
			}
		}
	}

	report := &models.ValidationReport{Validations: []models.CampusValidation{}}
	for _, code := range order {
		st := byCampus[code]
		st.validation.IsComplete = st.validation.HasPublications &&
			st.validation.HasCurrentMetrics &&
			st.validation.HasPreviousMetrics &&
			st.validation.HasPlatformScores
		st.validation.Notes = strings.Join(st.notes, "; ")
		report.Validations = append(report.Validations, st.validation)
	}

	report.Normalize()
	report.Summary = fmt.Sprintf("%d of %d campuses have complete data across metrics, publications and scores",
		report.CompleteCampuses, report.TotalCampuses)
	return report
}

func hasAnyScore(performance models.CampusPerformance) bool {
	for _, ps := range []models.PlatformScores{performance.Facebook, performance.Twitter, performance.Instagram, performance.Totales} {
		for _, value := range []*int{ps.Visibilidad, ps.Resonancia, ps.Permanencia, ps.Sentimiento, ps.SaludDeMarca} {
			if value != nil {
				return true
			}
		}
	}
	return false
}
