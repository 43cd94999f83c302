package models

import "time"

// PeriodMetrics holds the four per-campus counters for one reporting period.
// Fields keep the exporter's column names so the JSON contract matches the
// upstream files byte for byte. Counters default to zero, never null.
type PeriodMetrics struct {
	PostComments      int     `json:"POST_COMMENTS__SUM"`
	TotalReach        float64 `json:"ALCANCE_TOTAL"`
	PublicationVolume int     `json:"VOLUMEN_DE_PUBLICACIONES"`
	TotalInteractions int     `json:"INTERACCIONES_TOTALES"`
}

// RawMetricsRecord is one line of a metrics export: the free-text REGION
// label plus the period counters.
type RawMetricsRecord struct {
	Region string `json:"REGION"`
	PeriodMetrics
}

// CampusCombined pairs the current-month and previous-year metrics for one
// resolved campus. A campus without previous-year data carries zero-valued
// counters, not a missing entry.
type CampusCombined struct {
	CampusID          string        `json:"campus_id"`
	CampusName        string        `json:"campus_name"`
	CurrentMonth      PeriodMetrics `json:"current_month"`
	PreviousYearMonth PeriodMetrics `json:"previous_year_month"`
}

// MetricsMetadata describes the provenance of a metrics document.
type MetricsMetadata struct {
	TotalRegions int    `json:"total_regions"`
	CurrentFile  string `json:"current_file"`
	PreviousFile string `json:"previous_file"`
}

// MetricsOutput is the merged metrics document handed to downstream report
// consumers.
type MetricsOutput struct {
	Regions  []CampusCombined `json:"regions"`
	Metadata MetricsMetadata  `json:"metadata"`
}

// RawPublication is one line of the publications export.
type RawPublication struct {
	PublishedTime string `json:"PUBLISHEDTIME"`
	SocialNetwork string `json:"SOCIAL_NETWORK"`
	Interactions  int    `json:"INTERACCIONES_GENERAL__SUM"`
	Account       string `json:"ACCOUNT"`
	Reach         int    `json:"ALCANCE_GENERAL__SUM"`
	OutboundPost  string `json:"OUTBOUND_POST"`
}

// Publication is a kept post with its derived engagement score
// (interactions x 10 + reach).
type Publication struct {
	PublishedTime   string `json:"PUBLISHEDTIME"`
	SocialNetwork   string `json:"SOCIAL_NETWORK"`
	Interactions    int    `json:"INTERACCIONES_GENERAL__SUM"`
	Account         string `json:"ACCOUNT"`
	Reach           int    `json:"ALCANCE_GENERAL__SUM"`
	OutboundPost    string `json:"OUTBOUND_POST"`
	EngagementScore int    `json:"engagement_score"`
}

// CampusPublications groups the kept posts for one campus: at most 4
// Instagram posts followed by at most 4 Facebook posts. The campus id lives
// only here, never on the individual posts.
type CampusPublications struct {
	CampusID     string        `json:"campus_id"`
	Publications []Publication `json:"publications"`
}

// PlatformScores holds the five brand-health metrics for one platform.
// Values are nullable: a placeholder cell in the source table stays null in
// the output, as does its category.
type PlatformScores struct {
	Visibilidad           *int    `json:"visibilidad"`
	VisibilidadCategoria  *string `json:"visibilidad_categoria"`
	Resonancia            *int    `json:"resonancia"`
	ResonanciaCategoria   *string `json:"resonancia_categoria"`
	Permanencia           *int    `json:"permanencia"`
	PermanenciaCategoria  *string `json:"permanencia_categoria"`
	Sentimiento           *int    `json:"sentimiento"`
	SentimientoCategoria  *string `json:"sentimiento_categoria"`
	SaludDeMarca          *int    `json:"salud_de_marca"`
	SaludDeMarcaCategoria *string `json:"salud_de_marca_categoria"`
}

// CampusPerformance is the per-campus nesting of the four platform score
// sets parsed from the score table.
type CampusPerformance struct {
	CampusID   string         `json:"campus_id"`
	CampusName string         `json:"campus_name"`
	Facebook   PlatformScores `json:"facebook"`
	Twitter    PlatformScores `json:"twitter"`
	Instagram  PlatformScores `json:"instagram"`
	Totales    PlatformScores `json:"totales"`
}

// ScoresMetadata describes a scores document, including the threshold labels
// used for categorization so consumers can render legends without hardcoding
// the ranges.
type ScoresMetadata struct {
	TotalCampuses  int               `json:"total_campuses"`
	Source         string            `json:"source"`
	Categorization map[string]string `json:"categorization"`
}

// ScoresOutput is the parsed score-table document.
type ScoresOutput struct {
	Campuses []CampusPerformance `json:"campuses"`
	Metadata ScoresMetadata      `json:"metadata"`
}

// CampusValidation is the completeness status of one campus across the three
// artifacts.
type CampusValidation struct {
	CampusID           string `json:"campus_id"`
	CampusName         string `json:"campus_name"`
	HasPublications    bool   `json:"has_publications"`
	PublicationCount   int    `json:"publication_count"`
	HasCurrentMetrics  bool   `json:"has_current_metrics"`
	HasPreviousMetrics bool   `json:"has_previous_metrics"`
	HasPlatformScores  bool   `json:"has_platform_scores"`
	IsComplete         bool   `json:"is_complete"`
	Notes              string `json:"notes,omitempty"`
}

// ValidationReport cross-checks the three pipeline outputs. The totals are
// derived from the validations list; call Normalize after populating it.
type ValidationReport struct {
	Validations        []CampusValidation `json:"validations"`
	TotalCampuses      int                `json:"total_campuses"`
	CompleteCampuses   int                `json:"complete_campuses"`
	IncompleteCampuses int                `json:"incomplete_campuses"`
	Summary            string             `json:"summary"`
}

// Normalize recomputes the derived totals from the validations list.
func (r *ValidationReport) Normalize() {
	r.TotalCampuses = len(r.Validations)
	r.CompleteCampuses = 0
	for _, v := range r.Validations {
		if v.IsComplete {
			r.CompleteCampuses++
		}
	}
	r.IncompleteCampuses = r.TotalCampuses - r.CompleteCampuses
}

// PipelineCounts summarizes one pipeline's record flow for a run report.
type PipelineCounts struct {
	Read    int `json:"read"`
	Kept    int `json:"kept"`
	Dropped int `json:"dropped"`
}

// RunReport is the per-run summary delivered through the notification
// channels after an ingestion run.
type RunReport struct {
	RunID       string                    `json:"run_id"`
	StartedAt   time.Time                 `json:"started_at"`
	Duration    string                    `json:"duration"`
	Pipelines   map[string]PipelineCounts `json:"pipelines"`
	Validation  *ValidationReport         `json:"validation,omitempty"`
	Artifacts   []string                  `json:"artifacts"`
	ErrorCount  int                       `json:"error_count"`
	TriggeredBy string                    `json:"triggered_by"`
}
