package pipeline

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/AldoHdz97/Portfolio-02/internal/campus"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/sirupsen/logrus"
)

// Score categories, ordered worst to best.
const (
	CategoryDeficiente    = "deficiente"
	CategoryRegular       = "regular"
	CategorySatisfactorio = "satisfactorio"
	CategorySobresaliente = "sobresaliente"
	CategoryExcepcional   = "excepcional"
)

// Scores parses the two-column brand-health score table into per-campus,
// per-platform score sets.
type Scores struct {
	directory *campus.Directory
}

// NewScores creates the score-table pipeline.
func NewScores(directory *campus.Directory) *Scores {
	return &Scores{directory: directory}
}

// Run reads and parses the score table CSV.
func (s *Scores) Run(csvFile string) (*models.ScoresOutput, models.PipelineCounts, error) {
	f, err := os.Open(csvFile)
	if err != nil {
		return nil, models.PipelineCounts{}, fmt.Errorf("failed to open %s: %w", csvFile, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, models.PipelineCounts{}, fmt.Errorf("failed to parse %s: %w", csvFile, err)
	}

	campuses := s.Parse(rows)
	logrus.Infof("Parsed %d campuses from %s", len(campuses), csvFile)

	output := &models.ScoresOutput{
		Campuses: campuses,
		Metadata: models.ScoresMetadata{
			TotalCampuses:  len(campuses),
			Source:         csvFile,
			Categorization: CategorizationLegend(),
		},
	}

	counts := models.PipelineCounts{Read: len(rows), Kept: len(campuses)}
	return output, counts, nil
}

// Parse folds the rows through a small state machine. A "campus" row flushes
// the accumulator and starts a new one; a platform row switches the target
// score set; a metric row stores a value on the current (campus, platform)
// pair. Metric rows outside any campus or platform are ignored. The final
// campus is flushed at end of input since no further campus row follows it.
func (s *Scores) Parse(rows [][]string) []models.CampusPerformance {
	campuses := []models.CampusPerformance{}
	var current *models.CampusPerformance
	currentPlatform := ""

	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		left := strings.ToLower(strings.TrimSpace(row[0]))
		right := strings.TrimSpace(row[1])

		switch {
		case left == "campus":
			if current != nil {
				campuses = append(campuses, *current)
			}
			current = &models.CampusPerformance{
				CampusID:   s.directory.ResolveByName(right),
				CampusName: right,
			}
			currentPlatform = ""

		case isPlatformRow(left):
			currentPlatform = left

		case isScoreRow(left):
			if current == nil || currentPlatform == "" {
				continue
			}
			value := parseScore(right)
			setScore(platformScores(current, currentPlatform), left, value, categoryOf(value))
		}
	}

	if current != nil {
		campuses = append(campuses, *current)
	}

	return campuses
}

// Categorize maps an integer score onto its qualitative label.
func Categorize(score int) string {
	switch {
	case score <= 75:
		return CategoryDeficiente
	case score <= 100:
		return CategoryRegular
	case score <= 120:
		return CategorySatisfactorio
	case score <= 140:
		return CategorySobresaliente
	default:
		return CategoryExcepcional
	}
}

// CategorizationLegend returns the threshold ranges per category, embedded in
// the output metadata so consumers can render legends.
func CategorizationLegend() map[string]string {
	return map[string]string{
		CategoryDeficiente:    "0-75",
		CategoryRegular:       "76-100",
		CategorySatisfactorio: "101-120",
		CategorySobresaliente: "121-140",
		CategoryExcepcional:   "141+",
	}
}

func isPlatformRow(left string) bool {
	switch left {
	case "facebook", "twitter", "instagram", "totales":
		return true
	}
	return false
}

func isScoreRow(left string) bool {
	switch left {
	case "visibilidad", "resonancia", "permanencia", "sentimiento", "salud de marca":
		return true
	}
	return false
}

// parseScore reads a score cell. Placeholder cells ("calificaciones" column
// headers and blanks) and anything non-numeric stay null rather than failing
// the run. Thousands separators are stripped.
func parseScore(value string) *int {
	if value == "" || strings.EqualFold(value, "calificaciones") {
		return nil
	}
	n, err := strconv.Atoi(strings.ReplaceAll(value, ",", ""))
	if err != nil {
		return nil
	}
	return &n
}

func categoryOf(score *int) *string {
	if score == nil {
		return nil
	}
	category := Categorize(*score)
	return &category
}

func platformScores(c *models.CampusPerformance, platform string) *models.PlatformScores {
	switch platform {
	case "facebook":
		return &c.Facebook
	case "twitter":
		return &c.Twitter
	case "instagram":
		return &c.Instagram
	default:
		return &c.Totales
	}
}

func setScore(ps *models.PlatformScores, name string, value *int, category *string) {
	switch name {
	case "visibilidad":
		ps.Visibilidad, ps.VisibilidadCategoria = value, category
	case "resonancia":
		ps.Resonancia, ps.ResonanciaCategoria = value, category
	case "permanencia":
		ps.Permanencia, ps.PermanenciaCategoria = value, category
	case "sentimiento":
		ps.Sentimiento, ps.SentimientoCategoria = value, category
	case "salud de marca":
		ps.SaludDeMarca, ps.SaludDeMarcaCategoria = value, category
	}
}
