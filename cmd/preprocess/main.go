package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AldoHdz97/Portfolio-02/internal/campus"
	"github.com/AldoHdz97/Portfolio-02/internal/ingest"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/AldoHdz97/Portfolio-02/internal/pipeline"
	"github.com/AldoHdz97/Portfolio-02/internal/validation"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// preprocess runs any subset of the three pipelines once and writes the
// artifacts to a local directory. It is the hands-on counterpart of the
// scheduled service, meant for reprocessing a month's exports by hand.
func main() {
	var (
		currentFile      = flag.String("current", "", "current-month metrics export (NDJSON)")
		previousFile     = flag.String("previous", "", "previous-year metrics export (NDJSON)")
		publicationsFile = flag.String("publications", "", "publications export (NDJSON)")
		scoresFile       = flag.String("scores", "", "score table (CSV)")
		outDir           = flag.String("outdir", "output", "directory for output artifacts")
		debug            = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	logrus.SetLevel(logrus.InfoLevel)
	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *currentFile == "" && *publicationsFile == "" && *scoresFile == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -current/-previous, -publications or -scores")
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logrus.Fatalf("Failed to create output directory: %v", err)
	}

	directory := campus.NewDirectory()

	var (
		metricsOutput     *models.MetricsOutput
		publicationGroups []models.CampusPublications
		scoresOutput      *models.ScoresOutput
	)

	if *currentFile != "" {
		if *previousFile == "" {
			logrus.Fatal("-previous is required when -current is set")
		}
		output, _, err := pipeline.NewMetrics(directory).Run(*currentFile, *previousFile)
		if err != nil {
			logrus.Fatalf("Metrics pipeline failed: %v", err)
		}
		metricsOutput = output
		writeJSON(*outDir, ingest.MetricsArtifact, output)
		printMetricsSummary(output)
	}

	if *publicationsFile != "" {
		groups, counts, err := pipeline.NewPublications().Run(*publicationsFile)
		if err != nil {
			logrus.Fatalf("Publications pipeline failed: %v", err)
		}
		publicationGroups = groups
		writeNDJSON(*outDir, ingest.PublicationsArtifact, groups)
		printPublicationsSummary(groups, counts)
	}

	if *scoresFile != "" {
		output, _, err := pipeline.NewScores(directory).Run(*scoresFile)
		if err != nil {
			logrus.Fatalf("Scores pipeline failed: %v", err)
		}
		scoresOutput = output
		writeJSON(*outDir, ingest.ScoresArtifact, output)
		printScoresSummary(output)
	}

	report := validation.NewValidator(directory).Validate(metricsOutput, publicationGroups, scoresOutput)
	writeJSON(*outDir, ingest.ValidationArtifact, report)
	fmt.Printf("\n%s\n", report.Summary)
}

func writeJSON(dir, name string, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		logrus.Fatalf("Failed to marshal %s: %v", name, err)
	}
	write(dir, name, append(data, '\n'))
}

func writeNDJSON(dir, name string, groups []models.CampusPublications) {
	var b strings.Builder
	for _, group := range groups {
		line, err := json.Marshal(group)
		if err != nil {
			logrus.Fatalf("Failed to marshal %s: %v", name, err)
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	write(dir, name, []byte(b.String()))
}

func write(dir, name string, data []byte) {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		logrus.Fatalf("Failed to write %s: %v", path, err)
	}
	fmt.Printf("Saved %s\n", path)
}

func printMetricsSummary(output *models.MetricsOutput) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("MERGED METRICS (%d regions)\n", output.Metadata.TotalRegions)
	fmt.Println(strings.Repeat("=", 70))
	for _, region := range output.Regions {
		fmt.Printf("  %-4s | %-20s | Current: %6d | Previous: %6d\n",
			region.CampusID, region.CampusName,
			region.CurrentMonth.TotalInteractions,
			region.PreviousYearMonth.TotalInteractions)
	}
}

func printPublicationsSummary(groups []models.CampusPublications, counts models.PipelineCounts) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("TOP PUBLICATIONS (%d -> %d posts, %d campuses)\n", counts.Read, counts.Kept, len(groups))
	fmt.Println(strings.Repeat("=", 70))
	for _, group := range groups {
		byPlatform := make(map[string]int)
		for _, publication := range group.Publications {
			platform := strings.ToLower(publication.SocialNetwork)
			switch {
			case strings.Contains(platform, "instagram"):
				byPlatform["instagram"]++
			case strings.Contains(platform, "facebook"):
				byPlatform["facebook"]++
			}
		}
		fmt.Printf("  %s: %d posts (instagram: %d, facebook: %d)\n",
			group.CampusID, len(group.Publications), byPlatform["instagram"], byPlatform["facebook"])
	}
}

func printScoresSummary(output *models.ScoresOutput) {
	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("BRAND HEALTH SCORES (%d campuses)\n", output.Metadata.TotalCampuses)
	fmt.Println(strings.Repeat("=", 70))
	for _, performance := range output.Campuses {
		fmt.Printf("  %s - %s\n", performance.CampusID, performance.CampusName)
		fmt.Printf("    Totales Salud de Marca: %s\n", formatScore(performance.Totales.SaludDeMarca, performance.Totales.SaludDeMarcaCategoria))
	}
}

func formatScore(value *int, category *string) string {
	if value == nil {
		return "n/a"
	}
	if category == nil {
		return fmt.Sprintf("%d", *value)
	}
	return fmt.Sprintf("%d (%s)", *value, *category)
}
