package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"
	"time"

	"github.com/AldoHdz97/Portfolio-02/internal/config"
	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// Service delivers run summaries via the configured channels. With neither a
// Teams webhook nor an email address configured, the summary only goes to
// the log.
type Service struct {
	config *config.Config
	client *resty.Client
}

var _ Notifier = (*Service)(nil)

// TeamsMessage represents a Microsoft Teams message
type TeamsMessage struct {
	Type     string         `json:"@type"`
	Context  string         `json:"@context"`
	Title    string         `json:"title"`
	Text     string         `json:"text"`
	Sections []TeamsSection `json:"sections,omitempty"`
}

type TeamsSection struct {
	ActivityTitle    string      `json:"activityTitle,omitempty"`
	ActivitySubtitle string      `json:"activitySubtitle,omitempty"`
	ActivityText     string      `json:"activityText,omitempty"`
	Facts            []TeamsFact `json:"facts,omitempty"`
	Markdown         bool        `json:"markdown,omitempty"`
}

type TeamsFact struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewService creates a new notification service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		client: resty.New().SetTimeout(30 * time.Second),
	}
}

// SendRunReport sends the run summary via every configured channel.
func (s *Service) SendRunReport(report *models.RunReport) error {
	var errors []string

	if s.config.TeamsWebhookURL != "" {
		if err := s.sendToTeams(report); err != nil {
			logrus.Errorf("Failed to send Teams notification: %v", err)
			errors = append(errors, fmt.Sprintf("Teams: %v", err))
		} else {
			logrus.Info("Successfully sent run summary to Teams")
		}
	}

	if s.config.NotificationEmail != "" {
		if err := s.sendEmail(report); err != nil {
			logrus.Errorf("Failed to send email notification: %v", err)
			errors = append(errors, fmt.Sprintf("Email: %v", err))
		} else {
			logrus.Info("Successfully sent run summary via email")
		}
	}

	if s.config.TeamsWebhookURL == "" && s.config.NotificationEmail == "" {
		logrus.Infof("No notification channels configured; run %s summary: %s", report.RunID, summaryLine(report))
	}

	if len(errors) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func (s *Service) sendToTeams(report *models.RunReport) error {
	message := s.buildTeamsMessage(report)

	resp, err := s.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(message).
		Post(s.config.TeamsWebhookURL)

	if err != nil {
		return fmt.Errorf("failed to send Teams message: %w", err)
	}

	if resp.StatusCode() != 200 {
		return fmt.Errorf("Teams webhook returned status %d: %s", resp.StatusCode(), string(resp.Body()))
	}

	return nil
}

func (s *Service) buildTeamsMessage(report *models.RunReport) *TeamsMessage {
	message := &TeamsMessage{
		Type:    "MessageCard",
		Context: "https://schema.org/extensions",
		Title:   "Campus Data Ingestion Report",
		Text:    summaryLine(report),
	}

	facts := []TeamsFact{
		{Name: "Run ID", Value: report.RunID},
		{Name: "Started", Value: report.StartedAt.Format("2006-01-02 15:04:05 UTC")},
		{Name: "Duration", Value: report.Duration},
		{Name: "Triggered By", Value: report.TriggeredBy},
	}

	for _, name := range pipelineNames(report) {
		counts := report.Pipelines[name]
		facts = append(facts, TeamsFact{
			Name:  fmt.Sprintf("%s Pipeline", strings.Title(name)),
			Value: fmt.Sprintf("read %d, kept %d, dropped %d", counts.Read, counts.Kept, counts.Dropped),
		})
	}

	message.Sections = append(message.Sections, TeamsSection{
		ActivityTitle: "Summary",
		Facts:         facts,
		Markdown:      true,
	})

	if report.Validation != nil {
		message.Sections = append(message.Sections, TeamsSection{
			ActivityTitle: "Validation",
			ActivityText:  report.Validation.Summary,
			Markdown:      true,
		})
	}

	return message
}

func (s *Service) sendEmail(report *models.RunReport) error {
	subject := fmt.Sprintf("Campus Data Ingestion Report - run %s", report.RunID)

	htmlBody, err := s.buildEmailHTML(report)
	if err != nil {
		return fmt.Errorf("failed to build email HTML: %w", err)
	}

	textBody := s.buildEmailText(report)

	m := gomail.NewMessage()
	m.SetHeader("From", s.config.SMTPUsername)
	m.SetHeader("To", s.config.NotificationEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

func (s *Service) buildEmailHTML(report *models.RunReport) (string, error) {
	tmpl := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Campus Data Ingestion Report</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background-color: #0039a6; color: white; padding: 20px; border-radius: 5px; }
        .summary { background-color: #f5f5f5; padding: 15px; margin: 20px 0; border-radius: 5px; }
        table { border-collapse: collapse; }
        th, td { border: 1px solid #ddd; padding: 6px 12px; text-align: left; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Campus Data Ingestion Report</h1>
        <p>Run {{.RunID}} started {{.StartedAt.Format "January 2, 2006 at 3:04 PM UTC"}} ({{.Duration}})</p>
    </div>

    <div class="summary">
        <h2>Pipelines</h2>
        <table>
            <tr><th>Pipeline</th><th>Read</th><th>Kept</th><th>Dropped</th></tr>
            {{range $name, $counts := .Pipelines}}
            <tr><td>{{$name | title}}</td><td>{{$counts.Read}}</td><td>{{$counts.Kept}}</td><td>{{$counts.Dropped}}</td></tr>
            {{end}}
        </table>
    </div>

    {{if .Validation}}
    <div class="summary">
        <h2>Validation</h2>
        <p>{{.Validation.Summary}}</p>
        <p><strong>Complete:</strong> {{.Validation.CompleteCampuses}} |
           <strong>Incomplete:</strong> {{.Validation.IncompleteCampuses}}</p>
    </div>
    {{end}}

    <hr>
    <p><small>This report was generated automatically by the campus data pipeline.</small></p>
</body>
</html>
`

	t := template.New("email").Funcs(template.FuncMap{
		"title": strings.Title,
	})

	t, err := t.Parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, report); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *Service) buildEmailText(report *models.RunReport) string {
	var text strings.Builder

	text.WriteString("Campus Data Ingestion Report\n")
	text.WriteString(fmt.Sprintf("Run: %s\n", report.RunID))
	text.WriteString(fmt.Sprintf("Started: %s\n", report.StartedAt.Format("2006-01-02 15:04:05 UTC")))
	text.WriteString(fmt.Sprintf("Duration: %s\n\n", report.Duration))

	text.WriteString("PIPELINES\n")
	text.WriteString("=========\n")
	for _, name := range pipelineNames(report) {
		counts := report.Pipelines[name]
		text.WriteString(fmt.Sprintf("%s: read %d, kept %d, dropped %d\n", name, counts.Read, counts.Kept, counts.Dropped))
	}

	if report.Validation != nil {
		text.WriteString("\nVALIDATION\n")
		text.WriteString("==========\n")
		text.WriteString(report.Validation.Summary + "\n")
	}

	if len(report.Artifacts) > 0 {
		text.WriteString("\nARTIFACTS\n")
		text.WriteString("=========\n")
		for _, artifact := range report.Artifacts {
			text.WriteString(artifact + "\n")
		}
	}

	text.WriteString("\n---\nThis report was generated automatically by the campus data pipeline.\n")

	return text.String()
}

func summaryLine(report *models.RunReport) string {
	total := 0
	for _, counts := range report.Pipelines {
		total += counts.Kept
	}
	return fmt.Sprintf("Processed %d pipelines, kept %d records in %s", len(report.Pipelines), total, report.Duration)
}

func pipelineNames(report *models.RunReport) []string {
	names := make([]string, 0, len(report.Pipelines))
	for name := range report.Pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
