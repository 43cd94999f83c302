package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Schedule configuration
	IngestSchedule string // "daily", "weekly" or "monthly"
	TimeZone       string

	// Input exports
	CurrentMetricsFile  string
	PreviousMetricsFile string
	PublicationsFile    string
	ScoresFile          string

	// Artifact output
	OutputDir        string
	StorageAccount   string // Azure Blob account; local output when empty
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          getBoolEnv("DEBUG", false),
		IngestSchedule: getEnv("INGEST_SCHEDULE", "monthly"),
		TimeZone:       getEnv("TIMEZONE", "UTC"),

		CurrentMetricsFile:  getEnv("CURRENT_METRICS_FILE", "Mes_Actual_2_SDMxRegion.json"),
		PreviousMetricsFile: getEnv("PREVIOUS_METRICS_FILE", "Mes_del_A_o_anterior_3_SDMxRegion.json"),
		PublicationsFile:    getEnv("PUBLICATIONS_FILE", "Todas_las_publicaciones_con_sus_metricas_1_SDMxRegion.json"),
		ScoresFile:          getEnv("SCORES_FILE", "Regiones Unificadas - Valores.csv"),

		OutputDir:        getEnv("OUTPUT_DIR", "output"),
		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "campus-artifacts"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.IngestSchedule {
	case "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("INGEST_SCHEDULE must be 'daily', 'weekly' or 'monthly'")
	}

	if c.CurrentMetricsFile == "" || c.PreviousMetricsFile == "" {
		return fmt.Errorf("both CURRENT_METRICS_FILE and PREVIOUS_METRICS_FILE must be set")
	}

	if c.PublicationsFile == "" {
		return fmt.Errorf("PUBLICATIONS_FILE must be set")
	}

	if c.ScoresFile == "" {
		return fmt.Errorf("SCORES_FILE must be set")
	}

	if c.StorageAccount == "" && c.OutputDir == "" {
		return fmt.Errorf("either AZURE_STORAGE_ACCOUNT or OUTPUT_DIR must be configured")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
