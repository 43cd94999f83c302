package notifications

import "github.com/AldoHdz97/Portfolio-02/internal/models"

// Notifier is the contract for delivering ingestion run summaries.
type Notifier interface {
	SendRunReport(report *models.RunReport) error
}
