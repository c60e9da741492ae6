package models

type AlertPriority string

const (
	AlertLow    AlertPriority = "low"
	AlertMedium AlertPriority = "medium"
	AlertHigh   AlertPriority = "high"
	AlertUrgent AlertPriority = "urgent"
)

type AlertType string

const (
	AlertMaintenance     AlertType = "maintenance"
	AlertDocument        AlertType = "document"
	AlertLicense         AlertType = "license"
	AlertInsurance       AlertType = "insurance"
	AlertTechnicalReview AlertType = "technical-review"
)

// Alert is a dashboard notice, either entered or derived from fleet data.
type Alert struct {
	ID          string        `json:"id" yaml:"id"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Priority    AlertPriority `json:"priority" yaml:"priority"`
	Type        AlertType     `json:"type" yaml:"type"`
	Date        string        `json:"date" yaml:"date"`
	CompanyID   string        `json:"company_id" yaml:"company_id"`
}
