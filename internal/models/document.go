package models

type DocumentType string

const (
	DocumentInsurance       DocumentType = "insurance"
	DocumentRegistration    DocumentType = "registration"
	DocumentPermit          DocumentType = "permit"
	DocumentTechnicalReview DocumentType = "technical-review"
	DocumentOther           DocumentType = "other"
)

func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentInsurance, DocumentRegistration, DocumentPermit, DocumentTechnicalReview, DocumentOther:
		return true
	default:
		return false
	}
}

// DocumentStatus is stored as entered. It is not recomputed from ExpiryDate.
type DocumentStatus string

const (
	DocumentValid    DocumentStatus = "valid"
	DocumentExpiring DocumentStatus = "expiring"
	DocumentExpired  DocumentStatus = "expired"
)

func (s DocumentStatus) IsValid() bool {
	switch s {
	case DocumentValid, DocumentExpiring, DocumentExpired:
		return true
	default:
		return false
	}
}

// Document is a compliance document attached to a vehicle or a driver.
type Document struct {
	ID         string         `json:"id" yaml:"id"`
	Name       string         `json:"name" yaml:"name"`
	Type       DocumentType   `json:"type" yaml:"type"`
	ExpiryDate string         `json:"expiry_date" yaml:"expiry_date"`
	Status     DocumentStatus `json:"status" yaml:"status"`
	VehicleID  Ref            `json:"vehicle_id,omitempty" yaml:"vehicle_id"`
	DriverID   Ref            `json:"driver_id,omitempty" yaml:"driver_id"`
	CompanyID  string         `json:"company_id" yaml:"company_id"`
}
