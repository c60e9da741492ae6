package models

// VehicleStatus is set directly by the user.
type VehicleStatus string

const (
	VehicleAvailable   VehicleStatus = "available"
	VehicleRented      VehicleStatus = "rented"
	VehicleMaintenance VehicleStatus = "maintenance"
)

// IsValid reports whether s is a known vehicle status.
func (s VehicleStatus) IsValid() bool {
	switch s {
	case VehicleAvailable, VehicleRented, VehicleMaintenance:
		return true
	default:
		return false
	}
}

// DefaultMaintenanceInterval is used when a vehicle is saved without one.
const DefaultMaintenanceInterval = 10000

// Vehicle represents a fleet vehicle.
type Vehicle struct {
	ID                     string        `json:"id" yaml:"id"`
	VIN                    string        `json:"vin" yaml:"vin"`
	Plate                  string        `json:"plate" yaml:"plate"`
	Brand                  string        `json:"brand" yaml:"brand"`
	Model                  string        `json:"model" yaml:"model"`
	Year                   int           `json:"year" yaml:"year"`
	Color                  string        `json:"color" yaml:"color"`
	VehicleType            string        `json:"vehicle_type" yaml:"vehicle_type"`
	PurchaseDate           string        `json:"purchase_date,omitempty" yaml:"purchase_date"`
	Mileage                int           `json:"mileage" yaml:"mileage"`                           // km
	MaintenanceInterval    int           `json:"maintenance_interval" yaml:"maintenance_interval"` // km between services
	LastMaintenanceMileage *int          `json:"last_maintenance_mileage,omitempty" yaml:"last_maintenance_mileage"`
	NextMaintenanceMileage *int          `json:"next_maintenance_mileage,omitempty" yaml:"next_maintenance_mileage"`
	LastMaintenance        string        `json:"last_maintenance,omitempty" yaml:"last_maintenance"`
	NextMaintenance        string        `json:"next_maintenance,omitempty" yaml:"next_maintenance"`
	TechnicalReviewExpiry  string        `json:"technical_review_expiry,omitempty" yaml:"technical_review_expiry"`
	CurrentClient          string        `json:"current_client,omitempty" yaml:"current_client"`
	Status                 VehicleStatus `json:"status" yaml:"status"`
	CompanyID              string        `json:"company_id" yaml:"company_id"`
}
