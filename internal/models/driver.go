package models

// Driver represents a company driver.
type Driver struct {
	ID              string  `json:"id" yaml:"id"`
	RUT             string  `json:"rut" yaml:"rut"`
	Name            string  `json:"name" yaml:"name"`
	Phone           string  `json:"phone" yaml:"phone"`
	Email           string  `json:"email" yaml:"email"`
	Address         string  `json:"address" yaml:"address"`
	LicenseNumber   string  `json:"license_number" yaml:"license_number"`
	LicenseExpiry   string  `json:"license_expiry" yaml:"license_expiry"`
	Rating          float64 `json:"rating" yaml:"rating"` // 1-5
	MonthlyHours    int     `json:"monthly_hours" yaml:"monthly_hours"`
	AssignedVehicle Ref     `json:"assigned_vehicle,omitempty" yaml:"assigned_vehicle"`
	CompanyID       string  `json:"company_id" yaml:"company_id"`
}
