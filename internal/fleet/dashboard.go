package fleet

import (
	"context"

	"github.com/ukydev/fleet-console/internal/models"
)

// Dashboard holds the counters of the company overview.
type Dashboard struct {
	Company             models.Company `json:"company"`
	Vehicles            int            `json:"vehicles"`
	Available           int            `json:"available"`
	Rented              int            `json:"rented"`
	InMaintenance       int            `json:"in_maintenance"`
	Drivers             int            `json:"drivers"`
	UrgentAlerts        int            `json:"urgent_alerts"`
	PendingMaintenances int            `json:"pending_maintenances"`
	// DocumentsAttention counts documents stored as expiring or expired.
	DocumentsAttention int `json:"documents_attention"`
}

// Dashboard computes the overview counters for a company.
func (s *Service) Dashboard(ctx context.Context, companyID string) (*Dashboard, error) {
	if err := checkCompany(companyID); err != nil {
		return nil, err
	}
	company, _ := models.FindCompany(companyID)
	d := &Dashboard{Company: company}

	vehicles, err := s.loadVehicles(ctx, companyID)
	if err != nil {
		return nil, err
	}
	d.Vehicles = len(vehicles)
	for _, v := range vehicles {
		switch v.Status {
		case models.VehicleAvailable:
			d.Available++
		case models.VehicleRented:
			d.Rented++
		case models.VehicleMaintenance:
			d.InMaintenance++
		}
	}

	drivers, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	d.Drivers = len(drivers)

	alerts, err := s.loadAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	d.UrgentAlerts = CountUrgent(alerts)

	jobs, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, m := range jobs {
		if m.Status != models.MaintenanceCompleted {
			d.PendingMaintenances++
		}
	}

	documents, err := s.loadDocuments(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, doc := range documents {
		if doc.Status == models.DocumentExpiring || doc.Status == models.DocumentExpired {
			d.DocumentsAttention++
		}
	}
	return d, nil
}
