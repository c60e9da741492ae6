package fleet

import (
	"context"

	"github.com/ukydev/fleet-console/internal/models"
)

// Dangling is a weak reference whose target does not exist.
type Dangling struct {
	Kind   string     `json:"kind"`
	ID     string     `json:"id"`
	Field  string     `json:"field"`
	Target models.Ref `json:"target"`
}

// DanglingReferences lists every reference in the company's drivers,
// maintenance jobs and documents that points at no vehicle or driver.
func (s *Service) DanglingReferences(ctx context.Context, companyID string) ([]Dangling, error) {
	vehicles, err := s.loadVehicles(ctx, companyID)
	if err != nil {
		return nil, err
	}
	drivers, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	jobs, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return nil, err
	}
	documents, err := s.loadDocuments(ctx, companyID)
	if err != nil {
		return nil, err
	}

	vehicleIDs := make(map[models.Ref]bool, len(vehicles))
	for _, v := range vehicles {
		vehicleIDs[models.Ref(v.ID)] = true
	}
	driverIDs := make(map[models.Ref]bool, len(drivers))
	for _, d := range drivers {
		driverIDs[models.Ref(d.ID)] = true
	}

	out := []Dangling{}
	check := func(known map[models.Ref]bool, kind, id, field string, ref models.Ref) {
		if ref.IsSet() && !known[ref] {
			out = append(out, Dangling{Kind: kind, ID: id, Field: field, Target: ref})
		}
	}
	for _, d := range drivers {
		check(vehicleIDs, "driver", d.ID, "assigned_vehicle", d.AssignedVehicle)
	}
	for _, m := range jobs {
		check(vehicleIDs, "maintenance", m.ID, "vehicle_id", m.VehicleID)
	}
	for _, doc := range documents {
		check(vehicleIDs, "document", doc.ID, "vehicle_id", doc.VehicleID)
		check(driverIDs, "document", doc.ID, "driver_id", doc.DriverID)
	}
	return out, nil
}
