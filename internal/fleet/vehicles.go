package fleet

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
	"github.com/ukydev/fleet-console/internal/status"
	"github.com/ukydev/fleet-console/internal/store"
)

// VehicleFilter narrows ListVehicles. Search matches plate, brand and model.
type VehicleFilter struct {
	Search string
	Status string
}

// VehicleDetail is a vehicle with its derived statuses and related records.
type VehicleDetail struct {
	Vehicle         models.Vehicle       `json:"vehicle"`
	TechnicalReview *status.Expiry       `json:"technical_review,omitempty"`
	Maintenance     *status.MileageDue   `json:"maintenance,omitempty"`
	Drivers         []models.Driver      `json:"drivers"`
	Maintenances    []models.Maintenance `json:"maintenances"`
}

func (s *Service) loadVehicles(ctx context.Context, companyID string) ([]models.Vehicle, error) {
	if err := checkCompany(companyID); err != nil {
		return nil, err
	}
	return store.Load(ctx, s.store, store.Vehicles, companyID, store.SeedFor(companyID).Vehicles)
}

func (s *Service) updateVehicles(ctx context.Context, companyID string, fn func([]models.Vehicle) ([]models.Vehicle, error)) error {
	if err := checkCompany(companyID); err != nil {
		return err
	}
	_, err := store.Update(ctx, s.store, store.Vehicles, companyID, store.SeedFor(companyID).Vehicles, fn)
	return err
}

func vehicleID(v models.Vehicle) string { return v.ID }

// ListVehicles returns the company's vehicles matching f, in stored order.
func (s *Service) ListVehicles(ctx context.Context, companyID string, f VehicleFilter) ([]models.Vehicle, error) {
	all, err := s.loadVehicles(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := []models.Vehicle{}
	for _, v := range all {
		if matchesAny(f.Search, v.Plate, v.Brand, v.Model) && matchesOption(f.Status, string(v.Status)) {
			out = append(out, v)
		}
	}
	return out, nil
}

// GetVehicle returns one vehicle.
func (s *Service) GetVehicle(ctx context.Context, companyID, id string) (models.Vehicle, error) {
	all, err := s.loadVehicles(ctx, companyID)
	if err != nil {
		return models.Vehicle{}, err
	}
	i := indexOf(all, id, vehicleID)
	if i < 0 {
		return models.Vehicle{}, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
	}
	return all[i], nil
}

// prepareVehicle fills defaults and derives the next service mileage from
// the current odometer reading.
func prepareVehicle(v *models.Vehicle) error {
	v.Plate = strings.TrimSpace(v.Plate)
	if v.Plate == "" {
		return invalid("plate is required")
	}
	if v.Status == "" {
		v.Status = models.VehicleAvailable
	}
	if !v.Status.IsValid() {
		return invalid("unknown vehicle status %q", v.Status)
	}
	if v.Mileage < 0 {
		return invalid("mileage must not be negative")
	}
	if v.MaintenanceInterval < 0 {
		return invalid("maintenance interval must not be negative")
	}
	if v.MaintenanceInterval == 0 {
		v.MaintenanceInterval = models.DefaultMaintenanceInterval
	}
	for field, value := range map[string]string{
		"purchase_date":           v.PurchaseDate,
		"last_maintenance":        v.LastMaintenance,
		"next_maintenance":        v.NextMaintenance,
		"technical_review_expiry": v.TechnicalReviewExpiry,
	} {
		if err := checkDate(field, value, false); err != nil {
			return err
		}
	}
	next := status.NextServiceMileage(v.Mileage, v.MaintenanceInterval)
	v.NextMaintenanceMileage = &next
	return nil
}

// AddVehicle stores a new vehicle and returns it with its id.
func (s *Service) AddVehicle(ctx context.Context, companyID string, v models.Vehicle) (models.Vehicle, error) {
	if err := prepareVehicle(&v); err != nil {
		return models.Vehicle{}, err
	}
	v.ID = s.ids.next()
	v.CompanyID = companyID

	err := s.updateVehicles(ctx, companyID, func(list []models.Vehicle) ([]models.Vehicle, error) {
		return appended(list, v), nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "vehicle_id": v.ID, "plate": v.Plate}).Info("Vehicle added")
	return v, nil
}

// UpdateVehicle replaces a vehicle. The id and company are kept.
func (s *Service) UpdateVehicle(ctx context.Context, companyID, id string, v models.Vehicle) (models.Vehicle, error) {
	if err := prepareVehicle(&v); err != nil {
		return models.Vehicle{}, err
	}
	v.ID = id
	v.CompanyID = companyID

	err := s.updateVehicles(ctx, companyID, func(list []models.Vehicle) ([]models.Vehicle, error) {
		i := indexOf(list, id, vehicleID)
		if i < 0 {
			return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		return replaced(list, i, v), nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return v, nil
}

// UpdateMileage records a new odometer reading. Nothing else changes; a
// lower reading than before is accepted.
func (s *Service) UpdateMileage(ctx context.Context, companyID, id string, mileage int) (models.Vehicle, error) {
	if mileage < 0 {
		return models.Vehicle{}, invalid("mileage must not be negative")
	}
	var updated models.Vehicle
	err := s.updateVehicles(ctx, companyID, func(list []models.Vehicle) ([]models.Vehicle, error) {
		i := indexOf(list, id, vehicleID)
		if i < 0 {
			return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		updated = list[i]
		updated.Mileage = mileage
		return replaced(list, i, updated), nil
	})
	if err != nil {
		return models.Vehicle{}, err
	}
	return updated, nil
}

// DeleteVehicle removes a vehicle once confirmed. Records referring to it
// are left as they are.
func (s *Service) DeleteVehicle(ctx context.Context, companyID, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.updateVehicles(ctx, companyID, func(list []models.Vehicle) ([]models.Vehicle, error) {
		i := indexOf(list, id, vehicleID)
		if i < 0 {
			return nil, fmt.Errorf("vehicle %s: %w", id, ErrNotFound)
		}
		return removed(list, i), nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "vehicle_id": id}).Info("Vehicle deleted")
	return nil
}

// VehicleDetail returns a vehicle with its technical review and mileage
// classifications, its assigned drivers and its maintenance jobs.
func (s *Service) VehicleDetail(ctx context.Context, companyID, id string) (*VehicleDetail, error) {
	v, err := s.GetVehicle(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	detail := &VehicleDetail{
		Vehicle:      v,
		Drivers:      []models.Driver{},
		Maintenances: []models.Maintenance{},
	}
	if v.TechnicalReviewExpiry != "" {
		if d, err := models.ParseDate(v.TechnicalReviewExpiry); err == nil {
			e := status.ClassifyExpiry(status.SubjectTechnicalReview, d, s.today())
			detail.TechnicalReview = &e
		}
	}
	if due, ok := status.ClassifyMileage(v.Mileage, v.LastMaintenanceMileage, v.NextMaintenanceMileage, v.MaintenanceInterval); ok {
		detail.Maintenance = &due
	}

	drivers, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, d := range drivers {
		if d.AssignedVehicle == models.Ref(v.ID) {
			detail.Drivers = append(detail.Drivers, d)
		}
	}
	jobs, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return nil, err
	}
	for _, m := range jobs {
		if m.VehicleID == models.Ref(v.ID) {
			detail.Maintenances = append(detail.Maintenances, m)
		}
	}
	return detail, nil
}
