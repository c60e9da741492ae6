package fleet

import (
	"context"
	"fmt"
	"math"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
	"github.com/ukydev/fleet-console/internal/status"
	"github.com/ukydev/fleet-console/internal/store"
)

const maxRating = 5

// DriverFilter narrows ListDrivers. Search matches name, RUT, email and
// license number.
type DriverFilter struct {
	Search string
}

// DriverDetail is a driver with the license classification and the
// assigned vehicle resolved.
type DriverDetail struct {
	Driver          models.Driver   `json:"driver"`
	License         *status.Expiry  `json:"license,omitempty"`
	AssignedVehicle *models.Vehicle `json:"assigned_vehicle,omitempty"`
	// DanglingVehicle is set when the driver refers to a vehicle that no
	// longer exists.
	DanglingVehicle bool `json:"dangling_vehicle"`
}

// DriverStats summarises a company's drivers.
type DriverStats struct {
	Total            int     `json:"total"`
	Assigned         int     `json:"assigned"`
	LicensesExpiring int     `json:"licenses_expiring"`
	AverageRating    float64 `json:"average_rating"`
}

func (s *Service) loadDrivers(ctx context.Context, companyID string) ([]models.Driver, error) {
	if err := checkCompany(companyID); err != nil {
		return nil, err
	}
	return store.Load(ctx, s.store, store.Drivers, companyID, store.SeedFor(companyID).Drivers)
}

func (s *Service) updateDrivers(ctx context.Context, companyID string, fn func([]models.Driver) ([]models.Driver, error)) error {
	if err := checkCompany(companyID); err != nil {
		return err
	}
	_, err := store.Update(ctx, s.store, store.Drivers, companyID, store.SeedFor(companyID).Drivers, fn)
	return err
}

func driverID(d models.Driver) string { return d.ID }

// ListDrivers returns the company's drivers matching f.
func (s *Service) ListDrivers(ctx context.Context, companyID string, f DriverFilter) ([]models.Driver, error) {
	all, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := []models.Driver{}
	for _, d := range all {
		if matchesAny(f.Search, d.Name, d.RUT, d.Email, d.LicenseNumber) {
			out = append(out, d)
		}
	}
	return out, nil
}

// GetDriver returns one driver.
func (s *Service) GetDriver(ctx context.Context, companyID, id string) (models.Driver, error) {
	all, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return models.Driver{}, err
	}
	i := indexOf(all, id, driverID)
	if i < 0 {
		return models.Driver{}, fmt.Errorf("driver %s: %w", id, ErrNotFound)
	}
	return all[i], nil
}

func prepareDriver(d *models.Driver) error {
	d.Name = strings.TrimSpace(d.Name)
	if d.Name == "" {
		return invalid("name is required")
	}
	if err := checkDate("license_expiry", d.LicenseExpiry, true); err != nil {
		return err
	}
	if d.Rating < 0 || d.Rating > maxRating {
		return invalid("rating must be between 0 and %d", maxRating)
	}
	if d.MonthlyHours < 0 {
		return invalid("monthly hours must not be negative")
	}
	return nil
}

// AddDriver stores a new driver. The assigned vehicle is not checked.
func (s *Service) AddDriver(ctx context.Context, companyID string, d models.Driver) (models.Driver, error) {
	if err := prepareDriver(&d); err != nil {
		return models.Driver{}, err
	}
	d.ID = s.ids.next()
	d.CompanyID = companyID

	err := s.updateDrivers(ctx, companyID, func(list []models.Driver) ([]models.Driver, error) {
		return appended(list, d), nil
	})
	if err != nil {
		return models.Driver{}, err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "driver_id": d.ID}).Info("Driver added")
	return d, nil
}

// UpdateDriver replaces a driver, keeping its id and company.
func (s *Service) UpdateDriver(ctx context.Context, companyID, id string, d models.Driver) (models.Driver, error) {
	if err := prepareDriver(&d); err != nil {
		return models.Driver{}, err
	}
	d.ID = id
	d.CompanyID = companyID

	err := s.updateDrivers(ctx, companyID, func(list []models.Driver) ([]models.Driver, error) {
		i := indexOf(list, id, driverID)
		if i < 0 {
			return nil, fmt.Errorf("driver %s: %w", id, ErrNotFound)
		}
		return replaced(list, i, d), nil
	})
	if err != nil {
		return models.Driver{}, err
	}
	return d, nil
}

// DeleteDriver removes a driver once confirmed.
func (s *Service) DeleteDriver(ctx context.Context, companyID, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.updateDrivers(ctx, companyID, func(list []models.Driver) ([]models.Driver, error) {
		i := indexOf(list, id, driverID)
		if i < 0 {
			return nil, fmt.Errorf("driver %s: %w", id, ErrNotFound)
		}
		return removed(list, i), nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "driver_id": id}).Info("Driver deleted")
	return nil
}

// DriverDetail returns a driver with its license status and assigned
// vehicle. A reference to a missing vehicle resolves to nil.
func (s *Service) DriverDetail(ctx context.Context, companyID, id string) (*DriverDetail, error) {
	d, err := s.GetDriver(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	detail := &DriverDetail{Driver: d}
	if exp, err := models.ParseDate(d.LicenseExpiry); err == nil {
		e := status.ClassifyExpiry(status.SubjectLicense, exp, s.today())
		detail.License = &e
	}
	if d.AssignedVehicle.IsSet() {
		vehicles, err := s.loadVehicles(ctx, companyID)
		if err != nil {
			return nil, err
		}
		if i := indexOf(vehicles, d.AssignedVehicle.String(), vehicleID); i >= 0 {
			detail.AssignedVehicle = &vehicles[i]
		} else {
			detail.DanglingVehicle = true
		}
	}
	return detail, nil
}

// DriverStats counts drivers, assignments and licenses in the expiring tier,
// and averages ratings rounded to one decimal.
func (s *Service) DriverStats(ctx context.Context, companyID string) (DriverStats, error) {
	all, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return DriverStats{}, err
	}
	stats := DriverStats{Total: len(all)}
	today := s.today()
	sum := 0.0
	for _, d := range all {
		if d.AssignedVehicle.IsSet() {
			stats.Assigned++
		}
		if exp, err := models.ParseDate(d.LicenseExpiry); err == nil {
			if status.ClassifyExpiry(status.SubjectLicense, exp, today).Status == status.Expiring {
				stats.LicensesExpiring++
			}
		}
		sum += d.Rating
	}
	if stats.Total > 0 {
		stats.AverageRating = math.Round(sum/float64(stats.Total)*10) / 10
	}
	return stats, nil
}
