package fleet

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
	"github.com/ukydev/fleet-console/internal/status"
	"github.com/ukydev/fleet-console/internal/store"
)

// MaintenanceFilter narrows ListMaintenances. Search matches the vehicle id
// and the workshop.
type MaintenanceFilter struct {
	Search string
	Status string
	Type   string
}

// CalendarDay groups the maintenance jobs scheduled on one date.
type CalendarDay struct {
	Date         string               `json:"date"`
	Maintenances []models.Maintenance `json:"maintenances"`
}

const monthLayout = "2006-01"

func (s *Service) loadMaintenances(ctx context.Context, companyID string) ([]models.Maintenance, error) {
	if err := checkCompany(companyID); err != nil {
		return nil, err
	}
	return store.Load(ctx, s.store, store.Maintenances, companyID, store.SeedFor(companyID).Maintenances)
}

func (s *Service) updateMaintenances(ctx context.Context, companyID string, fn func([]models.Maintenance) ([]models.Maintenance, error)) error {
	if err := checkCompany(companyID); err != nil {
		return err
	}
	_, err := store.Update(ctx, s.store, store.Maintenances, companyID, store.SeedFor(companyID).Maintenances, fn)
	return err
}

func maintenanceID(m models.Maintenance) string { return m.ID }

// ListMaintenances returns the company's maintenance jobs matching f.
func (s *Service) ListMaintenances(ctx context.Context, companyID string, f MaintenanceFilter) ([]models.Maintenance, error) {
	all, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := []models.Maintenance{}
	for _, m := range all {
		if matchesAny(f.Search, m.VehicleID.String(), m.Workshop) &&
			matchesOption(f.Status, string(m.Status)) &&
			matchesOption(f.Type, string(m.Type)) {
			out = append(out, m)
		}
	}
	return out, nil
}

// GetMaintenance returns one maintenance job.
func (s *Service) GetMaintenance(ctx context.Context, companyID, id string) (models.Maintenance, error) {
	all, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return models.Maintenance{}, err
	}
	i := indexOf(all, id, maintenanceID)
	if i < 0 {
		return models.Maintenance{}, fmt.Errorf("maintenance %s: %w", id, ErrNotFound)
	}
	return all[i], nil
}

// prepareMaintenance validates a job, drops tasks with blank names and gives
// new tasks an id.
func (s *Service) prepareMaintenance(m *models.Maintenance) error {
	if !m.VehicleID.IsSet() {
		return invalid("vehicle_id is required")
	}
	if m.Type == "" {
		m.Type = models.MaintenancePreventive
	}
	if !m.Type.IsValid() {
		return invalid("unknown maintenance type %q", m.Type)
	}
	if m.Priority == "" {
		m.Priority = models.PriorityMedium
	}
	if !m.Priority.IsValid() {
		return invalid("unknown priority %q", m.Priority)
	}
	if m.Status == "" {
		m.Status = models.MaintenanceScheduled
	}
	if !m.Status.IsValid() {
		return invalid("unknown maintenance status %q", m.Status)
	}
	if err := checkDate("scheduled_date", m.ScheduledDate, true); err != nil {
		return err
	}
	if m.Progress < 0 || m.Progress > 100 {
		return invalid("progress must be between 0 and 100")
	}
	if m.Cost != nil && *m.Cost < 0 {
		return invalid("cost must not be negative")
	}

	tasks := make([]models.Task, 0, len(m.Tasks))
	for _, t := range m.Tasks {
		t.Name = strings.TrimSpace(t.Name)
		if t.Name == "" {
			continue
		}
		if t.ID == "" {
			t.ID = s.ids.next()
		}
		tasks = append(tasks, t)
	}
	m.Tasks = tasks
	return nil
}

// AddMaintenance stores a new maintenance job.
func (s *Service) AddMaintenance(ctx context.Context, companyID string, m models.Maintenance) (models.Maintenance, error) {
	if err := s.prepareMaintenance(&m); err != nil {
		return models.Maintenance{}, err
	}
	m.ID = s.ids.next()
	m.CompanyID = companyID

	err := s.updateMaintenances(ctx, companyID, func(list []models.Maintenance) ([]models.Maintenance, error) {
		return appended(list, m), nil
	})
	if err != nil {
		return models.Maintenance{}, err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "maintenance_id": m.ID, "vehicle_id": m.VehicleID}).Info("Maintenance scheduled")
	return m, nil
}

// UpdateMaintenance replaces a maintenance job, keeping its id and company.
func (s *Service) UpdateMaintenance(ctx context.Context, companyID, id string, m models.Maintenance) (models.Maintenance, error) {
	if err := s.prepareMaintenance(&m); err != nil {
		return models.Maintenance{}, err
	}
	m.ID = id
	m.CompanyID = companyID

	err := s.updateMaintenances(ctx, companyID, func(list []models.Maintenance) ([]models.Maintenance, error) {
		i := indexOf(list, id, maintenanceID)
		if i < 0 {
			return nil, fmt.Errorf("maintenance %s: %w", id, ErrNotFound)
		}
		return replaced(list, i, m), nil
	})
	if err != nil {
		return models.Maintenance{}, err
	}
	return m, nil
}

// DeleteMaintenance removes a maintenance job once confirmed.
func (s *Service) DeleteMaintenance(ctx context.Context, companyID, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	err := s.updateMaintenances(ctx, companyID, func(list []models.Maintenance) ([]models.Maintenance, error) {
		i := indexOf(list, id, maintenanceID)
		if i < 0 {
			return nil, fmt.Errorf("maintenance %s: %w", id, ErrNotFound)
		}
		return removed(list, i), nil
	})
	if err != nil {
		return err
	}
	s.log.WithFields(log.Fields{"company_id": companyID, "maintenance_id": id}).Info("Maintenance deleted")
	return nil
}

// ToggleTask flips one task of a job, recomputes its progress and advances
// its status, then saves the job.
func (s *Service) ToggleTask(ctx context.Context, companyID, id, taskID string) (models.Maintenance, error) {
	return s.mutateMaintenance(ctx, companyID, id, func(m models.Maintenance) (models.Maintenance, error) {
		next, ok := status.ToggleTask(m, taskID)
		if !ok {
			return m, fmt.Errorf("task %s of maintenance %s: %w", taskID, id, ErrNotFound)
		}
		return next, nil
	})
}

// AdjustProgress moves a job's progress by increment within [0, 100].
func (s *Service) AdjustProgress(ctx context.Context, companyID, id string, increment int) (models.Maintenance, error) {
	return s.mutateMaintenance(ctx, companyID, id, func(m models.Maintenance) (models.Maintenance, error) {
		return status.AdjustProgress(m, increment), nil
	})
}

func (s *Service) mutateMaintenance(ctx context.Context, companyID, id string, fn func(models.Maintenance) (models.Maintenance, error)) (models.Maintenance, error) {
	var updated models.Maintenance
	err := s.updateMaintenances(ctx, companyID, func(list []models.Maintenance) ([]models.Maintenance, error) {
		i := indexOf(list, id, maintenanceID)
		if i < 0 {
			return nil, fmt.Errorf("maintenance %s: %w", id, ErrNotFound)
		}
		next, err := fn(list[i])
		if err != nil {
			return nil, err
		}
		updated = next
		return replaced(list, i, next), nil
	})
	if err != nil {
		return models.Maintenance{}, err
	}
	s.log.WithFields(log.Fields{
		"company_id":     companyID,
		"maintenance_id": id,
		"progress":       updated.Progress,
		"status":         updated.Status,
	}).Debug("Maintenance progress updated")
	return updated, nil
}

// MaintenancesOn returns the jobs scheduled on day (YYYY-MM-DD).
func (s *Service) MaintenancesOn(ctx context.Context, companyID, day string) ([]models.Maintenance, error) {
	if err := checkDate("day", day, true); err != nil {
		return nil, err
	}
	all, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := []models.Maintenance{}
	for _, m := range all {
		if m.ScheduledDate == day {
			out = append(out, m)
		}
	}
	return out, nil
}

// MaintenanceCalendar groups the jobs scheduled in month (YYYY-MM) by day,
// in date order. Days without jobs are omitted.
func (s *Service) MaintenanceCalendar(ctx context.Context, companyID, month string) ([]CalendarDay, error) {
	if _, err := time.Parse(monthLayout, month); err != nil {
		return nil, invalid("month must be YYYY-MM: %q", month)
	}
	all, err := s.loadMaintenances(ctx, companyID)
	if err != nil {
		return nil, err
	}
	byDay := map[string][]models.Maintenance{}
	for _, m := range all {
		if strings.HasPrefix(m.ScheduledDate, month+"-") {
			byDay[m.ScheduledDate] = append(byDay[m.ScheduledDate], m)
		}
	}
	days := make([]CalendarDay, 0, len(byDay))
	for date, jobs := range byDay {
		days = append(days, CalendarDay{Date: date, Maintenances: jobs})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	return days, nil
}
