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

// derivedPrefix marks alerts built from fleet data. Alerts without it were
// entered by hand and survive every refresh.
const derivedPrefix = "auto-"

// RefreshResult reports what a refresh changed.
type RefreshResult struct {
	Added   []models.Alert `json:"added"`
	Removed []string       `json:"removed"`
	Alerts  []models.Alert `json:"alerts"`
}

func (s *Service) loadAlerts(ctx context.Context, companyID string) ([]models.Alert, error) {
	if err := checkCompany(companyID); err != nil {
		return nil, err
	}
	return store.Load(ctx, s.store, store.Alerts, companyID, store.SeedFor(companyID).Alerts)
}

// IsDerived reports whether a was built by DeriveAlerts.
func IsDerived(a models.Alert) bool {
	return strings.HasPrefix(a.ID, derivedPrefix)
}

func derivedID(t models.AlertType, entityID string) string {
	return derivedPrefix + string(t) + "-" + entityID
}

// ListAlerts returns the company's stored alerts.
func (s *Service) ListAlerts(ctx context.Context, companyID string) ([]models.Alert, error) {
	return s.loadAlerts(ctx, companyID)
}

// CountUrgent counts alerts with urgent priority.
func CountUrgent(alerts []models.Alert) int {
	n := 0
	for _, a := range alerts {
		if a.Priority == models.AlertUrgent {
			n++
		}
	}
	return n
}

// DeriveAlerts builds alerts from the company's current drivers, vehicles and
// documents. Ids are deterministic, so deriving twice yields the same set.
func (s *Service) DeriveAlerts(ctx context.Context, companyID string) ([]models.Alert, error) {
	drivers, err := s.loadDrivers(ctx, companyID)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.loadVehicles(ctx, companyID)
	if err != nil {
		return nil, err
	}
	documents, err := s.loadDocuments(ctx, companyID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	date := models.FormatDate(today)
	alerts := []models.Alert{}
	add := func(t models.AlertType, entityID string, p models.AlertPriority, title, desc string) {
		alerts = append(alerts, models.Alert{
			ID:          derivedID(t, entityID),
			Title:       title,
			Description: desc,
			Priority:    p,
			Type:        t,
			Date:        date,
			CompanyID:   companyID,
		})
	}

	for _, d := range drivers {
		exp, err := models.ParseDate(d.LicenseExpiry)
		if err != nil {
			continue
		}
		switch e := status.ClassifyExpiry(status.SubjectLicense, exp, today); e.Status {
		case status.Expired:
			add(models.AlertLicense, d.ID, models.AlertUrgent, "Licencia Vencida",
				fmt.Sprintf("Licencia de conducir de %s venció hace %d días", d.Name, e.Days))
		case status.Expiring:
			add(models.AlertLicense, d.ID, models.AlertHigh, "Licencia por Vencer",
				fmt.Sprintf("Licencia de conducir de %s vence en %d días", d.Name, e.Days))
		}
	}

	for _, v := range vehicles {
		if exp, err := models.ParseDate(v.TechnicalReviewExpiry); err == nil {
			switch e := status.ClassifyExpiry(status.SubjectTechnicalReview, exp, today); e.Status {
			case status.Expired:
				add(models.AlertTechnicalReview, v.ID, models.AlertHigh, "Revisión Técnica Vencida",
					fmt.Sprintf("La revisión técnica del vehículo %s venció hace %d días", v.Plate, e.Days))
			case status.Expiring:
				add(models.AlertTechnicalReview, v.ID, models.AlertMedium, "Revisión Técnica por Vencer",
					fmt.Sprintf("La revisión técnica del vehículo %s vence en %d días", v.Plate, e.Days))
			}
		}
		due, ok := status.ClassifyMileage(v.Mileage, v.LastMaintenanceMileage, v.NextMaintenanceMileage, v.MaintenanceInterval)
		switch {
		case !ok || !due.NeedsMaintenance:
		case due.Overdue:
			add(models.AlertMaintenance, v.ID, models.AlertHigh, "Mantenimiento Vencido",
				fmt.Sprintf("El vehículo %s superó su mantenimiento por %d km", v.Plate, -due.KmUntilMaintenance))
		default:
			add(models.AlertMaintenance, v.ID, models.AlertMedium, "Mantenimiento Próximo",
				fmt.Sprintf("El vehículo %s requiere mantenimiento en %d km", v.Plate, due.KmUntilMaintenance))
		}
	}

	for _, d := range documents {
		exp, err := models.ParseDate(d.ExpiryDate)
		if err != nil {
			continue
		}
		t := models.AlertDocument
		if d.Type == models.DocumentInsurance {
			t = models.AlertInsurance
		}
		switch e := status.ClassifyExpiry(status.SubjectDocument, exp, today); e.Status {
		case status.Expired:
			p := models.AlertHigh
			if t == models.AlertInsurance {
				p = models.AlertUrgent
			}
			add(t, d.ID, p, "Documento Vencido", fmt.Sprintf("%s venció hace %d días", d.Name, e.Days))
		case status.Expiring:
			p := models.AlertMedium
			if t == models.AlertInsurance {
				p = models.AlertHigh
			}
			add(t, d.ID, p, "Documento por Vencer", fmt.Sprintf("%s vence en %d días", d.Name, e.Days))
		}
	}
	return alerts, nil
}

// RefreshAlerts replaces the stored derived alerts with a fresh derivation.
// Hand-entered alerts are kept in place, alerts still present keep their
// original date, and newly added ones are published. A publish failure is
// logged and does not fail the refresh.
func (s *Service) RefreshAlerts(ctx context.Context, companyID string) (*RefreshResult, error) {
	derived, err := s.DeriveAlerts(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := &RefreshResult{Added: []models.Alert{}, Removed: []string{}}
	next, err := store.Update(ctx, s.store, store.Alerts, companyID, store.SeedFor(companyID).Alerts,
		func(list []models.Alert) ([]models.Alert, error) {
			out := make([]models.Alert, 0, len(list)+len(derived))
			previous := map[string]models.Alert{}
			for _, a := range list {
				if IsDerived(a) {
					previous[a.ID] = a
					continue
				}
				out = append(out, a)
			}
			for _, a := range derived {
				if old, ok := previous[a.ID]; ok {
					a.Date = old.Date
					delete(previous, a.ID)
				} else {
					result.Added = append(result.Added, a)
				}
				out = append(out, a)
			}
			for _, a := range list {
				if _, gone := previous[a.ID]; gone {
					result.Removed = append(result.Removed, a.ID)
				}
			}
			return out, nil
		})
	if err != nil {
		return nil, err
	}
	result.Alerts = next

	if s.notifier != nil {
		for _, a := range result.Added {
			if err := s.notifier.Publish(ctx, a); err != nil {
				s.log.WithError(err).WithField("alert_id", a.ID).Warn("Failed to publish alert")
			}
		}
	}
	s.log.WithFields(log.Fields{
		"company_id": companyID,
		"added":      len(result.Added),
		"removed":    len(result.Removed),
	}).Info("Alerts refreshed")
	return result, nil
}
