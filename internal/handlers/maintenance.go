package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/models"
)

func (h *FleetHandler) ListMaintenances(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.ListMaintenances(r.Context(), company(r), fleet.MaintenanceFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *FleetHandler) GetMaintenance(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.GetMaintenance(r.Context(), company(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (h *FleetHandler) CreateMaintenance(w http.ResponseWriter, r *http.Request) {
	var m models.Maintenance
	if !decodeJSON(w, r, &m) {
		return
	}
	created, err := h.svc.AddMaintenance(r.Context(), company(r), m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateMaintenance(w http.ResponseWriter, r *http.Request) {
	var m models.Maintenance
	if !decodeJSON(w, r, &m) {
		return
	}
	updated, err := h.svc.UpdateMaintenance(r.Context(), company(r), r.PathValue("id"), m)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteMaintenance(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteMaintenance(r.Context(), company(r), r.PathValue("id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *FleetHandler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.ToggleTask(r.Context(), company(r), r.PathValue("id"), r.PathValue("task"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// AdjustProgress expects {"increment": <points>}; negative values move back.
func (h *FleetHandler) AdjustProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Increment int `json:"increment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	m, err := h.svc.AdjustProgress(r.Context(), company(r), r.PathValue("id"), req.Increment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// Calendar answers ?day=YYYY-MM-DD with that day's jobs and ?month=YYYY-MM
// with the month grouped by day.
func (h *FleetHandler) Calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if day := q.Get("day"); day != "" {
		jobs, err := h.svc.MaintenancesOn(r.Context(), company(r), day)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, jobs)
		return
	}
	days, err := h.svc.MaintenanceCalendar(r.Context(), company(r), q.Get("month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}
