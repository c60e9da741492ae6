package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/models"
)

type alertList struct {
	Alerts []models.Alert `json:"alerts"`
	Urgent int            `json:"urgent"`
}

func (h *FleetHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.ListAlerts(r.Context(), company(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alertList{Alerts: alerts, Urgent: fleet.CountUrgent(alerts)})
}

func (h *FleetHandler) RefreshAlerts(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RefreshAlerts(r.Context(), company(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
