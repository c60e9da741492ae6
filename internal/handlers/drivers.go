package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/models"
)

func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListDrivers(r.Context(), company(r), fleet.DriverFilter{Search: r.URL.Query().Get("search")})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *FleetHandler) DriverStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DriverStats(r.Context(), company(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *FleetHandler) GetDriver(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.DriverDetail(r.Context(), company(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *FleetHandler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var d models.Driver
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := h.svc.AddDriver(r.Context(), company(r), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	var d models.Driver
	if !decodeJSON(w, r, &d) {
		return
	}
	updated, err := h.svc.UpdateDriver(r.Context(), company(r), r.PathValue("id"), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDriver(r.Context(), company(r), r.PathValue("id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
