package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/models"
)

func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.ListVehicles(r.Context(), company(r), fleet.VehicleFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// GetVehicle returns the vehicle detail view.
func (h *FleetHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.VehicleDetail(r.Context(), company(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *FleetHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if !decodeJSON(w, r, &v) {
		return
	}
	created, err := h.svc.AddVehicle(r.Context(), company(r), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var v models.Vehicle
	if !decodeJSON(w, r, &v) {
		return
	}
	updated, err := h.svc.UpdateVehicle(r.Context(), company(r), r.PathValue("id"), v)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// UpdateMileage expects {"mileage": <km>}.
func (h *FleetHandler) UpdateMileage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mileage *int `json:"mileage"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Mileage == nil {
		http.Error(w, "mileage is required", http.StatusBadRequest)
		return
	}
	updated, err := h.svc.UpdateMileage(r.Context(), company(r), r.PathValue("id"), *req.Mileage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteVehicle(r.Context(), company(r), r.PathValue("id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
