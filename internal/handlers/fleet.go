package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-console/internal/fleet"
)

// FleetHandler serves the per-company fleet records. The company always
// comes from the {company} path segment.
type FleetHandler struct {
	svc *fleet.Service
}

// NewFleetHandler creates a handler over svc.
func NewFleetHandler(svc *fleet.Service) *FleetHandler {
	return &FleetHandler{svc: svc}
}

func company(r *http.Request) string {
	return r.PathValue("company")
}

func (h *FleetHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), company(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *FleetHandler) DanglingReferences(w http.ResponseWriter, r *http.Request) {
	refs, err := h.svc.DanglingReferences(r.Context(), company(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}
