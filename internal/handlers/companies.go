package handlers

import (
	"context"
	"net/http"

	"github.com/ukydev/fleet-console/internal/models"
)

// CompanySelection persists which company the console shows.
type CompanySelection interface {
	ActiveCompany(ctx context.Context) (models.Company, error)
	SetActiveCompany(ctx context.Context, companyID string) (models.Company, error)
}

// CompanyHandler lists companies and switches the active one.
type CompanyHandler struct {
	selection CompanySelection
}

func NewCompanyHandler(selection CompanySelection) *CompanyHandler {
	return &CompanyHandler{selection: selection}
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Companies)
}

func (h *CompanyHandler) Active(w http.ResponseWriter, r *http.Request) {
	c, err := h.selection.ActiveCompany(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// SetActive expects {"id": "<company id>"}.
func (h *CompanyHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	c, err := h.selection.SetActiveCompany(r.Context(), req.ID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
