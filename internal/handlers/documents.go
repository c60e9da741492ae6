package handlers

import (
	"net/http"

	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/models"
)

func (h *FleetHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	list, err := h.svc.ListDocuments(r.Context(), company(r), fleet.DocumentFilter{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Status: q.Get("status"),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *FleetHandler) DocumentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.DocumentStats(r.Context(), company(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *FleetHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDocument(r.Context(), company(r), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (h *FleetHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var d models.Document
	if !decodeJSON(w, r, &d) {
		return
	}
	created, err := h.svc.AddDocument(r.Context(), company(r), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *FleetHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var d models.Document
	if !decodeJSON(w, r, &d) {
		return
	}
	updated, err := h.svc.UpdateDocument(r.Context(), company(r), r.PathValue("id"), d)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *FleetHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDocument(r.Context(), company(r), r.PathValue("id"), confirmed(r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
