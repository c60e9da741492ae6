package handlers

import (
	"net/http"
	"time"

	"github.com/ukydev/fleet-console/internal/auth"
	"github.com/ukydev/fleet-console/internal/fleet"
	"github.com/ukydev/fleet-console/internal/middleware"
	"github.com/ukydev/fleet-console/internal/models"
	"github.com/ukydev/fleet-console/internal/store"
)

// RouterConfig carries the dependencies of the HTTP API.
type RouterConfig struct {
	Auth  *auth.Service
	Store *store.Store
	Fleet *fleet.Service
	// LoginRateLimit is the number of login attempts per client per minute.
	LoginRateLimit int
}

// NewRouter builds the console API. Every route except login and health
// requires a live session; deletes also require the admin role.
func NewRouter(cfg RouterConfig) http.Handler {
	am := middleware.NewAuthMiddleware(cfg.Auth, cfg.Store)
	limiter := middleware.NewRateLimitMiddleware()
	authH := NewAuthHandler(cfg.Auth, cfg.Store)
	companies := NewCompanyHandler(cfg.Store)
	fh := NewFleetHandler(cfg.Fleet)

	view := func(h http.HandlerFunc) http.Handler {
		return am.RequirePermission(models.ActionViewRecords)(h)
	}
	edit := func(h http.HandlerFunc) http.Handler {
		return am.RequirePermission(models.ActionEditRecords)(h)
	}
	del := func(h http.HandlerFunc) http.Handler {
		return am.RequirePermission(models.ActionDeleteRecords)(h)
	}

	limit := cfg.LoginRateLimit
	if limit <= 0 {
		limit = 10
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", Health)

	mux.Handle("POST /api/auth/login", limiter.RateLimit(limit, time.Minute)(http.HandlerFunc(authH.Login)))
	mux.HandleFunc("POST /api/auth/logout", authH.Logout)
	mux.HandleFunc("GET /api/auth/me", authH.Me)

	mux.Handle("GET /api/companies", view(companies.List))
	mux.Handle("GET /api/companies/active", view(companies.Active))
	mux.Handle("PUT /api/companies/active", view(companies.SetActive))

	const base = "/api/companies/{company}"
	mux.Handle("GET "+base+"/dashboard", view(fh.Dashboard))
	mux.Handle("GET "+base+"/references", view(fh.DanglingReferences))

	mux.Handle("GET "+base+"/vehicles", view(fh.ListVehicles))
	mux.Handle("POST "+base+"/vehicles", edit(fh.CreateVehicle))
	mux.Handle("GET "+base+"/vehicles/{id}", view(fh.GetVehicle))
	mux.Handle("PUT "+base+"/vehicles/{id}", edit(fh.UpdateVehicle))
	mux.Handle("DELETE "+base+"/vehicles/{id}", del(fh.DeleteVehicle))
	mux.Handle("PUT "+base+"/vehicles/{id}/mileage", edit(fh.UpdateMileage))

	mux.Handle("GET "+base+"/drivers", view(fh.ListDrivers))
	mux.Handle("POST "+base+"/drivers", edit(fh.CreateDriver))
	mux.Handle("GET "+base+"/drivers/stats", view(fh.DriverStats))
	mux.Handle("GET "+base+"/drivers/{id}", view(fh.GetDriver))
	mux.Handle("PUT "+base+"/drivers/{id}", edit(fh.UpdateDriver))
	mux.Handle("DELETE "+base+"/drivers/{id}", del(fh.DeleteDriver))

	mux.Handle("GET "+base+"/maintenances", view(fh.ListMaintenances))
	mux.Handle("POST "+base+"/maintenances", edit(fh.CreateMaintenance))
	mux.Handle("GET "+base+"/maintenances/calendar", view(fh.Calendar))
	mux.Handle("GET "+base+"/maintenances/{id}", view(fh.GetMaintenance))
	mux.Handle("PUT "+base+"/maintenances/{id}", edit(fh.UpdateMaintenance))
	mux.Handle("DELETE "+base+"/maintenances/{id}", del(fh.DeleteMaintenance))
	mux.Handle("POST "+base+"/maintenances/{id}/tasks/{task}/toggle", edit(fh.ToggleTask))
	mux.Handle("POST "+base+"/maintenances/{id}/progress", edit(fh.AdjustProgress))

	mux.Handle("GET "+base+"/documents", view(fh.ListDocuments))
	mux.Handle("POST "+base+"/documents", edit(fh.CreateDocument))
	mux.Handle("GET "+base+"/documents/stats", view(fh.DocumentStats))
	mux.Handle("GET "+base+"/documents/{id}", view(fh.GetDocument))
	mux.Handle("PUT "+base+"/documents/{id}", edit(fh.UpdateDocument))
	mux.Handle("DELETE "+base+"/documents/{id}", del(fh.DeleteDocument))

	mux.Handle("GET "+base+"/alerts", view(fh.ListAlerts))
	mux.Handle("POST "+base+"/alerts/refresh", am.RequirePermission(models.ActionRefreshAlerts)(http.HandlerFunc(fh.RefreshAlerts)))

	return middleware.RequestLogger(am.Authenticate(mux))
}

// Health reports that the server is up.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
