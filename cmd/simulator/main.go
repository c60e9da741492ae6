package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
)

// apiClient talks to the console API with a session token.
type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

func newAPIClient(baseURL string) *apiClient {
	return &apiClient{baseURL: baseURL, http: &http.Client{Timeout: 10 * time.Second}}
}

func (c *apiClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s failed with status %d: %s", method, path, resp.StatusCode, bytes.TrimSpace(msg))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *apiClient) login(ctx context.Context, username, password string) error {
	var resp models.LoginResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

func (c *apiClient) listVehicles(ctx context.Context, companyID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := c.do(ctx, http.MethodGet, "/companies/"+companyID+"/vehicles", nil, &vehicles)
	return vehicles, err
}

func (c *apiClient) updateMileage(ctx context.Context, companyID, vehicleID string, km int) error {
	return c.do(ctx, http.MethodPut, "/companies/"+companyID+"/vehicles/"+vehicleID+"/mileage", map[string]int{"mileage": km}, nil)
}

func (c *apiClient) refreshAlerts(ctx context.Context, companyID string) (int, error) {
	var res struct {
		Added []models.Alert `json:"added"`
	}
	if err := c.do(ctx, http.MethodPost, "/companies/"+companyID+"/alerts/refresh", nil, &res); err != nil {
		return 0, err
	}
	return len(res.Added), nil
}

// vehicleState is the simulated odometer of one vehicle.
type vehicleState struct {
	VehicleID string
	Plate     string
	Odometer  float64 // km
	SpeedKmh  float64
	reported  int
}

// jitterSpeed adds small noise and keeps the speed in [15, 90] km/h.
func (s *vehicleState) jitterSpeed(rng *rand.Rand) {
	s.SpeedKmh += (rng.Float64()*2 - 1) * 1.5
	if s.SpeedKmh < 15 {
		s.SpeedKmh = 15
	}
	if s.SpeedKmh > 90 {
		s.SpeedKmh = 90
	}
}

// advance drives for d at the current speed and returns the whole-km
// reading when it moved past the last reported one.
func (s *vehicleState) advance(d time.Duration) (int, bool) {
	s.Odometer += s.SpeedKmh * d.Hours()
	km := int(math.Floor(s.Odometer))
	if km <= s.reported {
		return s.reported, false
	}
	s.reported = km
	return km, true
}

type simulator struct {
	client       *apiClient
	companyID    string
	interval     time.Duration
	timeScale    float64
	refreshEvery int
	rng          *rand.Rand
}

func (sim *simulator) loadStates(ctx context.Context) ([]*vehicleState, error) {
	vehicles, err := sim.client.listVehicles(ctx, sim.companyID)
	if err != nil {
		return nil, err
	}
	states := make([]*vehicleState, 0, len(vehicles))
	for _, v := range vehicles {
		if v.Status == models.VehicleMaintenance {
			continue
		}
		states = append(states, &vehicleState{
			VehicleID: v.ID,
			Plate:     v.Plate,
			Odometer:  float64(v.Mileage),
			SpeedKmh:  30 + sim.rng.Float64()*30,
			reported:  v.Mileage,
		})
	}
	return states, nil
}

// tick advances every vehicle once and reports changed odometers.
func (sim *simulator) tick(ctx context.Context, states []*vehicleState) {
	driven := time.Duration(float64(sim.interval) * sim.timeScale)
	for _, s := range states {
		s.jitterSpeed(sim.rng)
		km, moved := s.advance(driven)
		if !moved {
			continue
		}
		if err := sim.client.updateMileage(ctx, sim.companyID, s.VehicleID, km); err != nil {
			log.WithError(err).WithField("vehicle_id", s.VehicleID).Error("Failed to update mileage")
			continue
		}
		log.WithFields(log.Fields{"vehicle_id": s.VehicleID, "plate": s.Plate, "mileage": km}).Debug("Sent mileage")
	}
}

func (sim *simulator) run(ctx context.Context, states []*vehicleState) {
	t := time.NewTicker(sim.interval)
	defer t.Stop()
	for n := 1; ; n++ {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		sim.tick(ctx, states)
		if sim.refreshEvery > 0 && n%sim.refreshEvery == 0 {
			added, err := sim.client.refreshAlerts(ctx, sim.companyID)
			if err != nil {
				log.WithError(err).Error("Failed to refresh alerts")
				continue
			}
			log.WithField("added", added).Info("Alerts refreshed")
		}
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	apiURL := envString("API_BASE_URL", "http://localhost:8080/api")
	companyID := envString("SIM_COMPANY", models.DefaultCompany().ID)
	interval := time.Duration(envInt("SIM_TICK_SECONDS", 2)) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}

	sim := &simulator{
		client:       newAPIClient(apiURL),
		companyID:    companyID,
		interval:     interval,
		timeScale:    float64(envInt("SIM_TIME_SCALE", 60)),
		refreshEvery: envInt("SIM_REFRESH_EVERY", 30),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	username := envString("SIM_USERNAME", "usuario")
	if err := sim.client.login(ctx, username, envString("SIM_PASSWORD", "usuario123")); err != nil {
		log.WithError(err).Fatal("Login failed")
	}

	states, err := sim.loadStates(ctx)
	if err != nil {
		log.WithError(err).Fatal("Failed to list vehicles")
	}
	log.WithFields(log.Fields{
		"api_url":    apiURL,
		"company_id": companyID,
		"vehicles":   len(states),
		"interval":   interval,
	}).Info("Starting odometer simulation")
	if len(states) == 0 {
		log.Warn("No vehicles to drive. Exiting.")
		return
	}

	sim.run(ctx, states)
	log.Info("Simulation stopped")
}
