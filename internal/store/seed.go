package store

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ukydev/fleet-console/internal/models"
)

//go:embed seed.yaml
var seedYAML []byte

// Dataset holds one list per entity kind.
type Dataset struct {
	Vehicles     []models.Vehicle     `yaml:"vehicles"`
	Drivers      []models.Driver      `yaml:"drivers"`
	Maintenances []models.Maintenance `yaml:"maintenances"`
	Documents    []models.Document    `yaml:"documents"`
	Alerts       []models.Alert       `yaml:"alerts"`
}

var demo = mustParseSeed(seedYAML)

// ParseSeed decodes a YAML dataset.
func ParseSeed(data []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return Dataset{}, fmt.Errorf("failed to parse seed data: %w", err)
	}
	return ds, nil
}

func mustParseSeed(data []byte) Dataset {
	ds, err := ParseSeed(data)
	if err != nil {
		panic(err)
	}
	return ds
}

// SeedFor returns the demo records of one company. The returned lists are
// fresh copies.
func SeedFor(companyID string) Dataset {
	return Dataset{
		Vehicles:     forCompany(demo.Vehicles, companyID, func(v models.Vehicle) string { return v.CompanyID }),
		Drivers:      forCompany(demo.Drivers, companyID, func(d models.Driver) string { return d.CompanyID }),
		Maintenances: forCompany(demo.Maintenances, companyID, func(m models.Maintenance) string { return m.CompanyID }),
		Documents:    forCompany(demo.Documents, companyID, func(d models.Document) string { return d.CompanyID }),
		Alerts:       forCompany(demo.Alerts, companyID, func(a models.Alert) string { return a.CompanyID }),
	}
}

func forCompany[T any](list []T, companyID string, owner func(T) string) []T {
	out := []T{}
	for _, item := range list {
		if owner(item) == companyID {
			out = append(out, item)
		}
	}
	return out
}

// SeedCompany persists the demo data of a company. Lists that already exist
// are kept unless reset is set.
func (s *Store) SeedCompany(ctx context.Context, companyID string, reset bool) error {
	if _, ok := models.FindCompany(companyID); !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCompany, companyID)
	}
	if reset {
		for _, kind := range Kinds {
			if err := s.Reset(ctx, kind, companyID); err != nil {
				return err
			}
		}
	}
	ds := SeedFor(companyID)
	if _, err := Load(ctx, s, Vehicles, companyID, ds.Vehicles); err != nil {
		return err
	}
	if _, err := Load(ctx, s, Drivers, companyID, ds.Drivers); err != nil {
		return err
	}
	if _, err := Load(ctx, s, Maintenances, companyID, ds.Maintenances); err != nil {
		return err
	}
	if _, err := Load(ctx, s, Documents, companyID, ds.Documents); err != nil {
		return err
	}
	if _, err := Load(ctx, s, Alerts, companyID, ds.Alerts); err != nil {
		return err
	}
	return nil
}
