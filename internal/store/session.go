package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ukydev/fleet-console/internal/models"
)

// Keys outside the per-company entity lists.
const (
	ActiveCompanyKey = "currentCompany"
	SessionKey       = "fleetUser"
)

// ActiveCompany returns the persisted company selection, or the default
// company when none is stored or the stored one is unreadable.
func (s *Store) ActiveCompany(ctx context.Context) (models.Company, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, ActiveCompanyKey)
	if err != nil {
		return models.Company{}, fmt.Errorf("failed to read active company: %w", err)
	}
	if !ok {
		return models.DefaultCompany(), nil
	}
	var c models.Company
	if err := json.Unmarshal(raw, &c); err != nil {
		s.log.WithError(err).Warn("Stored company is malformed, using default")
		return models.DefaultCompany(), nil
	}
	if known, ok := models.FindCompany(c.ID); ok {
		return known, nil
	}
	return models.DefaultCompany(), nil
}

// SetActiveCompany persists the company selection.
func (s *Store) SetActiveCompany(ctx context.Context, companyID string) (models.Company, error) {
	c, ok := models.FindCompany(companyID)
	if !ok {
		return models.Company{}, fmt.Errorf("%w: %s", ErrUnknownCompany, companyID)
	}
	data, err := json.Marshal(c)
	if err != nil {
		return models.Company{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, ActiveCompanyKey, data); err != nil {
		return models.Company{}, fmt.Errorf("failed to write active company: %w", err)
	}
	return c, nil
}

// Session returns the logged-in user descriptor, or nil when nobody is
// logged in. An unreadable descriptor is removed.
func (s *Store) Session(ctx context.Context) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok, err := s.kv.Get(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var sess models.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		s.log.WithError(err).Warn("Stored session is malformed, discarding it")
		if err := s.kv.Delete(ctx, SessionKey); err != nil {
			return nil, fmt.Errorf("failed to discard session: %w", err)
		}
		return nil, nil
	}
	return &sess, nil
}

// SaveSession persists the logged-in user descriptor.
func (s *Store) SaveSession(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, SessionKey, data); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

// ClearSession forgets the logged-in user.
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, SessionKey)
}
