// Package store keeps one ordered record list per entity kind and company
// on top of a key-value backend. Every write replaces the whole list.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/db"
)

// Kind names an entity list.
type Kind string

const (
	Vehicles     Kind = "vehicles"
	Drivers      Kind = "drivers"
	Maintenances Kind = "maintenances"
	Documents    Kind = "documents"
	Alerts       Kind = "alerts"
)

// Kinds lists every entity kind.
var Kinds = []Kind{Vehicles, Drivers, Maintenances, Documents, Alerts}

var (
	ErrUnknownCompany = errors.New("unknown company")
	ErrUnknownKind    = errors.New("unknown entity kind")
)

// IsValid reports whether k is a known entity kind.
func (k Kind) IsValid() bool {
	return slices.Contains(Kinds, k)
}

const keyPrefix = "fleet:"

// Key derives the storage key of an entity list. Distinct companies never
// share a key.
func Key(kind Kind, companyID string) string {
	return keyPrefix + string(kind) + ":" + companyID
}

// Store serializes access to the backend. Writes are last-writer-wins.
type Store struct {
	kv  db.KV
	mu  sync.Mutex
	log *log.Entry
}

// New creates a store over kv.
func New(kv db.KV) *Store {
	return &Store{kv: kv, log: log.WithField("component", "store")}
}

// Load returns the list stored for (kind, companyID). When nothing is stored
// yet, seed is persisted and returned. A stored value that cannot be decoded
// yields seed; that failure is logged and never returned.
func Load[T any](ctx context.Context, s *Store, kind Kind, companyID string, seed []T) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return load(ctx, s, kind, companyID, seed)
}

// Save replaces the list stored for (kind, companyID).
func Save[T any](ctx context.Context, s *Store, kind Kind, companyID string, records []T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return save(ctx, s, Key(kind, companyID), records)
}

// Update loads the list, applies fn and saves the result before returning.
// fn must build a new list rather than modify its argument. When fn fails
// nothing is written.
func Update[T any](ctx context.Context, s *Store, kind Kind, companyID string, seed []T, fn func([]T) ([]T, error)) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := load(ctx, s, kind, companyID, seed)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	if err := save(ctx, s, Key(kind, companyID), next); err != nil {
		return nil, err
	}
	return next, nil
}

// Reset removes the list stored for (kind, companyID) so the next Load
// seeds it again.
func (s *Store) Reset(ctx context.Context, kind Kind, companyID string) error {
	if !kind.IsValid() {
		return fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, Key(kind, companyID))
}

// StoredKeys lists the keys of every persisted entity list.
func (s *Store) StoredKeys(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Keys(ctx, keyPrefix)
}

func load[T any](ctx context.Context, s *Store, kind Kind, companyID string, seed []T) ([]T, error) {
	key := Key(kind, companyID)
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		seeded := cloneList(seed)
		if err := save(ctx, s, key, seeded); err != nil {
			return nil, err
		}
		s.log.WithFields(log.Fields{"key": key, "records": len(seeded)}).Debug("Seeded entity list")
		return seeded, nil
	}

	var records []T
	if err := json.Unmarshal(raw, &records); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Stored list is malformed, using seed")
		return cloneList(seed), nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func save[T any](ctx context.Context, s *Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func cloneList[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return slices.Clone(list)
}
