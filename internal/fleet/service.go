// Package fleet implements the console's operations on vehicles, drivers,
// maintenance jobs, documents and alerts. Every operation is scoped by an
// explicit company id, and every mutation is saved before it returns.
package fleet

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-console/internal/models"
	"github.com/ukydev/fleet-console/internal/store"
)

var (
	ErrNotFound             = errors.New("record not found")
	ErrConfirmationRequired = errors.New("deletion must be confirmed")
	ErrInvalidInput         = errors.New("invalid input")
)

// Notifier receives alerts that a refresh adds.
type Notifier interface {
	Publish(ctx context.Context, alert models.Alert) error
}

// Service runs fleet operations against a store.
type Service struct {
	store    *store.Store
	notifier Notifier
	now      func() time.Time
	ids      *idSource
	log      *log.Entry
}

// Option configures a Service.
type Option func(*Service)

// WithNotifier publishes alerts added by RefreshAlerts.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithClock replaces time.Now, for derived statuses and generated ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService creates a fleet service over st.
func NewService(st *store.Store, opts ...Option) *Service {
	s := &Service{
		store: st,
		now:   time.Now,
		log:   log.WithField("component", "fleet"),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ids = &idSource{now: s.now}
	return s
}

func (s *Service) today() time.Time {
	return models.Today(s.now())
}

func checkCompany(companyID string) error {
	if _, ok := models.FindCompany(companyID); !ok {
		return fmt.Errorf("%w: %s", store.ErrUnknownCompany, companyID)
	}
	return nil
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func checkDate(field, value string, required bool) error {
	if value == "" {
		if required {
			return invalid("%s is required", field)
		}
		return nil
	}
	if _, err := models.ParseDate(value); err != nil {
		return invalid("%s: %v", field, err)
	}
	return nil
}

// idSource hands out timestamp-derived ids that never repeat within the
// process.
type idSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (g *idSource) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	ms := g.now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return strconv.FormatInt(ms, 10)
}

// matchesAny reports whether any field contains term, ignoring case.
func matchesAny(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// matchesOption treats "" and "all" as no filter.
func matchesOption(filter, value string) bool {
	return filter == "" || filter == "all" || filter == value
}

func indexOf[T any](list []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(list, func(item T) bool { return idOf(item) == id })
}

// replaced returns a copy of list with item at i.
func replaced[T any](list []T, i int, item T) []T {
	out := slices.Clone(list)
	out[i] = item
	return out
}

// removed returns a copy of list without the item at i.
func removed[T any](list []T, i int) []T {
	return slices.Delete(slices.Clone(list), i, i+1)
}

// appended returns a copy of list with item at the end.
func appended[T any](list []T, item T) []T {
	out := make([]T, 0, len(list)+1)
	out = append(out, list...)
	return append(out, item)
}
