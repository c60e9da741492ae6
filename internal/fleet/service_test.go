package fleet

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-console/internal/db"
	"github.com/ukydev/fleet-console/internal/store"
)

var testNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestService(opts ...Option) (*Service, *testClock) {
	clock := &testClock{t: testNow}
	opts = append([]Option{WithClock(clock.now)}, opts...)
	return NewService(store.New(db.NewMemoryKV()), opts...), clock
}

func TestIDSource_Monotonic(t *testing.T) {
	g := &idSource{now: func() time.Time { return testNow }}
	first := g.next()
	second := g.next()
	third := g.next()

	assert.Equal(t, "1792058400000", first)
	assert.Equal(t, "1792058400001", second)
	assert.Equal(t, "1792058400002", third)
}

func TestMatchesAny(t *testing.T) {
	assert.True(t, matchesAny("", "anything"))
	assert.True(t, matchesAny("abc", "xx", "ABC-123"))
	assert.False(t, matchesAny("zzz", "ABC-123", "Toyota"))
}

func TestMatchesOption(t *testing.T) {
	assert.True(t, matchesOption("", "rented"))
	assert.True(t, matchesOption("all", "rented"))
	assert.True(t, matchesOption("rented", "rented"))
	assert.False(t, matchesOption("available", "rented"))
}

func TestListHelpers_DoNotModifyInput(t *testing.T) {
	list := []string{"a", "b", "c"}

	assert.Equal(t, []string{"a", "x", "c"}, replaced(list, 1, "x"))
	assert.Equal(t, []string{"a", "c"}, removed(list, 1))
	assert.Equal(t, []string{"a", "b", "c", "d"}, appended(list, "d"))
	assert.Equal(t, []string{"a", "b", "c"}, list)
}

func TestUnknownCompany(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.ListVehicles(ctx, "9", VehicleFilter{})
	assert.True(t, errors.Is(err, store.ErrUnknownCompany))

	_, err = s.AddDriver(ctx, "9", validDriver())
	assert.True(t, errors.Is(err, store.ErrUnknownCompany))

	_, err = s.Dashboard(ctx, "9")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrUnknownCompany))
}
