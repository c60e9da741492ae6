package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-console/internal/models"
)

func TestActiveCompany(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	c, err := s.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCompany(), c)

	c, err = s.SetActiveCompany(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, "Logística Norte", c.Name)

	c, err = s.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, "3", c.ID)

	_, err = s.SetActiveCompany(ctx, "77")
	assert.ErrorIs(t, err, ErrUnknownCompany)

	require.NoError(t, kv.Set(ctx, ActiveCompanyKey, []byte("garbage")))
	c, err = s.ActiveCompany(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCompany(), c)
}

func TestSession(t *testing.T) {
	s, kv := newTestStore()
	ctx := context.Background()

	sess, err := s.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	want := models.Session{
		ID:         "abc",
		Username:   "cabal",
		Role:       models.RoleAdmin,
		Name:       "Administrador Cabal",
		LoggedInAt: time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, s.SaveSession(ctx, want))

	sess, err = s.Session(ctx)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, want, *sess)

	require.NoError(t, s.ClearSession(ctx))
	sess, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, kv.Set(ctx, SessionKey, []byte("{oops")))
	sess, err = s.Session(ctx)
	require.NoError(t, err)
	assert.Nil(t, sess)
	_, ok, _ := kv.Get(ctx, SessionKey)
	assert.False(t, ok, "malformed session must be removed")
}

func TestSwitchCompanyThenReload(t *testing.T) {
	s, _ := newTestStore()
	ctx := context.Background()

	active, err := s.ActiveCompany(ctx)
	require.NoError(t, err)
	list, err := Load(ctx, s, Vehicles, active.ID, SeedFor(active.ID).Vehicles)
	require.NoError(t, err)
	require.NoError(t, Save(ctx, s, Vehicles, active.ID, append(list, models.Vehicle{ID: "new", CompanyID: active.ID})))

	active, err = s.SetActiveCompany(ctx, "2")
	require.NoError(t, err)
	got, err := Load(ctx, s, Vehicles, active.ID, SeedFor(active.ID).Vehicles)
	require.NoError(t, err)
	assert.Equal(t, SeedFor("2").Vehicles, got)
}
