package fleet

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/fleet-console/internal/models"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Publish(ctx context.Context, alert models.Alert) error {
	args := m.Called(ctx, alert)
	return args.Error(0)
}

func alertIDs(alerts []models.Alert) []string {
	out := []string{}
	for _, a := range alerts {
		out = append(out, a.ID)
	}
	return out
}

func TestDeriveAlerts(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	alerts, err := s.DeriveAlerts(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"auto-license-2",
		"auto-technical-review-2",
		"auto-maintenance-2",
		"auto-technical-review-3",
		"auto-maintenance-3",
		"auto-document-3",
	}, alertIDs(alerts))

	byID := map[string]models.Alert{}
	for _, a := range alerts {
		byID[a.ID] = a
		assert.Equal(t, "2026-10-15", a.Date)
		assert.Equal(t, "1", a.CompanyID)
	}
	assert.Equal(t, models.AlertUrgent, byID["auto-license-2"].Priority)
	assert.Equal(t, models.AlertLicense, byID["auto-license-2"].Type)
	assert.Contains(t, byID["auto-license-2"].Description, "María González")
	assert.Equal(t, models.AlertMedium, byID["auto-technical-review-2"].Priority)
	assert.Equal(t, models.AlertHigh, byID["auto-technical-review-3"].Priority)
	assert.Equal(t, models.AlertMedium, byID["auto-maintenance-2"].Priority)
	assert.Contains(t, byID["auto-maintenance-2"].Description, "500 km")
	assert.Equal(t, models.AlertHigh, byID["auto-document-3"].Priority)
	assert.Equal(t, models.AlertDocument, byID["auto-document-3"].Type)

	again, err := s.DeriveAlerts(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, alerts, again)
}

func TestDeriveAlerts_InsuranceAndOverdue(t *testing.T) {
	s, _ := newTestService()
	ctx := context.Background()

	_, err := s.UpdateMileage(ctx, "2", "4", 91000)
	require.NoError(t, err)
	doc, err := s.AddDocument(ctx, "2", models.Document{
		Name:       "Seguro - JKL-012",
		Type:       models.DocumentInsurance,
		ExpiryDate: "2026-10-01",
	})
	require.NoError(t, err)

	alerts, err := s.DeriveAlerts(ctx, "2")
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, "auto-maintenance-4", alerts[0].ID)
	assert.Equal(t, models.AlertHigh, alerts[0].Priority)
	assert.Contains(t, alerts[0].Description, "1000 km")

	assert.Equal(t, "auto-insurance-"+doc.ID, alerts[1].ID)
	assert.Equal(t, models.AlertInsurance, alerts[1].Type)
	assert.Equal(t, models.AlertUrgent, alerts[1].Priority)
}

func TestRefreshAlerts(t *testing.T) {
	n := &mockNotifier{}
	n.On("Publish", mock.Anything, mock.AnythingOfType("models.Alert")).Return(nil)
	s, clock := newTestService(WithNotifier(n))
	ctx := context.Background()

	res, err := s.RefreshAlerts(ctx, "1")
	require.NoError(t, err)
	assert.Len(t, res.Added, 6)
	assert.Empty(t, res.Removed)
	require.Len(t, res.Alerts, 8)
	assert.Equal(t, []string{"1", "2"}, alertIDs(res.Alerts[:2]), "hand-entered alerts are kept first")
	n.AssertNumberOfCalls(t, "Publish", 6)

	res, err = s.RefreshAlerts(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, res.Added)
	assert.Len(t, res.Alerts, 8, "refreshing twice does not duplicate")
	n.AssertNumberOfCalls(t, "Publish", 6)

	// A day later the permit enters the expiring window and vehicle 2 has
	// been serviced.
	clock.t = clock.t.AddDate(0, 0, 1)
	_, err = s.UpdateMileage(ctx, "1", "2", 40000)
	require.NoError(t, err)

	res, err = s.RefreshAlerts(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"auto-document-2"}, alertIDs(res.Added))
	assert.Equal(t, []string{"auto-maintenance-2"}, res.Removed)
	assert.Len(t, res.Alerts, 8)
	for _, a := range res.Alerts {
		switch a.ID {
		case "auto-license-2":
			assert.Equal(t, "2026-10-15", a.Date, "existing alerts keep their date")
		case "auto-document-2":
			assert.Equal(t, "2026-10-16", a.Date)
		}
	}

	stored, err := s.ListAlerts(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, res.Alerts, stored)
}

func TestRefreshAlerts_PublishFailureIsNotFatal(t *testing.T) {
	n := &mockNotifier{}
	n.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))
	s, _ := newTestService(WithNotifier(n))

	res, err := s.RefreshAlerts(context.Background(), "1")
	require.NoError(t, err)
	assert.Len(t, res.Added, 6)
	n.AssertExpectations(t)
}

func TestCountUrgent(t *testing.T) {
	assert.Equal(t, 0, CountUrgent(nil))
	assert.Equal(t, 1, CountUrgent([]models.Alert{
		{Priority: models.AlertUrgent},
		{Priority: models.AlertHigh},
	}))
}

func TestIsDerived(t *testing.T) {
	assert.True(t, IsDerived(models.Alert{ID: "auto-license-2"}))
	assert.False(t, IsDerived(models.Alert{ID: "1"}))
}
