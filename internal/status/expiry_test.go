package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return today.AddDate(0, 0, offset)
}

func TestClassifyExpiry(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		status Level
		days   int
	}{
		{"long expired", -400, Expired, 400},
		{"expired yesterday", -1, Expired, 1},
		{"expires today", 0, Expiring, 0},
		{"expires tomorrow", 1, Expiring, 1},
		{"expires in 15 days", 15, Expiring, 15},
		{"last expiring day", 30, Expiring, 30},
		{"first valid day", 31, Valid, 31},
		{"far future", 365, Valid, 365},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyExpiry(SubjectLicense, day(tt.offset), today)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, tt.days, got.Days)
		})
	}
}

func TestClassifyExpiry_Labels(t *testing.T) {
	assert.Equal(t, "Vencida", ClassifyExpiry(SubjectLicense, day(-3), today).Label)
	assert.Equal(t, "Vencido", ClassifyExpiry(SubjectTechnicalReview, day(-3), today).Label)
	assert.Equal(t, "Vencido", ClassifyExpiry(SubjectDocument, day(-3), today).Label)

	expiring := ClassifyExpiry(SubjectLicense, day(10), today)
	assert.Equal(t, "Por vencer", expiring.Label)
	assert.Equal(t, ColorYellow, expiring.Color)

	valid := ClassifyExpiry(SubjectTechnicalReview, day(90), today)
	assert.Equal(t, "Vigente", valid.Label)
	assert.Equal(t, ColorGreen, valid.Color)

	assert.Equal(t, ColorRed, ClassifyExpiry(SubjectLicense, day(-1), today).Color)
}

func TestDaysUntil_RoundsUp(t *testing.T) {
	// An expiry at midnight seen from mid-afternoon still counts the partial day.
	afternoon := today.Add(15 * time.Hour)
	assert.Equal(t, 2, DaysUntil(day(2), afternoon))
	assert.Equal(t, 1, DaysUntil(day(1), today.Add(23*time.Hour)))
	assert.Equal(t, 0, DaysUntil(day(0), today.Add(23*time.Hour)))
	assert.Equal(t, -1, DaysUntil(day(-1), today))
}

func TestClassifyExpiry_Property(t *testing.T) {
	for offset := -60; offset <= 60; offset++ {
		got := ClassifyExpiry(SubjectDocument, day(offset), today)
		switch {
		case offset < 0:
			assert.Equal(t, Expired, got.Status, "offset %d", offset)
		case offset <= 30:
			assert.Equal(t, Expiring, got.Status, "offset %d", offset)
		default:
			assert.Equal(t, Valid, got.Status, "offset %d", offset)
		}
	}
}

func TestClassifyExpiryDate(t *testing.T) {
	now := today.Add(9*time.Hour + 30*time.Minute)
	got, err := ClassifyExpiryDate(SubjectLicense, "2026-10-30", now)
	require.NoError(t, err)
	assert.Equal(t, Expiring, got.Status)
	assert.Equal(t, 15, got.Days)

	got, err = ClassifyExpiryDate(SubjectLicense, "2026-10-15", now)
	require.NoError(t, err)
	assert.Equal(t, Expiring, got.Status)
	assert.Equal(t, 0, got.Days)

	_, err = ClassifyExpiryDate(SubjectLicense, "not-a-date", now)
	assert.Error(t, err)
}
