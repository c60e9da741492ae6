// Package status derives the display status of fleet records from dates,
// mileage and maintenance task lists. Every function here is pure.
package status

import (
	"math"
	"time"

	"github.com/ukydev/fleet-console/internal/models"
)

// Level is the three-tier classification shared by every derived status.
type Level string

const (
	Valid    Level = "valid"
	Expiring Level = "expiring"
	Expired  Level = "expired"
)

// ExpiringWindowDays is the inclusive upper bound of the expiring tier.
const ExpiringWindowDays = 30

// Presentation color classes.
const (
	ColorRed    = "bg-red-100 text-red-800"
	ColorYellow = "bg-yellow-100 text-yellow-800"
	ColorGreen  = "bg-green-100 text-green-800"
)

// Subject selects the wording of the expired label.
type Subject int

const (
	SubjectLicense Subject = iota
	SubjectTechnicalReview
	SubjectDocument
)

func (s Subject) expiredLabel() string {
	if s == SubjectLicense {
		return "Vencida"
	}
	return "Vencido"
}

// Expiry is the classification of an expiry date relative to today.
type Expiry struct {
	Status Level  `json:"status"`
	Label  string `json:"label"`
	Color  string `json:"color"`
	// Days is the overdue count when expired and the remaining count otherwise.
	Days int `json:"days"`
}

// DaysUntil returns ceil((expiry - today) / 1 day).
func DaysUntil(expiry, today time.Time) int {
	days := math.Ceil(expiry.Sub(today).Hours() / 24)
	return int(days)
}

// ClassifyExpiry classifies expiry against today. A date equal to today is
// expiring, not expired, and today+30 days is still expiring.
func ClassifyExpiry(subject Subject, expiry, today time.Time) Expiry {
	days := DaysUntil(expiry, today)
	switch {
	case days < 0:
		return Expiry{Status: Expired, Label: subject.expiredLabel(), Color: ColorRed, Days: -days}
	case days <= ExpiringWindowDays:
		return Expiry{Status: Expiring, Label: "Por vencer", Color: ColorYellow, Days: days}
	default:
		return Expiry{Status: Valid, Label: "Vigente", Color: ColorGreen, Days: days}
	}
}

// ClassifyExpiryDate parses an ISO date and classifies it against the
// calendar day of now.
func ClassifyExpiryDate(subject Subject, expiry string, now time.Time) (Expiry, error) {
	d, err := models.ParseDate(expiry)
	if err != nil {
		return Expiry{}, err
	}
	return ClassifyExpiry(subject, d, models.Today(now)), nil
}
