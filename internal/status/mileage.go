package status

// MaintenanceThresholdKm is the distance below which a vehicle is due.
const MaintenanceThresholdKm = 1000

// MileageDue is the maintenance-by-mileage classification of a vehicle.
type MileageDue struct {
	KmUntilMaintenance int    `json:"km_until_maintenance"`
	NeedsMaintenance   bool   `json:"needs_maintenance"`
	Overdue            bool   `json:"overdue"`
	Label              string `json:"label"`
	Color              string `json:"color"`
	// Progress is the percentage of the service window already driven,
	// present only when both ends of the window are known.
	Progress *float64 `json:"progress,omitempty"`
}

// NeedsMaintenance reports whether next-mileage is within the threshold,
// overdue included.
func NeedsMaintenance(mileage, next int) bool {
	return next-mileage <= MaintenanceThresholdKm
}

// ClassifyMileage classifies a vehicle's distance to its next service. It
// returns false when next is unknown.
func ClassifyMileage(mileage int, last, next *int, interval int) (MileageDue, bool) {
	if next == nil {
		return MileageDue{}, false
	}
	km := *next - mileage
	due := MileageDue{
		KmUntilMaintenance: km,
		NeedsMaintenance:   NeedsMaintenance(mileage, *next),
		Overdue:            km < 0,
	}
	switch {
	case due.Overdue:
		due.Label, due.Color = "Mantenimiento vencido", ColorRed
	case due.NeedsMaintenance:
		due.Label, due.Color = "Mantenimiento próximo", ColorYellow
	default:
		due.Label, due.Color = "Al día", ColorGreen
	}
	if last != nil && interval > 0 {
		p := WindowProgress(mileage, *last, interval)
		due.Progress = &p
	}
	return due, true
}

// WindowProgress returns (mileage-last)/interval as a percentage clamped to
// [0, 100].
func WindowProgress(mileage, last, interval int) float64 {
	if interval <= 0 {
		return 0
	}
	ratio := float64(mileage-last) / float64(interval)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return ratio * 100
}

// NextServiceMileage is the odometer reading at which the next service falls.
func NextServiceMileage(mileage, interval int) int {
	return mileage + interval
}
