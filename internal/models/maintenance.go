package models

type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
)

func (t MaintenanceType) IsValid() bool {
	return t == MaintenancePreventive || t == MaintenanceCorrective
}

type MaintenancePriority string

const (
	PriorityLow    MaintenancePriority = "low"
	PriorityMedium MaintenancePriority = "medium"
	PriorityHigh   MaintenancePriority = "high"
)

func (p MaintenancePriority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// MaintenanceStatus only moves forward: scheduled, in-progress, completed.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "scheduled"
	MaintenanceInProgress MaintenanceStatus = "in-progress"
	MaintenanceCompleted  MaintenanceStatus = "completed"
)

func (s MaintenanceStatus) IsValid() bool {
	switch s {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted:
		return true
	default:
		return false
	}
}

// Task is one checklist item of a maintenance job.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Maintenance represents a vehicle maintenance job.
type Maintenance struct {
	ID            string              `json:"id" yaml:"id"`
	VehicleID     Ref                 `json:"vehicle_id" yaml:"vehicle_id"`
	Type          MaintenanceType     `json:"type" yaml:"type"`
	Priority      MaintenancePriority `json:"priority" yaml:"priority"`
	ScheduledDate string              `json:"scheduled_date" yaml:"scheduled_date"`
	Status        MaintenanceStatus   `json:"status" yaml:"status"`
	Progress      int                 `json:"progress" yaml:"progress"` // 0-100
	Tasks         []Task              `json:"tasks" yaml:"tasks"`
	Cost          *float64            `json:"cost,omitempty" yaml:"cost"`
	Workshop      string              `json:"workshop,omitempty" yaml:"workshop"`
	Notes         string              `json:"notes,omitempty" yaml:"notes"`
	CompanyID     string              `json:"company_id" yaml:"company_id"`
}
