package status

import (
	"math"

	"github.com/ukydev/fleet-console/internal/models"
)

// TaskProgress returns round(completed/total*100). It returns false for an
// empty task list.
func TaskProgress(tasks []models.Task) (int, bool) {
	if len(tasks) == 0 {
		return 0, false
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100)), true
}

// Advance applies the forward-only status rule: 100 completes the job, any
// progress promotes a scheduled job, nothing ever demotes.
func Advance(current models.MaintenanceStatus, progress int) models.MaintenanceStatus {
	if progress == 100 {
		return models.MaintenanceCompleted
	}
	if progress > 0 && current == models.MaintenanceScheduled {
		return models.MaintenanceInProgress
	}
	return current
}

// ToggleTask flips one task and recomputes progress and status. The input is
// not modified. It returns false when no task has the given id.
func ToggleTask(m models.Maintenance, taskID string) (models.Maintenance, bool) {
	found := false
	tasks := make([]models.Task, len(m.Tasks))
	for i, t := range m.Tasks {
		if t.ID == taskID {
			t.Completed = !t.Completed
			found = true
		}
		tasks[i] = t
	}
	if !found {
		return m, false
	}
	m.Tasks = tasks
	if p, ok := TaskProgress(tasks); ok {
		m.Progress = p
		m.Status = Advance(m.Status, p)
	}
	return m, true
}

// AdjustProgress moves progress by increment, clamped to [0, 100], and
// applies the same status rule as ToggleTask.
func AdjustProgress(m models.Maintenance, increment int) models.Maintenance {
	p := m.Progress + increment
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	m.Progress = p
	m.Status = Advance(m.Status, p)
	return m
}
