package status

import (
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
)

// Color used by the presentation to render a job status
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorOrange Color = "orange"
	ColorGrey   Color = "grey"
)

// StatusColor gets the display color of a status. Unknown statuses are grey.
func StatusColor(status modelsv1.JobStatus) Color {
	switch status {
	case modelsv1.JobStatusRunning:
		return ColorBlue
	case modelsv1.JobStatusSucceeded:
		return ColorGreen
	case modelsv1.JobStatusFailed:
		return ColorRed
	case modelsv1.JobStatusPending:
		return ColorOrange
	default:
		return ColorGrey
	}
}

// IsTerminal reports whether the status is final
func IsTerminal(status modelsv1.JobStatus) bool {
	return status == modelsv1.JobStatusSucceeded || status == modelsv1.JobStatusFailed
}

// IsKnown reports whether the status is part of the job lifecycle
func IsKnown(status modelsv1.JobStatus) bool {
	switch status {
	case modelsv1.JobStatusPending, modelsv1.JobStatusRunning, modelsv1.JobStatusSucceeded, modelsv1.JobStatusFailed:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a job observed in status from may next be observed in status to.
// Terminal statuses never change; observing the same status again is allowed.
func CanTransition(from, to modelsv1.JobStatus) bool {
	if !IsKnown(from) || !IsKnown(to) {
		return false
	}
	if from == to {
		return true
	}
	switch from {
	case modelsv1.JobStatusPending:
		return true
	case modelsv1.JobStatusRunning:
		return IsTerminal(to)
	default:
		return false
	}
}
