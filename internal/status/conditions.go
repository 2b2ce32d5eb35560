package status

import (
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
)

// Condition types of Kubeflow training jobs
const (
	ConditionCreated    = "Created"
	ConditionRunning    = "Running"
	ConditionRestarting = "Restarting"
	ConditionSucceeded  = "Succeeded"
	ConditionFailed     = "Failed"
	ConditionSuspended  = "Suspended"
)

// Condition of a training job, as reported in the job object's status
type Condition struct {
	Type   string
	Status string
}

// FromConditions gets the job status from the job's conditions.
// A true terminal condition wins, otherwise the last true condition decides.
func FromConditions(conditions []Condition) modelsv1.JobStatus {
	status := modelsv1.JobStatusPending
	for _, condition := range conditions {
		if condition.Status != "True" {
			continue
		}
		switch condition.Type {
		case ConditionFailed:
			return modelsv1.JobStatusFailed
		case ConditionSucceeded:
			return modelsv1.JobStatusSucceeded
		}
	}
	for i := len(conditions) - 1; i >= 0; i-- {
		if conditions[i].Status != "True" {
			continue
		}
		switch conditions[i].Type {
		case ConditionRunning, ConditionRestarting:
			status = modelsv1.JobStatusRunning
		case ConditionCreated, ConditionSuspended:
			status = modelsv1.JobStatusPending
		default:
			continue
		}
		break
	}
	return status
}
