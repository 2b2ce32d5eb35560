package v1

import "time"

// JobStatus lifecycle status of a training job
type JobStatus string

const (
	JobStatusPending   JobStatus = "Pending"
	JobStatusRunning   JobStatus = "Running"
	JobStatusSucceeded JobStatus = "Succeeded"
	JobStatusFailed    JobStatus = "Failed"
)

// JobType kind of distributed training job
type JobType string

const (
	JobTypeMPIJob     JobType = "MPIJob"
	JobTypeTFJob      JobType = "TFJob"
	JobTypePyTorchJob JobType = "PyTorchJob"
)

// FilterAll matches every status or type in a job filter
const FilterAll = "All"

// JobSummary one entry in the job list
// swagger:model JobSummary
type JobSummary struct {
	// Name of the job
	//
	// required: true
	// example: mnist-training
	Name string `json:"name"`

	// Namespace of the job
	//
	// required: true
	// example: default
	Namespace string `json:"namespace"`

	// Status of the job
	//
	// required: true
	// Enum: Pending,Running,Succeeded,Failed
	// example: Running
	Status JobStatus `json:"status"`

	// Type of the job
	//
	// required: true
	// Enum: MPIJob,TFJob,PyTorchJob
	// example: MPIJob
	Type JobType `json:"type"`

	// WorkersReady number of workers ready
	//
	// example: 4
	WorkersReady int `json:"workersReady"`

	// WorkersTotal number of requested workers
	//
	// example: 4
	WorkersTotal int `json:"workersTotal"`

	// GPUCount total number of GPUs of the job
	//
	// example: 8
	GPUCount int64 `json:"gpuCount"`

	// Created timestamp
	//
	// example: 2006-01-02T15:04:05Z
	Created time.Time `json:"created"`
}

// Age of the job at now. Zero when the creation time is unknown.
func (s JobSummary) Age(now time.Time) time.Duration {
	if s.Created.IsZero() || now.Before(s.Created) {
		return 0
	}
	return now.Sub(s.Created)
}

// Key identifies the job within the cluster
func (s JobSummary) Key() string {
	return s.Namespace + "/" + s.Name
}
