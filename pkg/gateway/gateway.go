package gateway

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/equinor/radix-training-console/internal/jobspec"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
)

//go:generate mockgen -source=gateway.go -destination=mock/gateway_mock.go -package=mock

// Gateway submits job specs to an execution backend
type Gateway interface {
	// Submit sends the job spec to the backend exactly once. Failures are returned as *SubmissionError.
	Submit(ctx context.Context, spec *jobspec.JobSpec) (*JobHandle, error)
}

// JobSource lists the jobs known to an execution backend
type JobSource interface {
	List(ctx context.Context) ([]modelsv1.JobSummary, error)
}

// JobHandle identifies a submitted job
// swagger:model JobHandle
type JobHandle struct {
	// Name of the job object
	//
	// required: true
	// example: mnist-training-x7k2p
	Name string `json:"name"`

	// Namespace of the job object
	//
	// required: true
	// example: default
	Namespace string `json:"namespace"`

	// UID assigned by the backend
	//
	// example: 2f1e1a86-4f33-4b8e-a4c9-3c7d1b0d6f55
	UID string `json:"uid,omitempty"`

	// SubmittedAt time the backend accepted the job
	//
	// required: true
	// example: 2006-01-02T15:04:05Z
	SubmittedAt time.Time `json:"submittedAt"`
}

// ErrorKind classifies submission failures
type ErrorKind int

const (
	// Transport the backend could not be reached or answered unexpectedly
	Transport ErrorKind = iota
	// Conflict a job with the same name already exists
	Conflict
	// QuotaExceeded the namespace has no capacity left for the job
	QuotaExceeded
)

func (k ErrorKind) String() string {
	switch k {
	case Conflict:
		return "Conflict"
	case QuotaExceeded:
		return "QuotaExceeded"
	default:
		return "Transport"
	}
}

// SubmissionError is returned by Gateway.Submit
type SubmissionError struct {
	Kind ErrorKind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("job submission failed (%s): %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewSubmissionError wraps err as a SubmissionError of the kind
func NewSubmissionError(kind ErrorKind, err error) *SubmissionError {
	return &SubmissionError{Kind: kind, Err: err}
}

// KindOf returns the kind of a SubmissionError in the chain of err
func KindOf(err error) (ErrorKind, bool) {
	var submissionError *SubmissionError
	if errors.As(err, &submissionError) {
		return submissionError.Kind, true
	}
	return 0, false
}
