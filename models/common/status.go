package common

// StatusResult type for Status
type StatusResult string

const (
	StatusSuccess StatusResult = "Success"
	StatusFailure StatusResult = "Failure"
)

// StatusReason is an enumeration of possible failure causes. Each StatusReason
// must map to a single HTTP status code, but multiple reasons may map
// to the same HTTP status code.
type StatusReason string

const (
	// StatusReasonUnknown means the server has declined to indicate a specific reason.
	StatusReasonUnknown StatusReason = ""

	// StatusReasonNotFound means one or more resources required for this operation
	// could not be found.
	StatusReasonNotFound StatusReason = "NotFound"

	// StatusReasonInvalid means the requested create or update operation cannot be
	// completed due to invalid data provided as part of the request.
	StatusReasonInvalid StatusReason = "Invalid"

	// StatusReasonBadRequest means that the request itself was invalid
	StatusReasonBadRequest StatusReason = "BadRequest"

	// StatusReasonConflict means a job with the same name already exists in the namespace
	StatusReasonConflict StatusReason = "Conflict"

	// StatusReasonQuotaExceeded means the job does not fit in the namespace quota
	StatusReasonQuotaExceeded StatusReason = "QuotaExceeded"

	// StatusReasonBackendUnavailable means the orchestration backend could not be reached
	StatusReasonBackendUnavailable StatusReason = "BackendUnavailable"
)

// Status is a return value for calls that don't return other objects or when a request returns an error
// swagger:model Status
type Status struct {
	// Status of the operation.
	// One of: "Success" or "Failure".
	// example: Failure
	Status StatusResult `json:"status,omitempty"`

	// A human-readable description of the status of this operation.
	// required: false
	// example: job mnist-training is invalid
	Message string `json:"message,omitempty"`

	// A machine-readable description of why this operation is in the
	// "Failure" status. If this value is empty there
	// is no information available.
	// required: false
	// example: Invalid
	Reason StatusReason `json:"reason,omitempty"`

	// Suggested HTTP return code for this status, 0 if not set.
	// required: false
	// example: 422
	Code int `json:"code,omitempty"`

	// Details per field, when the failure is caused by invalid fields
	// required: false
	Details map[string]string `json:"details,omitempty"`
}
