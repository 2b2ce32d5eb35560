package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/equinor/radix-training-console/internal/jobspec"
	"github.com/equinor/radix-training-console/models/common"
	"github.com/equinor/radix-training-console/pkg/gateway"
	k8sErrors "k8s.io/apimachinery/pkg/api/errors"
	v1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

type APIStatus interface {
	Status() *common.Status
}

type StatusError struct {
	ErrStatus common.Status
}

var _ error = &StatusError{}

func NotFoundMessage(kind, name string) string {
	return fmt.Sprintf("%s %s not found", kind, name)
}

func InvalidMessage(name string) string {
	return fmt.Sprintf("%s is invalid", name)
}

func UnknownMessage(err error) string {
	return err.Error()
}

// Error implements the Error interface.
func (e *StatusError) Error() string {
	return e.ErrStatus.Message
}

// Status implements the APIStatus interface.
func (e *StatusError) Status() *common.Status {
	return &e.ErrStatus
}

func newStatusError(reason common.StatusReason, code int, message string) *StatusError {
	return &StatusError{
		common.Status{
			Status:  common.StatusFailure,
			Reason:  reason,
			Code:    code,
			Message: message,
		},
	}
}

func NewNotFound(kind, name string) *StatusError {
	return newStatusError(common.StatusReasonNotFound, http.StatusNotFound, NotFoundMessage(kind, name))
}

func NewInvalid(name string) *StatusError {
	return newStatusError(common.StatusReasonInvalid, http.StatusUnprocessableEntity, InvalidMessage(name))
}

// NewInvalidWithDetails an Invalid status with a message per invalid field
func NewInvalidWithDetails(name string, details map[string]string) *StatusError {
	statusError := NewInvalid(name)
	statusError.ErrStatus.Details = details
	return statusError
}

func NewBadRequest(message string) *StatusError {
	return newStatusError(common.StatusReasonBadRequest, http.StatusBadRequest, message)
}

func NewConflict(message string) *StatusError {
	return newStatusError(common.StatusReasonConflict, http.StatusConflict, message)
}

func NewQuotaExceeded(message string) *StatusError {
	return newStatusError(common.StatusReasonQuotaExceeded, http.StatusForbidden, message)
}

func NewBackendUnavailable(message string) *StatusError {
	return newStatusError(common.StatusReasonBackendUnavailable, http.StatusBadGateway, message)
}

func NewUnknown(err error) *StatusError {
	return newStatusError(common.StatusReasonUnknown, http.StatusInternalServerError, UnknownMessage(err))
}

func NewFromError(err error) *StatusError {
	var statusError *StatusError
	if errors.As(err, &statusError) {
		return statusError
	}
	var validationError *jobspec.ValidationError
	if errors.As(err, &validationError) {
		return NewInvalidWithDetails("job configuration", validationError.Result)
	}
	var submissionError *gateway.SubmissionError
	if errors.As(err, &submissionError) {
		return NewFromSubmissionError(submissionError)
	}
	var apiStatus k8sErrors.APIStatus
	if errors.As(err, &apiStatus) {
		return NewFromKubernetesAPIStatus(apiStatus)
	}
	return NewUnknown(err)
}

// NewFromSubmissionError maps a failed job submission to a status
func NewFromSubmissionError(err *gateway.SubmissionError) *StatusError {
	switch err.Kind {
	case gateway.Conflict:
		return NewConflict(err.Error())
	case gateway.QuotaExceeded:
		return NewQuotaExceeded(err.Error())
	default:
		return NewBackendUnavailable(err.Error())
	}
}

func NewFromKubernetesAPIStatus(apiStatus k8sErrors.APIStatus) *StatusError {
	status := apiStatus.Status()
	switch status.Reason {
	case v1.StatusReasonNotFound:
		if status.Details != nil {
			return NewNotFound(status.Details.Kind, status.Details.Name)
		}
		return newStatusError(common.StatusReasonNotFound, http.StatusNotFound, status.Message)
	case v1.StatusReasonInvalid:
		if status.Details != nil {
			return NewInvalid(status.Details.Name)
		}
		return newStatusError(common.StatusReasonInvalid, http.StatusUnprocessableEntity, status.Message)
	default:
		return NewUnknown(errors.New(status.Message))
	}
}

func ReasonForError(err error) common.StatusReason {
	var apiStatus APIStatus
	if errors.As(err, &apiStatus) {
		return apiStatus.Status().Reason
	}
	return common.StatusReasonUnknown
}
