package validation

import (
	"errors"
	"math"
	"slices"
	"strings"

	"github.com/equinor/radix-training-console/internal/resources"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/equinor/radix-training-console/pkg/quantity"
	k8svalidation "k8s.io/apimachinery/pkg/util/validation"
)

// Validation messages
const (
	MessageRequired            = "Required"
	MessageImageRequired       = "Container image is required"
	MessageCPURequired         = "CPU request is required"
	MessageMemoryRequired      = "Memory request is required"
	MessageInvalidName         = "Must consist of lowercase alphanumeric characters or '-', and must start and end with an alphanumeric character"
	MessageNameTooLong         = "Cannot be longer than 63 characters"
	MessageWorkerCount         = "At least 1 worker is required"
	MessageNegative            = "Cannot be negative"
	MessageSlotCount           = "At least 1 slot per worker is required"
	MessageInvalidCPU          = "Must be a CPU quantity such as 4 or 500m"
	MessageInvalidMemory       = "Must be a memory quantity such as 16Gi or 512Mi"
	MessageInvalidMPIImpl      = "Must be one of OpenMPI, IntelMPI or MPICH"
	MessageLauncherCPURequired = "Launcher CPU request is required"
	MessageLauncherMemRequired = "Launcher memory request is required"
	MessageTooLarge            = "Cannot be more than 2147483647"
	MessageTotalsTooLarge      = "Total resources of all workers are too large"
)

// MaxCount upper bound of worker, GPU and slot counts, the range of a Kubernetes replica count
const MaxCount = math.MaxInt32

// Validate checks every field of the draft and returns all field errors found.
// The draft is never modified.
func Validate(draft modelsv1.JobConfigDraft) modelsv1.ValidationResult {
	result := modelsv1.ValidationResult{}
	setIf := func(field, message string) {
		if message != "" {
			result[field] = message
		}
	}

	setIf(modelsv1.FieldName, validateName(draft.Name))
	setIf(modelsv1.FieldNamespace, required(draft.Namespace, MessageRequired))
	setIf(modelsv1.FieldImage, required(draft.Image, MessageImageRequired))
	switch {
	case draft.WorkerCount < 1:
		result[modelsv1.FieldWorkerCount] = MessageWorkerCount
	case draft.WorkerCount > MaxCount:
		result[modelsv1.FieldWorkerCount] = MessageTooLarge
	}
	switch {
	case draft.GPUCount < 0:
		result[modelsv1.FieldGPUCount] = MessageNegative
	case draft.GPUCount > MaxCount:
		result[modelsv1.FieldGPUCount] = MessageTooLarge
	}
	setIf(modelsv1.FieldCPURequest, validateQuantity(draft.CPURequest, quantity.CPU, MessageCPURequired))
	setIf(modelsv1.FieldMemoryRequest, validateQuantity(draft.MemoryRequest, quantity.Memory, MessageMemoryRequired))
	setIf(modelsv1.FieldMPIImplementation, validateMPIImplementation(draft.MPIImplementation))

	// launcher settings only apply with advanced options, stale values are ignored otherwise
	if draft.AdvancedOptions {
		switch {
		case draft.SlotCount < 1:
			result[modelsv1.FieldSlotCount] = MessageSlotCount
		case draft.SlotCount > MaxCount:
			result[modelsv1.FieldSlotCount] = MessageTooLarge
		}
		setIf(modelsv1.FieldLauncherCPU, validateQuantity(draft.LauncherCPU, quantity.CPU, MessageLauncherCPURequired))
		setIf(modelsv1.FieldLauncherMemory, validateQuantity(draft.LauncherMemory, quantity.Memory, MessageLauncherMemRequired))
	}

	if result.IsValid() {
		if _, err := resources.Aggregate(draft); errors.Is(err, resources.ErrTotalsOverflow) {
			result[modelsv1.FieldWorkerCount] = MessageTotalsTooLarge
		}
	}
	return result
}

// IsValid reports whether Validate returns no errors for the draft
func IsValid(draft modelsv1.JobConfigDraft) bool {
	return Validate(draft).IsValid()
}

func validateName(name string) string {
	if len(name) == 0 {
		return MessageRequired
	}
	if len(name) > k8svalidation.DNS1123LabelMaxLength {
		return MessageNameTooLong
	}
	if errs := k8svalidation.IsDNS1123Label(name); len(errs) > 0 {
		return MessageInvalidName
	}
	return ""
}

func required(value, message string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return message
	}
	return ""
}

func validateQuantity(value string, kind quantity.Kind, requiredMessage string) string {
	if len(value) == 0 {
		return requiredMessage
	}
	if _, err := quantity.Parse(value, kind); err != nil {
		if kind == quantity.CPU {
			return MessageInvalidCPU
		}
		return MessageInvalidMemory
	}
	return ""
}

func validateMPIImplementation(impl modelsv1.MPIImplementation) string {
	if len(impl) == 0 || slices.Contains(modelsv1.MPIImplementations, impl) {
		return ""
	}
	return MessageInvalidMPIImpl
}
