package validation_test

import (
	"strings"
	"testing"

	"github.com/equinor/radix-training-console/internal/validation"
	modelsv1 "github.com/equinor/radix-training-console/models/v1"
	"github.com/stretchr/testify/assert"
)

func validDraft() modelsv1.JobConfigDraft {
	return modelsv1.JobConfigDraft{
		Name:              "mnist-training",
		Namespace:         "default",
		Image:             "example/horovod-mnist:latest",
		WorkerCount:       4,
		GPUCount:          2,
		CPURequest:        "4",
		MemoryRequest:     "16Gi",
		MPIImplementation: modelsv1.OpenMPI,
		SlotCount:         1,
		LauncherCPU:       "1",
		LauncherMemory:    "1Gi",
	}
}

func TestValidate_ValidDraft(t *testing.T) {
	assert.Empty(t, validation.Validate(validDraft()))
	assert.True(t, validation.IsValid(validDraft()))
}

func TestValidate_RequiredFields(t *testing.T) {
	tests := []struct {
		field string
		clear func(d *modelsv1.JobConfigDraft)
	}{
		{field: modelsv1.FieldName, clear: func(d *modelsv1.JobConfigDraft) { d.Name = "" }},
		{field: modelsv1.FieldNamespace, clear: func(d *modelsv1.JobConfigDraft) { d.Namespace = "" }},
		{field: modelsv1.FieldImage, clear: func(d *modelsv1.JobConfigDraft) { d.Image = "" }},
		{field: modelsv1.FieldCPURequest, clear: func(d *modelsv1.JobConfigDraft) { d.CPURequest = "" }},
		{field: modelsv1.FieldMemoryRequest, clear: func(d *modelsv1.JobConfigDraft) { d.MemoryRequest = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			draft := validDraft()
			tt.clear(&draft)
			result := validation.Validate(draft)
			assert.Contains(t, result, tt.field)
			assert.Len(t, result, 1)
		})
	}
}

func TestValidate_Name(t *testing.T) {
	tests := []struct {
		name     string
		jobName  string
		expected string
	}{
		{name: "uppercase and symbols", jobName: "Invalid_Name!", expected: validation.MessageInvalidName},
		{name: "leading hyphen", jobName: "-job", expected: validation.MessageInvalidName},
		{name: "trailing hyphen", jobName: "job-", expected: validation.MessageInvalidName},
		{name: "too long", jobName: strings.Repeat("a", 64), expected: validation.MessageNameTooLong},
		{name: "max length", jobName: strings.Repeat("a", 63), expected: ""},
		{name: "single character", jobName: "a", expected: ""},
		{name: "digits and hyphens", jobName: "job-1-2", expected: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := validDraft()
			draft.Name = tt.jobName
			result := validation.Validate(draft)
			if tt.expected == "" {
				assert.NotContains(t, result, modelsv1.FieldName)
				return
			}
			assert.Equal(t, tt.expected, result[modelsv1.FieldName])
		})
	}
}

func TestValidate_Counts(t *testing.T) {
	draft := validDraft()
	draft.WorkerCount = 0
	draft.GPUCount = -1
	result := validation.Validate(draft)
	assert.Equal(t, validation.MessageWorkerCount, result[modelsv1.FieldWorkerCount])
	assert.Equal(t, validation.MessageNegative, result[modelsv1.FieldGPUCount])

	draft = validDraft()
	draft.GPUCount = 0
	assert.Empty(t, validation.Validate(draft))
}

func TestValidate_CountUpperBounds(t *testing.T) {
	draft := validDraft()
	draft.CPURequest = "1m"
	draft.MemoryRequest = "1"
	draft.WorkerCount = validation.MaxCount
	draft.GPUCount = validation.MaxCount
	draft.AdvancedOptions = true
	draft.SlotCount = validation.MaxCount
	assert.Empty(t, validation.Validate(draft))

	draft.WorkerCount = validation.MaxCount + 1
	draft.GPUCount = validation.MaxCount + 1
	draft.SlotCount = validation.MaxCount + 1
	result := validation.Validate(draft)
	assert.Equal(t, validation.MessageTooLarge, result[modelsv1.FieldWorkerCount])
	assert.Equal(t, validation.MessageTooLarge, result[modelsv1.FieldGPUCount])
	assert.Equal(t, validation.MessageTooLarge, result[modelsv1.FieldSlotCount])
}

func TestValidate_TotalsOverflow(t *testing.T) {
	draft := validDraft()
	draft.WorkerCount = 1 << 23
	draft.MemoryRequest = "1Ti"
	result := validation.Validate(draft)
	assert.Equal(t, modelsv1.ValidationResult{modelsv1.FieldWorkerCount: validation.MessageTotalsTooLarge}, result)

	draft.WorkerCount = 1<<23 - 1
	assert.Empty(t, validation.Validate(draft))
}

func TestValidate_Quantities(t *testing.T) {
	draft := validDraft()
	draft.CPURequest = "4Gi"
	draft.MemoryRequest = "16GB"
	result := validation.Validate(draft)
	assert.Equal(t, validation.MessageInvalidCPU, result[modelsv1.FieldCPURequest])
	assert.Equal(t, validation.MessageInvalidMemory, result[modelsv1.FieldMemoryRequest])
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	result := validation.Validate(modelsv1.JobConfigDraft{GPUCount: -2})
	assert.ElementsMatch(t, []string{
		modelsv1.FieldName,
		modelsv1.FieldNamespace,
		modelsv1.FieldImage,
		modelsv1.FieldWorkerCount,
		modelsv1.FieldGPUCount,
		modelsv1.FieldCPURequest,
		modelsv1.FieldMemoryRequest,
	}, result.Fields())
}

func TestValidate_MPIImplementation(t *testing.T) {
	draft := validDraft()
	draft.MPIImplementation = ""
	assert.Empty(t, validation.Validate(draft))

	draft.MPIImplementation = "MVAPICH"
	assert.Equal(t, validation.MessageInvalidMPIImpl, validation.Validate(draft)[modelsv1.FieldMPIImplementation])
}

func TestValidate_AdvancedOptions(t *testing.T) {
	t.Run("launcher fields ignored without advanced options", func(t *testing.T) {
		draft := validDraft()
		draft.SlotCount = 0
		draft.LauncherCPU = "not-a-cpu"
		draft.LauncherMemory = ""
		assert.Empty(t, validation.Validate(draft))
	})

	t.Run("launcher fields validated with advanced options", func(t *testing.T) {
		draft := validDraft()
		draft.AdvancedOptions = true
		draft.SlotCount = 0
		draft.LauncherCPU = "not-a-cpu"
		draft.LauncherMemory = ""
		result := validation.Validate(draft)
		assert.Equal(t, validation.MessageSlotCount, result[modelsv1.FieldSlotCount])
		assert.Equal(t, validation.MessageInvalidCPU, result[modelsv1.FieldLauncherCPU])
		assert.Equal(t, validation.MessageLauncherMemRequired, result[modelsv1.FieldLauncherMemory])
	})

	t.Run("valid advanced options", func(t *testing.T) {
		draft := validDraft()
		draft.AdvancedOptions = true
		draft.SlotCount = 2
		assert.Empty(t, validation.Validate(draft))
	})
}

func TestValidate_IsPureAndDeterministic(t *testing.T) {
	draft := validDraft()
	draft.Name = "Invalid_Name!"
	draft.WorkerCount = 0
	before := draft
	first := validation.Validate(draft)
	second := validation.Validate(draft)
	assert.Equal(t, before, draft)
	assert.Equal(t, first, second)
}
